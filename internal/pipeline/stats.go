package pipeline

// RunStats tracks aggregate counters across a sync run.
type RunStats struct {
	Scanned        int // content files discovered
	SkippedFiles   int // files skipped (hash failures)
	Created        int
	Updated        int
	Unchanged      int
	Removed        int
	Rendered       int // redirect pages written (or would-write in dry-run)
	OrphansDeleted int
	IndexChanged   bool
}
