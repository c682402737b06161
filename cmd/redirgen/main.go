package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/backmassage/redirgen/internal/check"
	"github.com/backmassage/redirgen/internal/config"
	"github.com/backmassage/redirgen/internal/logging"
	"github.com/backmassage/redirgen/internal/pipeline"
)

var (
	// Global flags
	flagRoot       string
	flagConfigFile string
	flagContentDir string
	flagManifest   string
	flagTemplate   string
	flagIndex      string
	flagBaseURL    string
	flagOwner      string
	flagRepo       string
	flagLogFile    string
	flagDryRun     bool
	flagVerbose    bool
	flagNoColor    bool

	cfg      config.Config
	log      *zap.SugaredLogger
	closeLog func()
)

var rootCmd = &cobra.Command{
	Use:   "redirgen",
	Short: "Maintain redirect pages for a GitHub Pages content repository",
	Long: `redirgen keeps a static content site self-consistent: it scans the
content directory, reconciles the JSON manifest with what is actually on
disk, renders one HTML redirect page per file, and regenerates the
markdown index.

Manual edits to an entry's id, title, or redirect path survive renames
of the underlying file; stale pages are swept away.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := buildConfig(cmd); err != nil {
			return err
		}
		var err error
		log, closeLog, err = logging.NewLogger(&cfg)
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if closeLog != nil {
			closeLog()
		}
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Scan content, reconcile the manifest, render pages, rebuild the index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := pipeline.Run(&cfg, log)
		return err
	},
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Re-render redirect pages from the existing manifest",
	Long: `Renders redirect pages from the manifest exactly as it stands, without
scanning, reconciling, or deleting anything. Fails when the manifest is
missing or malformed. Intended for workflows that treat the manifest as
the source of truth.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := pipeline.RenderOnly(&cfg, log)
		return err
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Diagnose the workspace without changing anything",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !check.RunCheck(&cfg, log) {
			return errors.New("checks failed")
		}
		return nil
	},
}

// buildConfig layers defaults, the optional YAML settings file, and CLI
// flags, in that order. Only flags the user actually set override the
// file.
func buildConfig(cmd *cobra.Command) error {
	cfg = config.DefaultConfig()

	if flagConfigFile != "" {
		if err := cfg.ApplyFile(flagConfigFile); err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.WorkspaceRoot = flagRoot
	}
	if flags.Changed("content-dir") {
		cfg.ContentDir = flagContentDir
	}
	if flags.Changed("manifest") {
		cfg.ManifestPath = flagManifest
	}
	if flags.Changed("template") {
		cfg.TemplatePath = flagTemplate
	}
	if flags.Changed("index") {
		cfg.IndexPath = flagIndex
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = flagBaseURL
	}
	if flags.Changed("owner") {
		cfg.Owner = flagOwner
	}
	if flags.Changed("repo") {
		cfg.Repo = flagRepo
	}
	if flags.Changed("log") {
		cfg.LogFile = flagLogFile
	}
	cfg.DryRun = flagDryRun
	cfg.Verbose = flagVerbose
	cfg.NoColor = flagNoColor

	if err := cfg.ResolveRoot(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return cfg.ValidatePaths(cfg.WorkspaceRoot, cfg.ContentRoot())
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagRoot, "root", "", "Workspace root (default: $GITHUB_WORKSPACE, then current directory)")
	pf.StringVarP(&flagConfigFile, "config", "c", "", "YAML settings file")
	pf.StringVar(&flagContentDir, "content-dir", "", "Content directory, relative to the root")
	pf.StringVar(&flagManifest, "manifest", "", "Manifest JSON path, relative to the root")
	pf.StringVar(&flagTemplate, "template", "", "Redirect page template path, relative to the root")
	pf.StringVar(&flagIndex, "index", "", "Markdown index path, relative to the root")
	pf.StringVar(&flagBaseURL, "base-url", "", "Published site base URL (overrides owner/repo)")
	pf.StringVar(&flagOwner, "owner", "", "GitHub owner, used to derive the base URL")
	pf.StringVar(&flagRepo, "repo", "", "GitHub repository, used to derive the base URL")
	pf.StringVar(&flagLogFile, "log", "", "Also append log output to this file")
	pf.BoolVarP(&flagDryRun, "dry-run", "n", false, "Report what would change without writing")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable colored log output")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
