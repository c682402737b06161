// Package naming converts raw content filenames into human-readable titles,
// URL slugs, and redirect-page paths.
//
// The interesting part is date-token stripping: published decks and PDFs
// carry dates in half a dozen formats ("Oct 2023", "2023-10-05", "20231005",
// "(5 Oct 2023)", bare years), and the title/slug must stay stable when only
// the date changes. Date rules are an ordered table tried in descending
// specificity; see dates.go.
//
// All functions are pure and total: no error returns, degenerate input
// yields an empty string.
package naming
