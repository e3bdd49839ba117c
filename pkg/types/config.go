// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RangePolicy selects how degenerate bookmark ranges are handled when two
// adjacent bookmarks resolve to the same (or out-of-order) pages.
type RangePolicy string

const (
	// RangeClamp clamps a degenerate range to a single-page chapter and
	// surfaces a warning.
	RangeClamp RangePolicy = "clamp"

	// RangeStrict rejects the outline as malformed instead of clamping.
	RangeStrict RangePolicy = "strict"
)

// SplitConfig holds settings for the split stage.
type SplitConfig struct {
	// OutputDir is the directory chapter files are written to (default
	// "chapters"). Created if missing.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Selection restricts which chapters are extracted, e.g. "1,3,5-7".
	// Empty selects all chapters.
	Selection string `json:"selection,omitempty" yaml:"selection,omitempty"`

	// ListOnly previews the chapter table without writing any files.
	ListOnly bool `json:"list_only" yaml:"list_only"`

	// TitleMaxLen caps the sanitized title portion of output filenames
	// (default 200), leaving headroom under 255-character filesystem limits.
	TitleMaxLen int `json:"title_max_len" yaml:"title_max_len"`

	// RangePolicy selects clamp or strict handling of degenerate ranges.
	RangePolicy RangePolicy `json:"range_policy" yaml:"range_policy"`

	// Quiet suppresses the extraction progress bar.
	Quiet bool `json:"quiet" yaml:"quiet"`
}

// CatalogConfig holds settings for the run catalog.
type CatalogConfig struct {
	// Dir is the directory holding the catalog database (default
	// ".chaptersplit").
	Dir string `json:"dir" yaml:"dir"`

	// Enabled controls whether split runs are recorded in the catalog.
	Enabled bool `json:"enabled" yaml:"enabled"`
}
