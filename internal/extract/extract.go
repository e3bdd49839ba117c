// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract materializes selected chapters as standalone PDF files
// and reports per-chapter outcomes.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/chaptersplit/pkg/types"
)

// PageSource supplies pages from the opened source document. internal/pdf
// implements it; tests substitute a fake.
type PageSource interface {
	// PageCount returns the total number of pages.
	PageCount() int

	// ExtractRange writes the inclusive zero-based page range [start, end]
	// as a complete standalone document to w.
	ExtractRange(start, end int, w io.Writer) error
}

// Options configures an extraction run.
type Options struct {
	// OutputDir is where chapter files are written. Created if missing.
	OutputDir string

	// TitleMaxLen caps the sanitized title portion of filenames
	// (DefaultTitleMaxLen when zero).
	TitleMaxLen int

	// Progress, when non-nil, is called once after each chapter attempt.
	Progress func()
}

// ChapterStatus marks a chapter's outcome in the report.
type ChapterStatus string

const (
	StatusExtracted ChapterStatus = "extracted"
	StatusFailed    ChapterStatus = "failed"
)

// ChapterResult records the outcome for one chapter.
type ChapterResult struct {
	Number    int           `json:"number" yaml:"number"`
	Title     string        `json:"title" yaml:"title"`
	StartPage int           `json:"start_page" yaml:"start_page"`
	EndPage   int           `json:"end_page" yaml:"end_page"`
	Pages     int           `json:"pages" yaml:"pages"`
	Filename  string        `json:"filename,omitempty" yaml:"filename,omitempty"`
	Status    ChapterStatus `json:"status" yaml:"status"`
	Error     string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report summarizes an extraction run. SkippedTerms carries selection terms
// rejected before extraction started, so the final summary can account for
// them.
type Report struct {
	Source        string          `json:"source" yaml:"source"`
	OutputDir     string          `json:"output_dir" yaml:"output_dir"`
	TotalChapters int             `json:"total_chapters" yaml:"total_chapters"`
	Results       []ChapterResult `json:"chapters" yaml:"chapters"`
	SkippedTerms  []string        `json:"skipped_terms,omitempty" yaml:"skipped_terms,omitempty"`
}

// Extracted returns the number of chapters written successfully.
func (r Report) Extracted() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == StatusExtracted {
			n++
		}
	}
	return n
}

// Failed returns the number of chapters that could not be written.
func (r Report) Failed() int {
	return len(r.Results) - r.Extracted()
}

// HasFailures reports whether any chapter or selection term failed.
func (r Report) HasFailures() bool {
	return r.Failed() > 0 || len(r.SkippedTerms) > 0
}

// Run extracts the given chapters from src in ascending chapter-number
// order, writing one file per chapter into opts.OutputDir and per-chapter
// status lines to w. A failure on one chapter is recorded and does not stop
// the remaining chapters; only a failure to create the output directory
// aborts the run.
func Run(src PageSource, source string, selected []types.Chapter, opts Options, w io.Writer) (Report, error) {
	report := Report{
		Source:        source,
		OutputDir:     opts.OutputDir,
		TotalChapters: len(selected),
	}

	if len(selected) == 0 {
		return report, fmt.Errorf("no chapters selected for extraction")
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return report, fmt.Errorf("creating output directory %s: %w", opts.OutputDir, err)
	}

	for _, c := range selected {
		report.Results = append(report.Results, extractChapter(src, c, opts, w))
		if opts.Progress != nil {
			opts.Progress()
		}
	}

	fmt.Fprintf(w, "\nExtracted %d of %d chapters to %s\n",
		report.Extracted(), len(selected), opts.OutputDir)
	return report, nil
}

// extractChapter copies one chapter's page range into its own file. The
// document is assembled in memory first so a failed extraction never leaves
// a partially written file behind.
func extractChapter(src PageSource, c types.Chapter, opts Options, w io.Writer) ChapterResult {
	result := ChapterResult{
		Number:    c.Number,
		Title:     c.Title,
		StartPage: c.StartPage,
		EndPage:   c.EndPage,
		Pages:     c.PageCount(),
	}

	filename := Filename(c.Number, c.Title, opts.TitleMaxLen)
	path := filepath.Join(opts.OutputDir, filename)

	var buf bytes.Buffer
	if err := src.ExtractRange(c.StartPage, c.EndPage, &buf); err != nil {
		result.Status = StatusFailed
		result.Error = err.Error()
		fmt.Fprintf(w, "  failed: chapter %d %q: %v\n", c.Number, c.Title, err)
		return result
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		result.Status = StatusFailed
		result.Error = err.Error()
		fmt.Fprintf(w, "  failed: chapter %d %q: %v\n", c.Number, c.Title, err)
		return result
	}

	result.Status = StatusExtracted
	result.Filename = filename

	title := c.Title
	if len(title) > 50 {
		title = title[:47] + "..."
	}
	fmt.Fprintf(w, "  %3d. %-50s (pages %4d-%4d, %4d pages) -> %s\n",
		c.Number, title, c.StartPage+1, c.EndPage+1, c.PageCount(), filename)
	return result
}
