// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chapters derives the chapter partition from a sorted bookmark
// list: each bookmark opens a chapter that runs up to the page before the
// next bookmark, and the last chapter runs to the end of the document.
package chapters

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/chaptersplit/pkg/types"
)

// BuildResult holds the derived chapters plus any derivation warnings
// (degenerate ranges, bookmarks beyond the last page).
type BuildResult struct {
	Chapters []types.Chapter
	Warnings []string
}

// Build converts bookmarks sorted ascending by page into the chapter list.
// totalPages is the document page count. Under types.RangeClamp a bookmark
// that does not precede its successor yields a single-page chapter and a
// warning; under types.RangeStrict it is an error.
//
// When every bookmark strictly precedes the next, the resulting ranges
// partition [0, totalPages-1] exactly: no gaps, no overlaps.
func Build(bookmarks []types.Bookmark, totalPages int, policy types.RangePolicy) (BuildResult, error) {
	var res BuildResult

	if totalPages < 1 {
		return res, fmt.Errorf("document has no pages")
	}
	if len(bookmarks) == 0 {
		return res, fmt.Errorf("no bookmarks to derive chapters from")
	}

	res.Chapters = make([]types.Chapter, 0, len(bookmarks))
	for i, bm := range bookmarks {
		number := i + 1

		if bm.Page >= totalPages {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("chapter %d %q: bookmark targets page %d beyond the last page %d, dropped",
					number, bm.Title, bm.Page+1, totalPages))
			continue
		}

		start := bm.Page
		end := totalPages - 1
		if i < len(bookmarks)-1 && bookmarks[i+1].Page-1 < end {
			end = bookmarks[i+1].Page - 1
		}

		if end < start {
			if policy == types.RangeStrict {
				return BuildResult{}, fmt.Errorf(
					"chapter %d %q: bookmark at page %d does not precede the next bookmark at page %d",
					number, bm.Title, start+1, bookmarks[i+1].Page+1)
			}
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("chapter %d %q: bookmark at page %d does not precede the next bookmark, clamped to a single page",
					number, bm.Title, start+1))
			end = start
		}

		res.Chapters = append(res.Chapters, types.Chapter{
			Number:    number,
			Title:     bm.Title,
			StartPage: start,
			EndPage:   end,
		})
	}

	if len(res.Chapters) == 0 {
		return BuildResult{}, fmt.Errorf("all %d bookmarks target pages beyond the document", len(bookmarks))
	}
	return res, nil
}

// Select returns the chapters whose numbers appear in numbers, preserving
// each chapter's original number. numbers must be sorted ascending.
func Select(chapters []types.Chapter, numbers []int) []types.Chapter {
	wanted := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		wanted[n] = true
	}
	selected := make([]types.Chapter, 0, len(numbers))
	for _, c := range chapters {
		if wanted[c.Number] {
			selected = append(selected, c)
		}
	}
	return selected
}

// WriteTable prints the chapter preview table to w, one row per chapter
// with 1-based page numbers for human display.
func WriteTable(w io.Writer, chapters []types.Chapter) {
	for _, c := range chapters {
		title := c.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(w, "  %3d. %-50s (pages %4d-%4d, %4d pages)\n",
			c.Number, title, c.StartPage+1, c.EndPage+1, c.PageCount())
	}
	fmt.Fprintf(w, "\n%d chapters, %d pages\n", len(chapters), totalPageCount(chapters))
}

func totalPageCount(chapters []types.Chapter) int {
	total := 0
	for _, c := range chapters {
		total += c.PageCount()
	}
	return total
}

// FormatWarnings joins derivation warnings into lines suitable for stderr.
func FormatWarnings(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}
	var b strings.Builder
	for _, warning := range warnings {
		b.WriteString("warning: ")
		b.WriteString(warning)
		b.WriteString("\n")
	}
	return b.String()
}
