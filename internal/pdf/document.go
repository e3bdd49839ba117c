// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdf wraps pdfcpu behind a small document handle. It is the only
// package that touches the PDF library; the rest of the pipeline works on
// plain values from pkg/types and the extract.PageSource interface.
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/chaptersplit/pkg/types"
)

// Document is a read-only handle on a parsed PDF. The underlying context is
// loaded once and shared across all page extractions within a run.
type Document struct {
	ctx  *model.Context
	path string
}

// Open reads and validates the PDF at path. The whole file is read into
// memory so the handle does not depend on the file staying in place.
// Encrypted documents fail validation and surface as an unsupported input.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("PDF file not found at %s", path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return &Document{ctx: ctx, path: path}, nil
}

// Path returns the source file path the document was opened from.
func (d *Document) Path() string {
	return d.path
}

// PageCount returns the total number of pages.
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// Outline returns the document's bookmark tree with destinations resolved to
// zero-based page indices. Entries whose destination cannot be resolved get
// page -1. pdfcpu reports a missing outline as an error; the returned error
// carries that detail so callers can distinguish "no outline" from a file
// that could not be read at all.
func (d *Document) Outline() ([]types.OutlineNode, error) {
	bms, err := pdfcpu.Bookmarks(d.ctx)
	if err != nil {
		return nil, fmt.Errorf("reading outline of %s: %w", d.path, err)
	}
	return convertBookmarks(bms), nil
}

// convertBookmarks maps pdfcpu's 1-based bookmark tree onto the internal
// zero-based outline model.
func convertBookmarks(bms []pdfcpu.Bookmark) []types.OutlineNode {
	nodes := make([]types.OutlineNode, 0, len(bms))
	for _, bm := range bms {
		node := types.OutlineNode{
			Title: bm.Title,
			Page:  bm.PageFrom - 1,
		}
		if bm.PageFrom < 1 {
			node.Page = -1
		}
		if len(bm.Kids) > 0 {
			node.Kids = convertBookmarks(bm.Kids)
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// ExtractRange copies the inclusive zero-based page range [start, end] into
// a fresh single-chapter document written to w. The source context is not
// mutated.
func (d *Document) ExtractRange(start, end int, w io.Writer) error {
	if start < 0 || end < start || end >= d.ctx.PageCount {
		return fmt.Errorf("page range %d-%d outside document (pages 1-%d)", start+1, end+1, d.ctx.PageCount)
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p+1) // pdfcpu page numbers are 1-based
	}

	chapterCtx, err := pdfcpu.ExtractPages(d.ctx, pages, false)
	if err != nil {
		return fmt.Errorf("extracting pages %d-%d: %w", start+1, end+1, err)
	}

	if err := api.WriteContext(chapterCtx, w); err != nil {
		return fmt.Errorf("writing pages %d-%d: %w", start+1, end+1, err)
	}
	return nil
}
