// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data model for the chapter splitting
// pipeline: outline nodes as read from the document, flattened bookmarks,
// and the derived chapter ranges.
package types

// OutlineNode is one entry of the document's outline tree. A node is either
// a bookmark with a resolved destination page, a group of nested entries,
// or both (a titled section that also has children).
type OutlineNode struct {
	// Title is the human-readable bookmark label. Not guaranteed unique and
	// may contain characters that are invalid in filenames.
	Title string `json:"title" yaml:"title"`

	// Page is the zero-based page index the entry points to, or -1 when the
	// destination could not be resolved.
	Page int `json:"page" yaml:"page"`

	// Kids holds nested entries, in outline order.
	Kids []OutlineNode `json:"kids,omitempty" yaml:"kids,omitempty"`
}

// Bookmark is a flattened outline entry: a title and the zero-based page it
// targets. Bookmarks are read once at load time and immutable afterward.
type Bookmark struct {
	Title string `json:"title" yaml:"title"`
	Page  int    `json:"page" yaml:"page"`
}

// Chapter is a derived contiguous page span. StartPage and EndPage are
// zero-based and inclusive; Number is the 1-indexed position in bookmark
// order and is never reassigned after filtering.
type Chapter struct {
	Number    int    `json:"number" yaml:"number"`
	Title     string `json:"title" yaml:"title"`
	StartPage int    `json:"start_page" yaml:"start_page"`
	EndPage   int    `json:"end_page" yaml:"end_page"`
}

// PageCount returns the number of pages the chapter spans.
func (c Chapter) PageCount() int {
	return c.EndPage - c.StartPage + 1
}
