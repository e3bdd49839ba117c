// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package outline flattens a document's hierarchical bookmark tree into the
// ordered top-level bookmark list that drives chapter numbering.
package outline

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pdiddy/chaptersplit/pkg/types"
)

// ErrNoBookmarks reports a document whose outline is absent, empty, or
// contains no entry with a resolvable destination. Callers must be able to
// tell this apart from an unreadable file.
var ErrNoBookmarks = errors.New("document has no usable bookmarks")

// Flatten reduces the outline tree to one bookmark per top-level entry,
// sorted ascending by page. Nested entries never become chapters of their
// own, but they are searched for a destination when a top-level group
// carries none itself. Entries without any resolvable destination are
// dropped. Ties on the same page keep their original outline order.
func Flatten(nodes []types.OutlineNode) ([]types.Bookmark, error) {
	if len(nodes) == 0 {
		return nil, ErrNoBookmarks
	}

	bookmarks := make([]types.Bookmark, 0, len(nodes))
	for _, node := range nodes {
		page, ok := resolvePage(node)
		if !ok {
			continue
		}
		bookmarks = append(bookmarks, types.Bookmark{Title: node.Title, Page: page})
	}

	if len(bookmarks) == 0 {
		return nil, fmt.Errorf("%w: %d outline entries, none with a resolvable destination", ErrNoBookmarks, len(nodes))
	}

	sort.SliceStable(bookmarks, func(i, j int) bool {
		return bookmarks[i].Page < bookmarks[j].Page
	})
	return bookmarks, nil
}

// resolvePage returns the destination page for a node: its own page if
// resolved, otherwise the first resolvable page among its descendants in
// depth-first order.
func resolvePage(node types.OutlineNode) (int, bool) {
	if node.Page >= 0 {
		return node.Page, true
	}
	for _, kid := range node.Kids {
		if page, ok := resolvePage(kid); ok {
			return page, true
		}
	}
	return 0, false
}
