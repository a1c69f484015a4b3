// Package pipeline implements the HTML-to-semantic-tree pipeline: pruning,
// role assignment, accessible-name computation, wrapper collapse, sibling-run
// summarization, and ref assignment (spec.md §4.1). It replaces the
// teacher's AXNode/ARIA-snapshot walk (cpunion-agent-browser-go/
// aria_processor.go, snapshot.go) with a direct walk over a parsed
// golang.org/x/net/html tree, grounded on the same pack's hand-rolled HTML
// tree walkers (hazyhaar-chrc/extract/css.go, hazyhaar-chrc/docpipe/html.go).
package pipeline

import (
	"github.com/cortexbrowser/cortex-browser/internal/locator"
	"github.com/cortexbrowser/cortex-browser/internal/role"
)

// SemanticNode is the semantic-tree node (spec.md §3).
type SemanticNode struct {
	RefID    uint32
	Role     role.Role
	Name     string
	Value    *string
	Attrs    []Attr
	Children []*SemanticNode
	Offscreen *bool
}

// Attr is an ordered (key, value) attribute pair drawn from the allowed set
// (spec.md §3, §4.1.7).
type Attr struct {
	Key   string
	Value string
}

func (n *SemanticNode) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// ViewportInfo mirrors spec.md §3, all fields in CSS pixels.
type ViewportInfo struct {
	ScrollY        int
	ViewportHeight int
	DocumentHeight int
}

// PageSnapshot is the pipeline's output plus page metadata (spec.md §3).
type PageSnapshot struct {
	Title    string
	URL      string
	Nodes    []*SemanticNode
	Viewport *ViewportInfo
}

// Result bundles a PageSnapshot with the RefIndex that resolves its refs.
type Result struct {
	Snapshot PageSnapshot
	Refs     locator.RefIndex
}
