package pipeline

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/cortexbrowser/cortex-browser/internal/role"
)

// nodeCtx bundles the html node being converted with data its attribute
// builders need.
type nodeCtx struct {
	html *html.Node
}

// walker carries the state shared across one recursive descent: the label
// pre-scan and the per-snapshot ref assigner.
type walker struct {
	labels labelIndex
	refs   *refAssigner
}

// walkChildren converts n's child list into a merged, post-processed
// SemanticNode sequence (§4.1.4, §4.1.5). path is n's structural path of
// element child indices below <body> (Process starts the walk at body with
// an empty path).
func (w *walker) walkChildren(n *html.Node, path []int) []*SemanticNode {
	var out []*SemanticNode
	idx := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			if shouldPrune(c) {
				idx++
				continue
			}
			childPath := append(append([]int{}, path...), idx)
			out = append(out, w.convert(c, childPath)...)
			idx++
		case html.TextNode:
			t := strings.TrimSpace(c.Data)
			if t != "" {
				out = append(out, &SemanticNode{Role: role.Of(role.StaticText), Name: t})
			}
		}
	}
	return postProcess(out)
}

// convert decides keep-or-collapse for element n and returns the sequence of
// nodes it contributes to its parent's child list: either [n] (kept) or n's
// own converted children (collapsed), per §4.1.4.
func (w *walker) convert(n *html.Node, path []int) []*SemanticNode {
	r := assignRole(n)
	name := accessibleName(n, w.labels)
	children := w.walkChildren(n, path)

	if !isKept(n, r, name, children) {
		return children
	}

	node := &SemanticNode{
		Role:     r,
		Name:     name,
		Children: children,
	}
	ctx := &nodeCtx{html: n}
	node.Attrs = buildAttrs(ctx)
	node.Value = buildValue(ctx)

	if r.Interactive() {
		node.RefID = w.refs.assign(n, name, path)
	}
	return []*SemanticNode{node}
}

// isKept implements the keep predicate of §4.1.4.
func isKept(n *html.Node, r role.Role, name string, children []*SemanticNode) bool {
	switch {
	case r.Interactive():
		return true
	case r.IsLandmark():
		return true
	case r.Kind == role.Heading:
		return true
	case r.Kind == role.List || r.Kind == role.Table:
		return true
	case r.Kind == role.ListItem || r.Kind == role.Row || r.Kind == role.Cell || r.Kind == role.ColumnHeader:
		return true
	case r.Kind == role.Alert || r.Kind == role.Separator:
		return true
	case r.Kind == role.Img && name != "":
		return true
	case r.Kind == role.Paragraph && (name != "" || len(children) > 0):
		return true
	}
	if hasAttr(n, "aria-label") || hasAttr(n, "aria-labelledby") {
		return true
	}
	return false
}
