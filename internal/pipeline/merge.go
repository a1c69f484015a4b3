package pipeline

import (
	"strconv"

	"github.com/cortexbrowser/cortex-browser/internal/role"
)

// postProcess implements §4.1.5 on a single merged child list: adjacent
// StaticText fusion, then repeated-sibling-run summarization.
func postProcess(children []*SemanticNode) []*SemanticNode {
	children = mergeAdjacentStaticText(children)
	children = summarizeRepeatedRuns(children)
	return children
}

func mergeAdjacentStaticText(children []*SemanticNode) []*SemanticNode {
	out := make([]*SemanticNode, 0, len(children))
	for _, c := range children {
		if c.Role.Kind == role.StaticText && len(out) > 0 {
			prev := out[len(out)-1]
			if prev.Role.Kind == role.StaticText {
				prev.Name = prev.Name + " " + c.Name
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// summarizeRepeatedRuns collapses maximal runs of >5 mergeable-role siblings
// down to 5 plus a trailing "...+N more <role>" StaticText node (§4.1.5).
func summarizeRepeatedRuns(children []*SemanticNode) []*SemanticNode {
	if len(children) <= 5 {
		return children
	}
	out := make([]*SemanticNode, 0, len(children))
	i := 0
	for i < len(children) {
		c := children[i]
		if !c.Role.Mergeable() {
			out = append(out, c)
			i++
			continue
		}
		j := i + 1
		for j < len(children) && sameMergeableRole(children[j], c) {
			j++
		}
		run := children[i:j]
		if len(run) <= 5 {
			out = append(out, run...)
		} else {
			out = append(out, run[:5]...)
			surplus := len(run) - 5
			out = append(out, &SemanticNode{
				Role: role.Of(role.StaticText),
				Name: "...+" + strconv.Itoa(surplus) + " more " + c.Role.Display(),
			})
		}
		i = j
	}
	return out
}

func sameMergeableRole(a, b *SemanticNode) bool {
	return a.Role.Kind == b.Role.Kind && a.Role.Mergeable()
}
