package extract

import (
	"strings"

	"github.com/cortexbrowser/cortex-browser/internal/pipeline"
)

// selectSubtrees implements node selection (§4.6): selector is either
// absent, "[role=<token>]", or a bare role token, matched against role
// display equality, case-insensitive. An absent selector selects the whole
// forest.
func selectSubtrees(nodes []*pipeline.SemanticNode, selector string) []*pipeline.SemanticNode {
	token := parseSelector(selector)
	if token == "" {
		return nodes
	}
	var out []*pipeline.SemanticNode
	var walk func(n *pipeline.SemanticNode)
	walk = func(n *pipeline.SemanticNode) {
		if strings.EqualFold(n.Role.Display(), token) {
			out = append(out, n)
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return out
}

func parseSelector(selector string) string {
	s := strings.TrimSpace(selector)
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		inner := strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
		if idx := strings.Index(inner, "="); idx >= 0 && strings.TrimSpace(inner[:idx]) == "role" {
			return strings.TrimSpace(inner[idx+1:])
		}
		return ""
	}
	return s
}
