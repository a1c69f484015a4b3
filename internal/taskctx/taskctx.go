// Package taskctx implements the task-context filter (spec.md §4.8): a lens
// that scores and prunes a semantic tree by caller-supplied focus criteria,
// so an agent working a narrow task sees a shorter snapshot. Scoring mirrors
// the teacher's relevance-weighting idiom for toolbox selection
// (GangsterSamed-agent/internal/agent/orchestrator.go ranks candidate tools
// by a small additive score before acting); here the same additive-score,
// threshold-retain shape scores tree nodes instead of tools.
package taskctx

import (
	"strings"

	"github.com/cortexbrowser/cortex-browser/internal/pipeline"
	"github.com/cortexbrowser/cortex-browser/internal/role"
)

// Context is the caller-supplied focus criteria (§4.8).
type Context struct {
	FocusText       []string
	FocusRoles      []role.Role
	InteractiveOnly bool
}

const (
	interactiveOnlyThreshold = 0.3
	defaultThreshold         = 0.2
)

// Apply filters nodes per §4.8, keeping retained nodes with their
// (recursively filtered) children.
func Apply(ctx Context, nodes []*pipeline.SemanticNode) []*pipeline.SemanticNode {
	threshold := defaultThreshold
	if ctx.InteractiveOnly {
		threshold = interactiveOnlyThreshold
	}

	var out []*pipeline.SemanticNode
	for _, n := range nodes {
		if filtered, ok := apply(ctx, n, threshold); ok {
			out = append(out, filtered)
		}
	}
	return out
}

func apply(ctx Context, n *pipeline.SemanticNode, threshold float64) (*pipeline.SemanticNode, bool) {
	var filteredChildren []*pipeline.SemanticNode
	childRetained := false
	for _, c := range n.Children {
		if fc, ok := apply(ctx, c, threshold); ok {
			filteredChildren = append(filteredChildren, fc)
			childRetained = true
		}
	}

	s := score(ctx, n)
	if s < threshold && !childRetained {
		return nil, false
	}

	clone := *n
	clone.Children = filteredChildren
	return &clone, true
}

func score(ctx Context, n *pipeline.SemanticNode) float64 {
	var s float64
	if n.Role.Interactive() {
		s += 0.5
	}
	if n.Role.IsLandmark() {
		s += 0.3
	}
	if n.Role.Kind == role.Heading {
		s += 0.4
	}
	lowerName := strings.ToLower(n.Name)
	for _, ft := range ctx.FocusText {
		if ft == "" {
			continue
		}
		if strings.Contains(lowerName, strings.ToLower(ft)) {
			s += 1.0
		}
	}
	for _, fr := range ctx.FocusRoles {
		if fr == n.Role {
			s += 1.0
		}
	}
	if ctx.InteractiveOnly && !n.Role.Interactive() && !n.Role.IsLandmark() && n.Role.Kind != role.Heading {
		s *= 0.1
	}
	return s
}
