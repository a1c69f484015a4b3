package taskctx_test

import (
	"testing"

	"github.com/cortexbrowser/cortex-browser/internal/pipeline"
	"github.com/cortexbrowser/cortex-browser/internal/role"
	"github.com/cortexbrowser/cortex-browser/internal/taskctx"
)

func TestApply_InteractiveOnlyDropsPlainText(t *testing.T) {
	nodes := []*pipeline.SemanticNode{
		{Role: role.Of(role.Paragraph), Name: "Some filler copy no one asked for"},
		{Role: role.Of(role.Button), Name: "Checkout", RefID: 12345},
	}

	out := taskctx.Apply(taskctx.Context{InteractiveOnly: true}, nodes)
	if len(out) != 1 || out[0].Name != "Checkout" {
		t.Fatalf("expected only the interactive button retained, got %+v", out)
	}
}

func TestApply_FocusTextRetainsMatchingAncestor(t *testing.T) {
	nodes := []*pipeline.SemanticNode{
		{
			Role: role.Of(role.Navigation),
			Name: "Main nav",
			Children: []*pipeline.SemanticNode{
				{Role: role.Of(role.Link), Name: "Shipping info", RefID: 1},
				{Role: role.Of(role.Link), Name: "Returns", RefID: 2},
			},
		},
	}

	out := taskctx.Apply(taskctx.Context{FocusText: []string{"shipping"}}, nodes)
	if len(out) != 1 {
		t.Fatalf("expected the navigation landmark retained, got %+v", out)
	}
	if len(out[0].Children) != 1 || out[0].Children[0].Name != "Shipping info" {
		t.Fatalf("expected only the matching child retained, got %+v", out[0].Children)
	}
}
