package serialize_test

import (
	"strings"
	"testing"

	"github.com/cortexbrowser/cortex-browser/internal/pipeline"
	"github.com/cortexbrowser/cortex-browser/internal/role"
	"github.com/cortexbrowser/cortex-browser/internal/serialize"
)

func TestToCompactText_HeaderAndTree(t *testing.T) {
	snap := pipeline.PageSnapshot{
		Title: "Example",
		URL:   "https://example.test/",
		Nodes: []*pipeline.SemanticNode{
			{
				Role: role.Of(role.Navigation),
				Name: "Main nav",
				Children: []*pipeline.SemanticNode{
					{Role: role.Of(role.Link), Name: "Home", RefID: 12345,
						Attrs: []pipeline.Attr{{Key: "href", Value: "/"}}},
				},
			},
		},
	}

	out := serialize.ToCompactText(snap)

	if !strings.HasPrefix(out, `page: "Example" [https://example.test/]`+"\n") {
		t.Fatalf("missing page header, got %q", out)
	}
	if !strings.Contains(out, "---\n") {
		t.Fatalf("missing separator, got %q", out)
	}
	if !strings.Contains(out, "navigation:\n") {
		t.Fatalf("container with children should suppress name and use trailing colon, got %q", out)
	}
	if !strings.Contains(out, `link @e12345 "Home" -> /`) {
		t.Fatalf("unexpected link line, got %q", out)
	}
}

func TestToCompactText_RedundantChildKeepsParentName(t *testing.T) {
	snap := pipeline.PageSnapshot{
		Nodes: []*pipeline.SemanticNode{
			{
				Role: role.Of(role.Paragraph),
				Name: "Hello world",
				Children: []*pipeline.SemanticNode{
					{Role: role.Of(role.StaticText), Name: "Hello world"},
				},
			},
		},
	}

	out := serialize.ToCompactText(snap)
	if !strings.Contains(out, `paragraph "Hello world"`+"\n") {
		t.Fatalf("expected redundant child collapsed into parent name, got %q", out)
	}
	if strings.Count(out, "Hello world") != 1 {
		t.Fatalf("expected name to appear exactly once, got %q", out)
	}
}

func TestToCompactText_CheckboxAttrSuffixes(t *testing.T) {
	snap := pipeline.PageSnapshot{
		Nodes: []*pipeline.SemanticNode{
			{Role: role.Of(role.Checkbox), Name: "Subscribe", RefID: 50000,
				Attrs: []pipeline.Attr{{Key: "checked", Value: ""}, {Key: "disabled", Value: ""}}},
		},
	}

	out := serialize.ToCompactText(snap)
	if !strings.Contains(out, `checkbox @e50000 "Subscribe" [checked] [disabled]`) {
		t.Fatalf("unexpected checkbox line, got %q", out)
	}
}

func TestToCompactText_ViewportLine(t *testing.T) {
	snap := pipeline.PageSnapshot{
		Viewport: &pipeline.ViewportInfo{ScrollY: 100, ViewportHeight: 600, DocumentHeight: 3000},
	}
	out := serialize.ToCompactText(snap)
	if !strings.Contains(out, "viewport: 100-700 of 3000px\n") {
		t.Fatalf("unexpected viewport line, got %q", out)
	}
}
