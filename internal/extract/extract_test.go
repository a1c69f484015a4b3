package extract_test

import (
	"testing"

	"github.com/cortexbrowser/cortex-browser/internal/extract"
	"github.com/cortexbrowser/cortex-browser/internal/pipeline"
	"github.com/cortexbrowser/cortex-browser/internal/role"
)

func cell(name string) *pipeline.SemanticNode {
	return &pipeline.SemanticNode{Role: role.Of(role.Cell), Name: name}
}

func header(name string) *pipeline.SemanticNode {
	return &pipeline.SemanticNode{Role: role.Of(role.ColumnHeader), Name: name}
}

func TestExtract_TableScenario(t *testing.T) {
	table := &pipeline.SemanticNode{
		Role: role.Of(role.Table),
		Children: []*pipeline.SemanticNode{
			{Role: role.Of(role.Row), Children: []*pipeline.SemanticNode{header("Name"), header("Price")}},
			{Role: role.Of(role.Row), Children: []*pipeline.SemanticNode{cell("Widget"), cell("$9.99")}},
			{Role: role.Of(role.Row), Children: []*pipeline.SemanticNode{cell("Gadget"), cell("$19.50")}},
		},
	}

	schema := extract.Schema{
		Type: "array",
		Items: &extract.Schema{
			Type: "object",
			Properties: map[string]extract.Schema{
				"name":  {Type: "string"},
				"price": {Type: "number"},
			},
		},
	}

	got := extract.Extract([]*pipeline.SemanticNode{table}, schema, "")
	rows, ok := got.([]any)
	if !ok || len(rows) != 2 {
		t.Fatalf("expected 2 extracted rows, got %#v", got)
	}
	row0 := rows[0].(map[string]any)
	if row0["name"] != "Widget" {
		t.Fatalf("expected name Widget, got %#v", row0)
	}
	if row0["price"] != 9.99 {
		t.Fatalf("expected price 9.99, got %#v", row0["price"])
	}
	row1 := rows[1].(map[string]any)
	if row1["price"] != 19.5 {
		t.Fatalf("expected price 19.5, got %#v", row1["price"])
	}
}

func TestExtract_EmptyArrayWhenNoTableOrList(t *testing.T) {
	schema := extract.Schema{Type: "array", Items: &extract.Schema{Type: "object"}}
	got := extract.Extract(nil, schema, "")
	rows, ok := got.([]any)
	if !ok || len(rows) != 0 {
		t.Fatalf("expected empty array, got %#v", got)
	}
}

func TestExtract_BooleanCoercion(t *testing.T) {
	node := &pipeline.SemanticNode{Role: role.Of(role.StaticText), Name: "checked"}
	schema := extract.Schema{Type: "boolean"}
	got := extract.Extract([]*pipeline.SemanticNode{node}, schema, "")
	if got != true {
		t.Fatalf("expected boolean true, got %#v", got)
	}
}
