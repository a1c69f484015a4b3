package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cortexbrowser/cortex-browser/internal/extract"
)

// ExtractInput is the input for the extract tool. Schema is accepted as a
// raw JSON-Schema-shaped object (type/properties/items) per spec.md §4.6's
// minimal dialect.
type ExtractInput struct {
	Schema   map[string]any `json:"schema" jsonschema:"required,Minimal JSON-Schema object: {type, properties?, items?}"`
	Selector string         `json:"selector,omitempty" jsonschema:"Role token or [role=token] selector narrowing which subtree(s) to extract from"`
}

func toSchema(v map[string]any) extract.Schema {
	s := extract.Schema{}
	if t, ok := v["type"].(string); ok {
		s.Type = t
	}
	if props, ok := v["properties"].(map[string]any); ok {
		s.Properties = map[string]extract.Schema{}
		for k, raw := range props {
			if m, ok := raw.(map[string]any); ok {
				s.Properties[k] = toSchema(m)
			}
		}
	}
	if items, ok := v["items"].(map[string]any); ok {
		child := toSchema(items)
		s.Items = &child
	}
	return s
}

func (a *App) registerExtract(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract",
		Description: "Scrape structured data out of the active tab's snapshot according to a minimal JSON-Schema, returned as a JSON string.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in ExtractInput) (*mcp.CallToolResult, any, error) {
		schema := toSchema(in.Schema)
		value, err := a.Session.Extract(ctx, schema, in.Selector)
		if err != nil {
			return textResult(errText(err)), nil, nil
		}
		data, err := json.Marshal(value)
		if err != nil {
			return textResult(errText(err)), nil, nil
		}
		return textResult(string(data)), nil, nil
	})
}
