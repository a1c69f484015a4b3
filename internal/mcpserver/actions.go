package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ClickInput is the input for the click tool.
type ClickInput struct {
	Ref        uint32 `json:"ref" jsonschema:"required,The @eN ref id from the most recent snapshot"`
	ReturnDiff bool   `json:"return_diff,omitempty" jsonschema:"Return a diff of the page against the pre-click snapshot instead of the full snapshot"`
}

func (a *App) registerClick(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "click",
		Description: "Click the element identified by ref, then return the resulting snapshot or a diff of what changed.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in ClickInput) (*mcp.CallToolResult, any, error) {
		loc, _ := a.Session.LocatorForRef(in.Ref)
		text, err := a.Session.Click(ctx, in.Ref, in.ReturnDiff)
		if err != nil {
			return textResult(errText(err)), nil, nil
		}
		a.recordIfActive("click", "", in.Ref, &loc, "")
		return textResult(text), nil, nil
	})
}

// TypeTextInput is the input for the type_text tool.
type TypeTextInput struct {
	Ref        uint32 `json:"ref" jsonschema:"required,The @eN ref id from the most recent snapshot"`
	Text       string `json:"text" jsonschema:"required,Text to type into the element"`
	ReturnDiff bool   `json:"return_diff,omitempty" jsonschema:"Return a diff of the page against the pre-action snapshot instead of the full snapshot"`
}

func (a *App) registerTypeText(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "type_text",
		Description: "Type text into the input or textarea identified by ref, then return the resulting snapshot or a diff.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in TypeTextInput) (*mcp.CallToolResult, any, error) {
		loc, _ := a.Session.LocatorForRef(in.Ref)
		text, err := a.Session.TypeText(ctx, in.Ref, in.Text, in.ReturnDiff)
		if err != nil {
			return textResult(errText(err)), nil, nil
		}
		a.recordIfActive("type_text", "", in.Ref, &loc, in.Text)
		return textResult(text), nil, nil
	})
}

// SelectOptionInput is the input for the select_option tool.
type SelectOptionInput struct {
	Ref        uint32 `json:"ref" jsonschema:"required,The @eN ref id from the most recent snapshot"`
	Value      string `json:"value" jsonschema:"required,The option value to select"`
	ReturnDiff bool   `json:"return_diff,omitempty" jsonschema:"Return a diff of the page against the pre-action snapshot instead of the full snapshot"`
}

func (a *App) registerSelectOption(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "select_option",
		Description: "Select an option by value on the <select> identified by ref, then return the resulting snapshot or a diff.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in SelectOptionInput) (*mcp.CallToolResult, any, error) {
		loc, _ := a.Session.LocatorForRef(in.Ref)
		text, err := a.Session.SelectOption(ctx, in.Ref, in.Value, in.ReturnDiff)
		if err != nil {
			return textResult(errText(err)), nil, nil
		}
		a.recordIfActive("select_option", "", in.Ref, &loc, in.Value)
		return textResult(text), nil, nil
	})
}
