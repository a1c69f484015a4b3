package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ScrollDownInput is the (empty) input for the scroll_down tool.
type ScrollDownInput struct{}

func (a *App) registerScrollDown(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "scroll_down",
		Description: "Scroll the active tab's viewport down one page and return a fresh snapshot.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in ScrollDownInput) (*mcp.CallToolResult, any, error) {
		text, err := a.Session.ScrollDown(ctx)
		if err != nil {
			return textResult(errText(err)), nil, nil
		}
		return textResult(text), nil, nil
	})
}

// ScrollUpInput is the (empty) input for the scroll_up tool.
type ScrollUpInput struct{}

func (a *App) registerScrollUp(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "scroll_up",
		Description: "Scroll the active tab's viewport up one page and return a fresh snapshot.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in ScrollUpInput) (*mcp.CallToolResult, any, error) {
		text, err := a.Session.ScrollUp(ctx)
		if err != nil {
			return textResult(errText(err)), nil, nil
		}
		return textResult(text), nil, nil
	})
}

// ScrollToRefInput is the input for the scroll_to_ref tool.
type ScrollToRefInput struct {
	Ref uint32 `json:"ref" jsonschema:"required,The @eN ref id to scroll into view"`
}

func (a *App) registerScrollToRef(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "scroll_to_ref",
		Description: "Scroll the element identified by ref into view and return a fresh snapshot.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in ScrollToRefInput) (*mcp.CallToolResult, any, error) {
		text, err := a.Session.ScrollToRef(ctx, in.Ref)
		if err != nil {
			return textResult(errText(err)), nil, nil
		}
		return textResult(text), nil, nil
	})
}
