package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// PageDiffInput is the (empty) input for the page_diff tool.
type PageDiffInput struct{}

func (a *App) registerPageDiff(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "page_diff",
		Description: "Diff the active tab's last recorded snapshot against a fresh one and return the rendered change list.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in PageDiffInput) (*mcp.CallToolResult, any, error) {
		text, err := a.Session.PageDiff(ctx)
		if err != nil {
			return textResult(errText(err)), nil, nil
		}
		return textResult(text), nil, nil
	})
}
