package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// OpenTabInput is the input for the open_tab tool.
type OpenTabInput struct {
	URL string `json:"url,omitempty" jsonschema:"URL to load in the newly opened tab; leave empty to open a blank tab"`
}

func (a *App) registerOpenTab(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "open_tab",
		Description: "Open a new tab, make it active, and optionally navigate it to a URL.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in OpenTabInput) (*mcp.CallToolResult, any, error) {
		text, err := a.Session.OpenTab(ctx, in.URL)
		if err != nil {
			return textResult(errText(err)), nil, nil
		}
		return textResult(text), nil, nil
	})
}

// ListTabsInput is the (empty) input for the list_tabs tool.
type ListTabsInput struct{}

func (a *App) registerListTabs(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_tabs",
		Description: "List every open tab with its id, URL, title, and whether it is active.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in ListTabsInput) (*mcp.CallToolResult, any, error) {
		return textResult(a.Session.ListTabs()), nil, nil
	})
}

// SwitchTabInput is the input for the switch_tab tool.
type SwitchTabInput struct {
	TabID int `json:"tab_id" jsonschema:"required,The tab id to make active"`
}

func (a *App) registerSwitchTab(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "switch_tab",
		Description: "Make the given tab id the active tab.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in SwitchTabInput) (*mcp.CallToolResult, any, error) {
		if err := a.Session.SwitchTab(in.TabID); err != nil {
			return textResult(errText(err)), nil, nil
		}
		return textResult("OK"), nil, nil
	})
}

// CloseTabInput is the input for the close_tab tool.
type CloseTabInput struct {
	TabID int `json:"tab_id" jsonschema:"required,The tab id to close"`
}

func (a *App) registerCloseTab(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "close_tab",
		Description: "Close the given tab id. If it was active, the smallest remaining tab id becomes active.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in CloseTabInput) (*mcp.CallToolResult, any, error) {
		if err := a.Session.CloseTab(ctx, in.TabID); err != nil {
			return textResult(errText(err)), nil, nil
		}
		return textResult("OK"), nil, nil
	})
}
