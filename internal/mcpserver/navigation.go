package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NavigateInput is the input for the navigate tool.
type NavigateInput struct {
	URL string `json:"url" jsonschema:"required,URL to load in the active tab"`
}

func (a *App) registerNavigate(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "navigate",
		Description: "Navigate the active tab to a URL and return a compact accessibility snapshot of the resulting page.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in NavigateInput) (*mcp.CallToolResult, any, error) {
		text, err := a.Session.Navigate(ctx, in.URL)
		if err != nil {
			return textResult(errText(err)), nil, nil
		}
		a.recordIfActive("navigate", in.URL, 0, nil, "")
		return textResult(text), nil, nil
	})
}

// SnapshotInput is the (empty) input for the snapshot tool.
type SnapshotInput struct{}

func (a *App) registerSnapshot(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "snapshot",
		Description: "Return the active tab's current compact accessibility snapshot, served from cache when the page has not mutated.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in SnapshotInput) (*mcp.CallToolResult, any, error) {
		text, err := a.Session.Snapshot(ctx)
		if err != nil {
			return textResult(errText(err)), nil, nil
		}
		return textResult(text), nil, nil
	})
}

// WaitForChangesInput is the input for the wait_for_changes tool.
type WaitForChangesInput struct {
	TimeoutMS int `json:"timeout_ms,omitempty" jsonschema:"Milliseconds to wait for a DOM mutation before giving up (default 5000)"`
}

func (a *App) registerWaitForChanges(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "wait_for_changes",
		Description: "Poll the active tab for a DOM mutation and return a fresh snapshot once observed, or the cached snapshot if the timeout elapses first.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in WaitForChangesInput) (*mcp.CallToolResult, any, error) {
		deadline := durationFromMillis(in.TimeoutMS)
		text, err := a.Session.WaitForChanges(ctx, deadline)
		if err != nil {
			return textResult(errText(err)), nil, nil
		}
		return textResult(text), nil, nil
	})
}
