package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cortexbrowser/cortex-browser/internal/role"
	"github.com/cortexbrowser/cortex-browser/internal/taskctx"
)

// TaskContextInput carries the shared task-context shape across
// set_task_context, focused_snapshot, and clear_task_context (spec.md §6).
type TaskContextInput struct {
	Task            string   `json:"task,omitempty" jsonschema:"Free-text description of what the caller is trying to do"`
	FocusText       []string `json:"focus_text,omitempty" jsonschema:"Substrings to boost when scoring nodes for retention"`
	FocusRoles      []string `json:"focus_roles,omitempty" jsonschema:"Role display names to boost when scoring nodes for retention"`
	InteractiveOnly bool     `json:"interactive_only,omitempty" jsonschema:"Dampen the retention score of everything except interactive elements, landmarks, and headings"`
}

func (in TaskContextInput) toContext() taskctx.Context {
	var roles []role.Role
	for _, r := range in.FocusRoles {
		if kind, ok := role.FromDisplay(r); ok {
			if kind == role.Heading {
				// FromDisplay drops the level; "heading[N]" carries it at r[8].
				roles = append(roles, role.NewHeading(int(r[8]-'0')))
				continue
			}
			roles = append(roles, role.Role{Kind: kind})
		}
	}
	return taskctx.Context{
		FocusText:       in.FocusText,
		FocusRoles:      roles,
		InteractiveOnly: in.InteractiveOnly,
	}
}

func (a *App) registerSetTaskContext(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_task_context",
		Description: "Set a standing task context on the active tab: every future snapshot is scored and pruned against it.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in TaskContextInput) (*mcp.CallToolResult, any, error) {
		if err := a.Session.SetTaskContext(in.toContext()); err != nil {
			return textResult(errText(err)), nil, nil
		}
		return textResult("OK"), nil, nil
	})
}

// ClearTaskContextInput is the (empty) input for clear_task_context.
type ClearTaskContextInput struct{}

func (a *App) registerClearTaskContext(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "clear_task_context",
		Description: "Clear the active tab's standing task context; future snapshots return unfiltered.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in ClearTaskContextInput) (*mcp.CallToolResult, any, error) {
		if err := a.Session.ClearTaskContext(); err != nil {
			return textResult(errText(err)), nil, nil
		}
		return textResult("OK"), nil, nil
	})
}

func (a *App) registerFocusedSnapshot(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "focused_snapshot",
		Description: "Return a one-off snapshot filtered by a task context, without changing the tab's standing task context.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in TaskContextInput) (*mcp.CallToolResult, any, error) {
		text, err := a.Session.FocusedSnapshot(ctx, in.toContext())
		if err != nil {
			return textResult(errText(err)), nil, nil
		}
		return textResult(text), nil, nil
	})
}
