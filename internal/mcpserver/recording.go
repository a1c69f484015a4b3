package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cortexbrowser/cortex-browser/internal/recording"
)

// StartRecordingInput is the input for the start recording tool.
type StartRecordingInput struct {
	Name        string `json:"name" jsonschema:"required,Name under which the recording will be saved"`
	Domain      string `json:"domain" jsonschema:"required,Domain/host the recording belongs to; partitions where it is saved"`
	Description string `json:"description,omitempty" jsonschema:"Free-text description of what the recording does"`
}

func (a *App) registerStartRecording(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "start_recording",
		Description: "Begin capturing every subsequent navigate/click/type_text/select_option as a named recording.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in StartRecordingInput) (*mcp.CallToolResult, any, error) {
		if err := a.Recorder.Start(in.Name, in.Domain, a.Session.ActiveURL(), in.Description); err != nil {
			return textResult(errText(err)), nil, nil
		}
		return textResult("OK"), nil, nil
	})
}

// StopRecordingInput is the (empty) input for the stop recording tool.
type StopRecordingInput struct{}

func (a *App) registerStopRecording(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "stop_recording",
		Description: "Stop the in-progress recording and persist it to disk.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in StopRecordingInput) (*mcp.CallToolResult, any, error) {
		if err := a.Recorder.Stop(); err != nil {
			return textResult(errText(err)), nil, nil
		}
		return textResult("OK"), nil, nil
	})
}

// ReplayRecordingInput is the input for the replay recording tool.
type ReplayRecordingInput struct {
	Name   string `json:"name" jsonschema:"required,Name of a previously saved recording"`
	Domain string `json:"domain" jsonschema:"required,Domain the recording was saved under"`
}

func (a *App) registerReplayRecording(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "replay_recording",
		Description: "Load a saved recording and replay its actions in order against the active tab, stopping at the first failure.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in ReplayRecordingInput) (*mcp.CallToolResult, any, error) {
		rec, err := a.Recorder.Load(in.Domain, in.Name)
		if err != nil {
			return textResult(errText(err)), nil, nil
		}
		text, failedAt, err := recording.Replay(ctx, a.Session, rec)
		if err != nil {
			return textResult(errText(fmt.Errorf("replay stopped at action %d: %w", failedAt, err))), nil, nil
		}
		return textResult(text), nil, nil
	})
}

// ListRecordingsInput is the input for the list recordings tool.
type ListRecordingsInput struct {
	Domain string `json:"domain" jsonschema:"required,Domain to list saved recordings for"`
}

func (a *App) registerListRecordings(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_recordings",
		Description: "List the names of recordings saved for a domain.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in ListRecordingsInput) (*mcp.CallToolResult, any, error) {
		names, err := a.Recorder.List(in.Domain)
		if err != nil {
			return textResult(errText(err)), nil, nil
		}
		out := ""
		for _, n := range names {
			out += n + "\n"
		}
		return textResult(out), nil, nil
	})
}

// DeleteRecordingInput is the input for the delete recording tool.
type DeleteRecordingInput struct {
	Name   string `json:"name" jsonschema:"required,Name of the recording to delete"`
	Domain string `json:"domain" jsonschema:"required,Domain the recording was saved under"`
}

func (a *App) registerDeleteRecording(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_recording",
		Description: "Delete a saved recording.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in DeleteRecordingInput) (*mcp.CallToolResult, any, error) {
		if err := a.Recorder.Delete(in.Domain, in.Name); err != nil {
			return textResult(errText(err)), nil, nil
		}
		return textResult("OK"), nil, nil
	})
}
