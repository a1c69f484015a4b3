package mcpserver

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ScreenshotInput is the input for the screenshot tool.
type ScreenshotInput struct {
	FullPage bool `json:"full_page,omitempty" jsonschema:"Capture the full scrollable page instead of just the viewport"`
	Annotate bool `json:"annotate,omitempty" jsonschema:"Reserved for future ref-overlay annotation; currently has no effect on the captured image"`
}

func (a *App) registerScreenshot(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "screenshot",
		Description: "Capture a PNG screenshot of the active tab and return it alongside base64/meta text.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in ScreenshotInput) (*mcp.CallToolResult, any, error) {
		png, err := a.Session.Screenshot(ctx, in.FullPage)
		if err != nil {
			return textResult(errText(err)), nil, nil
		}
		b64 := base64.StdEncoding.EncodeToString(png)
		meta := fmt.Sprintf("png, %d bytes, full_page=%v\n%s", len(png), in.FullPage, b64)
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: meta},
				&mcp.ImageContent{Data: b64, MIMEType: "image/png"},
			},
		}, nil, nil
	})
}
