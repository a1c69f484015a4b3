package mcpserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds the MCP server with every tool of spec.md §6 registered
// against app.
func NewServer(app *App, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "cortex-browser",
		Version: version,
	}, nil)

	app.registerNavigate(server)
	app.registerSnapshot(server)
	app.registerClick(server)
	app.registerTypeText(server)
	app.registerSelectOption(server)
	app.registerWaitForChanges(server)
	app.registerSetTaskContext(server)
	app.registerClearTaskContext(server)
	app.registerFocusedSnapshot(server)
	app.registerOpenTab(server)
	app.registerListTabs(server)
	app.registerSwitchTab(server)
	app.registerCloseTab(server)
	app.registerScrollDown(server)
	app.registerScrollUp(server)
	app.registerScrollToRef(server)
	app.registerPageDiff(server)
	app.registerExtract(server)
	app.registerScreenshot(server)
	app.registerStartRecording(server)
	app.registerStopRecording(server)
	app.registerReplayRecording(server)
	app.registerListRecordings(server)
	app.registerDeleteRecording(server)

	return server
}
