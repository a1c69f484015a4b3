// Package mcpserver wires the session, extraction, diff, and recording
// layers into the MCP tool surface of spec.md §6. Each tool handler is a
// thin adapter: decode typed input, call the session/recording layer,
// render the result as plain text (or text+image for screenshot). The
// one-struct-per-tool, jsonschema-tagged-input pattern is grounded on
// NeboLoop-nebo/internal/mcp/tools/memory.go.
package mcpserver

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cortexbrowser/cortex-browser/internal/locator"
	"github.com/cortexbrowser/cortex-browser/internal/recording"
	"github.com/cortexbrowser/cortex-browser/internal/session"
)

// App bundles the session state with the recording/auth stores so tool
// handlers can capture actions as they run (spec.md §4.9).
type App struct {
	Session   *session.State
	Recorder  *recording.Store
	AuthStore *recording.AuthStore
	Logger    zerolog.Logger
}

// NewApp constructs an App.
func NewApp(sess *session.State, rec *recording.Store, auth *recording.AuthStore, logger zerolog.Logger) *App {
	return &App{Session: sess, Recorder: rec, AuthStore: auth, Logger: logger}
}

// recordIfActive appends a captured action to the recording store. It is
// always safe to call — Store.Record no-ops when nothing is recording.
func (a *App) recordIfActive(kind, url string, refID uint32, loc *locator.ElementLocator, value string) {
	a.Recorder.Record(recording.Action{Kind: kind, URL: url, RefID: refID, Locator: loc, Value: value})
}

// errText renders err as the spec's "ERROR: <cause>" string (spec.md §6
// "Error surface").
func errText(err error) string {
	return fmt.Sprintf("ERROR: %v", err)
}
