// Package browserclient defines the narrow collaborator boundary between
// the session/orchestration layer and a real browser: navigate, evaluate,
// fetch content/URL, screenshot, close, plus page lifecycle (spec.md §1,
// §6 "Environment"). The interface shape is grounded on the teacher's
// BrowserBackend (cpunion-agent-browser-go/browser_interface.go), trimmed
// from its ~40 page-action methods down to the handful the session layer
// actually needs — every DOM interaction (click/type/select/hover) is
// expressed as an Evaluate call running a generated script
// (internal/locator, internal/mutation) rather than a dedicated method.
package browserclient

import "context"

// Cookie mirrors the cookie shape the teacher's GetCookies returns
// (cpunion-agent-browser-go/types.go Cookie), narrowed to the fields the
// auth-state store persists.
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Secure   bool    `json:"secure"`
	HTTPOnly bool    `json:"http_only"`
	Expires  float64 `json:"expires"`
}

// ScreenshotOptions mirrors the teacher's screenshot branches
// (cpunion-agent-browser-go/chromedp_backend.go Screenshot): selector,
// full-page, or plain viewport capture.
type ScreenshotOptions struct {
	Selector string
	FullPage bool
}

// Page is one open tab: the narrow per-tab collaborator the session layer
// drives (spec.md §1).
type Page interface {
	Navigate(ctx context.Context, url string) error
	Evaluate(ctx context.Context, script string) (string, error)
	Content(ctx context.Context) (string, error)
	URL(ctx context.Context) (string, error)
	Title(ctx context.Context) (string, error)
	Screenshot(ctx context.Context, opts ScreenshotOptions) ([]byte, error)
	Cookies(ctx context.Context) ([]Cookie, error)
	Close(ctx context.Context) error
}

// LaunchOptions mirrors the teacher's LaunchOptions
// (cpunion-agent-browser-go/chromedp_backend.go), generalized with a
// CDPPort direct-attach mode (spec.md §6 "Environment": attach to a remote
// endpoint, or launch a new headless instance — fixed at session start).
type LaunchOptions struct {
	Headless       bool
	CDPPort        int // >0 attaches to an existing remote-debugging endpoint
	ExecutablePath string
	UserDataDir    string
	ViewportWidth  int
	ViewportHeight int
}

// Browser launches pages and owns their shared lifetime. The command
// launches (or attaches to) the browser once at startup, before the session
// is constructed, and its lifetime equals the session; it is not created
// lazily on first navigate/open_tab.
type Browser interface {
	Launch(ctx context.Context, opts LaunchOptions) error
	NewPage(ctx context.Context) (Page, error)
	Close(ctx context.Context) error
}
