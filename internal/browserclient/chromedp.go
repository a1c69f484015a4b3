package browserclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// ChromeBrowser is the chromedp-backed Browser, adapted from the teacher's
// ChromeDPBackend (cpunion-agent-browser-go/chromedp_backend.go) down to the
// lifecycle half of that type: launching (or attaching to) a browser and
// minting pages. Every per-page DOM operation the teacher exposed as its own
// method (Click, Fill, Hover, ...) is instead reached through Page.Evaluate
// with a generated script, per this package's narrowed Client boundary.
type ChromeBrowser struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	browserCtx  context.Context
	cancel      context.CancelFunc
}

// NewChromeBrowser constructs an unlaunched ChromeBrowser.
func NewChromeBrowser() *ChromeBrowser {
	return &ChromeBrowser{}
}

// Launch starts a new headless/headed Chrome instance, or attaches to an
// existing remote-debugging endpoint when opts.CDPPort is set (spec.md §6
// "Environment"). Mirrors the teacher's flag set, including its
// anti-automation-detection flags (cpunion-agent-browser-go/
// chromedp_backend.go Launch).
func (b *ChromeBrowser) Launch(ctx context.Context, opts LaunchOptions) error {
	if opts.CDPPort > 0 {
		remoteCtx, cancel := chromedp.NewRemoteAllocator(ctx,
			fmt.Sprintf("ws://127.0.0.1:%d", opts.CDPPort))
		b.allocCtx, b.allocCancel = remoteCtx, cancel
	} else {
		width, height := opts.ViewportWidth, opts.ViewportHeight
		if width == 0 {
			width = 1280
		}
		if height == 0 {
			height = 720
		}
		chromedpOpts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("disable-blink-features", "AutomationControlled"),
			chromedp.Flag("disable-infobars", true),
			chromedp.Flag("excludeSwitches", "enable-automation"),
			chromedp.WindowSize(width, height),
		)
		if opts.Headless {
			chromedpOpts = append(chromedpOpts, chromedp.Headless)
		}
		if opts.ExecutablePath != "" {
			chromedpOpts = append(chromedpOpts, chromedp.ExecPath(opts.ExecutablePath))
		}
		if opts.UserDataDir != "" {
			chromedpOpts = append(chromedpOpts, chromedp.UserDataDir(opts.UserDataDir))
		}
		b.allocCtx, b.allocCancel = chromedp.NewExecAllocator(ctx, chromedpOpts...)
	}

	b.browserCtx, b.cancel = chromedp.NewContext(b.allocCtx)
	if err := chromedp.Run(b.browserCtx); err != nil {
		b.Close(ctx)
		return fmt.Errorf("browserclient: launch chrome: %w", err)
	}
	return nil
}

// NewPage opens a new tab sharing the browser context's allocator
// (cpunion-agent-browser-go/chromedp_backend.go NewTab).
func (b *ChromeBrowser) NewPage(ctx context.Context) (Page, error) {
	if b.browserCtx == nil {
		return nil, fmt.Errorf("browserclient: browser not launched")
	}
	pageCtx, cancel := chromedp.NewContext(b.browserCtx)
	if err := chromedp.Run(pageCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("browserclient: open page: %w", err)
	}
	return &ChromePage{ctx: pageCtx, cancel: cancel}, nil
}

// Close tears down the browser and its allocator.
func (b *ChromeBrowser) Close(ctx context.Context) error {
	if b.cancel != nil {
		b.cancel()
	}
	if b.allocCancel != nil {
		b.allocCancel()
	}
	return nil
}

// ChromePage is one tab. All DOM interaction beyond the handful of methods
// below is driven by Evaluate running generated scripts
// (internal/locator, internal/mutation).
type ChromePage struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// derive composes the page's chromedp context with an external context's
// cancellation, so callers get real timeout/cancel propagation without
// chromedp losing the context values it stores its target/browser
// association in (a plain context.WithTimeout(ctx, ...) over the caller's
// ctx would drop those).
func (p *ChromePage) derive(ctx context.Context) (context.Context, context.CancelFunc) {
	derived, cancel := context.WithCancel(p.ctx)
	if ctx != nil {
		stop := make(chan struct{})
		go func() {
			select {
			case <-ctx.Done():
				cancel()
			case <-stop:
			}
		}()
		return derived, func() {
			close(stop)
			cancel()
		}
	}
	return derived, cancel
}

func (p *ChromePage) Navigate(ctx context.Context, url string) error {
	runCtx, cancel := p.derive(ctx)
	defer cancel()
	return chromedp.Run(runCtx, chromedp.Navigate(url), chromedp.WaitReady("body"))
}

func (p *ChromePage) Evaluate(ctx context.Context, script string) (string, error) {
	runCtx, cancel := p.derive(ctx)
	defer cancel()

	var raw json.RawMessage
	if err := chromedp.Run(runCtx, chromedp.Evaluate(script, &raw)); err != nil {
		return "", fmt.Errorf("browserclient: evaluate: %w", err)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	return string(raw), nil
}

func (p *ChromePage) Content(ctx context.Context) (string, error) {
	runCtx, cancel := p.derive(ctx)
	defer cancel()

	var html string
	if err := chromedp.Run(runCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("browserclient: content: %w", err)
	}
	return html, nil
}

func (p *ChromePage) URL(ctx context.Context) (string, error) {
	runCtx, cancel := p.derive(ctx)
	defer cancel()

	var url string
	if err := chromedp.Run(runCtx, chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("browserclient: url: %w", err)
	}
	return url, nil
}

func (p *ChromePage) Title(ctx context.Context) (string, error) {
	runCtx, cancel := p.derive(ctx)
	defer cancel()

	var title string
	if err := chromedp.Run(runCtx, chromedp.Title(&title)); err != nil {
		return "", fmt.Errorf("browserclient: title: %w", err)
	}
	return title, nil
}

func (p *ChromePage) Screenshot(ctx context.Context, opts ScreenshotOptions) ([]byte, error) {
	runCtx, cancel := p.derive(ctx)
	defer cancel()

	var buf []byte
	var err error
	switch {
	case opts.Selector != "":
		err = chromedp.Run(runCtx, chromedp.Screenshot(opts.Selector, &buf, chromedp.ByQuery))
	case opts.FullPage:
		err = chromedp.Run(runCtx, chromedp.FullScreenshot(&buf, 90))
	default:
		err = chromedp.Run(runCtx, chromedp.CaptureScreenshot(&buf))
	}
	if err != nil {
		return nil, fmt.Errorf("browserclient: screenshot: %w", err)
	}
	return buf, nil
}

func (p *ChromePage) Cookies(ctx context.Context) ([]Cookie, error) {
	runCtx, cancel := p.derive(ctx)
	defer cancel()

	var cookies []*network.Cookie
	if err := chromedp.Run(runCtx, chromedp.ActionFunc(func(c context.Context) error {
		var err error
		cookies, err = network.GetCookies().Do(c)
		return err
	})); err != nil {
		return nil, fmt.Errorf("browserclient: cookies: %w", err)
	}

	out := make([]Cookie, 0, len(cookies))
	for _, c := range cookies {
		out = append(out, Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
			Expires:  c.Expires,
		})
	}
	return out, nil
}

func (p *ChromePage) Close(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	return nil
}
