package session_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cortexbrowser/cortex-browser/internal/browserclient"
	"github.com/cortexbrowser/cortex-browser/internal/session"
)

type fakePage struct {
	html        string
	url         string
	pipelineRun int
	evalResults map[string]string
}

func (p *fakePage) Navigate(ctx context.Context, url string) error {
	p.url = url
	return nil
}

func (p *fakePage) Evaluate(ctx context.Context, script string) (string, error) {
	if strings.Contains(script, "__cortex_dirty = false") {
		return "OK", nil
	}
	if strings.Contains(script, "dirty:") {
		if r, ok := p.evalResults["dirty"]; ok {
			return r, nil
		}
		return `{"dirty":false,"count":0}`, nil
	}
	if strings.Contains(script, "scrollY") {
		return `{"scrollY":0,"viewportHeight":600,"documentHeight":600}`, nil
	}
	if r, ok := p.evalResults[script]; ok {
		return r, nil
	}
	return "OK", nil
}

func (p *fakePage) Content(ctx context.Context) (string, error) {
	p.pipelineRun++
	return p.html, nil
}

func (p *fakePage) URL(ctx context.Context) (string, error) { return p.url, nil }
func (p *fakePage) Title(ctx context.Context) (string, error) { return "Test Page", nil }
func (p *fakePage) Screenshot(ctx context.Context, opts browserclient.ScreenshotOptions) ([]byte, error) {
	return nil, nil
}
func (p *fakePage) Cookies(ctx context.Context) ([]browserclient.Cookie, error) { return nil, nil }
func (p *fakePage) Close(ctx context.Context) error                            { return nil }

type fakeBrowser struct {
	page *fakePage
}

func (b *fakeBrowser) Launch(ctx context.Context, opts browserclient.LaunchOptions) error { return nil }
func (b *fakeBrowser) NewPage(ctx context.Context) (browserclient.Page, error)            { return b.page, nil }
func (b *fakeBrowser) Close(ctx context.Context) error                                    { return nil }

func newTestSession(html string) (*session.State, *fakePage) {
	page := &fakePage{html: html, evalResults: map[string]string{}}
	browser := &fakeBrowser{page: page}
	s := session.New(browser, session.Config{
		ActionSettleDelay:   time.Millisecond,
		ScrollSettleDelay:   time.Millisecond,
		WaitPollInterval:    time.Millisecond,
		DefaultWaitDeadline: 20 * time.Millisecond,
	}, zerolog.Nop())
	return s, page
}

func TestSession_NavigateThenSnapshotUsesCacheWhenNotDirty(t *testing.T) {
	s, page := newTestSession(`<html><body><button id="b">Go</button></body></html>`)
	ctx := context.Background()

	out1, err := s.Navigate(ctx, "https://example.test/")
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if !strings.Contains(out1, "button") {
		t.Fatalf("expected button in snapshot, got %q", out1)
	}

	runsBefore := page.pipelineRun
	out2, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if out2 != out1 {
		t.Fatalf("expected cached snapshot to match, got different text")
	}
	if page.pipelineRun != runsBefore {
		t.Fatalf("expected cached snapshot to skip re-fetching content")
	}
}

func TestSession_ClickUnknownRefIsUsageError(t *testing.T) {
	s, _ := newTestSession(`<html><body><button id="b">Go</button></body></html>`)
	ctx := context.Background()
	if _, err := s.Navigate(ctx, "https://example.test/"); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if _, err := s.Click(ctx, 99999, false); err == nil {
		t.Fatal("expected an error for an unknown ref")
	}
}

func TestSession_OpenListSwitchCloseTab(t *testing.T) {
	s, _ := newTestSession(`<html><body><p>hi</p></body></html>`)
	ctx := context.Background()
	if _, err := s.Navigate(ctx, "https://example.test/"); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if _, err := s.OpenTab(ctx, ""); err != nil {
		t.Fatalf("open tab: %v", err)
	}
	listing := s.ListTabs()
	if !strings.Contains(listing, "0 ") || !strings.Contains(listing, "1 ") {
		t.Fatalf("expected both tabs listed, got %q", listing)
	}
	if err := s.SwitchTab(0); err != nil {
		t.Fatalf("switch tab: %v", err)
	}
	if err := s.CloseTab(ctx, 1); err != nil {
		t.Fatalf("close tab: %v", err)
	}
}
