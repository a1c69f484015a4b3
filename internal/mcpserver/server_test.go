package mcpserver_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cortexbrowser/cortex-browser/internal/browserclient"
	"github.com/cortexbrowser/cortex-browser/internal/mcpserver"
	"github.com/cortexbrowser/cortex-browser/internal/recording"
	"github.com/cortexbrowser/cortex-browser/internal/session"
)

type fakePage struct {
	html string
	url  string
}

func (p *fakePage) Navigate(ctx context.Context, url string) error { p.url = url; return nil }

func (p *fakePage) Evaluate(ctx context.Context, script string) (string, error) {
	switch {
	case strings.Contains(script, "__cortex_dirty = false"):
		return "OK", nil
	case strings.Contains(script, "dirty:"):
		return `{"dirty":false,"count":0}`, nil
	case strings.Contains(script, "scrollY"):
		return `{"scrollY":0,"viewportHeight":600,"documentHeight":600}`, nil
	default:
		return "OK", nil
	}
}

func (p *fakePage) Content(ctx context.Context) (string, error) { return p.html, nil }
func (p *fakePage) URL(ctx context.Context) (string, error)     { return p.url, nil }
func (p *fakePage) Title(ctx context.Context) (string, error)   { return "Test Page", nil }
func (p *fakePage) Screenshot(ctx context.Context, opts browserclient.ScreenshotOptions) ([]byte, error) {
	return []byte("fake-png-bytes"), nil
}
func (p *fakePage) Cookies(ctx context.Context) ([]browserclient.Cookie, error) { return nil, nil }
func (p *fakePage) Close(ctx context.Context) error                            { return nil }

type fakeBrowser struct{ page *fakePage }

func (b *fakeBrowser) Launch(ctx context.Context, opts browserclient.LaunchOptions) error { return nil }
func (b *fakeBrowser) NewPage(ctx context.Context) (browserclient.Page, error)            { return b.page, nil }
func (b *fakeBrowser) Close(ctx context.Context) error                                    { return nil }

type fakeFileIO struct{ files map[string][]byte }

func (f *fakeFileIO) Write(path string, data []byte) error { f.files[path] = data; return nil }
func (f *fakeFileIO) Read(path string) ([]byte, error) {
	data, ok := f.files[path]
	if !ok {
		return nil, context.DeadlineExceeded
	}
	return data, nil
}
func (f *fakeFileIO) List(dir string) ([]string, error) { return nil, nil }
func (f *fakeFileIO) Remove(path string) error           { delete(f.files, path); return nil }

func newTestApp(html string) *mcpserver.App {
	page := &fakePage{html: html}
	browser := &fakeBrowser{page: page}
	sess := session.New(browser, session.Config{
		ActionSettleDelay:   time.Millisecond,
		ScrollSettleDelay:   time.Millisecond,
		WaitPollInterval:    time.Millisecond,
		DefaultWaitDeadline: 20 * time.Millisecond,
	}, zerolog.Nop())
	fileio := &fakeFileIO{files: map[string][]byte{}}
	store := recording.NewStore(fileio, "/base")
	auth := recording.NewAuthStore(fileio, "/base")
	return mcpserver.NewApp(sess, store, auth, zerolog.Nop())
}

func TestNewServer_RegistersEveryTool(t *testing.T) {
	app := newTestApp(`<html><body><button id="b">Go</button></body></html>`)
	server := mcpserver.NewServer(app, "test")
	if server == nil {
		t.Fatal("expected a non-nil server")
	}
}

func TestApp_NavigateThenRecordingRoundTrip(t *testing.T) {
	app := newTestApp(`<html><body><button id="b">Go</button></body></html>`)
	ctx := context.Background()

	text, err := app.Session.Navigate(ctx, "https://example.test/")
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if !strings.Contains(text, "button") {
		t.Fatalf("expected button in snapshot, got %q", text)
	}

	if err := app.Recorder.Start("flow", "example.test", "https://example.test/", ""); err != nil {
		t.Fatalf("start recording: %v", err)
	}
	if err := app.Recorder.Stop(); err != nil {
		t.Fatalf("stop recording: %v", err)
	}

	names, err := app.Recorder.List("example.test")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) != 1 || names[0] != "flow" {
		t.Fatalf("expected [flow], got %v", names)
	}
}
