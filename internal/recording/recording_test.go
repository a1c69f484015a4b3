package recording_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cortexbrowser/cortex-browser/internal/locator"
	"github.com/cortexbrowser/cortex-browser/internal/recording"
)

type fakeFileIO struct {
	files map[string][]byte
}

func newFakeFileIO() *fakeFileIO {
	return &fakeFileIO{files: map[string][]byte{}}
}

func (f *fakeFileIO) Write(path string, data []byte) error {
	f.files[path] = data
	return nil
}

func (f *fakeFileIO) Read(path string) ([]byte, error) {
	data, ok := f.files[path]
	if !ok {
		return nil, fmt.Errorf("not found: %s", path)
	}
	return data, nil
}

func (f *fakeFileIO) List(dir string) ([]string, error) {
	var out []string
	for path := range f.files {
		idx := strings.LastIndex(path, "/")
		if idx >= 0 && path[:idx] == dir {
			out = append(out, path[idx+1:])
		}
	}
	return out, nil
}

func (f *fakeFileIO) Remove(path string) error {
	if _, ok := f.files[path]; !ok {
		return fmt.Errorf("not found: %s", path)
	}
	delete(f.files, path)
	return nil
}

func TestDomainSlug(t *testing.T) {
	cases := map[string]string{
		"Example.com":      "example-com",
		"localhost:8080":   "localhost-8080",
		"sub.example.org":  "sub-example-org",
	}
	for in, want := range cases {
		if got := recording.DomainSlug(in); got != want {
			t.Errorf("DomainSlug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"login flow":     "login-flow",
		"checkout/step 1": "checkout-step-1",
		"---":             "recording",
		"":                "recording",
		"valid_Name-1":    "valid_Name-1",
	}
	for in, want := range cases {
		if got := recording.SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStore_StartRecordStopLoadRoundTrip(t *testing.T) {
	io := newFakeFileIO()
	store := recording.NewStore(io, "/base")

	if err := store.Start("login flow", "Example.com", "https://example.com/login", "signs in"); err != nil {
		t.Fatalf("start: %v", err)
	}

	store.Record(recording.Action{Kind: "navigate", URL: "https://example.com/login"})
	store.Record(recording.Action{
		Kind:  "click",
		RefID: 10023,
		Locator: &locator.ElementLocator{
			Tag: "button",
			ID:  "submit",
		},
	})
	store.Record(recording.Action{
		Kind:  "type_text",
		RefID: 10045,
		Value: "hunter2",
		Locator: &locator.ElementLocator{
			Tag:  "input",
			Name: "password",
		},
	})

	if err := store.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}

	names, err := store.List("Example.com")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) != 1 || names[0] != "login-flow" {
		t.Fatalf("expected [login-flow], got %v", names)
	}

	loaded, err := store.Load("Example.com", "login flow")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Name != "login flow" || loaded.Domain != "Example.com" {
		t.Fatalf("unexpected recording: %+v", loaded)
	}
	if len(loaded.Actions) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(loaded.Actions))
	}
	if loaded.Actions[1].Kind != "click" || loaded.Actions[1].RefID != 10023 {
		t.Fatalf("unexpected action 1: %+v", loaded.Actions[1])
	}
	if loaded.Actions[2].Locator == nil || loaded.Actions[2].Locator.Name != "password" {
		t.Fatalf("unexpected action 2 locator: %+v", loaded.Actions[2])
	}

	if err := store.Delete("Example.com", "login flow"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Load("Example.com", "login flow"); err == nil {
		t.Fatal("expected error loading deleted recording")
	}
}

func TestStore_DuplicateStartIsUsageError(t *testing.T) {
	store := recording.NewStore(newFakeFileIO(), "/base")
	if err := store.Start("a", "example.com", "https://example.com", ""); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := store.Start("b", "example.com", "https://example.com", ""); err != recording.ErrDuplicateRecording {
		t.Fatalf("expected ErrDuplicateRecording, got %v", err)
	}
}

func TestStore_StopWithNoActiveRecordingIsUsageError(t *testing.T) {
	store := recording.NewStore(newFakeFileIO(), "/base")
	if err := store.Stop(); err != recording.ErrNoActiveRecording {
		t.Fatalf("expected ErrNoActiveRecording, got %v", err)
	}
}

func TestAuthStore_SaveLoadRoundTrip(t *testing.T) {
	io := newFakeFileIO()
	store := recording.NewAuthStore(io, "/base")

	state := recording.State{
		Cookies: nil,
		Origins: []recording.OriginStorage{
			{Origin: "https://example.com", Local: map[string]string{"token": "abc123"}},
		},
	}
	if err := store.SaveState("Example.com", state); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, ok := store.LoadState("Example.com")
	if !ok {
		t.Fatal("expected state to load")
	}
	if len(loaded.Origins) != 1 || loaded.Origins[0].Local["token"] != "abc123" {
		t.Fatalf("unexpected loaded state: %+v", loaded)
	}
}

func TestAuthStore_LoadMissingReturnsFalse(t *testing.T) {
	store := recording.NewAuthStore(newFakeFileIO(), "/base")
	if _, ok := store.LoadState("nowhere.example"); ok {
		t.Fatal("expected LoadState to report false for a missing profile")
	}
}
