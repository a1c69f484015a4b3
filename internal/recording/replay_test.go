package recording_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/cortexbrowser/cortex-browser/internal/locator"
	"github.com/cortexbrowser/cortex-browser/internal/recording"
	"github.com/cortexbrowser/cortex-browser/internal/session"
)

type fakeActor struct {
	navigated []string
	acted     []string
	failAt    int // action index to fail at, -1 for never
}

func (a *fakeActor) Navigate(ctx context.Context, url string) (string, error) {
	if a.failAt == len(a.navigated)+len(a.acted) {
		return "", fmt.Errorf("boom")
	}
	a.navigated = append(a.navigated, url)
	return "snapshot after navigate", nil
}

func (a *fakeActor) ActWithLocator(ctx context.Context, kind session.ActionKind, loc locator.ElementLocator, value string) (string, error) {
	if a.failAt == len(a.navigated)+len(a.acted) {
		return "", fmt.Errorf("boom")
	}
	a.acted = append(a.acted, value)
	return "snapshot after action", nil
}

func TestReplay_RunsAllActionsInOrder(t *testing.T) {
	r := recording.Recording{
		Actions: []recording.Action{
			{Kind: "navigate", URL: "https://example.com"},
			{Kind: "click", Locator: &locator.ElementLocator{Tag: "button", ID: "go"}},
			{Kind: "type_text", Value: "hello", Locator: &locator.ElementLocator{Tag: "input", Name: "q"}},
		},
	}
	actor := &fakeActor{failAt: -1}
	text, failedAt, err := recording.Replay(context.Background(), actor, r)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if failedAt != -1 {
		t.Fatalf("expected no failure, got failedAt=%d", failedAt)
	}
	if text != "snapshot after action" {
		t.Fatalf("unexpected final snapshot: %q", text)
	}
	if len(actor.navigated) != 1 || len(actor.acted) != 2 {
		t.Fatalf("unexpected call counts: %+v", actor)
	}
}

func TestReplay_StopsAtFirstFailure(t *testing.T) {
	r := recording.Recording{
		Actions: []recording.Action{
			{Kind: "navigate", URL: "https://example.com"},
			{Kind: "click", Locator: &locator.ElementLocator{Tag: "button", ID: "go"}},
			{Kind: "type_text", Value: "hello"},
		},
	}
	actor := &fakeActor{failAt: 1}
	_, failedAt, err := recording.Replay(context.Background(), actor, r)
	if err == nil {
		t.Fatal("expected an error")
	}
	if failedAt != 1 {
		t.Fatalf("expected failure at action 1, got %d", failedAt)
	}
	if len(actor.acted) != 0 {
		t.Fatalf("expected the failing action not to record, got %+v", actor.acted)
	}
}
