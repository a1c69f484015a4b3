package recording

import (
	"context"
	"fmt"

	"github.com/cortexbrowser/cortex-browser/internal/locator"
	"github.com/cortexbrowser/cortex-browser/internal/session"
)

// Actor is the narrow slice of session.State that Replay drives, kept as
// an interface so tests can substitute a fake (spec.md §4.9: replay walks
// recorded actions through the same action orchestrator used for live
// actions).
type Actor interface {
	Navigate(ctx context.Context, url string) (string, error)
	ActWithLocator(ctx context.Context, kind session.ActionKind, loc locator.ElementLocator, value string) (string, error)
}

// Replay walks r's actions through actor in order, stopping at the first
// failure (spec.md §7: replay is all-or-nothing-up-to-first-failure). It
// returns the last successful snapshot text and the index of the first
// action that failed, or -1 if every action succeeded.
func Replay(ctx context.Context, actor Actor, r Recording) (string, int, error) {
	var last string
	for i, a := range r.Actions {
		var out string
		var err error
		switch a.Kind {
		case "navigate":
			out, err = actor.Navigate(ctx, a.URL)
		case "click":
			out, err = actor.ActWithLocator(ctx, session.ActionClick, locatorOrEmpty(a), "")
		case "type_text":
			out, err = actor.ActWithLocator(ctx, session.ActionTypeText, locatorOrEmpty(a), a.Value)
		case "select_option":
			out, err = actor.ActWithLocator(ctx, session.ActionSelectOption, locatorOrEmpty(a), a.Value)
		default:
			err = fmt.Errorf("recording: unknown action kind %q", a.Kind)
		}
		if err != nil {
			return last, i, err
		}
		last = out
	}
	return last, -1, nil
}

func locatorOrEmpty(a Action) locator.ElementLocator {
	if a.Locator == nil {
		return locator.ElementLocator{}
	}
	return *a.Locator
}
