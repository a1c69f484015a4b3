package mutation_test

import (
	"testing"

	"github.com/cortexbrowser/cortex-browser/internal/locator"
	"github.com/cortexbrowser/cortex-browser/internal/mutation"
)

func TestParseDirtyState_MalformedAssumesDirty(t *testing.T) {
	got := mutation.ParseDirtyState("not json")
	if !got.Dirty {
		t.Fatalf("malformed dirty-state payload must be treated as dirty, got %+v", got)
	}
}

func TestParseDirtyState_WellFormed(t *testing.T) {
	got := mutation.ParseDirtyState(`{"dirty":true,"count":3}`)
	if !got.Dirty || got.Count != 3 {
		t.Fatalf("unexpected decode: %+v", got)
	}
}

func TestParseViewport_MalformedReturnsError(t *testing.T) {
	if _, err := mutation.ParseViewport("{"); err == nil {
		t.Fatal("expected an error for malformed viewport payload")
	}
}

func TestVisibilityProbeScript_BuildsPerRefCheck(t *testing.T) {
	refs := map[uint32]locator.ElementLocator{
		42: {Tag: "button", ID: "go-btn"},
	}
	script := mutation.VisibilityProbeScript(refs)
	if script == "" {
		t.Fatal("expected non-empty script")
	}
}

func TestParseVisibility_RoundTrip(t *testing.T) {
	got, err := mutation.ParseVisibility(`{"42":true,"7":false}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got[42] || got[7] {
		t.Fatalf("unexpected decode: %+v", got)
	}
}
