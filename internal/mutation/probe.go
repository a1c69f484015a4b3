package mutation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cortexbrowser/cortex-browser/internal/locator"
)

// DirtyState is the decoded result of CheckDirtyScript.
type DirtyState struct {
	Dirty bool
	Count int
}

// ParseDirtyState decodes the JSON a page returns from CheckDirtyScript. A
// parse failure is treated as "assume dirty" per §4.4, forcing the caller to
// re-snapshot rather than trust stale state.
func ParseDirtyState(raw string) DirtyState {
	var decoded struct {
		Dirty bool `json:"dirty"`
		Count int  `json:"count"`
	}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return DirtyState{Dirty: true}
	}
	return DirtyState{Dirty: decoded.Dirty, Count: decoded.Count}
}

// Viewport is the decoded result of ViewportProbeScript.
type Viewport struct {
	ScrollY        int
	ViewportHeight int
	DocumentHeight int
}

// ParseViewport decodes the JSON a page returns from ViewportProbeScript. A
// parse failure is returned as an error; the session's snapshot then omits
// the viewport line instead of failing.
func ParseViewport(raw string) (Viewport, error) {
	var decoded struct {
		ScrollY        int `json:"scrollY"`
		ViewportHeight int `json:"viewportHeight"`
		DocumentHeight int `json:"documentHeight"`
	}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return Viewport{}, fmt.Errorf("mutation: decode viewport probe: %w", err)
	}
	return Viewport{
		ScrollY:        decoded.ScrollY,
		ViewportHeight: decoded.ViewportHeight,
		DocumentHeight: decoded.DocumentHeight,
	}, nil
}

// VisibilityProbeScript builds the dynamic visibility-probe script of §4.4:
// given (ref_id, locator) pairs, it returns a JSON object mapping ref_id
// (as a string key) to a bool that is true iff the element's bounding rect
// intersects the viewport vertically.
func VisibilityProbeScript(refs map[uint32]locator.ElementLocator) string {
	var sb strings.Builder
	sb.WriteString("(function(){\nvar out={};\nvar h=window.innerHeight||document.documentElement.clientHeight||0;\n")
	for ref, loc := range refs {
		fmt.Fprintf(&sb, "(function(){\nvar el=%s;\nif(!el){out[%q]=false;return;}\n", loc.Expression(), fmt.Sprintf("%d", ref))
		sb.WriteString("var r=el.getBoundingClientRect();\n")
		fmt.Fprintf(&sb, "out[%q]=(r.bottom>0 && r.top<h);\n})();\n", fmt.Sprintf("%d", ref))
	}
	sb.WriteString("return JSON.stringify(out);\n})()")
	return sb.String()
}

// ParseVisibility decodes the JSON VisibilityProbeScript returns into
// ref_id -> visible. A parse failure is returned as an error; the session
// then leaves every node's visibility unknown. Looking up a ref absent from
// the result yields false.
func ParseVisibility(raw string) (map[uint32]bool, error) {
	var decoded map[string]bool
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("mutation: decode visibility probe: %w", err)
	}
	out := make(map[uint32]bool, len(decoded))
	for k, v := range decoded {
		var ref uint32
		if _, err := fmt.Sscanf(k, "%d", &ref); err != nil {
			continue
		}
		out[ref] = v
	}
	return out, nil
}
