// Package locator implements ElementLocator, the per-ref recipe to relocate
// an element in the live DOM (spec.md §3, §4.3), and the RefIndex mapping
// produced alongside every semantic tree. The resolution precedence and the
// script shapes are grounded on the teacher's selector-building and
// resolveSelector code (cpunion-agent-browser-go/snapshot.go buildSelector,
// chromedp_backend.go resolveSelector), generalized from role+name selectors
// to the richer identity spec.md §3 specifies (id / name+type / href / text).
package locator

import (
	"encoding/json"
)

// ElementLocator is the recipe to find an element in the live DOM from
// stored identity (spec.md §3).
type ElementLocator struct {
	Tag       string
	ID        string
	Name      string
	InputType string
	Href      string
	Text      string
}

// RefIndex maps ref_id -> ElementLocator, unique on ref_id (spec.md §3).
type RefIndex map[uint32]ElementLocator

// Clone returns an independent copy; RefIndex is replaced wholesale on every
// re-snapshot so callers must not mutate a shared instance across snapshots.
func (idx RefIndex) Clone() RefIndex {
	out := make(RefIndex, len(idx))
	for k, v := range idx {
		out[k] = v
	}
	return out
}

// jsString renders s as a safe JS string literal. Escaping textual literals
// that reach emitted JS (backslash, quotes, newline per spec.md §4.3) is
// exactly what JSON string encoding already guarantees.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// Expression renders the JS expression that evaluates to the element or
// null, following the resolution precedence of spec.md §3:
// id > (tag,name[,type]) > (tag,href) > tag scanned for exact trimmed text.
func (l ElementLocator) Expression() string {
	switch {
	case l.ID != "":
		return "document.getElementById(" + jsString(l.ID) + ")"
	case l.Name != "":
		expr := "document.querySelector(" + jsString(l.Tag) + " + '[name=\"' + CSS.escape(" + jsString(l.Name) + ") + '\"]'"
		if l.InputType != "" {
			expr += " + '[type=\"' + CSS.escape(" + jsString(l.InputType) + ") + '\"]'"
		}
		expr += ")"
		return expr
	case l.Href != "":
		return "document.querySelector(" + jsString(l.Tag) + " + '[href=\"' + CSS.escape(" + jsString(l.Href) + ") + '\"]')"
	default:
		return "(function(){" +
			"var els=document.getElementsByTagName(" + jsString(l.Tag) + ");" +
			"for (var i=0;i<els.length;i++){" +
			"if ((els[i].textContent||'').trim()===" + jsString(l.Text) + ") return els[i];" +
			"} return null;})()"
	}
}
