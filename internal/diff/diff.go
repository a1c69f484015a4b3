// Package diff compares two PageSnapshots and reports what changed between
// them (spec.md §4.7). Flattening by identity-key is grounded on the
// teacher's flattened-tracking idiom for tab/request state
// (cpunion-agent-browser-go/chromedp_backend.go's TrackedRequest slices),
// generalized here to a keyed map so lookups are O(1) rather than scans.
package diff

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cortexbrowser/cortex-browser/internal/pipeline"
)

// MaxEntries bounds the number of Added/Removed/Modified entries emitted in
// one DiffResult (§4.7).
const MaxEntries = 50

// Summary carries the identifying fields of a node for Added/Removed
// entries (§4.7).
type Summary struct {
	Role  string
	RefID uint32
	Name  string
}

// Change is one of NameChanged, ValueChanged, AttrsChanged, VisibilityChanged.
type Change struct {
	Kind string
	Old  string
	New  string
}

const (
	NameChanged       = "NameChanged"
	ValueChanged      = "ValueChanged"
	AttrsChanged      = "AttrsChanged"
	VisibilityChanged = "VisibilityChanged"
)

// Entry is one line of a DiffResult: Kind is one of Added, Removed or
// Modified, and Changes is set only for Modified.
type Entry struct {
	Kind    string // "Added", "Removed", "Modified"
	Summary Summary
	Changes []Change
}

// DiffResult is diff_snapshots' output (§4.7).
type DiffResult struct {
	Entries      []Entry
	TotalChanges int // pre-truncation count, preserved for the formatter
}

type flatNode struct {
	role      string
	refID     uint32
	name      string
	value     *string
	attrs     []pipeline.Attr
	offscreen bool
	depth     int
}

// Diff implements diff_snapshots(old, new) -> DiffResult (§4.7).
func Diff(old, new []*pipeline.SemanticNode) DiffResult {
	oldFlat := flatten(old)
	newFlat := flatten(new)

	var entries []Entry
	keys := make([]string, 0, len(newFlat))
	for k := range newFlat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		n := newFlat[k]
		o, existed := oldFlat[k]
		if !existed {
			entries = append(entries, Entry{Kind: "Added", Summary: summaryOf(n)})
			continue
		}
		if changes := compare(o, n); len(changes) > 0 {
			entries = append(entries, Entry{Kind: "Modified", Summary: summaryOf(n), Changes: changes})
		}
	}

	removedKeys := make([]string, 0)
	for k := range oldFlat {
		if _, ok := newFlat[k]; !ok {
			removedKeys = append(removedKeys, k)
		}
	}
	sort.Strings(removedKeys)
	for _, k := range removedKeys {
		entries = append(entries, Entry{Kind: "Removed", Summary: summaryOf(oldFlat[k])})
	}

	total := len(entries)
	if total > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return DiffResult{Entries: entries, TotalChanges: total}
}

func summaryOf(n flatNode) Summary {
	return Summary{Role: n.role, RefID: n.refID, Name: n.name}
}

func compare(o, n flatNode) []Change {
	var changes []Change
	if o.name != n.name {
		changes = append(changes, Change{Kind: NameChanged, Old: o.name, New: n.name})
	}
	if !valueEqual(o.value, n.value) {
		changes = append(changes, Change{Kind: ValueChanged, Old: derefValue(o.value), New: derefValue(n.value)})
	}
	if !attrsEqual(o.attrs, n.attrs) {
		changes = append(changes, Change{Kind: AttrsChanged})
	}
	if o.offscreen != n.offscreen {
		changes = append(changes, Change{Kind: VisibilityChanged, Old: boolStr(o.offscreen), New: boolStr(n.offscreen)})
	}
	return changes
}

func valueEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func derefValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func attrsEqual(a, b []pipeline.Attr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// flatten implements the pre-order flatten of §4.7: identity-key is
// "ref:<ref_id>" for interactive nodes, else "<role>:<name[:30]>:<depth>".
func flatten(nodes []*pipeline.SemanticNode) map[string]flatNode {
	out := map[string]flatNode{}
	var walk func(n *pipeline.SemanticNode, depth int)
	walk = func(n *pipeline.SemanticNode, depth int) {
		key := identityKey(n, depth)
		offscreen := n.Offscreen != nil && *n.Offscreen
		out[key] = flatNode{
			role:      n.Role.Display(),
			refID:     n.RefID,
			name:      n.Name,
			value:     n.Value,
			attrs:     n.Attrs,
			offscreen: offscreen,
			depth:     depth,
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	for _, n := range nodes {
		walk(n, 0)
	}
	return out
}

func identityKey(n *pipeline.SemanticNode, depth int) string {
	if n.RefID > 0 {
		return fmt.Sprintf("ref:%d", n.RefID)
	}
	name := n.Name
	if len(name) > 30 {
		name = name[:30]
	}
	return fmt.Sprintf("%s:%s:%d", n.Role.Display(), name, depth)
}

// FormatDiff renders a DiffResult as the diff text surface (spec.md §6
// page_diff), one line per entry plus a trailing "...and N more changes"
// line when truncated.
func FormatDiff(d DiffResult) string {
	var sb strings.Builder
	for _, e := range d.Entries {
		sb.WriteString(formatEntry(e))
		sb.WriteString("\n")
	}
	if d.TotalChanges > len(d.Entries) {
		fmt.Fprintf(&sb, "...and %d more changes\n", d.TotalChanges-len(d.Entries))
	}
	return sb.String()
}

func formatEntry(e Entry) string {
	ref := ""
	if e.Summary.RefID > 0 {
		ref = fmt.Sprintf(" @e%d", e.Summary.RefID)
	}
	head := fmt.Sprintf("%s %s%s %q", e.Kind, e.Summary.Role, ref, e.Summary.Name)
	if e.Kind != "Modified" || len(e.Changes) == 0 {
		return head
	}
	parts := make([]string, 0, len(e.Changes))
	for _, c := range e.Changes {
		switch c.Kind {
		case AttrsChanged:
			parts = append(parts, "AttrsChanged")
		default:
			parts = append(parts, fmt.Sprintf("%s{old:%q,new:%q}", c.Kind, c.Old, c.New))
		}
	}
	return head + ": " + strings.Join(parts, ", ")
}
