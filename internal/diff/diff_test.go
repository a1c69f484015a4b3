package diff_test

import (
	"strings"
	"testing"

	"github.com/cortexbrowser/cortex-browser/internal/diff"
	"github.com/cortexbrowser/cortex-browser/internal/pipeline"
	"github.com/cortexbrowser/cortex-browser/internal/role"
)

func sampleTree(value string) []*pipeline.SemanticNode {
	v := value
	return []*pipeline.SemanticNode{
		{Role: role.Of(role.TextBox), Name: "Name", RefID: 23456, Value: &v},
	}
}

func TestDiff_SelfIsEmpty(t *testing.T) {
	tree := sampleTree("")
	d := diff.Diff(tree, tree)
	if d.TotalChanges != 0 || len(d.Entries) != 0 {
		t.Fatalf("diff of a snapshot against itself must be empty, got %+v", d)
	}
}

func TestDiff_ValueChanged(t *testing.T) {
	old := sampleTree("")
	new := sampleTree("John")

	d := diff.Diff(old, new)
	if len(d.Entries) != 1 {
		t.Fatalf("expected exactly one entry, got %d: %+v", len(d.Entries), d.Entries)
	}
	e := d.Entries[0]
	if e.Kind != "Modified" {
		t.Fatalf("expected Modified, got %s", e.Kind)
	}
	if len(e.Changes) != 1 || e.Changes[0].Kind != diff.ValueChanged {
		t.Fatalf("expected a single ValueChanged, got %+v", e.Changes)
	}
	if e.Changes[0].Old != "" || e.Changes[0].New != "John" {
		t.Fatalf("unexpected change payload: %+v", e.Changes[0])
	}
}

func TestDiff_AddedAndRemoved(t *testing.T) {
	old := []*pipeline.SemanticNode{
		{Role: role.Of(role.Button), Name: "Cancel", RefID: 11111},
	}
	new := []*pipeline.SemanticNode{
		{Role: role.Of(role.Button), Name: "Submit", RefID: 22222},
	}

	d := diff.Diff(old, new)
	var added, removed int
	for _, e := range d.Entries {
		switch e.Kind {
		case "Added":
			added++
		case "Removed":
			removed++
		}
	}
	if added != 1 || removed != 1 {
		t.Fatalf("expected one Added and one Removed, got added=%d removed=%d (%+v)", added, removed, d.Entries)
	}
}

func TestDiff_TruncationReportsSurplus(t *testing.T) {
	var old, new []*pipeline.SemanticNode
	for i := 0; i < 60; i++ {
		old = append(old, &pipeline.SemanticNode{Role: role.Of(role.Button), Name: "b", RefID: uint32(10000 + i)})
	}
	d := diff.Diff(old, new)
	if len(d.Entries) != diff.MaxEntries {
		t.Fatalf("expected entries bounded to %d, got %d", diff.MaxEntries, len(d.Entries))
	}
	if d.TotalChanges != 60 {
		t.Fatalf("expected total changes preserved as 60, got %d", d.TotalChanges)
	}
	out := diff.FormatDiff(d)
	if !strings.Contains(out, "...and 10 more changes") {
		t.Fatalf("expected surplus trailer, got %q", out)
	}
}
