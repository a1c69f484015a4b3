package pipeline_test

import (
	"testing"

	"github.com/cortexbrowser/cortex-browser/internal/pipeline"
	"github.com/cortexbrowser/cortex-browser/internal/role"
)

const samplePage = `<html><head><title>Sample</title></head><body>
<nav aria-label="Main"><a href="/home" id="home-link">Home</a></nav>
<main>
<h1>Welcome</h1>
<p>Hello <b>there</b></p>
<input type="hidden" name="csrf" value="abc">
<button id="go-btn">Go</button>
</main>
</body></html>`

func TestProcess_Determinism(t *testing.T) {
	r1 := pipeline.Process(samplePage, "https://example.test/")
	r2 := pipeline.Process(samplePage, "https://example.test/")

	if len(r1.Refs) != len(r2.Refs) {
		t.Fatalf("ref count differs across runs: %d vs %d", len(r1.Refs), len(r2.Refs))
	}
	for ref, loc := range r1.Refs {
		other, ok := r2.Refs[ref]
		if !ok || other != loc {
			t.Fatalf("ref %d not reproduced identically: %v vs %v", ref, loc, other)
		}
	}
}

func TestProcess_HiddenInputPruned(t *testing.T) {
	res := pipeline.Process(samplePage, "https://example.test/")
	for ref, loc := range res.Refs {
		if loc.Tag == "input" {
			t.Fatalf("hidden input should not receive a ref, got ref %d", ref)
		}
	}
}

func TestProcess_StrongIdentityStableUnderUnrelatedMutation(t *testing.T) {
	withExtra := `<html><body>
<nav aria-label="Main"><a href="/home" id="home-link">Home</a></nav>
<p>An extra unrelated paragraph inserted before the button.</p>
<button id="go-btn">Go</button>
</body></html>`

	r1 := pipeline.Process(samplePage, "https://example.test/")
	r2 := pipeline.Process(withExtra, "https://example.test/")

	ref1 := findRefByID(r1, "home-link")
	ref2 := findRefByID(r2, "home-link")
	if ref1 == 0 || ref2 == 0 {
		t.Fatalf("expected home-link to receive a ref in both snapshots")
	}
	if ref1 != ref2 {
		t.Fatalf("id-identified element's ref should be stable across unrelated mutation: %d vs %d", ref1, ref2)
	}
}

func TestProcess_WrapperCollapse(t *testing.T) {
	html := `<html><body><div><div><button id="b1">Click</button></div></div></body></html>`
	res := pipeline.Process(html, "https://example.test/")
	if len(res.Snapshot.Nodes) != 1 {
		t.Fatalf("expected wrapper divs to collapse to a single button node, got %d nodes", len(res.Snapshot.Nodes))
	}
	if res.Snapshot.Nodes[0].Role.Kind != role.Button {
		t.Fatalf("expected collapsed node to be the button, got %v", res.Snapshot.Nodes[0].Role)
	}
}

func findRefByID(r pipeline.Result, id string) uint32 {
	for ref, loc := range r.Refs {
		if loc.ID == id {
			return ref
		}
	}
	return 0
}
