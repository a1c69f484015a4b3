package session

import (
	"context"
	"fmt"

	"github.com/cortexbrowser/cortex-browser/internal/browserclient"
	"github.com/cortexbrowser/cortex-browser/internal/locator"
	"github.com/cortexbrowser/cortex-browser/internal/mutation"
	"github.com/cortexbrowser/cortex-browser/internal/pipeline"
	"github.com/cortexbrowser/cortex-browser/internal/serialize"
	"github.com/cortexbrowser/cortex-browser/internal/taskctx"
)

// TabState is one tab's mutable state (spec.md §3, §4.5). It carries no
// lock of its own: every field is read/written only while the owning
// SessionState's lock is held.
type TabState struct {
	id      int
	page    browserclient.Page
	url     string
	title   string
	closed  bool

	observerInstalled bool
	cachedText        string
	hasCached         bool
	previousSnapshot  pipeline.PageSnapshot
	refs              locator.RefIndex

	taskContext *taskctx.Context
}

func newTabState(id int, page browserclient.Page) *TabState {
	return &TabState{id: id, page: page}
}

// invalidateCache clears the cached serialized text, per §7 rule 2: once
// the live DOM may no longer match the cache, callers must re-snapshot.
func (t *TabState) invalidateCache() {
	t.hasCached = false
	t.cachedText = ""
}

// ensureObserver installs the mutation observer if this is the first
// snapshot since the tab was opened or last navigated (§4.5 "On enter
// Open").
func (t *TabState) ensureObserver(ctx context.Context) error {
	if t.observerInstalled {
		return nil
	}
	if _, err := t.page.Evaluate(ctx, mutation.InstallObserverScript); err != nil {
		return fmt.Errorf("session: install observer: %w", err)
	}
	t.observerInstalled = true
	return nil
}

// snapshot runs the 8-step snapshot pipeline of §4.5 for this tab.
func (t *TabState) snapshot(ctx context.Context) (string, error) {
	if t.hasCached {
		dirty, err := t.readDirty(ctx)
		if err == nil && !dirty {
			return t.cachedText, nil
		}
		// Probe failure or dirty=true: fall through and re-snapshot (§7 rule 4).
	}

	html, err := t.page.Content(ctx)
	if err != nil {
		return "", fmt.Errorf("session: fetch content: %w", err)
	}
	url, err := t.page.URL(ctx)
	if err != nil {
		return "", fmt.Errorf("session: fetch url: %w", err)
	}
	t.url = url

	if _, err := t.page.Evaluate(ctx, mutation.ResetDirtyScript); err != nil {
		t.observerInstalled = false
	}
	if err := t.ensureObserver(ctx); err != nil {
		return "", err
	}

	vp := t.probeViewport(ctx)

	title, _ := t.page.Title(ctx)
	t.title = title

	result := pipeline.Process(html, url)
	result.Snapshot.Title = title
	result.Snapshot.Viewport = vp

	t.annotateVisibility(ctx, &result)

	t.previousSnapshot = result.Snapshot
	t.refs = result.Refs

	filtered := result.Snapshot.Nodes
	if t.taskContext != nil {
		filtered = taskctx.Apply(*t.taskContext, filtered)
	}
	out := result.Snapshot
	out.Nodes = filtered

	text := serialize.ToCompactText(out)
	t.cachedText = text
	t.hasCached = true
	return text, nil
}

// readDirty decodes the dirty probe, treating any error as dirty=true
// (§4.4, §7 rule 4).
func (t *TabState) readDirty(ctx context.Context) (bool, error) {
	raw, err := t.page.Evaluate(ctx, mutation.CheckDirtyScript)
	if err != nil {
		return true, err
	}
	return mutation.ParseDirtyState(raw).Dirty, nil
}

// probeViewport degrades to nil on failure (§7 rule 4): the caller simply
// omits the viewport line rather than treating it as fatal.
func (t *TabState) probeViewport(ctx context.Context) *pipeline.ViewportInfo {
	raw, err := t.page.Evaluate(ctx, mutation.ViewportProbeScript)
	if err != nil {
		return nil
	}
	vp, err := mutation.ParseViewport(raw)
	if err != nil {
		return nil
	}
	return &pipeline.ViewportInfo{
		ScrollY:        vp.ScrollY,
		ViewportHeight: vp.ViewportHeight,
		DocumentHeight: vp.DocumentHeight,
	}
}

// annotateVisibility computes offscreen for every interactive ref (§4.5
// step 6). A probe failure leaves visibility unknown for every node
// (Offscreen stays nil), per §7 rule 4.
func (t *TabState) annotateVisibility(ctx context.Context, result *pipeline.Result) {
	if len(result.Refs) == 0 {
		return
	}
	raw, err := t.page.Evaluate(ctx, mutation.VisibilityProbeScript(result.Refs))
	if err != nil {
		return
	}
	visible, err := mutation.ParseVisibility(raw)
	if err != nil {
		return
	}
	var walk func(n *pipeline.SemanticNode)
	walk = func(n *pipeline.SemanticNode) {
		if n.RefID != 0 {
			if v, ok := visible[n.RefID]; ok {
				offscreen := !v
				n.Offscreen = &offscreen
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, n := range result.Snapshot.Nodes {
		walk(n)
	}
}
