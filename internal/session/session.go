package session

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cortexbrowser/cortex-browser/internal/browserclient"
	"github.com/cortexbrowser/cortex-browser/internal/diff"
	"github.com/cortexbrowser/cortex-browser/internal/extract"
	"github.com/cortexbrowser/cortex-browser/internal/locator"
	"github.com/cortexbrowser/cortex-browser/internal/mutation"
	"github.com/cortexbrowser/cortex-browser/internal/serialize"
	"github.com/cortexbrowser/cortex-browser/internal/taskctx"
)

// ErrElementNotFound is returned when an action script reports NOT_FOUND
// (spec.md §7 rule 2).
var ErrElementNotFound = fmt.Errorf("element not found")

// ErrUnknownTab is a usage error (spec.md §7 rule 1): the caller named a
// tab id the session does not hold.
type ErrUnknownTab int

func (e ErrUnknownTab) Error() string {
	return fmt.Sprintf("unknown tab %d", int(e))
}

// ErrUnknownRef is a usage error (spec.md §7 rule 1).
type ErrUnknownRef uint32

func (e ErrUnknownRef) Error() string {
	return fmt.Sprintf("unknown ref %d", uint32(e))
}

// State is the single SessionState the whole tool surface operates on
// (spec.md §3, §5): exactly one reader/writer lock, held for the shortest
// span each operation needs. Browser I/O always happens with the lock
// released; only bookkeeping (cached text, ref index, active tab) is
// touched while holding it.
type State struct {
	mu        sync.RWMutex
	browser   browserclient.Browser
	config    Config
	logger    zerolog.Logger
	tabs      map[int]*TabState
	nextTabID int
	activeTab int
}

// New constructs a State around an already-launched Browser.
func New(browser browserclient.Browser, cfg Config, logger zerolog.Logger) *State {
	return &State{
		browser: browser,
		config:  cfg,
		logger:  logger,
		tabs:    map[int]*TabState{},
	}
}

// OpenTab allocates the next integer id and makes the new tab active
// (spec.md §4.5 "Multi-tab").
func (s *State) OpenTab(ctx context.Context, url string) (string, error) {
	page, err := s.browser.NewPage(ctx)
	if err != nil {
		return "", fmt.Errorf("session: open tab: %w", err)
	}

	s.mu.Lock()
	id := s.nextTabID
	s.nextTabID++
	tab := newTabState(id, page)
	s.tabs[id] = tab
	s.activeTab = id
	s.mu.Unlock()

	s.logger.Debug().Int("tab", id).Str("url", url).Msg("opened tab")

	if url == "" {
		return fmt.Sprintf("opened tab %d", id), nil
	}
	return s.Navigate(ctx, url)
}

// ListTabs renders the tab id / url / title listing (spec.md §6
// list_tabs).
func (s *State) ListTabs() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, len(s.tabs))
	for id := range s.tabs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := ""
	for _, id := range ids {
		t := s.tabs[id]
		marker := " "
		if id == s.activeTab {
			marker = "*"
		}
		out += fmt.Sprintf("%s%d %s %q\n", marker, id, t.url, t.title)
	}
	return out
}

// SwitchTab re-points active_tab (spec.md §4.5).
func (s *State) SwitchTab(tabID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tabs[tabID]; !ok {
		return ErrUnknownTab(tabID)
	}
	s.activeTab = tabID
	return nil
}

// CloseTab removes the tab; if it was active, active becomes the smallest
// remaining id, or 0 if none remain (spec.md §4.5).
func (s *State) CloseTab(ctx context.Context, tabID int) error {
	s.mu.Lock()
	tab, ok := s.tabs[tabID]
	if !ok {
		s.mu.Unlock()
		return ErrUnknownTab(tabID)
	}
	delete(s.tabs, tabID)
	if s.activeTab == tabID {
		s.activeTab = smallestID(s.tabs)
	}
	s.mu.Unlock()

	return tab.page.Close(ctx)
}

func smallestID(tabs map[int]*TabState) int {
	if len(tabs) == 0 {
		return 0
	}
	min := -1
	for id := range tabs {
		if min == -1 || id < min {
			min = id
		}
	}
	return min
}

// active returns the active tab, or a usage error if there is none (spec.md
// §7 rule 1: e.g. no tab opened yet). Caller must hold s.mu.
func (s *State) active() (*TabState, error) {
	t, ok := s.tabs[s.activeTab]
	if !ok {
		return nil, ErrUnknownTab(s.activeTab)
	}
	return t, nil
}

// Navigate opens the active tab (creating the first one if none exists) at
// url and returns the compact snapshot text (spec.md §6 navigate).
func (s *State) Navigate(ctx context.Context, url string) (string, error) {
	s.mu.Lock()
	empty := len(s.tabs) == 0
	s.mu.Unlock()
	if empty {
		return s.OpenTab(ctx, url)
	}

	s.mu.Lock()
	tab, err := s.active()
	s.mu.Unlock()
	if err != nil {
		return "", err
	}

	if err := tab.page.Navigate(ctx, url); err != nil {
		return "", fmt.Errorf("session: navigate: %w", err)
	}

	s.mu.Lock()
	tab.invalidateCache()
	tab.observerInstalled = false
	s.mu.Unlock()

	return s.Snapshot(ctx)
}

// Snapshot returns the active tab's compact snapshot text, serving the
// cache when the observer reports no mutation (spec.md §4.5 steps 1-8).
func (s *State) Snapshot(ctx context.Context) (string, error) {
	s.mu.Lock()
	tab, err := s.active()
	s.mu.Unlock()
	if err != nil {
		return "", err
	}
	return tab.snapshot(ctx)
}

type actionKind int

const (
	actionClick actionKind = iota
	actionTypeText
	actionSelectOption
)

func actionScript(kind actionKind, loc locator.ElementLocator, value string) string {
	switch kind {
	case actionTypeText:
		return loc.TypeTextScript(value)
	case actionSelectOption:
		return loc.SelectOptionScript(value)
	default:
		return loc.ClickScript()
	}
}

// ActiveURL returns the active tab's last-known URL, or "" if there is no
// active tab (used when labeling a new recording's start_url).
func (s *State) ActiveURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tab, err := s.active()
	if err != nil {
		return ""
	}
	return tab.url
}

// LocatorForRef returns the active tab's stored locator for ref, for
// callers (e.g. recording capture) that need it without driving an action
// themselves.
func (s *State) LocatorForRef(ref uint32) (locator.ElementLocator, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tab, err := s.active()
	if err != nil {
		return locator.ElementLocator{}, false
	}
	loc, ok := tab.refs[ref]
	return loc, ok
}

// ActWithLocator runs click/type_text/select_option against an explicit
// locator rather than a live ref, for recording replay (spec.md §4.9):
// replayed actions carry their own stored ElementLocator instead of a
// ref_id that may no longer resolve to the same DOM node.
func (s *State) ActWithLocator(ctx context.Context, kind actionKind, loc locator.ElementLocator, value string) (string, error) {
	s.mu.Lock()
	tab, err := s.active()
	s.mu.Unlock()
	if err != nil {
		return "", err
	}

	script := actionScript(kind, loc, value)
	result, err := tab.page.Evaluate(ctx, script)
	if err != nil {
		return "", fmt.Errorf("session: run replay action: %w", err)
	}
	if result == "NOT_FOUND" {
		s.mu.Lock()
		tab.invalidateCache()
		s.mu.Unlock()
		return "", ErrElementNotFound
	}

	time.Sleep(s.config.ActionSettleDelay)
	s.mu.Lock()
	tab.invalidateCache()
	s.mu.Unlock()
	return tab.snapshot(ctx)
}

// ActionKind re-exports the click/type_text/select_option discriminator
// for callers outside this package (e.g. recording replay).
type ActionKind = actionKind

// Action kind constants for replay callers.
const (
	ActionClick        = actionClick
	ActionTypeText     = actionTypeText
	ActionSelectOption = actionSelectOption
)

// Act runs click/type_text/select_option against ref, with the
// action -> snapshot orchestration of spec.md §4.5: optionally capture a
// pre-action snapshot, execute the script, fail fast on NOT_FOUND, settle,
// re-snapshot, and return either a diff or the full snapshot text.
func (s *State) Act(ctx context.Context, kind actionKind, ref uint32, value string, returnDiff bool) (string, error) {
	s.mu.Lock()
	tab, err := s.active()
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	loc, ok := tab.refs[ref]
	if !ok {
		s.mu.Unlock()
		return "", ErrUnknownRef(ref)
	}
	pre := tab.previousSnapshot.Nodes
	s.mu.Unlock()

	script := actionScript(kind, loc, value)
	result, err := tab.page.Evaluate(ctx, script)
	if err != nil {
		return "", fmt.Errorf("session: run action: %w", err)
	}
	if result == "NOT_FOUND" {
		s.mu.Lock()
		tab.invalidateCache()
		s.mu.Unlock()
		return "", ErrElementNotFound
	}

	time.Sleep(s.config.ActionSettleDelay)

	s.mu.Lock()
	tab.invalidateCache()
	s.mu.Unlock()

	text, err := tab.snapshot(ctx)
	if err != nil {
		return "", err
	}
	if !returnDiff {
		return text, nil
	}

	s.mu.Lock()
	post := tab.previousSnapshot.Nodes
	s.mu.Unlock()

	return diff.FormatDiff(diff.Diff(pre, post)), nil
}

// Click implements spec.md §6's click operation.
func (s *State) Click(ctx context.Context, ref uint32, returnDiff bool) (string, error) {
	return s.Act(ctx, actionClick, ref, "", returnDiff)
}

// TypeText implements spec.md §6's type_text operation.
func (s *State) TypeText(ctx context.Context, ref uint32, text string, returnDiff bool) (string, error) {
	return s.Act(ctx, actionTypeText, ref, text, returnDiff)
}

// SelectOption implements spec.md §6's select_option operation.
func (s *State) SelectOption(ctx context.Context, ref uint32, value string, returnDiff bool) (string, error) {
	return s.Act(ctx, actionSelectOption, ref, value, returnDiff)
}

// WaitForChanges polls dirty state every 100ms up to deadline (default 5s),
// taking a fresh snapshot on first observed mutation, or returning the
// cached text if the deadline elapses first (spec.md §4.5).
func (s *State) WaitForChanges(ctx context.Context, deadline time.Duration) (string, error) {
	if deadline <= 0 {
		deadline = s.config.DefaultWaitDeadline
	}
	s.mu.Lock()
	tab, err := s.active()
	s.mu.Unlock()
	if err != nil {
		return "", err
	}

	timeoutAt := time.Now().Add(deadline)
	ticker := time.NewTicker(s.config.WaitPollInterval)
	defer ticker.Stop()

	for {
		// readDirty reports dirty=true on a probe error, so a failed probe
		// also forces a fresh snapshot (§7 rule 4).
		if dirty, _ := tab.readDirty(ctx); dirty {
			s.mu.Lock()
			tab.invalidateCache()
			s.mu.Unlock()
			return tab.snapshot(ctx)
		}
		if time.Now().After(timeoutAt) {
			if tab.hasCached {
				return tab.cachedText, nil
			}
			return tab.snapshot(ctx)
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}

// ScrollDown runs the scroll-down script, sleeps the scroll settle delay,
// invalidates the cache, and re-snapshots (spec.md §4.5 "Scroll").
func (s *State) ScrollDown(ctx context.Context) (string, error) {
	return s.scroll(ctx, mutation.ScrollDownScript)
}

// ScrollUp is ScrollDown's inverse.
func (s *State) ScrollUp(ctx context.Context) (string, error) {
	return s.scroll(ctx, mutation.ScrollUpScript)
}

func (s *State) scroll(ctx context.Context, script string) (string, error) {
	s.mu.Lock()
	tab, err := s.active()
	s.mu.Unlock()
	if err != nil {
		return "", err
	}
	if _, err := tab.page.Evaluate(ctx, script); err != nil {
		return "", fmt.Errorf("session: scroll: %w", err)
	}
	time.Sleep(s.config.ScrollSettleDelay)
	s.mu.Lock()
	tab.invalidateCache()
	s.mu.Unlock()
	return tab.snapshot(ctx)
}

// ScrollToRef scrolls the element for ref into view via its locator
// expression, then proceeds like ScrollDown/ScrollUp.
func (s *State) ScrollToRef(ctx context.Context, ref uint32) (string, error) {
	s.mu.Lock()
	tab, err := s.active()
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	loc, ok := tab.refs[ref]
	s.mu.Unlock()
	if !ok {
		return "", ErrUnknownRef(ref)
	}
	script := "(function(){var el=" + loc.Expression() + ";if(!el) return 'NOT_FOUND'; el.scrollIntoView({block:'center'}); return 'OK';})()"
	result, err := tab.page.Evaluate(ctx, script)
	if err != nil {
		return "", fmt.Errorf("session: scroll to ref: %w", err)
	}
	if result == "NOT_FOUND" {
		s.mu.Lock()
		tab.invalidateCache()
		s.mu.Unlock()
		return "", ErrElementNotFound
	}
	time.Sleep(s.config.ScrollSettleDelay)
	s.mu.Lock()
	tab.invalidateCache()
	s.mu.Unlock()
	return tab.snapshot(ctx)
}

// SetTaskContext / ClearTaskContext implement spec.md §6's task-context
// operations, scoped to the active tab.
func (s *State) SetTaskContext(tc taskctx.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tab, err := s.active()
	if err != nil {
		return err
	}
	tab.taskContext = &tc
	tab.invalidateCache()
	return nil
}

func (s *State) ClearTaskContext() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tab, err := s.active()
	if err != nil {
		return err
	}
	tab.taskContext = nil
	tab.invalidateCache()
	return nil
}

// FocusedSnapshot applies tc to the active tab's current snapshot without
// persisting it as the tab's standing task context (spec.md §6
// focused_snapshot).
func (s *State) FocusedSnapshot(ctx context.Context, tc taskctx.Context) (string, error) {
	s.mu.Lock()
	tab, err := s.active()
	s.mu.Unlock()
	if err != nil {
		return "", err
	}
	if _, err := tab.snapshot(ctx); err != nil {
		return "", err
	}
	filtered := taskctx.Apply(tc, tab.previousSnapshot.Nodes)
	out := tab.previousSnapshot
	out.Nodes = filtered
	return serialize.ToCompactText(out), nil
}

// PageDiff diffs the active tab's previous_snapshot against a fresh
// snapshot (spec.md §6 page_diff).
func (s *State) PageDiff(ctx context.Context) (string, error) {
	s.mu.Lock()
	tab, err := s.active()
	s.mu.Unlock()
	if err != nil {
		return "", err
	}
	pre := tab.previousSnapshot.Nodes
	s.mu.Lock()
	tab.invalidateCache()
	s.mu.Unlock()
	if _, err := tab.snapshot(ctx); err != nil {
		return "", err
	}
	post := tab.previousSnapshot.Nodes
	return diff.FormatDiff(diff.Diff(pre, post)), nil
}

// Extract implements spec.md §6's extract operation against the active
// tab's current (unfiltered) snapshot.
func (s *State) Extract(ctx context.Context, schema extract.Schema, selector string) (any, error) {
	s.mu.Lock()
	tab, err := s.active()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if _, err := tab.snapshot(ctx); err != nil {
		return nil, err
	}
	return extract.Extract(tab.previousSnapshot.Nodes, schema, selector), nil
}

// Screenshot implements spec.md §6's screenshot operation.
func (s *State) Screenshot(ctx context.Context, fullPage bool) ([]byte, error) {
	s.mu.Lock()
	tab, err := s.active()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return tab.page.Screenshot(ctx, browserclient.ScreenshotOptions{FullPage: fullPage})
}
