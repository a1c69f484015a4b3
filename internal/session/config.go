// Package session implements the tab/session state machine (spec.md §4.5):
// a single SessionState guarded by one reader/writer lock, the action ->
// snapshot orchestration, wait-for-changes polling, and multi-tab
// bookkeeping. The single-lock-over-shared-state shape is grounded on the
// teacher's Daemon (cpunion-agent-browser-go/daemon.go), which guards its
// connection/session bookkeeping with one sync.Mutex rather than per-tab
// locks, for the same reason spec.md §9 gives: per-tab locks invite
// deadlocks when an operation needs two tabs at once (e.g. a future
// cross-tab diff).
package session

import "time"

// Config holds the session's fixed timing and environment knobs. Settle
// delays are spec.md §9's documented fixed constants; wait_for_changes is
// the supported remedy when they are insufficient.
type Config struct {
	ActionSettleDelay   time.Duration
	ScrollSettleDelay   time.Duration
	WaitPollInterval    time.Duration
	DefaultWaitDeadline time.Duration
	CDPPort             int
	Headless            bool
	RecordingBaseDir    string
}

// DefaultConfig returns the settle/poll constants named in spec.md §4.5 and
// §9.
func DefaultConfig() Config {
	return Config{
		ActionSettleDelay:   300 * time.Millisecond,
		ScrollSettleDelay:   200 * time.Millisecond,
		WaitPollInterval:    100 * time.Millisecond,
		DefaultWaitDeadline: 5 * time.Second,
		Headless:            true,
	}
}
