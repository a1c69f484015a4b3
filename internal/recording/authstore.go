package recording

import (
	"encoding/json"
	"fmt"

	"github.com/cortexbrowser/cortex-browser/internal/browserclient"
)

// OriginStorage is one origin's captured localStorage key/value pairs
// (spec.md §4.9 "Auth/cookie-state profiles").
type OriginStorage struct {
	Origin string
	Local  map[string]string
}

// State is a full cookie+localStorage profile for one domain.
type State struct {
	Cookies []browserclient.Cookie
	Origins []OriginStorage
}

type wireState struct {
	Cookies []browserclient.Cookie `json:"cookies"`
	Origins []wireOrigin           `json:"origins"`
}

type wireOrigin struct {
	Origin string            `json:"origin"`
	Local  map[string]string `json:"local_storage"`
}

// AuthStore persists per-domain cookie/localStorage profiles (spec.md
// §4.9), sharing the FileIO collaborator and .cortex-browser/<domain-slug>/
// partitioning with Store.
type AuthStore struct {
	io      FileIO
	baseDir string
}

// NewAuthStore constructs an AuthStore rooted at baseDir.
func NewAuthStore(io FileIO, baseDir string) *AuthStore {
	return &AuthStore{io: io, baseDir: baseDir}
}

func (a *AuthStore) path(domain string) string {
	return a.baseDir + "/" + DomainSlug(domain) + "/auth-state.json"
}

// SaveState persists state for domain as prettified JSON.
func (a *AuthStore) SaveState(domain string, state State) error {
	wire := wireState{Cookies: state.Cookies}
	for _, o := range state.Origins {
		wire.Origins = append(wire.Origins, wireOrigin{Origin: o.Origin, Local: o.Local})
	}
	data, err := json.MarshalIndent(wire, "", "  ")
	if err != nil {
		return fmt.Errorf("recording: marshal auth state: %w", err)
	}
	if err := a.io.Write(a.path(domain), data); err != nil {
		return fmt.Errorf("recording: write auth state: %w", err)
	}
	return nil
}

// LoadState reads a previously saved profile for domain. The second
// return is false when nothing has been saved for this domain.
func (a *AuthStore) LoadState(domain string) (State, bool) {
	data, err := a.io.Read(a.path(domain))
	if err != nil {
		return State{}, false
	}
	var wire wireState
	if err := json.Unmarshal(data, &wire); err != nil {
		return State{}, false
	}
	state := State{Cookies: wire.Cookies}
	for _, o := range wire.Origins {
		state.Origins = append(state.Origins, OriginStorage{Origin: o.Origin, Local: o.Local})
	}
	return state, true
}
