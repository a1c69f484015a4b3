// Package recording implements the recording store and the auth/cookie
// profile store (spec.md §4.9, §6, §6a): in-memory action capture and
// replay, persisted as prettified JSON under a domain-partitioned
// .cortex-browser directory. Persistence goes through the narrow FileIO
// collaborator so the store itself stays pure in-memory logic plus
// serialization, matching spec.md's explicit exclusion of on-disk layout as
// a separate adapter (the adapter here is a thin os-backed implementation,
// not inlined into the store). Grounded on the teacher's session-file
// helpers (cpunion-agent-browser-go/daemon.go GetSessionBackend,
// SaveSessionBackend et al.), generalized from single-value session files
// to a directory of named recordings.
package recording

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cortexbrowser/cortex-browser/internal/locator"
)

// FileIO is the narrow persistence collaborator (spec.md §4.9).
type FileIO interface {
	Write(path string, data []byte) error
	Read(path string) ([]byte, error)
	List(dir string) ([]string, error)
	Remove(path string) error
}

// Action is one captured step, tagged by Kind (spec.md §6a).
type Action struct {
	Kind     string // "navigate" | "click" | "type_text" | "select_option"
	URL      string
	RefID    uint32
	Locator  *locator.ElementLocator
	Value    string
}

// Recording is the persisted/in-progress recording shape (§6a).
type Recording struct {
	Name        string
	Domain      string
	StartURL    string
	CreatedAt   time.Time
	Description string
	Actions     []Action
}

// wireRecording mirrors the exact JSON shape of §6a.
type wireRecording struct {
	Name        string       `json:"name"`
	Domain      string       `json:"domain"`
	StartURL    string       `json:"start_url"`
	CreatedAt   string       `json:"created_at"`
	Description string       `json:"description,omitempty"`
	Actions     []wireAction `json:"actions"`
}

type wireAction struct {
	Action    string  `json:"action"`
	URL       string  `json:"url,omitempty"`
	RefID     uint32  `json:"ref_id,omitempty"`
	Tag       string  `json:"tag,omitempty"`
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name,omitempty"`
	InputType string  `json:"input_type,omitempty"`
	Href      string  `json:"href,omitempty"`
	Text      string  `json:"text,omitempty"`
	Value     string  `json:"value,omitempty"`
}

// Store holds the in-memory active_recording plus the saved-recordings
// directory (spec.md §4.9).
type Store struct {
	mu      sync.Mutex
	io      FileIO
	baseDir string
	active  *Recording
}

// NewStore constructs a Store rooted at baseDir (the resolved
// .cortex-browser path; not a singleton — spec.md §9 "Global mutable
// state").
func NewStore(io FileIO, baseDir string) *Store {
	return &Store{io: io, baseDir: baseDir}
}

// ErrDuplicateRecording is a usage error (spec.md §7 rule 1).
var ErrDuplicateRecording = fmt.Errorf("recording already in progress")

// ErrNoActiveRecording is a usage error (spec.md §7 rule 1).
var ErrNoActiveRecording = fmt.Errorf("no recording in progress")

// Start begins a new in-memory recording (spec.md §6 start recording).
func (s *Store) Start(name, domain, startURL, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		return ErrDuplicateRecording
	}
	s.active = &Recording{
		Name:        name,
		Domain:      domain,
		StartURL:    startURL,
		CreatedAt:   time.Now(),
		Description: description,
	}
	return nil
}

// Record appends one captured action to the active recording. It is a
// no-op (by design) when nothing is being recorded, so callers need not
// branch on recording state on every action.
func (s *Store) Record(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return
	}
	s.active.Actions = append(s.active.Actions, a)
}

// Stop persists the active recording to disk and clears it.
func (s *Store) Stop() error {
	s.mu.Lock()
	active := s.active
	s.active = nil
	s.mu.Unlock()

	if active == nil {
		return ErrNoActiveRecording
	}
	return s.save(*active)
}

func (s *Store) save(r Recording) error {
	slug := DomainSlug(r.Domain)
	filename := SanitizeFilename(r.Name) + ".json"
	dir := s.baseDir + "/" + slug
	path := dir + "/" + filename

	wire := toWire(r)
	data, err := json.MarshalIndent(wire, "", "  ")
	if err != nil {
		return fmt.Errorf("recording: marshal: %w", err)
	}
	if err := s.io.Write(path, data); err != nil {
		return fmt.Errorf("recording: write %s: %w", path, err)
	}
	return nil
}

// List returns the names of saved recordings under domain's partition.
func (s *Store) List(domain string) ([]string, error) {
	dir := s.baseDir + "/" + DomainSlug(domain)
	names, err := s.io.List(dir)
	if err != nil {
		return nil, fmt.Errorf("recording: list %s: %w", dir, err)
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, strings.TrimSuffix(n, ".json"))
	}
	return out, nil
}

// Load reads and decodes a saved recording.
func (s *Store) Load(domain, name string) (Recording, error) {
	path := s.baseDir + "/" + DomainSlug(domain) + "/" + SanitizeFilename(name) + ".json"
	data, err := s.io.Read(path)
	if err != nil {
		return Recording{}, fmt.Errorf("recording: read %s: %w", path, err)
	}
	var wire wireRecording
	if err := json.Unmarshal(data, &wire); err != nil {
		return Recording{}, fmt.Errorf("recording: decode %s: %w", path, err)
	}
	return fromWire(wire), nil
}

// Delete removes a saved recording.
func (s *Store) Delete(domain, name string) error {
	path := s.baseDir + "/" + DomainSlug(domain) + "/" + SanitizeFilename(name) + ".json"
	if err := s.io.Remove(path); err != nil {
		return fmt.Errorf("recording: delete %s: %w", path, err)
	}
	return nil
}

func toWire(r Recording) wireRecording {
	w := wireRecording{
		Name:        r.Name,
		Domain:      r.Domain,
		StartURL:    r.StartURL,
		CreatedAt:   strconv.FormatInt(r.CreatedAt.Unix(), 10),
		Description: r.Description,
	}
	for _, a := range r.Actions {
		wa := wireAction{Action: a.Kind, URL: a.URL, RefID: a.RefID, Value: a.Value}
		if a.Locator != nil {
			wa.Tag = a.Locator.Tag
			wa.ID = a.Locator.ID
			wa.Name = a.Locator.Name
			wa.InputType = a.Locator.InputType
			wa.Href = a.Locator.Href
			wa.Text = a.Locator.Text
		}
		w.Actions = append(w.Actions, wa)
	}
	return w
}

func fromWire(w wireRecording) Recording {
	created, _ := strconv.ParseInt(w.CreatedAt, 10, 64)
	r := Recording{
		Name:        w.Name,
		Domain:      w.Domain,
		StartURL:    w.StartURL,
		CreatedAt:   time.Unix(created, 0),
		Description: w.Description,
	}
	for _, wa := range w.Actions {
		a := Action{Kind: wa.Action, URL: wa.URL, RefID: wa.RefID, Value: wa.Value}
		if wa.Tag != "" || wa.ID != "" || wa.Name != "" || wa.Href != "" || wa.Text != "" {
			loc := locator.ElementLocator{
				Tag: wa.Tag, ID: wa.ID, Name: wa.Name,
				InputType: wa.InputType, Href: wa.Href, Text: wa.Text,
			}
			a.Locator = &loc
		}
		r.Actions = append(r.Actions, a)
	}
	return r
}

var filenameDisallowed = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// SanitizeFilename implements spec.md §6's filename rule: replace any
// character outside [A-Za-z0-9_-] with '-', trim leading/trailing '-',
// default to "recording" if empty.
func SanitizeFilename(name string) string {
	s := filenameDisallowed.ReplaceAllString(name, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "recording"
	}
	return s
}

// DomainSlug implements spec.md §6's domain-slug rule: host lowercased,
// with '.' and ':' replaced by '-'.
func DomainSlug(domain string) string {
	s := strings.ToLower(domain)
	s = strings.ReplaceAll(s, ".", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}
