// Package session holds the transient draft state for creating or
// editing a bookmark, separate from the committed collection. It owns
// the enrichment generation counter that protects against a stale
// lookup response landing in a form that has since been closed or
// reopened.
package session

import (
	"errors"
	"strings"

	"github.com/nbrandt/linkstash/internal/enrich"
	"github.com/nbrandt/linkstash/internal/model"
)

// State is the form lifecycle state.
type State int

const (
	StateClosed State = iota
	StateCreating
	StateEditing
)

// Draft holds the editable form values. Tags is a single editable
// string, re-split into a sequence on save.
type Draft struct {
	URL         string
	Title       string
	Description string
	Category    model.Category
	Tags        string
	Notes       string
	Image       string
	Favicon     string
}

// Session is the form/edit session state machine.
type Session struct {
	state      State
	editID     string
	draft      Draft
	generation int
	enriching  bool
	degraded   bool
}

// New creates a closed session.
func New() *Session {
	return &Session{}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// EditID returns the id of the bookmark being edited, or "" when creating.
func (s *Session) EditID() string {
	return s.editID
}

// Draft returns the current draft values.
func (s *Session) Draft() Draft {
	return s.draft
}

// SetDraft replaces the draft values. The UI calls this as inputs change.
func (s *Session) SetDraft(draft Draft) {
	s.draft = draft
}

// Enriching reports whether an enrichment lookup is in flight. The UI
// disables save while this is true.
func (s *Session) Enriching() bool {
	return s.enriching
}

// Degraded reports whether the last enrichment fell back to local
// defaults. Cleared on open.
func (s *Session) Degraded() bool {
	return s.degraded
}

// OpenCreate starts a new blank draft.
func (s *Session) OpenCreate() {
	s.reset()
	s.state = StateCreating
}

// OpenEdit seeds the draft from an existing bookmark's current field
// values, joining tags into one editable string.
func (s *Session) OpenEdit(b model.Bookmark) {
	s.reset()
	s.state = StateEditing
	s.editID = b.ID
	s.draft = Draft{
		URL:         b.URL,
		Title:       b.Title,
		Description: b.Description,
		Category:    b.Category,
		Tags:        strings.Join(b.Tags, ", "),
		Notes:       b.Notes,
		Image:       b.Image,
		Favicon:     b.Favicon,
	}
}

// Cancel discards the draft and closes the session.
func (s *Session) Cancel() {
	s.reset()
}

// ErrNoOpenSession is returned by Save when no form is open.
var ErrNoOpenSession = errors.New("no open session")

// Save validates the draft and commits it to the collection: Add when
// creating, Update when editing. Fails with ErrNoOpenSession on a
// closed session. On success the session closes; on validation failure
// it stays open so the user can correct the form.
func (s *Session) Save(collection *model.Collection) (model.Bookmark, error) {
	if s.state == StateClosed {
		return model.Bookmark{}, ErrNoOpenSession
	}

	normalized, err := model.NormalizeURL(s.draft.URL)
	if err != nil {
		return model.Bookmark{}, err
	}

	draft := model.Draft{
		URL:         normalized,
		Title:       strings.TrimSpace(s.draft.Title),
		Description: strings.TrimSpace(s.draft.Description),
		Category:    s.draft.Category,
		Tags:        SplitTags(s.draft.Tags),
		Notes:       s.draft.Notes,
		Image:       s.draft.Image,
		Favicon:     s.draft.Favicon,
	}

	var (
		bookmark model.Bookmark
		saveErr  error
	)
	if s.state == StateEditing {
		bookmark, saveErr = collection.Update(s.editID, draft)
	} else {
		bookmark, saveErr = collection.Add(draft)
	}
	if saveErr != nil {
		return model.Bookmark{}, saveErr
	}

	s.reset()
	return bookmark, nil
}

// BeginEnrichment marks a lookup as in flight and returns the
// generation the response must carry to be applied. Enrichment only
// fires while creating; editing never auto-enriches so curated
// metadata is not clobbered.
func (s *Session) BeginEnrichment() (int, bool) {
	if s.state != StateCreating || strings.TrimSpace(s.draft.URL) == "" {
		return 0, false
	}
	s.generation++
	s.enriching = true
	return s.generation, true
}

// FailEnrichment clears the in-flight flag when the lookup could not
// even start (unparseable URL). Stale generations are ignored.
func (s *Session) FailEnrichment(generation int) {
	if generation == s.generation {
		s.enriching = false
	}
}

// ApplyEnrichment merges a lookup result into the draft. Responses
// tagged with a stale generation are silently discarded; this covers
// the form being closed, cancelled, or the URL field blurring again
// while the response was in flight.
func (s *Session) ApplyEnrichment(generation int, result enrich.Result) bool {
	if generation != s.generation || s.state != StateCreating {
		return false
	}
	s.enriching = false
	s.degraded = result.Degraded

	s.draft.URL = result.URL
	if result.Title != "" {
		s.draft.Title = result.Title
	}
	if result.Description != "" {
		s.draft.Description = result.Description
	}
	if result.Image != "" {
		s.draft.Image = result.Image
	}
	if result.Favicon != "" {
		s.draft.Favicon = result.Favicon
	}
	return true
}

// reset clears all state and invalidates any in-flight enrichment.
func (s *Session) reset() {
	s.state = StateClosed
	s.editID = ""
	s.draft = Draft{}
	s.generation++
	s.enriching = false
	s.degraded = false
}

// SplitTags splits a comma-separated tags string, trimming entries and
// dropping empty ones.
func SplitTags(tags string) []string {
	return model.CleanTags(strings.Split(tags, ","))
}
