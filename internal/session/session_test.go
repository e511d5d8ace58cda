package session_test

import (
	"errors"
	"testing"

	"github.com/nbrandt/linkstash/internal/enrich"
	"github.com/nbrandt/linkstash/internal/model"
	"github.com/nbrandt/linkstash/internal/session"
)

func TestSession_Lifecycle(t *testing.T) {
	s := session.New()
	if s.State() != session.StateClosed {
		t.Fatal("new session must be closed")
	}

	s.OpenCreate()
	if s.State() != session.StateCreating {
		t.Error("expected creating state")
	}
	if s.Draft() != (session.Draft{}) {
		t.Error("create must start with a blank draft")
	}

	s.Cancel()
	if s.State() != session.StateClosed {
		t.Error("cancel must close the session")
	}
	if s.Draft() != (session.Draft{}) {
		t.Error("cancel must discard the draft")
	}
}

func TestSession_OpenEdit_SeedsDraft(t *testing.T) {
	s := session.New()
	s.OpenEdit(model.Bookmark{
		ID:       "b1",
		URL:      "https://go.dev",
		Title:    "Go",
		Category: model.CategoryDev,
		Tags:     []string{"lang", "tools"},
		Notes:    "reference",
	})

	if s.State() != session.StateEditing {
		t.Error("expected editing state")
	}
	if s.EditID() != "b1" {
		t.Errorf("expected edit id b1, got %q", s.EditID())
	}

	draft := s.Draft()
	if draft.URL != "https://go.dev" || draft.Title != "Go" {
		t.Errorf("draft not seeded: %+v", draft)
	}
	if draft.Tags != "lang, tools" {
		t.Errorf("expected joined tags, got %q", draft.Tags)
	}
}

func TestSession_Save_Create(t *testing.T) {
	collection := model.NewCollection()
	s := session.New()
	s.OpenCreate()
	s.SetDraft(session.Draft{URL: "go.dev", Title: "  Go  ", Tags: "a, , b"})

	bookmark, err := s.Save(collection)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bookmark.URL != "https://go.dev" {
		t.Errorf("expected normalized url, got %q", bookmark.URL)
	}
	if bookmark.Title != "Go" {
		t.Errorf("expected trimmed title, got %q", bookmark.Title)
	}
	if len(bookmark.Tags) != 2 || bookmark.Tags[0] != "a" || bookmark.Tags[1] != "b" {
		t.Errorf("expected split tags [a b], got %v", bookmark.Tags)
	}
	if s.State() != session.StateClosed {
		t.Error("successful save must close the session")
	}
}

func TestSession_Save_Edit(t *testing.T) {
	collection := model.NewCollection()
	existing, _ := collection.Add(model.Draft{URL: "https://go.dev", Title: "Go"})

	s := session.New()
	s.OpenEdit(existing)
	draft := s.Draft()
	draft.Title = "Go Docs"
	s.SetDraft(draft)

	bookmark, err := s.Save(collection)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bookmark.ID != existing.ID {
		t.Errorf("edit must keep the id, got %q", bookmark.ID)
	}
	if collection.GetByID(existing.ID).Title != "Go Docs" {
		t.Error("collection not updated")
	}
}

func TestSession_Save_ValidationKeepsSessionOpen(t *testing.T) {
	collection := model.NewCollection()
	collection.Add(model.Draft{URL: "https://taken.com"})

	s := session.New()
	s.OpenCreate()
	s.SetDraft(session.Draft{URL: "   "})
	if _, err := s.Save(collection); !errors.Is(err, model.ErrInvalidURL) {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
	if s.State() != session.StateCreating {
		t.Error("failed save must keep the session open")
	}

	s.SetDraft(session.Draft{URL: "taken.com"})
	if _, err := s.Save(collection); !errors.Is(err, model.ErrDuplicateURL) {
		t.Fatalf("expected ErrDuplicateURL, got %v", err)
	}
	if s.State() != session.StateCreating {
		t.Error("duplicate rejection must keep the session open")
	}
}

func TestSession_Save_ClosedSession(t *testing.T) {
	collection := model.NewCollection()
	s := session.New()

	if _, err := s.Save(collection); !errors.Is(err, session.ErrNoOpenSession) {
		t.Fatalf("expected ErrNoOpenSession, got %v", err)
	}
	if len(collection.Bookmarks) != 0 {
		t.Error("closed session save must not touch the collection")
	}

	// The same holds after a form has been opened and closed again
	s.OpenCreate()
	s.SetDraft(session.Draft{URL: "go.dev"})
	s.Cancel()
	if _, err := s.Save(collection); !errors.Is(err, session.ErrNoOpenSession) {
		t.Fatalf("expected ErrNoOpenSession after cancel, got %v", err)
	}
}

func TestSession_Enrichment_OnlyWhileCreating(t *testing.T) {
	s := session.New()

	if _, ok := s.BeginEnrichment(); ok {
		t.Error("closed session must not enrich")
	}

	s.OpenEdit(model.Bookmark{ID: "b1", URL: "https://go.dev"})
	if _, ok := s.BeginEnrichment(); ok {
		t.Error("editing must never auto-enrich")
	}

	s.OpenCreate()
	if _, ok := s.BeginEnrichment(); ok {
		t.Error("empty url must not enrich")
	}

	s.SetDraft(session.Draft{URL: "go.dev"})
	if _, ok := s.BeginEnrichment(); !ok {
		t.Error("creating with a url must enrich")
	}
	if !s.Enriching() {
		t.Error("expected in-flight flag")
	}
}

func TestSession_ApplyEnrichment_MergesNonEmptyFields(t *testing.T) {
	s := session.New()
	s.OpenCreate()
	s.SetDraft(session.Draft{URL: "go.dev", Title: "typed by hand", Notes: "keep me"})
	generation, _ := s.BeginEnrichment()

	ok := s.ApplyEnrichment(generation, enrich.Result{
		URL:     "https://go.dev",
		Title:   "The Go Programming Language",
		Favicon: "https://go.dev/favicon.ico",
	})
	if !ok {
		t.Fatal("expected result to apply")
	}

	draft := s.Draft()
	if draft.URL != "https://go.dev" {
		t.Errorf("expected normalized url, got %q", draft.URL)
	}
	if draft.Title != "The Go Programming Language" {
		t.Errorf("expected looked-up title, got %q", draft.Title)
	}
	if draft.Notes != "keep me" {
		t.Error("fields outside the result must be untouched")
	}
	if s.Enriching() {
		t.Error("apply must clear the in-flight flag")
	}

	// Empty result fields leave the draft values alone
	generation, _ = s.BeginEnrichment()
	s.ApplyEnrichment(generation, enrich.Result{URL: "https://go.dev"})
	if s.Draft().Title != "The Go Programming Language" {
		t.Error("empty title in result must not clear the draft title")
	}
}

func TestSession_ApplyEnrichment_DiscardsStale(t *testing.T) {
	s := session.New()
	s.OpenCreate()
	s.SetDraft(session.Draft{URL: "go.dev"})
	stale, _ := s.BeginEnrichment()

	// A second lookup supersedes the first
	fresh, _ := s.BeginEnrichment()

	if s.ApplyEnrichment(stale, enrich.Result{URL: "https://old.dev", Title: "Old"}) {
		t.Error("stale generation must be discarded")
	}
	if s.Draft().Title != "" {
		t.Error("stale result leaked into the draft")
	}
	if !s.ApplyEnrichment(fresh, enrich.Result{URL: "https://go.dev", Title: "New"}) {
		t.Error("fresh generation must apply")
	}
}

func TestSession_ApplyEnrichment_DiscardsAfterClose(t *testing.T) {
	s := session.New()
	s.OpenCreate()
	s.SetDraft(session.Draft{URL: "go.dev"})
	generation, _ := s.BeginEnrichment()

	s.Cancel()
	if s.ApplyEnrichment(generation, enrich.Result{URL: "https://go.dev", Title: "Late"}) {
		t.Error("result landing after cancel must be discarded")
	}

	// Reopening starts a fresh generation; the old one stays dead
	s.OpenCreate()
	if s.ApplyEnrichment(generation, enrich.Result{URL: "https://go.dev", Title: "Late"}) {
		t.Error("result from a previous form instance must be discarded")
	}
	if s.Draft().Title != "" {
		t.Error("discarded result modified the draft")
	}
}

func TestSession_FailEnrichment(t *testing.T) {
	s := session.New()
	s.OpenCreate()
	s.SetDraft(session.Draft{URL: "go.dev"})
	generation, _ := s.BeginEnrichment()

	s.FailEnrichment(generation)
	if s.Enriching() {
		t.Error("fail must clear the in-flight flag")
	}

	// Stale failure notifications are ignored
	fresh, _ := s.BeginEnrichment()
	s.FailEnrichment(generation)
	if !s.Enriching() {
		t.Error("stale failure must not clear a newer lookup")
	}
	s.FailEnrichment(fresh)
	if s.Enriching() {
		t.Error("current failure must clear the flag")
	}
}

func TestSplitTags(t *testing.T) {
	got := session.SplitTags(" go ,, tui , ")
	if len(got) != 2 || got[0] != "go" || got[1] != "tui" {
		t.Errorf("expected [go tui], got %v", got)
	}
	if got := session.SplitTags(""); len(got) != 0 {
		t.Errorf("expected no tags, got %v", got)
	}
}
