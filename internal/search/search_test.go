package search_test

import (
	"testing"

	"github.com/nbrandt/linkstash/internal/model"
	"github.com/nbrandt/linkstash/internal/search"
)

func testCollection() *model.Collection {
	return &model.Collection{Bookmarks: []model.Bookmark{
		{ID: "1", URL: "https://go.dev", Title: "The Go Programming Language"},
		{ID: "2", URL: "https://charm.sh", Title: "Charm TUI Libraries"},
		{ID: "3", URL: "https://news.ycombinator.com", Title: "Hacker News"},
	}}
}

func TestFuzzySearch(t *testing.T) {
	results := search.FuzzySearch(testCollection(), "charm")

	if len(results) == 0 {
		t.Fatal("expected at least one result")
	}
	if results[0].Bookmark.ID != "2" {
		t.Errorf("expected best match id 2, got %q (%s)", results[0].Bookmark.ID, results[0].Bookmark.Title)
	}
	if len(results[0].MatchedIndexes) == 0 {
		t.Error("expected matched character indexes")
	}
}

func TestFuzzySearch_MatchesURL(t *testing.T) {
	results := search.FuzzySearch(testCollection(), "ycombinator")

	if len(results) == 0 {
		t.Fatal("expected a result from url matching")
	}
	if results[0].Bookmark.ID != "3" {
		t.Errorf("expected id 3, got %q", results[0].Bookmark.ID)
	}
}

func TestFuzzySearch_AbbreviationMatch(t *testing.T) {
	results := search.FuzzySearch(testCollection(), "gpl")

	found := false
	for _, r := range results {
		if r.Bookmark.ID == "1" {
			found = true
		}
	}
	if !found {
		t.Error("expected 'gpl' to match 'Go Programming Language'")
	}
}

func TestFuzzySearch_ScoreOrdering(t *testing.T) {
	results := search.FuzzySearch(testCollection(), "news")

	for i := 1; i < len(results); i++ {
		if results[i-1].Score < results[i].Score {
			t.Errorf("results not sorted by score: %d before %d", results[i-1].Score, results[i].Score)
		}
	}
}

func TestFuzzySearch_EmptyQuery(t *testing.T) {
	if results := search.FuzzySearch(testCollection(), ""); results != nil {
		t.Errorf("expected nil for empty query, got %d results", len(results))
	}
}

func TestFuzzySearch_NoMatch(t *testing.T) {
	if results := search.FuzzySearch(testCollection(), "xyzzy"); len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}
