package search

import (
	"fmt"

	"github.com/sahilm/fuzzy"

	"github.com/nbrandt/linkstash/internal/model"
)

// Result represents a fuzzy search match.
type Result struct {
	Bookmark       *model.Bookmark
	MatchedIndexes []int
	Score          int
}

// bookmarkSource implements fuzzy.Source, matching against title and URL.
type bookmarkSource []*model.Bookmark

func (bs bookmarkSource) String(i int) string {
	return fmt.Sprintf("%s %s", bs[i].Title, bs[i].URL)
}

func (bs bookmarkSource) Len() int {
	return len(bs)
}

// FuzzySearch searches all bookmarks by title and URL using fuzzy
// matching. Returns results sorted by match score (best first). This is
// the quick-launch path; the in-app list filter uses substring matching
// instead (see the view package).
func FuzzySearch(collection *model.Collection, query string) []Result {
	if query == "" {
		return nil
	}

	bookmarks := make(bookmarkSource, len(collection.Bookmarks))
	for i := range collection.Bookmarks {
		bookmarks[i] = &collection.Bookmarks[i]
	}

	matches := fuzzy.FindFrom(query, bookmarks)

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Bookmark:       bookmarks[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
