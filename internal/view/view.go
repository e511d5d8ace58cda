// Package view turns the bookmark collection into the ordered, filtered
// list the UI displays. Everything in here is pure: the source slice is
// never mutated and identical inputs produce identical output.
package view

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/nbrandt/linkstash/internal/model"
)

// Sentinel categories prepended to every category enumeration.
const (
	FilterAll       = "all"
	FilterFavorites = "favorites"
)

// SortMode selects the ordering of the derived view.
type SortMode string

const (
	SortDateDesc SortMode = "date-desc"
	SortDateAsc  SortMode = "date-asc"
	SortAlpha    SortMode = "alpha"
)

// NextSortMode cycles date-desc -> date-asc -> alpha -> date-desc.
// Used by the sort keybinding.
func NextSortMode(mode SortMode) SortMode {
	switch mode {
	case SortDateDesc:
		return SortDateAsc
	case SortDateAsc:
		return SortAlpha
	default:
		return SortDateDesc
	}
}

var titleCollator = collate.New(language.Und, collate.IgnoreCase)

// Apply runs the filter -> search -> sort pipeline over a snapshot of the
// collection. category is FilterAll, FilterFavorites, or an exact
// case-sensitive category name. An unrecognized sort mode leaves the
// filtered order unchanged.
func Apply(bookmarks []model.Bookmark, category, query string, mode SortMode) []model.Bookmark {
	result := make([]model.Bookmark, 0, len(bookmarks))

	query = strings.ToLower(strings.TrimSpace(query))
	for _, b := range bookmarks {
		if !matchesCategory(b, category) {
			continue
		}
		if query != "" && !matchesQuery(b, query) {
			continue
		}
		result = append(result, b)
	}

	switch mode {
	case SortDateDesc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	case SortDateAsc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		})
	case SortAlpha:
		sort.SliceStable(result, func(i, j int) bool {
			return titleCollator.CompareString(result[i].Title, result[j].Title) < 0
		})
	}

	return result
}

func matchesCategory(b model.Bookmark, category string) bool {
	switch category {
	case FilterAll, "":
		return true
	case FilterFavorites:
		return b.IsFavorite
	default:
		return string(b.Category) == category
	}
}

// matchesQuery reports whether the lowercased query is a substring of
// the bookmark's title, URL, any tag, or description.
func matchesQuery(b model.Bookmark, query string) bool {
	if strings.Contains(strings.ToLower(b.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(b.URL), query) {
		return true
	}
	for _, tag := range b.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return b.Description != "" && strings.Contains(strings.ToLower(b.Description), query)
}

// Categories returns the filter chip entries: "all" and "favorites"
// first, then the union of recognized categories and every category
// present in the collection, deduplicated and sorted.
func Categories(bookmarks []model.Bookmark) []string {
	seen := make(map[string]bool)
	var names []string

	for _, c := range model.RecognizedCategories() {
		if !seen[string(c)] {
			seen[string(c)] = true
			names = append(names, string(c))
		}
	}
	for _, b := range bookmarks {
		if b.Category != "" && !seen[string(b.Category)] {
			seen[string(b.Category)] = true
			names = append(names, string(b.Category))
		}
	}

	sort.Strings(names)

	return append([]string{FilterAll, FilterFavorites}, names...)
}
