package exporter_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/nbrandt/linkstash/internal/exporter"
	"github.com/nbrandt/linkstash/internal/importer"
	"github.com/nbrandt/linkstash/internal/model"
)

func testCollection() *model.Collection {
	return &model.Collection{Bookmarks: []model.Bookmark{
		{
			ID:         "b1",
			URL:        "https://go.dev",
			Title:      "Go & friends",
			Category:   model.CategoryDev,
			Tags:       []string{"lang"},
			Notes:      "reference",
			IsFavorite: true,
			CreatedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:        "b2",
			URL:       "https://news.site",
			Title:     "News",
			Category:  model.CategoryNews,
			Tags:      []string{},
			CreatedAt: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:        "b3",
			URL:       "https://stray.example",
			Title:     "Stray",
			Tags:      []string{},
			CreatedAt: time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC),
		},
	}}
}

func TestExportJSON_Roundtrip(t *testing.T) {
	collection := testCollection()

	data, err := exporter.ExportJSON(collection)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	imported, err := importer.ParseJSONBookmarks(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("re-import failed: %v", err)
	}

	if len(imported) != len(collection.Bookmarks) {
		t.Fatalf("expected %d bookmarks, got %d", len(collection.Bookmarks), len(imported))
	}
	for i, b := range imported {
		w := collection.Bookmarks[i]
		if b.ID != w.ID || b.URL != w.URL || b.Title != w.Title || b.Notes != w.Notes {
			t.Errorf("bookmark %d mismatch: got %+v, want %+v", i, b, w)
		}
		if b.IsFavorite != w.IsFavorite {
			t.Errorf("bookmark %d favorite lost", i)
		}
		if !b.CreatedAt.Equal(w.CreatedAt) {
			t.Errorf("bookmark %d createdAt mismatch", i)
		}
	}
}

func TestExportJSON_EmptyCollection(t *testing.T) {
	data, err := exporter.ExportJSON(model.NewCollection())
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("expected empty array, got %q", data)
	}
}

func TestExportHTML(t *testing.T) {
	output := exporter.ExportHTML(testCollection())

	if !strings.HasPrefix(output, "<!DOCTYPE NETSCAPE-Bookmark-file-1>") {
		t.Error("missing Netscape doctype")
	}
	if !strings.Contains(output, "<H3>Dev</H3>") || !strings.Contains(output, "<H3>News</H3>") {
		t.Error("expected one folder per category")
	}
	// Empty category falls into the Uncategorized folder
	if !strings.Contains(output, "<H3>Uncategorized</H3>") {
		t.Error("expected Uncategorized folder for bookmarks without category")
	}
	if !strings.Contains(output, `ADD_DATE="1748779200"`) {
		t.Error("expected unix ADD_DATE attribute")
	}
	// Titles are HTML-escaped
	if !strings.Contains(output, "Go &amp; friends") {
		t.Error("title not escaped")
	}

	// Folders appear in first-seen order
	dev := strings.Index(output, "<H3>Dev</H3>")
	news := strings.Index(output, "<H3>News</H3>")
	if dev == -1 || news == -1 || dev > news {
		t.Error("folders not in first-seen order")
	}
}

func TestExportHTML_RoundtripThroughImporter(t *testing.T) {
	output := exporter.ExportHTML(testCollection())

	imported, err := importer.ParseHTMLBookmarks(strings.NewReader(output))
	if err != nil {
		t.Fatalf("re-import failed: %v", err)
	}

	if len(imported) != 3 {
		t.Fatalf("expected 3 bookmarks, got %d", len(imported))
	}

	byURL := make(map[string]model.Bookmark)
	for _, b := range imported {
		byURL[b.URL] = b
	}
	if got := byURL["https://go.dev"].Category; got != model.CategoryDev {
		t.Errorf("expected Dev category, got %q", got)
	}
	if got := byURL["https://stray.example"].Category; got != model.CategoryUncategorized {
		t.Errorf("expected Uncategorized, got %q", got)
	}
	if got := byURL["https://go.dev"].Title; got != "Go & friends" {
		t.Errorf("escaping did not roundtrip: %q", got)
	}
}
