package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nbrandt/linkstash/internal/model"
)

// ExportJSON serializes the full collection as one indented JSON
// document whose top level is the bookmark array. Re-importing the
// output yields a field-for-field equal collection.
func ExportJSON(collection *model.Collection) ([]byte, error) {
	bookmarks := collection.Bookmarks
	if bookmarks == nil {
		bookmarks = []model.Bookmark{}
	}
	return json.MarshalIndent(bookmarks, "", "  ")
}

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/bookmarks-export-YYYY-MM-DD.json
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("bookmarks-export-%s.json", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}
