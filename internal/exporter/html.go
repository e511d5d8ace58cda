package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nbrandt/linkstash/internal/model"
)

// DefaultHTMLExportPath returns the default HTML export file path.
// Format: ~/Downloads/bookmarks-export-YYYY-MM-DD.html
func DefaultHTMLExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("bookmarks-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML exports the collection to Netscape bookmark HTML format,
// one folder per category in first-seen order.
func ExportHTML(collection *model.Collection) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, category := range categoriesInOrder(collection) {
		fmt.Fprintf(&b, "    <DT><H3>%s</H3>\n", html.EscapeString(string(category)))
		b.WriteString("    <DL><p>\n")

		for _, bookmark := range collection.Bookmarks {
			if effectiveCategory(bookmark) != category {
				continue
			}
			writeBookmark(&b, bookmark)
		}

		b.WriteString("    </DL><p>\n")
	}

	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeBookmark(b *strings.Builder, bookmark model.Bookmark) {
	fmt.Fprintf(b,
		"        <DT><A HREF=\"%s\" ADD_DATE=\"%d\">%s</A>\n",
		html.EscapeString(bookmark.URL),
		bookmark.CreatedAt.Unix(),
		html.EscapeString(bookmark.Title),
	)
}

func effectiveCategory(bookmark model.Bookmark) model.Category {
	if bookmark.Category == "" {
		return model.CategoryUncategorized
	}
	return bookmark.Category
}

// categoriesInOrder returns the categories present in the collection in
// first-seen order.
func categoriesInOrder(collection *model.Collection) []model.Category {
	seen := make(map[model.Category]bool)
	var categories []model.Category
	for _, bookmark := range collection.Bookmarks {
		category := effectiveCategory(bookmark)
		if !seen[category] {
			seen[category] = true
			categories = append(categories, category)
		}
	}
	return categories
}
