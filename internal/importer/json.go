// Package importer parses external bookmark files: our own JSON export
// format and the Netscape bookmark HTML that browsers produce.
package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/nbrandt/linkstash/internal/model"
)

// ErrInvalidFormat is returned when the import payload is not a JSON
// array of bookmarks.
var ErrInvalidFormat = errors.New("import file must contain a JSON array of bookmarks")

// ParseJSONBookmarks parses a JSON export into bookmarks. The payload
// must be a top-level array; any other shape is rejected before record
// validation so the caller can report a format error distinctly from a
// parse error.
func ParseJSONBookmarks(r io.Reader) ([]model.Bookmark, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}

	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse import file: %w", err)
	}
	if len(raw) == 0 || raw[0] != '[' {
		return nil, ErrInvalidFormat
	}

	var bookmarks []model.Bookmark
	if err := json.Unmarshal(raw, &bookmarks); err != nil {
		return nil, fmt.Errorf("parse import file: %w", err)
	}

	return bookmarks, nil
}
