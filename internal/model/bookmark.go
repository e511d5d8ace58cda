package model

import "time"

// Bookmark represents a saved URL with metadata.
type Bookmark struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    Category  `json:"category"`
	Tags        []string  `json:"tags"`
	Notes       string    `json:"notes,omitempty"`
	Image       string    `json:"image,omitempty"`
	Favicon     string    `json:"favicon,omitempty"`
	IsFavorite  bool      `json:"isFavorite"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Draft holds the editable field values for creating or updating a Bookmark.
// URL is expected to be normalized before it reaches the collection.
type Draft struct {
	URL         string
	Title       string
	Description string
	Category    Category
	Tags        []string
	Notes       string
	Image       string
	Favicon     string
}

// NewBookmark creates a Bookmark from a draft with a generated UUID and
// creation timestamp. Title falls back to the URL's host, category to
// Uncategorized.
func NewBookmark(draft Draft) Bookmark {
	return Bookmark{
		ID:          GenerateUUID(),
		URL:         draft.URL,
		Title:       draft.titleOrHost(),
		Description: draft.Description,
		Category:    draft.categoryOrDefault(),
		Tags:        CleanTags(draft.Tags),
		Notes:       draft.Notes,
		Image:       draft.Image,
		Favicon:     draft.Favicon,
		IsFavorite:  false,
		CreatedAt:   time.Now(),
	}
}

func (d Draft) titleOrHost() string {
	if d.Title != "" {
		return d.Title
	}
	return HostOf(d.URL)
}

func (d Draft) categoryOrDefault() Category {
	if d.Category == "" {
		return CategoryUncategorized
	}
	return d.Category
}
