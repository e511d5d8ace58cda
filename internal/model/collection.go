package model

import "errors"

var (
	// ErrDuplicateURL is returned by Add and Update when another bookmark
	// already owns the URL.
	ErrDuplicateURL = errors.New("a bookmark with this URL already exists")

	// ErrNotFound is returned by Update when the id does not exist.
	ErrNotFound = errors.New("bookmark not found")

	// ErrInvalidBookmark is returned by ReplaceAll when a record is
	// missing a resolvable URL.
	ErrInvalidBookmark = errors.New("bookmark record is missing a URL")

	// ErrDuplicateID is returned by ReplaceAll when two records carry
	// the same id.
	ErrDuplicateID = errors.New("duplicate bookmark id")
)

// Collection holds all bookmarks. It is the single authoritative list;
// all mutations go through its methods.
type Collection struct {
	Bookmarks []Bookmark `json:"bookmarks"`
}

// NewCollection creates an empty Collection with an initialized slice.
func NewCollection() *Collection {
	return &Collection{Bookmarks: []Bookmark{}}
}

// GetByID finds a bookmark by ID, returns nil if not found.
func (c *Collection) GetByID(id string) *Bookmark {
	for i := range c.Bookmarks {
		if c.Bookmarks[i].ID == id {
			return &c.Bookmarks[i]
		}
	}
	return nil
}

// HasURL reports whether any bookmark other than excludeID owns the URL.
// Pass an empty excludeID to check against the whole collection.
func (c *Collection) HasURL(url, excludeID string) bool {
	for i := range c.Bookmarks {
		if c.Bookmarks[i].URL == url && c.Bookmarks[i].ID != excludeID {
			return true
		}
	}
	return false
}

// Add creates a bookmark from the draft and appends it.
// Fails with ErrDuplicateURL when the URL is already taken.
func (c *Collection) Add(draft Draft) (Bookmark, error) {
	if c.HasURL(draft.URL, "") {
		return Bookmark{}, ErrDuplicateURL
	}

	bookmark := NewBookmark(draft)
	c.Bookmarks = append(c.Bookmarks, bookmark)
	return bookmark, nil
}

// Update replaces the fields of the bookmark with the given id using the
// draft's values. CreatedAt and IsFavorite are preserved; favorite status
// only changes through ToggleFavorite. Fails with ErrDuplicateURL when a
// different bookmark owns the draft's URL.
func (c *Collection) Update(id string, draft Draft) (Bookmark, error) {
	existing := c.GetByID(id)
	if existing == nil {
		return Bookmark{}, ErrNotFound
	}

	if c.HasURL(draft.URL, id) {
		return Bookmark{}, ErrDuplicateURL
	}

	existing.URL = draft.URL
	existing.Title = draft.titleOrHost()
	existing.Description = draft.Description
	existing.Category = draft.categoryOrDefault()
	existing.Tags = CleanTags(draft.Tags)
	existing.Notes = draft.Notes
	existing.Image = draft.Image
	existing.Favicon = draft.Favicon

	return *existing, nil
}

// Remove deletes the bookmark with the given id. No-op if absent.
func (c *Collection) Remove(id string) {
	for i := range c.Bookmarks {
		if c.Bookmarks[i].ID == id {
			c.Bookmarks = append(c.Bookmarks[:i], c.Bookmarks[i+1:]...)
			return
		}
	}
}

// ToggleFavorite flips the favorite flag. No-op if absent.
func (c *Collection) ToggleFavorite(id string) {
	if b := c.GetByID(id); b != nil {
		b.IsFavorite = !b.IsFavorite
	}
}

// ReplaceAll discards the current contents and installs the given
// bookmarks wholesale. The whole operation fails and leaves the
// collection untouched when a record has no URL (ErrInvalidBookmark),
// two records share a URL (ErrDuplicateURL), or two records share an
// id (ErrDuplicateID). Records without an id get a fresh one.
func (c *Collection) ReplaceAll(bookmarks []Bookmark) error {
	urls := make(map[string]bool, len(bookmarks))
	ids := make(map[string]bool, len(bookmarks))
	for i := range bookmarks {
		if bookmarks[i].URL == "" {
			return ErrInvalidBookmark
		}
		if urls[bookmarks[i].URL] {
			return ErrDuplicateURL
		}
		urls[bookmarks[i].URL] = true
		if id := bookmarks[i].ID; id != "" {
			if ids[id] {
				return ErrDuplicateID
			}
			ids[id] = true
		}
	}

	replacement := make([]Bookmark, len(bookmarks))
	copy(replacement, bookmarks)
	for i := range replacement {
		if replacement[i].ID == "" {
			replacement[i].ID = GenerateUUID()
		}
		if replacement[i].Category == "" {
			replacement[i].Category = CategoryUncategorized
		}
		replacement[i].Tags = CleanTags(replacement[i].Tags)
	}

	c.Bookmarks = replacement
	return nil
}

// Merge appends imported bookmarks, skipping any whose URL already
// exists. Used by the HTML import path; unlike ReplaceAll the current
// contents survive.
func (c *Collection) Merge(bookmarks []Bookmark) (added, skipped int) {
	for _, b := range bookmarks {
		if b.URL == "" || c.HasURL(b.URL, "") {
			skipped++
			continue
		}
		if b.ID == "" {
			b.ID = GenerateUUID()
		}
		if b.Category == "" {
			b.Category = CategoryUncategorized
		}
		b.Tags = CleanTags(b.Tags)
		c.Bookmarks = append(c.Bookmarks, b)
		added++
	}
	return added, skipped
}

// AllTags returns every unique tag in the collection, in first-seen order.
func (c *Collection) AllTags() []string {
	seen := make(map[string]bool)
	var tags []string
	for i := range c.Bookmarks {
		for _, tag := range c.Bookmarks[i].Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	return tags
}
