package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/nbrandt/linkstash/internal/model"
)

// Storage defines the interface for persisting the bookmark collection.
type Storage interface {
	Load() (*model.Collection, error)
	Save(collection *model.Collection) error
}

// JSONStorage implements Storage using a single JSON file, overwritten
// wholesale on every save.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the collection from the JSON file.
// Returns an empty collection if the file doesn't exist.
func (s *JSONStorage) Load() (*model.Collection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewCollection(), nil
		}
		return nil, err
	}

	var collection model.Collection
	if err := json.Unmarshal(data, &collection); err != nil {
		return nil, err
	}

	if collection.Bookmarks == nil {
		collection.Bookmarks = []model.Bookmark{}
	}

	return &collection, nil
}

// Save writes the collection to the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(collection *model.Collection) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// DefaultConfigPath returns the default data path: ~/.config/linkstash/bookmarks.json
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "linkstash", "bookmarks.json"), nil
}

// OpenStorage opens the appropriate storage backend.
// Prefers SQLite if the database file exists, otherwise falls back to JSON.
func OpenStorage() (Storage, error) {
	sqlitePath, err := DefaultSQLitePath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(sqlitePath); err == nil {
		return NewSQLiteStorage(sqlitePath)
	}

	jsonPath, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return NewJSONStorage(jsonPath), nil
}
