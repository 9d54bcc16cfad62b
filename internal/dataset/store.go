// Package dataset persists the accumulated icon metadata as a single
// pretty-printed JSON array file. The file is the hand-off point between
// the generation pipeline and the bulk loader.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrCorrupt marks a dataset file that exists but cannot be parsed.
// A missing file is not corrupt; Load treats it as an empty dataset.
var ErrCorrupt = errors.New("dataset file is corrupt")

// Record is one icon's metadata plus its embedding vector. Name is the
// primary key; a record is never overwritten once present.
type Record struct {
	Name        string    `json:"name"`
	CommonNames []string  `json:"commonnames"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Categories  []string  `json:"categories"`
	Library     string    `json:"library"`
	Embedding   []float32 `json:"embedding,omitempty"`
}

// Store reads and writes the dataset file.
type Store struct {
	path string
}

// NewStore binds a store to a dataset file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the dataset file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the records in the dataset file. An absent file yields an
// empty dataset; a file that exists but fails to parse yields an error
// wrapping ErrCorrupt rather than an empty result.
func (s *Store) Load() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	return records, nil
}

// Save overwrites the dataset file with the full record sequence,
// pretty-printed. The write goes to a temp file in the same directory
// followed by a rename, so a crash mid-write never corrupts the dataset.
func (s *Store) Save(records []Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".dataset-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp dataset: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp dataset: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace dataset: %w", err)
	}
	return nil
}

// Contains reports whether a record with the given name is present.
func Contains(records []Record, name string) bool {
	for i := range records {
		if records[i].Name == name {
			return true
		}
	}
	return false
}
