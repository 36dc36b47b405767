package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Store defines the interface for recipe data operations. LoadAll returns an
// independent snapshot of the collection; Append assigns the next unique id
// and a creation timestamp before persisting.
type Store interface {
	LoadAll(ctx context.Context) ([]Recipe, error)
	Append(ctx context.Context, r *Recipe) error
}

// FileStore keeps the collection in a single human-readable JSON document.
// Appends are a mutex-guarded read-modify-write; the document is rewritten
// through a temp file + rename so readers never observe a partial write.
type FileStore struct {
	path string
	mu   sync.RWMutex
}

// NewFileStore opens the collection at path, seeding it with the starter
// recipes when no file exists yet.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.write(Seed()); err != nil {
			return nil, fmt.Errorf("failed to seed recipe collection: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat recipe collection: %w", err)
	}
	return s, nil
}

// LoadAll reads and parses the whole collection. Every call re-reads the
// file, so callers always see the current state and own their snapshot.
func (s *FileStore) LoadAll(ctx context.Context) ([]Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe collection: %w", err)
	}

	var recipes []Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("failed to parse recipe collection: %w", err)
	}
	return recipes, nil
}

// Append assigns r the next id (max existing + 1) and a creation timestamp,
// then rewrites the collection with r added. The lock serializes the
// load-then-append sequence so concurrent appends cannot race the next id.
func (s *FileStore) Append(ctx context.Context, r *Recipe) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read recipe collection: %w", err)
	}
	var recipes []Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return fmt.Errorf("failed to parse recipe collection: %w", err)
	}

	maxID := 0
	for _, existing := range recipes {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	r.ID = maxID + 1
	now := time.Now().UTC()
	r.CreatedAt = &now

	recipes = append(recipes, *r)
	if err := s.write(recipes); err != nil {
		return fmt.Errorf("failed to save recipe collection: %w", err)
	}
	return nil
}

// write marshals the collection and atomically replaces the document.
func (s *FileStore) write(recipes []Recipe) error {
	data, err := json.MarshalIndent(recipes, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".recipes-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
