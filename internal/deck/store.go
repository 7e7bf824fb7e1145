package deck

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoDeck is returned by Load when no deck file exists at the store's path.
var ErrNoDeck = errors.New("no such deck")

// DeckStore persists a Deck document to disk.
type DeckStore interface {
	Save(d *Deck) error
	Load() (*Deck, error) // returns ErrNoDeck if none exists
}

// diskStore is the concrete DeckStore bound to one file path.
type diskStore struct {
	path string
}

// NewDeckStore returns a DeckStore that reads and writes the given file.
func NewDeckStore(path string) DeckStore {
	return &diskStore{path: path}
}

// Save marshals d to JSON and writes it atomically via a temp file + os.Rename,
// creating the parent directory if needed.
func (ds *diskStore) Save(d *Deck) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to persist deck: %w", err)
	}

	dir := filepath.Dir(ds.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to persist deck: %w", err)
	}

	// Write to a temp file in the same directory so os.Rename is atomic.
	tmp, err := os.CreateTemp(dir, "deck-*.json.tmp")
	if err != nil {
		return fmt.Errorf("failed to persist deck: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up the temp file on any error path.
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to persist deck: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to persist deck: %w", err)
	}

	if err = os.Rename(tmpName, ds.path); err != nil {
		return fmt.Errorf("failed to persist deck: %w", err)
	}
	return nil
}

// Load reads and unmarshals the deck file.
// Returns ErrNoDeck if the file does not exist.
func (ds *diskStore) Load() (*Deck, error) {
	data, err := os.ReadFile(ds.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoDeck
		}
		return nil, fmt.Errorf("failed to read deck: %w", err)
	}

	var d Deck
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse deck file %s: %w", ds.path, err)
	}
	return &d, nil
}
