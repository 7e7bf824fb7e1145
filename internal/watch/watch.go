// Package watch keeps a saved deck in sync with its source script: every
// write to the script re-parses it and folds the result back into the deck,
// preserving hand-tuned timings for content that did not change.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"cuedeck/internal/deck"
	"cuedeck/internal/script"
)

// Notify receives one progress line per sync attempt.
type Notify func(format string, args ...any)

// Sync re-reads the deck's source script once and merges the freshly parsed
// slides into the deck. Slides whose content is unchanged keep their
// identity, timing, fragments and style; new content gets parser defaults
// and the given style. The updated deck is saved back through store.
func Sync(store deck.DeckStore, style deck.StyleRef) (*deck.Deck, error) {
	d, err := store.Load()
	if err != nil {
		return nil, err
	}
	if d.SourcePath == "" {
		return nil, fmt.Errorf("deck has no source script to sync from")
	}
	data, err := os.ReadFile(d.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read source script: %w", err)
	}
	fresh := script.Parse(string(data), style)
	d.Slides = script.Resync(d.Slides, fresh)
	d.Touch()
	if err := store.Save(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Run watches the deck's source script until ctx is cancelled, resyncing on
// every Write or Create event. Sync failures are reported through notify and
// do not stop the watcher.
func Run(ctx context.Context, store deck.DeckStore, style deck.StyleRef, notify Notify) error {
	if notify == nil {
		notify = func(string, ...any) {}
	}
	d, err := store.Load()
	if err != nil {
		return err
	}
	if d.SourcePath == "" {
		return fmt.Errorf("deck has no source script to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors often replace the file on save, which orphans a watch on the
	// file itself; watching its directory survives the rename dance.
	target := filepath.Clean(d.SourcePath)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if _, err := Sync(store, style); err != nil {
				notify("sync failed: %v", err)
				continue
			}
			notify("resynced from %s", target)

		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			// Watcher errors are non-fatal; keep watching.
		}
	}
}
