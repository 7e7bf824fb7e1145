package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cuedeck/internal/deck"
)

// importFixture imports a two-section script and returns the deck path.
func importFixture(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)

	src := filepath.Join(tmp, "talk.txt")
	if err := os.WriteFile(src, []byte(buildScript(2)), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(tmp, "talk.deck.json")
	if _, err := executeCommand(rootCmd, "import", src, "--out", out); err != nil {
		t.Fatalf("import: %v", err)
	}
	return out
}

// TestTranslateEmitWritesRequest verifies that --emit produces one record per
// slide, carrying the slide ids.
func TestTranslateEmitWritesRequest(t *testing.T) {
	t.Cleanup(func() { translateEmit = false; translateOut = "" })
	deckPath := importFixture(t)

	reqPath := filepath.Join(filepath.Dir(deckPath), "request.json")
	out, err := executeCommand(rootCmd, "translate", deckPath, "--emit", "--out", reqPath)
	if err != nil {
		t.Fatalf("translate --emit: %v", err)
	}
	if !strings.Contains(out, "Wrote translation request for 3 slides") {
		t.Errorf("unexpected output: %q", out)
	}

	data, err := os.ReadFile(reqPath)
	if err != nil {
		t.Fatal(err)
	}
	var items []deck.Translation
	if err := json.Unmarshal(data, &items); err != nil {
		t.Fatalf("request is not valid JSON: %v", err)
	}

	d, err := deck.NewDeckStore(deckPath).Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != len(d.Slides) {
		t.Fatalf("request has %d records for %d slides", len(items), len(d.Slides))
	}
	for i := range items {
		if items[i].ID != d.Slides[i].ID {
			t.Errorf("record %d id mismatch: got %q, want %q", i, items[i].ID, d.Slides[i].ID)
		}
		if items[i].Title == nil || items[i].Body == nil {
			t.Errorf("record %d carries null fields", i)
		}
	}
}

// TestTranslateApplyUpdatesDeck verifies the round trip back into the deck.
func TestTranslateApplyUpdatesDeck(t *testing.T) {
	deckPath := importFixture(t)
	store := deck.NewDeckStore(deckPath)

	d, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	items := d.TranslationRequest()
	for i := range items {
		title := "übersetzt: " + *items[i].Title
		items[i].Title = &title
	}
	data, err := json.Marshal(items)
	if err != nil {
		t.Fatal(err)
	}
	transPath := filepath.Join(filepath.Dir(deckPath), "translated.json")
	if err := os.WriteFile(transPath, data, 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := executeCommand(rootCmd, "translate", deckPath, transPath)
	if err != nil {
		t.Fatalf("translate apply: %v", err)
	}
	if !strings.Contains(out, "Applied 3 translations.") {
		t.Errorf("unexpected output: %q", out)
	}

	d, err = store.Load()
	if err != nil {
		t.Fatal(err)
	}
	for i := range d.Slides {
		if !strings.HasPrefix(d.Slides[i].Title, "übersetzt: ") {
			t.Errorf("slide %d title not replaced: %q", i, d.Slides[i].Title)
		}
	}
}

// TestTranslateApplyAllOrNothing verifies that a bad record leaves the saved
// deck byte-identical.
func TestTranslateApplyAllOrNothing(t *testing.T) {
	deckPath := importFixture(t)

	d, err := deck.NewDeckStore(deckPath).Load()
	if err != nil {
		t.Fatal(err)
	}
	items := d.TranslationRequest()
	items[len(items)-1].ID = "no-such-slide"
	data, err := json.Marshal(items)
	if err != nil {
		t.Fatal(err)
	}
	transPath := filepath.Join(filepath.Dir(deckPath), "broken.json")
	if err := os.WriteFile(transPath, data, 0o644); err != nil {
		t.Fatal(err)
	}

	before, err := os.ReadFile(deckPath)
	if err != nil {
		t.Fatal(err)
	}

	_, err = executeCommand(rootCmd, "translate", deckPath, transPath)
	if err == nil {
		t.Fatal("expected an error for an unknown slide id, got nil")
	}
	if !strings.Contains(err.Error(), "unknown slide id") {
		t.Errorf("expected the offending id to be named, got: %v", err)
	}

	after, err := os.ReadFile(deckPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("failed apply still rewrote the deck file")
	}
}

// TestTranslateNeedsInputOrEmit verifies the usage error without a
// translations file.
func TestTranslateNeedsInputOrEmit(t *testing.T) {
	deckPath := importFixture(t)

	_, err := executeCommand(rootCmd, "translate", deckPath)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if !strings.Contains(err.Error(), "nothing to apply") {
		t.Errorf("expected a nothing-to-apply error, got: %v", err)
	}
}
