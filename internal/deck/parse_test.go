package deck_test

import (
	"strings"
	"testing"

	"cuedeck/internal/deck"
)

// Unit tests for parser error conditions.

func TestMarkdownParserPlainMarkdownWithoutSentinel(t *testing.T) {
	p := &deck.MarkdownParser{}

	plain := `# Some Document

Just a regular Markdown file with no cuedeck sentinel.

## Section

- item 1
- item 2
`
	_, err := p.Parse([]byte(plain))
	if err == nil {
		t.Fatal("expected error for plain Markdown without sentinel, got nil")
	}
	if !strings.Contains(err.Error(), "not a valid cuedeck export") {
		t.Errorf("expected error to mention an invalid export, got: %q", err.Error())
	}
}

func TestMarkdownParserCorruptedPayload(t *testing.T) {
	p := &deck.MarkdownParser{}

	corrupted := `<!-- cuedeck-deck-version: 1 -->
<!-- cuedeck-data: !!!not-valid-base64!!! -->

# Talk
`
	_, err := p.Parse([]byte(corrupted))
	if err == nil {
		t.Fatal("expected error for a corrupted base64 payload, got nil")
	}
	if !strings.Contains(err.Error(), "not a valid cuedeck export") {
		t.Errorf("expected error to mention an invalid export, got: %q", err.Error())
	}
}

func TestMarkdownParserMissingDataPayload(t *testing.T) {
	p := &deck.MarkdownParser{}

	noData := `<!-- cuedeck-deck-version: 1 -->

# Talk

Header but no payload.
`
	_, err := p.Parse([]byte(noData))
	if err == nil {
		t.Fatal("expected error for a missing data payload, got nil")
	}
	if !strings.Contains(err.Error(), "missing data payload") {
		t.Errorf("expected error to name the missing payload, got: %q", err.Error())
	}
}

func TestJSONParserRejectsGarbage(t *testing.T) {
	_, err := (&deck.JSONParser{}).Parse([]byte("{slides: ["))
	if err == nil {
		t.Fatal("expected error for malformed JSON, got nil")
	}
}

func TestYAMLParserRequiresVersion(t *testing.T) {
	doc := `title: Untagged
slides: []
`
	_, err := (&deck.YAMLParser{}).Parse([]byte(doc))
	if err == nil {
		t.Fatal("expected error for a scenario without a version, got nil")
	}
	if !strings.Contains(err.Error(), "missing version") {
		t.Errorf("expected error to name the missing version, got: %q", err.Error())
	}
}
