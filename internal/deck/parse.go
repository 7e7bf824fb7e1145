package deck

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// DeckParser deserializes an exported deck file back into the document model.
type DeckParser interface {
	Parse(data []byte) (*Deck, error)
}

// JSONParser parses a JSON-encoded Deck.
type JSONParser struct{}

func (p *JSONParser) Parse(data []byte) (*Deck, error) {
	var d Deck
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse JSON deck: %w", err)
	}
	return &d, nil
}

// MarkdownParser parses a Markdown-rendered Deck by extracting the embedded
// base64 JSON payload from the sentinel comments.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(data []byte) (*Deck, error) {
	content := string(data)

	// Require the version sentinel.
	if !strings.Contains(content, "<!-- cuedeck-deck-version: 1 -->") {
		return nil, fmt.Errorf("not a valid cuedeck export: missing version sentinel")
	}

	// Extract the base64 payload from <!-- cuedeck-data: <base64> -->.
	const prefix = "<!-- cuedeck-data: "
	const suffix = " -->"
	start := strings.Index(content, prefix)
	if start == -1 {
		return nil, fmt.Errorf("not a valid cuedeck export: missing data payload")
	}
	start += len(prefix)
	end := strings.Index(content[start:], suffix)
	if end == -1 {
		return nil, fmt.Errorf("not a valid cuedeck export: malformed data payload")
	}
	encoded := content[start : start+end]

	jsonBytes, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("not a valid cuedeck export: corrupted base64 payload: %w", err)
	}

	var d Deck
	if err := json.Unmarshal(jsonBytes, &d); err != nil {
		return nil, fmt.Errorf("not a valid cuedeck export: failed to parse embedded JSON: %w", err)
	}
	return &d, nil
}

// YAMLParser parses a scenario-file export back into a Deck. Timestamps are
// not part of the scenario shape and come back zero.
type YAMLParser struct{}

func (p *YAMLParser) Parse(data []byte) (*Deck, error) {
	var doc scenarioDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML scenario: %w", err)
	}
	if doc.Version == "" {
		return nil, fmt.Errorf("not a valid cuedeck scenario: missing version")
	}

	d := Deck{
		Title:      doc.Title,
		SourcePath: doc.Source,
		Slides:     make([]Slide, 0, len(doc.Slides)),
	}
	for _, ss := range doc.Slides {
		s := Slide{
			ID:           ss.ID,
			Index:        ss.Index,
			Kind:         SlideKind(ss.Kind),
			Title:        ss.Title,
			Body:         ss.Body,
			StartTimeSec: ss.Start,
			DurationSec:  ss.Duration,
			Style:        StyleRef(ss.Style),
		}
		for _, sf := range ss.Fragments {
			s.Fragments = append(s.Fragments, Fragment{
				Title:       sf.Title,
				Body:        sf.Body,
				DelaySec:    sf.Delay,
				DurationSec: sf.Duration,
				Position:    sf.Position,
			})
		}
		d.Slides = append(d.Slides, s)
	}
	return &d, nil
}
