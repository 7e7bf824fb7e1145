package deck

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// DeckRenderer serializes a Deck to bytes for sharing or downstream tooling.
type DeckRenderer interface {
	Render(d *Deck) ([]byte, error)
}

// JSONRenderer renders a Deck as indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(d *Deck) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// MarkdownRenderer renders a Deck as a human-readable timing sheet with an
// embedded base64 JSON payload for lossless round-trip parsing. Author, when
// set, is credited in the summary; it is presentation only and not part of
// the payload.
type MarkdownRenderer struct {
	Author string
}

func (r *MarkdownRenderer) Render(d *Deck) ([]byte, error) {
	// Marshal the deck to JSON and base64-encode it for the embedded payload.
	jsonBytes, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal deck: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(jsonBytes)

	var sb strings.Builder

	// Sentinel and embedded payload.
	sb.WriteString("<!-- cuedeck-deck-version: 1 -->\n")
	fmt.Fprintf(&sb, "<!-- cuedeck-data: %s -->\n\n", encoded)

	// Title.
	fmt.Fprintf(&sb, "# %s\n\n", d.Title)

	// ## Summary
	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "- Slides: %d\n", len(d.Slides))
	fmt.Fprintf(&sb, "- Runtime: %.1fs\n", d.End())
	if r.Author != "" {
		fmt.Fprintf(&sb, "- Author: %s\n", r.Author)
	}
	if d.SourcePath != "" {
		fmt.Fprintf(&sb, "- Source: %s\n", d.SourcePath)
	}
	if !d.UpdatedAt.IsZero() {
		fmt.Fprintf(&sb, "- Updated: %s\n", d.UpdatedAt.Format("2006-01-02 15:04:05 MST"))
	}
	sb.WriteString("\n")

	// ## Timing
	sb.WriteString("## Timing\n\n")
	if len(d.Slides) == 0 {
		sb.WriteString("_No slides._\n")
	} else {
		sb.WriteString("| # | Start | Duration | Type | Title |\n")
		sb.WriteString("|---|-------|----------|------|-------|\n")
		for i := range d.Slides {
			s := &d.Slides[i]
			fmt.Fprintf(&sb, "| %d | %.1fs | %.1fs | %s | %s |\n",
				s.Index+1, s.StartTimeSec, s.DurationSec, s.Kind, escapePipes(s.Title))
		}
	}
	sb.WriteString("\n")

	// ## Slides
	sb.WriteString("## Slides\n\n")
	for i := range d.Slides {
		s := &d.Slides[i]
		fmt.Fprintf(&sb, "### %d. %s  (%.1fs – %.1fs)\n\n",
			s.Index+1, s.Title, s.StartTimeSec, s.End())
		if s.Body != "" {
			sb.WriteString(s.Body)
			if !strings.HasSuffix(s.Body, "\n") {
				sb.WriteString("\n")
			}
			sb.WriteString("\n")
		}
		if len(s.Fragments) > 0 {
			sb.WriteString("Fragments:\n\n")
			for _, f := range s.Fragments {
				window := "to end"
				if f.DurationSec > 0 {
					window = fmt.Sprintf("%.1fs", f.DurationSec)
				}
				text := f.Title
				if f.Body != "" {
					text += " — " + f.Body
				}
				fmt.Fprintf(&sb, "- [+%.1fs, %s] %s\n", f.DelaySec, window, text)
			}
			sb.WriteString("\n")
		}
	}

	return []byte(sb.String()), nil
}

// escapePipes keeps slide titles from breaking the markdown table.
func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// scenarioDoc is the YAML export shape: a scenario file listing timed slides,
// consumable by external rendering pipelines.
type scenarioDoc struct {
	Version string          `yaml:"version"`
	Title   string          `yaml:"title"`
	Source  string          `yaml:"source,omitempty"`
	Slides  []scenarioSlide `yaml:"slides"`
}

type scenarioSlide struct {
	ID        string             `yaml:"id"`
	Index     int                `yaml:"index"`
	Kind      string             `yaml:"type"`
	Title     string             `yaml:"title"`
	Body      string             `yaml:"body,omitempty"`
	Start     float64            `yaml:"start"`
	Duration  float64            `yaml:"duration"`
	Style     string             `yaml:"style,omitempty"`
	Fragments []scenarioFragment `yaml:"fragments,omitempty"`
}

type scenarioFragment struct {
	Title    string    `yaml:"title"`
	Body     string    `yaml:"body,omitempty"`
	Delay    float64   `yaml:"delay"`
	Duration float64   `yaml:"duration"`
	Position *Position `yaml:"position,omitempty"`
}

// YAMLRenderer renders a Deck as a version-tagged scenario document.
type YAMLRenderer struct{}

func (r *YAMLRenderer) Render(d *Deck) ([]byte, error) {
	doc := scenarioDoc{
		Version: "1",
		Title:   d.Title,
		Source:  d.SourcePath,
		Slides:  make([]scenarioSlide, 0, len(d.Slides)),
	}
	for i := range d.Slides {
		s := &d.Slides[i]
		ss := scenarioSlide{
			ID:       s.ID,
			Index:    s.Index,
			Kind:     string(s.Kind),
			Title:    s.Title,
			Body:     s.Body,
			Start:    s.StartTimeSec,
			Duration: s.DurationSec,
			Style:    string(s.Style),
		}
		for _, f := range s.Fragments {
			ss.Fragments = append(ss.Fragments, scenarioFragment{
				Title:    f.Title,
				Body:     f.Body,
				Delay:    f.DelaySec,
				Duration: f.DurationSec,
				Position: f.Position,
			})
		}
		doc.Slides = append(doc.Slides, ss)
	}
	return yaml.Marshal(&doc)
}
