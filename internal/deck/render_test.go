package deck_test

import (
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"cuedeck/internal/deck"
)

// Feature: cuedeck, Property 10: Markdown deck completeness
func TestMarkdownDeckCompleteness(t *testing.T) {
	renderer := &deck.MarkdownRenderer{}

	rapid.Check(t, func(t *rapid.T) {
		d := generateDeck(t)

		out, err := renderer.Render(d)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		md := string(out)

		for _, section := range []string{
			"<!-- cuedeck-deck-version: 1 -->",
			"## Summary",
			"## Timing",
			"## Slides",
		} {
			if !strings.Contains(md, section) {
				t.Errorf("markdown output missing %q", section)
			}
		}
		if want := fmt.Sprintf("- Slides: %d\n", len(d.Slides)); !strings.Contains(md, want) {
			t.Errorf("markdown output missing slide count %q", want)
		}
		if len(d.Slides) == 0 {
			if !strings.Contains(md, "_No slides._") {
				t.Errorf("empty deck should render the no-slides marker")
			}
			return
		}

		for i := range d.Slides {
			s := &d.Slides[i]
			if !strings.Contains(md, s.Title) {
				t.Errorf("markdown output missing slide title %q", s.Title)
			}
			if s.Body != "" && !strings.Contains(md, s.Body) {
				t.Errorf("markdown output missing slide body %q", s.Body)
			}
			row := fmt.Sprintf("| %.1fs | %.1fs |", s.StartTimeSec, s.DurationSec)
			if !strings.Contains(md, row) {
				t.Errorf("timing table missing row %q", row)
			}
			for _, f := range s.Fragments {
				if !strings.Contains(md, f.Title) {
					t.Errorf("markdown output missing fragment title %q", f.Title)
				}
				if f.DurationSec == 0 && !strings.Contains(md, "to end") {
					t.Errorf("to-slide-end fragment window not rendered")
				}
			}
		}
	})
}

// Feature: cuedeck, Property 11: Markdown deck round-trip
func TestMarkdownDeckRoundTrip(t *testing.T) {
	renderer := &deck.MarkdownRenderer{}
	parser := &deck.MarkdownParser{}

	rapid.Check(t, func(t *rapid.T) {
		original := generateDeck(t)

		out, err := renderer.Render(original)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		parsed, err := parser.Parse(out)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		assertSameDeck(t, original, parsed)
	})
}

// Unit tests for the JSON and YAML export shapes.

func TestJSONExportRoundTrip(t *testing.T) {
	d := deck.New("Quarterly Review")
	s := d.AddSlide("dark")
	s.SetContent("Numbers", "revenue is up and costs are down")
	s.StartTimeSec = 1.5
	s.DurationSec = 4

	out, err := (&deck.JSONRenderer{}).Render(d)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	parsed, err := (&deck.JSONParser{}).Parse(out)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.ID != d.ID || parsed.Title != d.Title {
		t.Errorf("identity lost: got %q/%q", parsed.ID, parsed.Title)
	}
	if len(parsed.Slides) != 1 {
		t.Fatalf("want 1 slide, got %d", len(parsed.Slides))
	}
	got := parsed.Slides[0]
	if got.Title != "Numbers" || got.Kind != deck.KindTitleBody {
		t.Errorf("slide content lost: %+v", got)
	}
	if got.StartTimeSec != 1.5 || got.DurationSec != 4 {
		t.Errorf("slide timing lost: %+v", got)
	}
	if got.Style != "dark" {
		t.Errorf("slide style lost: %q", got.Style)
	}
}

func TestYAMLScenarioRoundTrip(t *testing.T) {
	d := deck.New("Launch Plan")
	d.SourcePath = "/talks/launch.txt"
	s := d.AddSlide("")
	s.SetContent("Rollout", "three regions in three weeks")
	s.DurationSec = 5
	s.Fragments = []deck.Fragment{
		{Title: "Rollout", Body: "three regions in three weeks"},
		{Title: "Caveat", DelaySec: 2, DurationSec: 0, Position: &deck.Position{XPct: 50, YPct: 80}},
	}

	out, err := (&deck.YAMLRenderer{}).Render(d)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(out), "version: \"1\"") {
		t.Errorf("scenario missing version tag:\n%s", out)
	}

	parsed, err := (&deck.YAMLParser{}).Parse(out)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.Title != "Launch Plan" || parsed.SourcePath != "/talks/launch.txt" {
		t.Errorf("deck header lost: %q, %q", parsed.Title, parsed.SourcePath)
	}
	if len(parsed.Slides) != 1 {
		t.Fatalf("want 1 slide, got %d", len(parsed.Slides))
	}
	got := parsed.Slides[0]
	if got.ID != s.ID || got.Title != "Rollout" || got.DurationSec != 5 {
		t.Errorf("slide lost in scenario round-trip: %+v", got)
	}
	if len(got.Fragments) != 2 {
		t.Fatalf("want 2 fragments, got %d", len(got.Fragments))
	}
	f := got.Fragments[1]
	if f.DelaySec != 2 || f.DurationSec != 0 {
		t.Errorf("fragment timing lost: %+v", f)
	}
	if f.Position == nil || f.Position.XPct != 50 || f.Position.YPct != 80 {
		t.Errorf("fragment position lost: %+v", f.Position)
	}
	// Timestamps are not part of the scenario shape.
	if !parsed.CreatedAt.IsZero() || !parsed.UpdatedAt.IsZero() {
		t.Errorf("scenario round-trip invented timestamps: %v, %v", parsed.CreatedAt, parsed.UpdatedAt)
	}
}
