package script

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"cuedeck/internal/deck"
)

// generateScript produces an arbitrary multi-line text blob, including blank
// and whitespace-only lines.
func generateScript(t *rapid.T) string {
	n := rapid.IntRange(0, 12).Draw(t, "num_lines")
	lines := make([]string, n)
	for i := range lines {
		lines[i] = rapid.StringN(0, 120, -1).Draw(t, fmt.Sprintf("line_%d", i))
	}
	return strings.Join(lines, "\n")
}

// firstContentLine recomputes the first non-blank trimmed line of text, the
// way Parse sees it.
func firstContentLine(text string) string {
	for _, raw := range strings.Split(text, "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			return line
		}
	}
	return ""
}

// onDecigrid reports whether v sits on the 0.1 grid.
func onDecigrid(v float64) bool {
	return math.Abs(v*10-math.Round(v*10)) < 1e-9
}

// Feature: cuedeck, Property 1: Script structuring totality
func TestParseTotality(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := generateScript(t)
		slides := Parse(text, "plain")

		first := firstContentLine(text)
		if first == "" {
			if len(slides) != 0 {
				t.Fatalf("blank input produced %d slides", len(slides))
			}
			return
		}

		if len(slides) == 0 {
			t.Fatalf("non-blank input produced no slides")
		}
		if slides[0].Kind != deck.KindTitleOnly {
			t.Errorf("opening slide kind: want %q, got %q", deck.KindTitleOnly, slides[0].Kind)
		}
		if slides[0].DurationSec != 3 {
			t.Errorf("opening slide duration: want 3, got %v", slides[0].DurationSec)
		}
		if slides[0].Title != stripMarkers(first) {
			t.Errorf("opening slide title: want %q, got %q", stripMarkers(first), slides[0].Title)
		}

		seen := make(map[string]struct{}, len(slides))
		for i, s := range slides {
			if s.ID == "" {
				t.Errorf("slide %d has empty id", i)
			}
			if _, dup := seen[s.ID]; dup {
				t.Errorf("slide %d reuses id %q", i, s.ID)
			}
			seen[s.ID] = struct{}{}
			if s.Index != i {
				t.Errorf("slide %d carries index %d", i, s.Index)
			}
			if s.DurationSec < 2 || s.DurationSec > 6 {
				t.Errorf("slide %d duration %v outside [2,6]", i, s.DurationSec)
			}
			if s.Kind == deck.KindTitleOnly && s.Body != "" {
				t.Errorf("slide %d is title-only but has body %q", i, s.Body)
			}
			if s.Kind == deck.KindTitleBody && s.Body == "" {
				t.Errorf("slide %d is title-body but has no body", i)
			}
			if s.Style != "plain" {
				t.Errorf("slide %d lost its style: %q", i, s.Style)
			}
		}
	})
}

// Feature: cuedeck, Property 2: Sequential default layout
func TestParseSequentialLayout(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		slides := Parse(generateScript(t), "")

		var at float64
		for i, s := range slides {
			want := round1(at)
			if s.StartTimeSec != want {
				t.Errorf("slide %d start: want %v, got %v", i, want, s.StartTimeSec)
			}
			if !onDecigrid(s.StartTimeSec) || !onDecigrid(s.DurationSec) {
				t.Errorf("slide %d timing off the 0.1 grid: start %v dur %v",
					i, s.StartTimeSec, s.DurationSec)
			}
			at += s.DurationSec
		}
	})
}

// Feature: cuedeck, Property 3: Reading time bounds
func TestReadingTimeBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		words := rapid.IntRange(0, 1000).Draw(t, "words")
		text := strings.TrimSpace(strings.Repeat("word ", words))

		got := ReadingTime(text)
		if got < 2 || got > 6 {
			t.Fatalf("%d words: reading time %v outside [2,6]", words, got)
		}

		// 160 words per minute, clamped and snapped to 0.1s.
		sec := float64(words) / 160 * 60
		if sec < 2 {
			sec = 2
		}
		if sec > 6 {
			sec = 6
		}
		if want := round1(sec); got != want {
			t.Fatalf("%d words: want %v, got %v", words, want, got)
		}
	})
}

// Unit tests for the heading classifier.

func TestHeadingClassifier(t *testing.T) {
	cases := []struct {
		name string
		line string
		next string
		want bool
	}{
		{"markdown marker", "# Intro", "", true},
		{"nested markdown marker", "## Deep dive", "anything", true},
		{"all caps multi word", "HELLO WORLD", "", true},
		{"short capitalized", "Closing thoughts", "", true},
		{"caps without letters", "123 456", "", false},
		{"terminal line before longer one", "and so it begins.", "this following line is much longer than the opener", true},
		{"lowercase sentence", "the quick fox jumped over many things today in a sentence.", "done", false},
		{"joined sentences", "We shipped. Then we celebrated", "", false},
		{"long capitalized line", "This opening line keeps going well past the length anyone would accept for a heading", "", false},
		{"empty line", "", "anything", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isHeading(tc.line, tc.next); got != tc.want {
				t.Errorf("isHeading(%q, %q) = %v, want %v", tc.line, tc.next, got, tc.want)
			}
		})
	}
}

func TestReadingTimeFixtures(t *testing.T) {
	word := func(n int) string {
		return strings.TrimSpace(strings.Repeat("word ", n))
	}
	cases := []struct {
		words int
		want  float64
	}{
		{0, 2},
		{1, 2},
		{5, 2},    // 1.875s raw, clamped up
		{8, 3},    // exactly 3s at 160 wpm
		{10, 3.8}, // 3.75s raw, snapped
		{16, 6},   // exactly 6s at 160 wpm
		{160, 6},  // a minute of text, clamped down
	}
	for _, tc := range cases {
		if got := ReadingTime(word(tc.words)); got != tc.want {
			t.Errorf("ReadingTime(%d words) = %v, want %v", tc.words, got, tc.want)
		}
	}
}

func TestParseStructureFixture(t *testing.T) {
	text := `My Talk

INTRODUCTION
the first body line here.
another body line.

SUMMARY
Short point
`
	slides := Parse(text, "dark")
	if len(slides) != 4 {
		t.Fatalf("want 4 slides, got %d: %+v", len(slides), slides)
	}

	want := []struct {
		kind  deck.SlideKind
		title string
		body  string
		dur   float64
		start float64
	}{
		{deck.KindTitleOnly, "My Talk", "", 3, 0},
		{deck.KindTitleBody, "INTRODUCTION", "the first body line here.\nanother body line.", 3, 3},
		{deck.KindTitleOnly, "SUMMARY", "", 2, 6},
		{deck.KindTitleOnly, "Short point", "", 2, 8},
	}
	for i, w := range want {
		s := slides[i]
		if s.Kind != w.kind {
			t.Errorf("slide %d kind: want %q, got %q", i, w.kind, s.Kind)
		}
		if s.Title != w.title {
			t.Errorf("slide %d title: want %q, got %q", i, w.title, s.Title)
		}
		if s.Body != w.body {
			t.Errorf("slide %d body: want %q, got %q", i, w.body, s.Body)
		}
		if s.DurationSec != w.dur {
			t.Errorf("slide %d duration: want %v, got %v", i, w.dur, s.DurationSec)
		}
		if s.StartTimeSec != w.start {
			t.Errorf("slide %d start: want %v, got %v", i, w.start, s.StartTimeSec)
		}
	}
}

func TestParseStripsHeadingMarkers(t *testing.T) {
	slides := Parse("# My Talk\n## First section\nbody text goes here in lowercase prose.", "")
	if len(slides) != 2 {
		t.Fatalf("want 2 slides, got %d", len(slides))
	}
	if slides[0].Title != "My Talk" {
		t.Errorf("main heading: want %q, got %q", "My Talk", slides[0].Title)
	}
	if slides[1].Title != "First section" {
		t.Errorf("section heading: want %q, got %q", "First section", slides[1].Title)
	}
}
