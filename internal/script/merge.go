package script

import (
	"strings"

	"cuedeck/internal/deck"
)

// Normalize reduces a line to its comparison form: heading markers stripped,
// lower-cased, runs of whitespace collapsed to single spaces.
func Normalize(line string) string {
	return strings.Join(strings.Fields(strings.ToLower(stripMarkers(line))), " ")
}

// contentKey identifies a slide by its normalized text, ignoring identity
// and timing.
func contentKey(s *deck.Slide) string {
	return Normalize(s.Title) + "\x00" + Normalize(s.Body)
}

// Resync merges a freshly parsed slide sequence with the slides of an
// existing deck. Fresh slides whose normalized content matches an old slide
// inherit that slide's identity, timing, fragments and style, so manual
// adjustments survive a re-import of the edited source text. Each old slide
// is claimed at most once; unmatched fresh slides keep their parser
// defaults. The result follows the fresh order.
func Resync(old, fresh []deck.Slide) []deck.Slide {
	claimed := make([]bool, len(old))
	out := make([]deck.Slide, 0, len(fresh))
	for _, f := range fresh {
		key := contentKey(&f)
		for j := range old {
			if claimed[j] || contentKey(&old[j]) != key {
				continue
			}
			claimed[j] = true
			f.ID = old[j].ID
			f.StartTimeSec = old[j].StartTimeSec
			f.DurationSec = old[j].DurationSec
			f.Fragments = old[j].Fragments
			f.Style = old[j].Style
			break
		}
		f.Index = len(out)
		out = append(out, f)
	}
	return out
}

// Unused reports the non-blank lines of text that appear in no slide of the
// deck, in source order, deduplicated by normalized form. It answers "which
// parts of my script did the deck lose" after heavy manual editing.
func Unused(text string, slides []deck.Slide) []string {
	used := make(map[string]struct{})
	record := func(s string) {
		for _, line := range strings.Split(s, "\n") {
			if n := Normalize(line); n != "" {
				used[n] = struct{}{}
			}
		}
	}
	for i := range slides {
		record(slides[i].Title)
		record(slides[i].Body)
		for _, f := range slides[i].Fragments {
			record(f.Title)
			record(f.Body)
		}
	}

	seen := make(map[string]struct{})
	var unused []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		n := Normalize(line)
		if n == "" {
			continue
		}
		if _, ok := used[n]; ok {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		unused = append(unused, line)
	}
	return unused
}
