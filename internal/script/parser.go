// Package script turns a raw multi-line text blob into an ordered, timed
// slide sequence. The structure is recovered heuristically: the parser is a
// total function that always produces a valid (possibly empty) deck and never
// fails, whatever the input looks like.
package script

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"cuedeck/internal/deck"
)

const (
	// mainHeadingSec is the fixed duration of the sequence's opening slide.
	mainHeadingSec = 3
	// titleOnlySec is the duration of a slide with no body text.
	titleOnlySec = 2
	// Reading-time formula bounds and speed.
	minSlideSec     = 2
	maxSlideSec     = 6
	wordsPerMinute  = 160
	maxHeadingChars = 80
)

var (
	headingMarkers = regexp.MustCompile(`^#+\s*`)
	// midSentence matches punctuation followed by a capital inside the line,
	// the shape of two joined sentences rather than a heading.
	midSentence = regexp.MustCompile(`[.!?,;:]\s+[A-Z]`)
)

// Parse converts text into slides. The first non-blank line always becomes
// the main heading; the remaining lines are classified by isHeading and
// grouped into heading+body slides. Slides are laid out back to back, each
// starting where the previous one ends.
func Parse(text string, style deck.StyleRef) []deck.Slide {
	lines := nonBlankLines(text)
	if len(lines) == 0 {
		return nil
	}

	var slides []deck.Slide
	emit := func(kind deck.SlideKind, title, body string, duration float64) {
		slides = append(slides, deck.Slide{
			ID:          uuid.New().String(),
			Kind:        kind,
			Title:       stripMarkers(title),
			Body:        body,
			DurationSec: duration,
			Style:       style,
		})
	}

	// The opening line is the sequence's main heading, heuristics bypassed.
	emit(deck.KindTitleOnly, lines[0], "", mainHeadingSec)

	for i := 1; i < len(lines); {
		line := lines[i]
		if !isHeading(line, peek(lines, i+1)) {
			emit(deck.KindTitleOnly, line, "", titleOnlySec)
			i++
			continue
		}

		// Collect the run of non-heading lines that follows as the body.
		j := i + 1
		var body []string
		for j < len(lines) && !isHeading(lines[j], peek(lines, j+1)) {
			body = append(body, lines[j])
			j++
		}
		if len(body) == 0 {
			emit(deck.KindTitleOnly, line, "", titleOnlySec)
		} else {
			text := strings.Join(body, "\n")
			emit(deck.KindTitleBody, line, text, ReadingTime(text))
		}
		i = j
	}

	// Back-to-back default placement on the time axis.
	var at float64
	for i := range slides {
		slides[i].Index = i
		slides[i].StartTimeSec = round1(at)
		at += slides[i].DurationSec
	}
	return slides
}

// isHeading classifies line as a heading. The rules form a cascade evaluated
// in order with short-circuiting; reordering them changes the outcome on
// ambiguous lines.
func isHeading(line, next string) bool {
	// Markdown-style heading marker.
	if strings.HasPrefix(line, "#") {
		return true
	}
	// Two or more words, all upper-case, with at least one letter.
	if len(strings.Fields(line)) >= 2 &&
		line == strings.ToUpper(line) &&
		strings.ContainsFunc(line, unicode.IsLetter) {
		return true
	}
	// A short punctuated line followed by a much longer one reads as a
	// heading introducing body text.
	if endsWithTerminal(line) && float64(len(next)) >= 1.5*float64(len(line)) {
		return true
	}
	// Short, starts with a capital, and does not look like joined sentences.
	if len(line) < maxHeadingChars && startsWithUpper(line) && !midSentence.MatchString(line) {
		return true
	}
	return false
}

// ReadingTime estimates how long a reader needs for text, clamped to the
// slide duration bounds and rounded to 0.1s.
func ReadingTime(text string) float64 {
	words := len(strings.Fields(text))
	sec := float64(words) / wordsPerMinute * 60
	if sec < minSlideSec {
		sec = minSlideSec
	}
	if sec > maxSlideSec {
		sec = maxSlideSec
	}
	return round1(sec)
}

// nonBlankLines splits text into trimmed lines, dropping blank ones.
func nonBlankLines(text string) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// peek returns lines[i], or "" past the end.
func peek(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

// stripMarkers removes a leading markdown heading marker run.
func stripMarkers(line string) string {
	return headingMarkers.ReplaceAllString(line, "")
}

func endsWithTerminal(line string) bool {
	if line == "" {
		return false
	}
	return strings.ContainsRune(".!?:", rune(line[len(line)-1]))
}

func startsWithUpper(line string) bool {
	for _, r := range line {
		return unicode.IsUpper(r)
	}
	return false
}

// round1 rounds to one decimal place, the time granularity exposed to the
// user everywhere in the tool.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
