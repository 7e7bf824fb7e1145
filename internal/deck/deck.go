// Package deck holds the slide deck document model: an ordered set of timed
// slides, each optionally subdivided into independently timed fragments.
package deck

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrLastFragment is returned when removing the only remaining fragment of a
// slide; a slide that uses fragments keeps at least one.
var ErrLastFragment = errors.New("slide must keep at least one fragment")

// StyleRef names a presentation style. The deck never inspects it; it is
// carried through for the rendering side.
type StyleRef string

// SlideKind distinguishes heading-only slides from heading+body slides.
type SlideKind string

const (
	KindTitleOnly SlideKind = "title-only"
	KindTitleBody SlideKind = "title-body"
)

// Slide is one screen of content shown for a span of time. Each slide sits on
// its own track: start times are independent and slides may overlap freely.
type Slide struct {
	ID           string     `json:"id"`
	Index        int        `json:"index"`
	Kind         SlideKind  `json:"type"`
	Title        string     `json:"title"`
	Body         string     `json:"body,omitempty"`
	Fragments    []Fragment `json:"fragments,omitempty"`
	DurationSec  float64    `json:"durationSec"`  // always > 0
	StartTimeSec float64    `json:"startTimeSec"` // offset from sequence start, >= 0
	Style        StyleRef   `json:"style,omitempty"`
}

// Fragment is a sub-span of text confined to one slide's display window.
// DurationSec 0 means "visible until the end of the parent slide".
type Fragment struct {
	Title       string    `json:"title"`
	Body        string    `json:"body,omitempty"`
	DelaySec    float64   `json:"delaySec"`
	DurationSec float64   `json:"durationSec"`
	Position    *Position `json:"position,omitempty"`
}

// Position is an optional normalized placement, independent of timing.
type Position struct {
	XPct float64 `json:"xPct"`
	YPct float64 `json:"yPct"`
}

// Deck is the complete document a single editing session works on.
type Deck struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	SourcePath string    `json:"sourcePath,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Slides     []Slide   `json:"slides"`
}

// New creates an empty deck with a fresh identity.
func New(title string) *Deck {
	now := time.Now()
	return &Deck{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
		Slides:    []Slide{},
	}
}

// Slide returns the slide with the given id, or nil.
func (d *Deck) Slide(id string) *Slide {
	for i := range d.Slides {
		if d.Slides[i].ID == id {
			return &d.Slides[i]
		}
	}
	return nil
}

// End reports when the slide stops being shown, as an offset from the
// sequence start.
func (s *Slide) End() float64 {
	return s.StartTimeSec + s.DurationSec
}

// End reports the end of the last-ending slide, i.e. the total extent of the
// deck on the time axis.
func (d *Deck) End() float64 {
	var end float64
	for i := range d.Slides {
		if e := d.Slides[i].End(); e > end {
			end = e
		}
	}
	return end
}

// AddSlide appends a blank title-only slide after the last-ending slide and
// returns it. The caller fills in content afterwards.
func (d *Deck) AddSlide(style StyleRef) *Slide {
	s := Slide{
		ID:           uuid.New().String(),
		Kind:         KindTitleOnly,
		DurationSec:  2,
		StartTimeSec: d.End(),
		Style:        style,
	}
	d.Slides = append(d.Slides, s)
	d.reindex()
	return &d.Slides[len(d.Slides)-1]
}

// RemoveSlide deletes the slide with the given id and reindexes the rest.
// It reports whether a slide was removed.
func (d *Deck) RemoveSlide(id string) bool {
	for i := range d.Slides {
		if d.Slides[i].ID == id {
			d.Slides = append(d.Slides[:i], d.Slides[i+1:]...)
			d.reindex()
			return true
		}
	}
	return false
}

// MoveSlide reorders the slide with the given id to position to (clamped to
// the valid range) and renumbers all indices.
func (d *Deck) MoveSlide(id string, to int) bool {
	from := -1
	for i := range d.Slides {
		if d.Slides[i].ID == id {
			from = i
			break
		}
	}
	if from == -1 {
		return false
	}
	if to < 0 {
		to = 0
	}
	if to > len(d.Slides)-1 {
		to = len(d.Slides) - 1
	}
	if to == from {
		return true
	}
	s := d.Slides[from]
	d.Slides = append(d.Slides[:from], d.Slides[from+1:]...)
	d.Slides = append(d.Slides[:to], append([]Slide{s}, d.Slides[to:]...)...)
	d.reindex()
	return true
}

// Touch records that the deck was modified.
func (d *Deck) Touch() {
	d.UpdatedAt = time.Now()
}

// reindex rewrites Slide.Index to match slice order.
func (d *Deck) reindex() {
	for i := range d.Slides {
		d.Slides[i].Index = i
	}
}

// SetContent writes the slide's text. When the slide is fragmented, the
// fragments stay authoritative: title/body only mirror the first fragment, so
// the first fragment is updated in the same step.
func (s *Slide) SetContent(title, body string) {
	s.Title = title
	s.Body = body
	if body == "" {
		s.Kind = KindTitleOnly
	} else {
		s.Kind = KindTitleBody
	}
	if len(s.Fragments) > 0 {
		s.Fragments[0].Title = title
		s.Fragments[0].Body = body
	}
}

// AddFragment appends a new fragment with default timing (visible from the
// start of the slide until its end). On first use the slide's own text moves
// into fragment 0 so the existing content keeps its place in the sequence.
func (s *Slide) AddFragment() *Fragment {
	if len(s.Fragments) == 0 {
		s.Fragments = append(s.Fragments, Fragment{
			Title: s.Title,
			Body:  s.Body,
		})
	}
	s.Fragments = append(s.Fragments, Fragment{})
	return &s.Fragments[len(s.Fragments)-1]
}

// RemoveFragment deletes the fragment at index i. The last remaining fragment
// cannot be removed. Removing fragment 0 promotes the next fragment's text
// into the title/body mirror.
func (s *Slide) RemoveFragment(i int) error {
	if i < 0 || i >= len(s.Fragments) {
		return errors.New("no such fragment")
	}
	if len(s.Fragments) == 1 {
		return ErrLastFragment
	}
	s.Fragments = append(s.Fragments[:i], s.Fragments[i+1:]...)
	if i == 0 {
		// The mirror follows the new first fragment, kind included.
		s.SetContent(s.Fragments[0].Title, s.Fragments[0].Body)
	}
	return nil
}
