package deck

import "fmt"

// Translation is one entry of the exchange format used with external
// translation and transcription services: the deck sends {id, title, body}
// triples out and receives the same shape back with replaced strings.
type Translation struct {
	ID    string  `json:"id"`
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

// TranslationRequest builds the list of {id, title, body} records to hand to
// an external service, one per slide in deck order.
func (d *Deck) TranslationRequest() []Translation {
	items := make([]Translation, 0, len(d.Slides))
	for i := range d.Slides {
		s := &d.Slides[i]
		title, body := s.Title, s.Body
		items = append(items, Translation{ID: s.ID, Title: &title, Body: &body})
	}
	return items
}

// ApplyTranslations writes externally supplied text back into the deck.
// The whole batch is validated first: every item must name a known slide and
// carry non-nil title and body strings. On any violation the deck is left
// unmodified and an error describes the first offending item.
func (d *Deck) ApplyTranslations(items []Translation) error {
	for i, tr := range items {
		if tr.Title == nil {
			return fmt.Errorf("translation %d (%s): title is null", i, tr.ID)
		}
		if tr.Body == nil {
			return fmt.Errorf("translation %d (%s): body is null", i, tr.ID)
		}
		if d.Slide(tr.ID) == nil {
			return fmt.Errorf("translation %d: unknown slide id %s", i, tr.ID)
		}
	}
	for _, tr := range items {
		d.Slide(tr.ID).SetContent(*tr.Title, *tr.Body)
	}
	d.Touch()
	return nil
}
