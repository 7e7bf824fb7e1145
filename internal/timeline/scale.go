package timeline

// DefaultPixelsPerSecond is the fixed scale of the slide track: horizontal
// cells per second of deck time.
const DefaultPixelsPerSecond = 4.0

// Scale maps seconds to horizontal pixels and back.
type Scale struct {
	pixelsPerSecond float64
}

// Fixed returns a constant scale, used by the slide track where the axis is
// unbounded and scrolls.
func Fixed(pixelsPerSecond float64) Scale {
	if pixelsPerSecond < 0 {
		pixelsPerSecond = 0
	}
	return Scale{pixelsPerSecond: pixelsPerSecond}
}

// Fit returns the scale under which containerSec seconds span exactly
// widthPx pixels, used by the fragment lane so the whole parent duration
// always fills the visible track. Callers must re-derive it whenever the
// container or the rendered width changes.
func Fit(containerSec, widthPx float64) Scale {
	if containerSec <= 0 || widthPx <= 0 {
		return Scale{}
	}
	return Scale{pixelsPerSecond: widthPx / containerSec}
}

// Pixels converts a time value to pixels.
func (s Scale) Pixels(sec float64) float64 {
	return sec * s.pixelsPerSecond
}

// Seconds converts a pixel distance to time. A degenerate scale maps
// everything to 0 rather than dividing by zero.
func (s Scale) Seconds(px float64) float64 {
	if s.pixelsPerSecond == 0 {
		return 0
	}
	return px / s.pixelsPerSecond
}
