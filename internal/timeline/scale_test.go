package timeline_test

import (
	"math"
	"testing"

	"pgregory.net/rapid"

	"cuedeck/internal/timeline"
)

// Feature: cuedeck, Property 6: Scale round-trip
func TestScaleRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pps := rapid.Float64Range(0.01, 100).Draw(t, "pps")
		sec := rapid.Float64Range(-1000, 1000).Draw(t, "sec")

		s := timeline.Fixed(pps)
		back := s.Seconds(s.Pixels(sec))
		if math.Abs(back-sec) > 1e-9*math.Max(1, math.Abs(sec)) {
			t.Fatalf("pps %v: %vs → %vpx → %vs", pps, sec, s.Pixels(sec), back)
		}
	})
}

// Feature: cuedeck, Property 7: Fit scale spans the track
func TestFitSpansTrack(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		container := rapid.Float64Range(0.1, 600).Draw(t, "container")
		width := rapid.Float64Range(1, 500).Draw(t, "width")

		s := timeline.Fit(container, width)
		if got := s.Pixels(container); math.Abs(got-width) > 1e-9*width {
			t.Fatalf("Fit(%v, %v): container maps to %vpx, want %vpx", container, width, got, width)
		}
	})
}

// Unit tests for degenerate scales.

func TestDegenerateScalesMapToZero(t *testing.T) {
	cases := []struct {
		name string
		s    timeline.Scale
	}{
		{"zero value", timeline.Scale{}},
		{"negative fixed", timeline.Fixed(-5)},
		{"fit of empty container", timeline.Fit(0, 100)},
		{"fit of zero width", timeline.Fit(10, 0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.s.Pixels(42); got != 0 {
				t.Errorf("Pixels(42) = %v, want 0", got)
			}
			if got := tc.s.Seconds(42); got != 0 {
				t.Errorf("Seconds(42) = %v, want 0", got)
			}
		})
	}
}
