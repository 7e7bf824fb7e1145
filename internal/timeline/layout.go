package timeline

// Geometry is the pixel-space footprint of one interval in a track layout.
// The engine only computes it; drawing is the caller's business.
type Geometry struct {
	Left   float64
	Width  float64
	Top    float64
	Height float64
}

// EffectiveDuration resolves an interval's display duration. The sentinel 0
// stretches to the end of the container; past the container end it
// degenerates to 0 rather than going negative.
func EffectiveDuration(iv Interval, container float64) float64 {
	if iv.Duration > 0 {
		return iv.Duration
	}
	if container <= 0 {
		return 0
	}
	if rest := container - iv.Start; rest > 0 {
		return rest
	}
	return 0
}

// Layout places an interval on its row. Purely a function of time-space
// state and the lane's scale.
func Layout(iv Interval, row int, lane Lane, rowHeight, rowGap float64) Geometry {
	return Geometry{
		Left:   lane.Scale.Pixels(iv.Start),
		Width:  lane.Scale.Pixels(EffectiveDuration(iv, lane.Container)),
		Top:    float64(row) * (rowHeight + rowGap),
		Height: rowHeight,
	}
}
