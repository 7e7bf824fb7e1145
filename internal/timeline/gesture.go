// Package timeline implements the temporal layout engine: the mapping
// between deck time and screen pixels, and the drag state machine that turns
// pointer gestures into clamped move/resize edits on time intervals.
//
// The engine never owns the intervals it edits. It reads and writes them
// through an IntervalSource kept by the editing session, holding only an
// ephemeral DragSession between gesture start and gesture end.
package timeline

import "math"

// minDuration is the smallest explicit duration a resize can produce.
const minDuration = 0.1

// Op selects what a drag gesture edits.
type Op int

const (
	// OpMove shifts an interval's start, keeping its duration.
	OpMove Op = iota
	// OpResizeStart drags the leading edge, trading start offset for
	// duration while the trailing edge stays put. Only meaningful inside a
	// bounded lane.
	OpResizeStart
	// OpResizeEnd drags the trailing edge, changing the duration.
	OpResizeEnd
)

func (o Op) String() string {
	switch o {
	case OpMove:
		return "move"
	case OpResizeStart:
		return "resize-start"
	case OpResizeEnd:
		return "resize-end"
	}
	return "unknown"
}

// Interval is the engine's view of one editable time span. Inside a bounded
// lane Start is the delay from the container's beginning, and Duration 0 is
// the sentinel for "runs to the end of the container".
type Interval struct {
	ID       string
	Start    float64
	Duration float64
}

// Lane is the coordinate context a gesture runs in. Container is the lane's
// total extent in seconds, 0 meaning unbounded (the slide track). Scale maps
// between that extent and pixels.
type Lane struct {
	Container float64
	Scale     Scale
}

// LaneFunc supplies the current lane. The engine calls it on every gesture
// event rather than caching, so a fit-to-width scale stays correct when the
// container or the viewport changes mid-drag.
type LaneFunc func() Lane

// IntervalSource is the editing session's half of the contract: it owns the
// interval collection, the engine only reads and writes through it.
type IntervalSource interface {
	Interval(id string) (Interval, bool)
	SetInterval(iv Interval)
}

// DragSession captures one in-progress gesture: what is being edited, how,
// and where everything stood when the pointer went down. It exists only
// between StartGesture and EndGesture and is never persisted.
type DragSession struct {
	ID      string
	Op      Op
	OriginX float64
	Origin  Interval
}

// Engine is the drag state machine. It is either idle or holds exactly one
// active DragSession; gesture events arriving in any other state are
// ignored. All methods must be called from a single event loop.
type Engine struct {
	source IntervalSource
	lane   LaneFunc
	active *DragSession
}

func NewEngine(source IntervalSource, lane LaneFunc) *Engine {
	return &Engine{source: source, lane: lane}
}

// Dragging reports whether a gesture is in progress.
func (e *Engine) Dragging() bool {
	return e.active != nil
}

// Active returns a copy of the in-progress session, if any.
func (e *Engine) Active() (DragSession, bool) {
	if e.active == nil {
		return DragSession{}, false
	}
	return *e.active, true
}

// StartGesture opens a drag on the interval id at pointer position pointerX.
// It reports false without opening anything when a gesture is already
// active, when the id is unknown, or when op is OpResizeStart in an
// unbounded lane.
func (e *Engine) StartGesture(id string, op Op, pointerX float64) bool {
	if e.active != nil {
		return false
	}
	origin, ok := e.source.Interval(id)
	if !ok {
		return false
	}
	if op == OpResizeStart && e.lane().Container <= 0 {
		return false
	}
	e.active = &DragSession{ID: id, Op: op, OriginX: pointerX, Origin: origin}
	return true
}

// MoveGesture applies the pointer position to the active gesture: it
// converts the pixel delta since gesture start into seconds against the
// current lane, recomputes the interval under the session's operation,
// clamps it to the lane, rounds to 0.1s and writes it back. The updated
// interval is returned.
//
// Moves with no active gesture report false. Moves whose target has
// disappeared from the source are dropped without mutating anything, but the
// session stays open until EndGesture.
func (e *Engine) MoveGesture(pointerX float64) (Interval, bool) {
	if e.active == nil {
		return Interval{}, false
	}
	cur, ok := e.source.Interval(e.active.ID)
	if !ok {
		return Interval{}, false
	}

	lane := e.lane()
	delta := lane.Scale.Seconds(pointerX - e.active.OriginX)
	next, ok := apply(e.active.Op, e.active.Origin, cur, lane, delta)
	if !ok {
		return cur, true
	}
	next.Start = round1(next.Start)
	next.Duration = round1(next.Duration)
	e.source.SetInterval(next)
	return next, true
}

// EndGesture closes the active gesture and returns the committed interval,
// which is whatever the last move wrote back. No further validation is
// applied on release.
func (e *Engine) EndGesture() (Interval, bool) {
	if e.active == nil {
		return Interval{}, false
	}
	id := e.active.ID
	e.active = nil
	return e.source.Interval(id)
}

// apply computes the interval after moving the gesture by delta seconds.
// origin is the interval as captured at gesture start, cur its present
// state. A false result means this particular move has no effect.
func apply(op Op, origin, cur Interval, lane Lane, delta float64) (Interval, bool) {
	next := cur
	switch op {
	case OpMove:
		start := origin.Start + delta
		if start < 0 {
			start = 0
		}
		if lane.Container > 0 {
			// A sentinel interval always reaches the container end, so
			// only its start is kept inside; an explicit one may not be
			// dragged past the end.
			limit := lane.Container - origin.Duration
			if limit < 0 {
				limit = 0
			}
			if start > limit {
				start = limit
			}
		}
		next.Start = start

	case OpResizeEnd:
		base := origin.Duration
		if base == 0 && lane.Container > 0 {
			// Resizing the end of a to-end interval starts from where its
			// trailing edge actually is.
			base = lane.Container - origin.Start
			if base < 0 {
				base = 0
			}
		}
		dur := base + delta
		if dur < minDuration {
			dur = minDuration
		}
		if lane.Container > 0 {
			if rest := lane.Container - cur.Start; dur > rest {
				dur = rest
			}
			if dur < minDuration {
				// No room left at all; leave the interval untouched rather
				// than committing a degenerate duration.
				return Interval{}, false
			}
		}
		next.Duration = dur

	case OpResizeStart:
		if origin.Duration == 0 {
			// The interval runs to the container end regardless of its
			// start, so the leading edge just slides within the lane.
			start := origin.Start + delta
			if start < 0 {
				start = 0
			}
			if lane.Container > 0 && start > lane.Container {
				start = lane.Container
			}
			next.Start = start
			break
		}
		// The trailing edge stays anchored; the leading edge moves between
		// 0 and minDuration short of it.
		end := origin.Start + origin.Duration
		start := origin.Start + delta
		if start < 0 {
			start = 0
		}
		if limit := end - minDuration; start > limit {
			start = limit
			if start < 0 {
				start = 0
			}
		}
		// Snap the moving edge before deriving the duration, so rounding the
		// two fields separately cannot push the anchored end outward.
		start = round1(start)
		dur := end - start
		if lane.Container > 0 {
			if rest := lane.Container - start; dur > rest {
				dur = rest
			}
			if dur < minDuration {
				dur = minDuration
			}
		}
		next.Start = start
		next.Duration = dur

	default:
		return Interval{}, false
	}
	return next, true
}

// round1 snaps a time value to the 0.1s grid every user-visible number in
// the editor lives on.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
