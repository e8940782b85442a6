package anim

// Display intensity levels for a valve. A breaking valve flashes
// brightest, a closed valve sits at medium, an open one dims until it
// re-closes.
const (
	IntensityBreaking = 1.0
	IntensityClosed   = 0.6
	IntensityOpen     = 0.3
)

// Valve is one point-like obstruction in the channel. Its span is the
// half-open index range [Start, End) on the shared space grid.
type Valve struct {
	Start     int
	End       int
	Open      bool
	Breaking  bool
	Intensity float64
}

// NewValve builds a closed valve from static geometry.
func NewValve(start, width int) Valve {
	return Valve{Start: start, End: start + width, Intensity: IntensityClosed}
}

// Center returns the grid index at the middle of the valve span.
func (v Valve) Center() int {
	return (v.Start + v.End) / 2
}

// Event is one catalog row: a detected rupture at time T and grid
// position X. Fade, Size and Intensity are recomputed every frame from
// the current time.
type Event struct {
	T         float64
	X         float64
	Fade      float64
	Size      float64
	Intensity float64
}

// FadeParams controls the event fade-out law.
type FadeParams struct {
	Duration float64 // seconds from fade 1 to fade 0
	MinSize  float64 // marker size at fade 0
	MaxSize  float64 // marker size at fade 1
}

// Frame is the per-iteration hand-off to a FrameSink. Mass, Valves and
// Events alias the animator's buffers; sinks must not retain them past
// the WriteFrame call.
type Frame struct {
	Index  int
	Time   float64
	Mass   []float64
	Valves []Valve
	Events []Event
}

// FrameSink consumes frames in order. The video encoder is the primary
// implementation.
type FrameSink interface {
	WriteFrame(f *Frame) error
}
