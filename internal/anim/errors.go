package anim

import (
	"errors"
	"fmt"
)

// Domain errors for animation state updates.
var (
	// ErrFirstFrame indicates a valve advance at step 0, which has no
	// previous bitmap row to diff against.
	ErrFirstFrame = errors.New("anim: cannot advance valves at step 0 (no previous row)")

	// ErrFrameRange indicates a step index outside the data's time dimension.
	ErrFrameRange = errors.New("anim: step index out of data range")

	// ErrShapeMismatch indicates inconsistent valve counts between
	// geometry and bitmap columns, or too few data rows for the run.
	ErrShapeMismatch = errors.New("anim: input shape mismatch")

	// ErrSwitchOutOfRange indicates a switch time outside (t0, tEnd).
	ErrSwitchOutOfRange = errors.New("anim: switch time outside run interval")

	// ErrStepSize indicates a non-positive step size.
	ErrStepSize = errors.New("anim: step size must be positive")

	// ErrNoFrames indicates a run too short to produce any frame.
	ErrNoFrames = errors.New("anim: run produces no frames")
)

// FrameError wraps an error with frame context.
type FrameError struct {
	Frame   int
	Time    float64
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d (t=%.6g): %v", e.Frame, e.Time, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
