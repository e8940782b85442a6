package anim

import (
	"fmt"
	"math"
)

// Stepper is the dual-speed playback clock. It starts in the FAST phase
// with step dtFast and switches, exactly once, to the SLOW phase at the
// precomputed switch frame. On the switch the origin is re-anchored so
// stepping continues from the current frame without a jump. SLOW is
// terminal.
type Stepper struct {
	origin float64
	dtFast float64
	dtSlow float64

	dt   float64
	slow bool

	switchFrame int
	frameCount  int
}

// NewStepper validates the run interval and precomputes the frame
// schedule. The switch frame and the total frame count come from the
// same duration/step arithmetic, and the switch frame is also the
// transition trigger, so the two cannot disagree.
func NewStepper(t0, switchTime, endTime, dtFast, dtSlow float64) (*Stepper, error) {
	if dtFast <= 0 || dtSlow <= 0 {
		return nil, fmt.Errorf("%w: fast=%g slow=%g", ErrStepSize, dtFast, dtSlow)
	}
	if switchTime <= t0 || switchTime >= endTime {
		return nil, fmt.Errorf("%w: switch=%g not in (%g, %g)", ErrSwitchOutOfRange, switchTime, t0, endTime)
	}

	switchFrame := int(math.Round((switchTime - t0) / dtFast))
	slowFrames := int(math.Round((endTime - switchTime) / dtSlow))

	return &Stepper{
		origin:      t0,
		dtFast:      dtFast,
		dtSlow:      dtSlow,
		dt:          dtFast,
		switchFrame: switchFrame,
		frameCount:  switchFrame + slowFrames,
	}, nil
}

// Time returns the simulated time at the given frame index. Indices
// must be presented in increasing order: the FAST→SLOW transition is a
// side effect of the first call at or past the switch frame. The
// transition frame's own time is still a fast step; the re-anchored
// origin makes every later frame advance by the slow step.
func (s *Stepper) Time(frame int) float64 {
	t := s.origin + float64(frame)*s.dt
	if !s.slow && frame >= s.switchFrame {
		s.slow = true
		s.dt = s.dtSlow
		s.origin = t - float64(frame)*s.dt
	}
	return t
}

// StepSize returns the step of the current phase.
func (s *Stepper) StepSize() float64 { return s.dt }

// Slow reports whether the one-way transition has happened.
func (s *Stepper) Slow() bool { return s.slow }

// SwitchFrame returns the frame index at which the clock re-anchors
// onto the slow step.
func (s *Stepper) SwitchFrame() int { return s.switchFrame }

// FrameCount returns the loop bound for a full run.
func (s *Stepper) FrameCount() int { return s.frameCount }
