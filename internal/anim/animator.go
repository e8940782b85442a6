package anim

import (
	"context"
	"fmt"
)

// Animator owns the mutable run state and drives the frame loop. It is
// the single owner of the valve and event slices; sinks see them only
// for the duration of a WriteFrame call.
type Animator struct {
	stepper *Stepper
	valves  []Valve
	events  []Event
	mass    [][]float64
	bitmap  [][]bool
	fade    FadeParams
	window  float64
}

// NewAnimator wires loaded data to a stepper. The window is the width
// of the trailing interval over which events stay active.
func NewAnimator(st *Stepper, valves []Valve, events []Event, mass [][]float64, bitmap [][]bool, fade FadeParams, window float64) *Animator {
	return &Animator{
		stepper: st,
		valves:  valves,
		events:  events,
		mass:    mass,
		bitmap:  bitmap,
		fade:    fade,
		window:  window,
	}
}

func (a *Animator) validate() error {
	n := a.stepper.FrameCount()
	if n < 2 {
		return ErrNoFrames
	}
	if n > len(a.mass) {
		return fmt.Errorf("%w: %d frames, %d mass rows", ErrShapeMismatch, n, len(a.mass))
	}
	if n > len(a.bitmap) {
		return fmt.Errorf("%w: %d frames, %d bitmap rows", ErrShapeMismatch, n, len(a.bitmap))
	}
	if len(a.bitmap) > 0 && len(a.bitmap[0]) != len(a.valves) {
		return fmt.Errorf("%w: %d bitmap columns, %d valves", ErrShapeMismatch, len(a.bitmap[0]), len(a.valves))
	}
	return nil
}

// Run produces frames 1..FrameCount-1 in order. Frame 0 is skipped
// because breaking detection needs a previous bitmap row. Any sink or
// bounds error aborts the whole run; there is no partial recovery.
func (a *Animator) Run(ctx context.Context, sink FrameSink) error {
	if err := a.validate(); err != nil {
		return err
	}

	n := a.stepper.FrameCount()
	for i := 1; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		t := a.stepper.Time(i)
		active := ActiveEvents(a.events, t-a.window, t, a.fade)
		if err := AdvanceValves(i, a.bitmap, a.valves); err != nil {
			return &FrameError{Frame: i, Time: t, Wrapped: err}
		}

		frame := Frame{
			Index:  i,
			Time:   t,
			Mass:   a.mass[i],
			Valves: a.valves,
			Events: active,
		}
		if err := sink.WriteFrame(&frame); err != nil {
			return &FrameError{Frame: i, Time: t, Wrapped: err}
		}
	}
	return nil
}

// FrameCount exposes the stepper's loop bound.
func (a *Animator) FrameCount() int { return a.stepper.FrameCount() }

// Valves returns the animator's valve state, for read-only inspection.
func (a *Animator) Valves() []Valve { return a.valves }
