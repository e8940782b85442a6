// Package anim holds the stateful core of the animation: valve state
// tracking, event fade computation, and the dual-speed time stepper.
//
// The package does not render anything. It owns the mutable per-run
// state and produces one [Frame] per loop iteration:
//
//   - [Valve]: open/closed state with one-step "breaking" detection
//   - [Event]: catalog entry with a time-decaying visual fade
//   - [Stepper]: monotonic clock with a single FAST→SLOW transition
//   - [Animator]: drives the frame loop and feeds a [FrameSink]
//
// # Example
//
//	st, _ := anim.NewStepper(t0, tSwitch, tEnd, dtFast, dtSlow)
//	a := anim.NewAnimator(st, ds.Valves(), ds.Events, ds.Mass, ds.Bitmap, fade, window)
//	err := a.Run(ctx, sink)
//
// # Thread Safety
//
// Animator instances are NOT thread-safe. Each frame's state depends on
// the previous frame's bitmap row, so the loop is strictly sequential.
package anim
