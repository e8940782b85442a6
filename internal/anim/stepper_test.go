package anim

import (
	"errors"
	"math"
	"testing"
)

func TestStepperMonotonic(t *testing.T) {
	st, err := NewStepper(0, 1.0, 1.1, 0.01, 0.001)
	if err != nil {
		t.Fatal(err)
	}

	prev := math.Inf(-1)
	for i := 0; i < st.FrameCount(); i++ {
		tm := st.Time(i)
		if tm <= prev {
			t.Fatalf("frame %d: time %g not greater than %g", i, tm, prev)
		}
		prev = tm
	}
}

func TestStepperSwitchesOnce(t *testing.T) {
	st, err := NewStepper(0, 1.0, 1.1, 0.01, 0.001)
	if err != nil {
		t.Fatal(err)
	}

	transitions := 0
	wasSlow := false
	for i := 0; i < st.FrameCount(); i++ {
		st.Time(i)
		if st.Slow() && !wasSlow {
			transitions++
			wasSlow = true
		}
		if wasSlow && !st.Slow() {
			t.Fatal("stepper reverted to fast phase")
		}
		if wasSlow && st.StepSize() != 0.001 {
			t.Fatalf("frame %d: post-switch step %g, want 0.001", i, st.StepSize())
		}
	}

	if transitions != 1 {
		t.Fatalf("got %d transitions, want 1", transitions)
	}
}

func TestStepperSlowIncrements(t *testing.T) {
	st, err := NewStepper(0, 1.0, 1.1, 0.01, 0.001)
	if err != nil {
		t.Fatal(err)
	}

	times := make([]float64, st.FrameCount())
	for i := range times {
		times[i] = st.Time(i)
	}

	// From the first post-switch frame on, consecutive frames differ by
	// exactly the slow step.
	for i := st.SwitchFrame() + 1; i < len(times); i++ {
		d := times[i] - times[i-1]
		if math.Abs(d-0.001) > 1e-12 {
			t.Fatalf("frame %d: slow increment %g, want 0.001", i, d)
		}
	}
}

func TestStepperSwitchFrameTrigger(t *testing.T) {
	// The switch time lands exactly on a fast frame here; the transition
	// must still fire at the precomputed switch frame, not one late, and
	// the run must stay inside the configured end time.
	st, err := NewStepper(0, 1.0, 1.1, 0.01, 0.001)
	if err != nil {
		t.Fatal(err)
	}

	trigger := -1
	times := make([]float64, st.FrameCount())
	for i := range times {
		times[i] = st.Time(i)
		if trigger < 0 && st.Slow() {
			trigger = i
		}
	}

	if trigger != st.SwitchFrame() {
		t.Errorf("transition at frame %d, want switch frame %d", trigger, st.SwitchFrame())
	}
	if math.Abs(times[st.SwitchFrame()]-1.0) > 1e-9 {
		t.Errorf("switch frame time %g, want switch time 1.0", times[st.SwitchFrame()])
	}
	if last := times[len(times)-1]; last > 1.1 {
		t.Errorf("last frame time %g overshoots end time 1.1", last)
	}
}

func TestStepperFrameCount(t *testing.T) {
	st, err := NewStepper(0, 1.0, 1.1, 0.01, 0.001)
	if err != nil {
		t.Fatal(err)
	}

	if st.SwitchFrame() != 100 {
		t.Errorf("switch frame %d, want 100", st.SwitchFrame())
	}
	if st.FrameCount() != 200 {
		t.Errorf("frame count %d, want 200", st.FrameCount())
	}
}

func TestNewStepperValidation(t *testing.T) {
	tests := []struct {
		name                string
		t0, sw, end, df, ds float64
		wantErr             error
	}{
		{"switch before start", 1.0, 0.5, 2.0, 0.01, 0.001, ErrSwitchOutOfRange},
		{"switch at start", 1.0, 1.0, 2.0, 0.01, 0.001, ErrSwitchOutOfRange},
		{"switch after end", 0.0, 3.0, 2.0, 0.01, 0.001, ErrSwitchOutOfRange},
		{"zero fast step", 0.0, 1.0, 2.0, 0.0, 0.001, ErrStepSize},
		{"negative slow step", 0.0, 1.0, 2.0, 0.01, -1, ErrStepSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStepper(tt.t0, tt.sw, tt.end, tt.df, tt.ds)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}
