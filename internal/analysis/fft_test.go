package analysis

import (
	"math"
	"testing"
)

func TestSpectrumPeak(t *testing.T) {
	const (
		n  = 256
		dt = 0.01
	)
	// Bin-aligned sine: 8 cycles over the window, 3.125 Hz.
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 8 * float64(i) / n)
	}

	ps := Spectrum(data)
	if len(ps) != n/2 {
		t.Fatalf("spectrum length %d, want %d", len(ps), n/2)
	}

	freq := DominantFrequency(ps, dt)
	if math.Abs(freq-3.125) > 1e-9 {
		t.Errorf("dominant frequency %g, want 3.125", freq)
	}
}

func TestSpectrumRemovesDC(t *testing.T) {
	data := make([]float64, 64)
	for i := range data {
		data[i] = 5.0 // constant series
	}

	ps := Spectrum(data)
	for i, p := range ps {
		if p > 1e-9 {
			t.Errorf("bin %d has power %g for a constant series", i, p)
		}
	}
}

func TestSpectrumPadsOddLength(t *testing.T) {
	data := make([]float64, 100)
	for i := range data {
		data[i] = math.Sin(float64(i))
	}

	ps := Spectrum(data)
	if len(ps) != 64 { // padded to 128
		t.Errorf("spectrum length %d, want 64", len(ps))
	}
}

func TestDominantFrequencyDegenerate(t *testing.T) {
	if f := DominantFrequency(nil, 0.01); f != 0 {
		t.Errorf("nil spectrum: got %g, want 0", f)
	}
	if f := DominantFrequency([]float64{1, 2}, 0); f != 0 {
		t.Errorf("zero step: got %g, want 0", f)
	}
}
