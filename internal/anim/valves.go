package anim

import "fmt"

// AdvanceValves moves every valve to its state at bitmap row step.
// A valve is breaking iff it was closed at step-1 and is open at step,
// so step 0 is invalid. The valve slice is mutated in place.
func AdvanceValves(step int, bitmap [][]bool, valves []Valve) error {
	if step == 0 {
		return ErrFirstFrame
	}
	if step < 0 || step >= len(bitmap) {
		return fmt.Errorf("%w: step %d, %d rows", ErrFrameRange, step, len(bitmap))
	}
	prev, cur := bitmap[step-1], bitmap[step]
	if len(cur) != len(valves) || len(prev) != len(valves) {
		return fmt.Errorf("%w: %d bitmap columns, %d valves", ErrShapeMismatch, len(cur), len(valves))
	}

	for j := range valves {
		v := &valves[j]
		v.Breaking = cur[j] && !prev[j]
		v.Open = cur[j]
		switch {
		case v.Breaking:
			v.Intensity = IntensityBreaking
		case v.Open:
			v.Intensity = IntensityOpen
		default:
			v.Intensity = IntensityClosed
		}
	}
	return nil
}
