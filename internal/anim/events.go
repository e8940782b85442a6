package anim

// UpdateEvent recomputes an event's fade and derived visuals at the
// given time. Fade decays linearly from 1 to 0 over the fade duration
// and is 0 outside it. Size eases cubically so markers flash briefly
// and then shrink fast; intensity bottoms out at 0.5 so decayed events
// stay faintly visible.
func UpdateEvent(ev *Event, now float64, p FadeParams) {
	elapsed := now - ev.T
	if elapsed >= 0 && elapsed <= p.Duration && p.Duration > 0 {
		ev.Fade = 1 - elapsed/p.Duration
	} else {
		ev.Fade = 0
	}
	f := ev.Fade
	ev.Size = p.MinSize + (p.MaxSize-p.MinSize)*f*f*f
	ev.Intensity = 0.5 + 0.5*f
}

// ActiveEvents updates and returns, in catalog order, the events whose
// detection time falls in the half-open window (lower, now]. The window
// is inclusive at the current frame time so an event detected exactly
// at the frame instant appears on that frame, and exclusive at the
// trailing bound so consecutive windows never count an event twice.
func ActiveEvents(events []Event, lower, now float64, p FadeParams) []Event {
	var active []Event
	for i := range events {
		t := events[i].T
		if t <= lower || t > now {
			continue
		}
		UpdateEvent(&events[i], now, p)
		active = append(active, events[i])
	}
	return active
}
