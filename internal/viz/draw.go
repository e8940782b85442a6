package viz

import "github.com/quakeviz/quakeviz/internal/anim"

// DrawFrame paints one animation frame onto the canvas: the mass field
// as a curve over the full height, valve columns shaded by intensity
// (sparser dots for dimmer states), and event discs that grow with
// fade. Used by the player every tick and by the frame exporter.
func DrawFrame(c *Canvas, mass []float64, massMax float64, valves []anim.Valve, events []anim.Event) {
	c.Clear()
	if len(mass) < 2 || massMax <= 0 {
		return
	}

	subW, subH := c.Width*2, c.Height*4
	grid := len(mass)

	toX := func(cell float64) int {
		return int(cell / float64(grid-1) * float64(subW-1))
	}
	toY := func(v float64) int {
		return subH - 1 - int(v/massMax*float64(subH-8))
	}

	prevX, prevY := toX(0), toY(mass[0])
	for i := 1; i < grid; i++ {
		x, y := toX(float64(i)), toY(mass[i])
		c.DrawLine(prevX, prevY, x, y)
		prevX, prevY = x, y
	}

	for _, v := range valves {
		x := toX(float64(v.Center()))
		gap := int((1 - v.Intensity) * 5)
		c.DrawVLine(x, 0, subH-1, gap)
	}

	for _, ev := range events {
		r := 1 + int(ev.Fade*4)
		c.DrawCircle(toX(ev.X), subH/3, r)
	}
}
