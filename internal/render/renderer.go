// Package render composites one RGBA image per animation frame: the
// mass field as a line chart, valve spans as a state lane, event
// markers sized by fade, and a time label.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/quakeviz/quakeviz/internal/anim"
)

const laneHeight = 60 // bottom strip: valve lane + time label

var (
	colBackground = color.White
	colMass       = drawing.Color{R: 30, G: 90, B: 200, A: 255}
	colEvent      = color.RGBA{220, 40, 40, 255}
	colLabel      = color.RGBA{20, 20, 20, 255}
)

// Renderer draws frames at a fixed geometry. The mass axis ceiling is
// fixed up front so the y-axis does not rescale frame to frame.
type Renderer struct {
	width    int
	height   int
	gridSize int
	massMax  float64
}

func New(width, height, gridSize int, massMax float64) (*Renderer, error) {
	if gridSize < 2 {
		return nil, fmt.Errorf("render: grid size %d too small", gridSize)
	}
	if massMax <= 0 {
		massMax = 1
	}
	return &Renderer{width: width, height: height, gridSize: gridSize, massMax: massMax}, nil
}

// Frame composites a full frame. The returned image is freshly
// allocated each call; callers encode and drop it, nothing is retained
// across frames.
func (r *Renderer) Frame(f *anim.Frame) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	fillBackground(img, colBackground)

	chartImg, err := r.massChart(f.Mass)
	if err != nil {
		return nil, err
	}
	draw.Draw(img, chartImg.Bounds(), chartImg, image.Point{}, draw.Src)

	r.drawValves(img, f.Valves)
	r.drawEvents(img, f.Events)
	addLabel(img, 10, r.height-10, fmt.Sprintf("t = %.4f s", f.Time), colLabel)

	return img, nil
}

// massChart renders the 1-D mass field as a line chart filling the
// area above the valve lane.
func (r *Renderer) massChart(mass []float64) (image.Image, error) {
	xs := make([]float64, len(mass))
	for i := range xs {
		xs[i] = float64(i)
	}

	graph := chart.Chart{
		Width:  r.width,
		Height: r.height - laneHeight,
		XAxis: chart.XAxis{
			Style: chart.Style{FontSize: 8.0},
			Range: &chart.ContinuousRange{Min: 0, Max: float64(r.gridSize - 1)},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Style: chart.Style{FontSize: 8.0},
			Range: &chart.ContinuousRange{Min: 0, Max: r.massMax},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "fluid mass",
				XValues: xs,
				YValues: mass,
				Style:   chart.Style{StrokeColor: colMass, StrokeWidth: 2.0},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render: mass chart: %w", err)
	}
	return png.Decode(&buf)
}

// drawValves paints the valve lane: one band per valve span, shaded by
// display intensity so a breaking valve flashes brightest.
func (r *Renderer) drawValves(img *image.RGBA, valves []anim.Valve) {
	top := r.height - laneHeight + 10
	bottom := r.height - 25

	for _, v := range valves {
		x0 := r.xPixel(float64(v.Start))
		x1 := r.xPixel(float64(v.End))
		if x1 <= x0 {
			x1 = x0 + 2
		}
		c := valveColor(v.Intensity)
		draw.Draw(img, image.Rect(x0, top, x1, bottom), &image.Uniform{c}, image.Point{}, draw.Src)
	}
}

// drawEvents paints one disc per active event on the chart midline,
// radius from the faded size, opacity from the faded intensity.
func (r *Renderer) drawEvents(img *image.RGBA, events []anim.Event) {
	cy := (r.height - laneHeight) / 2
	for _, ev := range events {
		cx := r.xPixel(ev.X)
		radius := int(math.Round(math.Sqrt(ev.Size)))
		fillCircle(img, cx, cy, radius, eventColor(ev.Intensity))
	}
}

// eventColor fades the marker toward the background as intensity
// drops, since the JPEG frames carry no alpha channel.
func eventColor(intensity float64) color.RGBA {
	blend := func(c uint8) uint8 {
		return uint8(float64(c)*intensity + 255*(1-intensity))
	}
	return color.RGBA{blend(colEvent.R), blend(colEvent.G), blend(colEvent.B), 255}
}

func (r *Renderer) xPixel(grid float64) int {
	return int(grid / float64(r.gridSize-1) * float64(r.width-1))
}

// valveColor maps the three intensity levels onto an amber ramp.
func valveColor(intensity float64) color.RGBA {
	return color.RGBA{
		R: uint8(255 * intensity),
		G: uint8(140 * intensity),
		B: 0,
		A: 255,
	}
}

func fillBackground(img *image.RGBA, c color.Color) {
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
}

func fillCircle(img *image.RGBA, cx, cy, radius int, c color.Color) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				img.Set(cx+dx, cy+dy, c)
			}
		}
	}
}
