package video

import (
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
)

// GIF accumulates paletted frames for a preview recording.
type GIF struct {
	frames []*image.Paletted
	delay  int // per frame, hundredths of a second
}

func NewGIF(fps int) *GIF {
	if fps <= 0 {
		fps = 30
	}
	delay := 100 / fps
	if delay < 1 {
		delay = 1
	}
	return &GIF{delay: delay}
}

// Add quantizes a frame onto the Plan 9 palette and appends it.
func (g *GIF) Add(img image.Image) {
	p := image.NewPaletted(img.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(p, img.Bounds(), img, image.Point{})
	g.frames = append(g.frames, p)
}

// Frames returns the number of captured frames.
func (g *GIF) Frames() int { return len(g.frames) }

// Save writes the looping animation. A recording with no frames is a
// no-op.
func (g *GIF) Save(path string) error {
	if len(g.frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range g.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, g.delay)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}
