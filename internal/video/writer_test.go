package video

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/quakeviz/quakeviz/internal/anim"
	"github.com/quakeviz/quakeviz/internal/render"
)

func TestWriterProducesAVI(t *testing.T) {
	r, err := render.New(160, 120, 8, 3.0)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "run.avi")
	w, err := NewWriter(path, r, 160, 120, 30)
	if err != nil {
		t.Fatal(err)
	}

	frame := &anim.Frame{
		Index:  1,
		Time:   1.0,
		Mass:   []float64{1, 2, 3, 2, 1, 1, 1, 1},
		Valves: []anim.Valve{{Start: 2, End: 3, Intensity: anim.IntensityClosed}},
	}
	for i := 0; i < 3; i++ {
		frame.Index = i + 1
		if err := w.WriteFrame(frame); err != nil {
			t.Fatal(err)
		}
	}
	if w.Frames() != 3 {
		t.Errorf("frames %d, want 3", w.Frames())
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("AVI file is empty")
	}
}

func TestGIFSave(t *testing.T) {
	g := NewGIF(30)

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 16), uint8(y * 16), 0, 255})
		}
	}
	g.Add(img)
	g.Add(img)

	if g.Frames() != 2 {
		t.Errorf("frames %d, want 2", g.Frames())
	}

	path := filepath.Join(t.TempDir(), "rec.gif")
	if err := g.Save(path); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("GIF file is empty")
	}
}

func TestGIFSaveEmptyIsNoop(t *testing.T) {
	g := NewGIF(30)
	path := filepath.Join(t.TempDir(), "rec.gif")
	if err := g.Save(path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("empty recording should not create a file")
	}
}
