package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quakeviz/quakeviz/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(4, 4)
	c.DrawLine(0, 0, 7, 15)

	svg := CanvasToSVG(c, 4.0)
	if !strings.HasPrefix(svg, "<?xml") {
		t.Error("missing XML header")
	}
	if !strings.Contains(svg, "<circle") {
		t.Error("no dots emitted for a drawn line")
	}
}

func TestCanvasToSVGNil(t *testing.T) {
	if CanvasToSVG(nil, 4.0) != "" {
		t.Error("nil canvas should yield empty output")
	}
}

func TestSaveSVG(t *testing.T) {
	c := viz.NewCanvas(4, 4)
	c.Set(0, 0)

	path := filepath.Join(t.TempDir(), "frame.svg")
	if err := SaveSVG(c, 4.0, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "</svg>") {
		t.Error("saved SVG is truncated")
	}
}
