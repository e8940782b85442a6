package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(4, 4)

	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("dot not set")
	}

	c.Clear()
	if c.Grid[0][0] != 0x2800 {
		t.Error("clear did not reset cell")
	}
}

func TestCanvasBounds(t *testing.T) {
	c := NewCanvas(4, 4)
	// Out-of-range dots are dropped, not panics.
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(1000, 1000)
}

func TestDrawVLineGap(t *testing.T) {
	solid := NewCanvas(2, 4)
	solid.DrawVLine(0, 0, 15, 0)

	sparse := NewCanvas(2, 4)
	sparse.DrawVLine(0, 0, 15, 3)

	if countDots(solid) <= countDots(sparse) {
		t.Errorf("solid line has %d dots, sparse %d", countDots(solid), countDots(sparse))
	}
}

func TestDrawCircle(t *testing.T) {
	c := NewCanvas(10, 10)
	c.DrawCircle(10, 20, 3)
	if countDots(c) == 0 {
		t.Error("circle drew nothing")
	}
}

func TestString(t *testing.T) {
	c := NewCanvas(3, 2)
	s := c.String()
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("got %d lines, want 2", len(lines))
	}
}

func countDots(c *Canvas) int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			pattern := int(r - 0x2800)
			for pattern != 0 {
				n += pattern & 1
				pattern >>= 1
			}
		}
	}
	return n
}
