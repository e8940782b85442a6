// Package video turns rendered frames into the run's output artifact:
// an MJPEG-in-AVI file, or an animated GIF for preview recordings.
package video

import (
	"bytes"
	"fmt"
	"image/jpeg"

	"github.com/icza/mjpeg"

	"github.com/quakeviz/quakeviz/internal/anim"
	"github.com/quakeviz/quakeviz/internal/render"
)

const jpegQuality = 90

// Writer is the render-to-video sink. Each frame is drawn, JPEG-encoded
// into a reused buffer, appended to the AVI, and dropped: nothing per
// frame survives the WriteFrame call, so memory stays bounded over an
// arbitrarily long run.
type Writer struct {
	renderer *render.Renderer
	avi      mjpeg.AviWriter
	buf      bytes.Buffer
	frames   int
}

func NewWriter(path string, r *render.Renderer, width, height, fps int) (*Writer, error) {
	avi, err := mjpeg.New(path, int32(width), int32(height), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("video: create %s: %w", path, err)
	}
	return &Writer{renderer: r, avi: avi}, nil
}

func (w *Writer) WriteFrame(f *anim.Frame) error {
	img, err := w.renderer.Frame(f)
	if err != nil {
		return err
	}

	w.buf.Reset()
	if err := jpeg.Encode(&w.buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return fmt.Errorf("video: encode frame %d: %w", f.Index, err)
	}
	if err := w.avi.AddFrame(w.buf.Bytes()); err != nil {
		return fmt.Errorf("video: append frame %d: %w", f.Index, err)
	}
	w.frames++
	return nil
}

// Frames returns the number of frames appended so far.
func (w *Writer) Frames() int { return w.frames }

// Close finalizes the AVI index. The file is not playable until Close
// returns.
func (w *Writer) Close() error {
	return w.avi.Close()
}
