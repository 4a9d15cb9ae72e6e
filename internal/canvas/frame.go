// Package canvas implements the raster drawing surface and its
// bounded undo/redo history. Strokes arrive as pointer events from the
// UI layer; the unit of undo is one pointer-down-to-pointer-up
// gesture.
package canvas

import (
	"bytes"
	"image"
	"image/draw"
)

// Frame is an immutable raster snapshot of the whole canvas. Once
// captured it is owned by the history and never mutated in place.
type Frame struct {
	width  int
	height int
	pix    []uint8 // RGBA, 4 bytes per pixel
}

// captureFrame clones the pixels of an image into a Frame.
func captureFrame(img image.Image) Frame {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return Frame{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		pix:    rgba.Pix,
	}
}

// Width returns the frame width in pixels.
func (f Frame) Width() int { return f.width }

// Height returns the frame height in pixels.
func (f Frame) Height() int { return f.height }

// Image returns a fresh copy of the frame's pixels. Callers may draw
// the result anywhere without aliasing the stored snapshot.
func (f Frame) Image() *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	copy(rgba.Pix, f.pix)
	return rgba
}

// Equal reports whether two frames hold identical pixels.
func (f Frame) Equal(other Frame) bool {
	return f.width == other.width &&
		f.height == other.height &&
		bytes.Equal(f.pix, other.pix)
}
