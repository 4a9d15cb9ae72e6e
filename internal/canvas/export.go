package canvas

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	xdraw "golang.org/x/image/draw"
)

const (
	// ExportQuality is the JPEG quality for full-size exports.
	ExportQuality = 80
	// ThumbnailQuality is the JPEG quality for gallery thumbnails.
	ThumbnailQuality = 70
	// ThumbnailMaxWidth bounds thumbnail width; height follows the
	// aspect ratio.
	ThumbnailMaxWidth = 200
)

// Export serializes the current raster as a JPEG. It may be called in
// any state and never touches the history.
func (s *Surface) Export() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.dc.EncodeJPEG(&buf, ExportQuality); err != nil {
		return nil, fmt.Errorf("encode canvas: %w", err)
	}
	return buf.Bytes(), nil
}

// Thumbnail renders a uniformly downscaled JPEG at most
// ThumbnailMaxWidth pixels wide, preserving the aspect ratio.
func (s *Surface) Thumbnail() ([]byte, error) {
	src := s.Snapshot().Image()
	return EncodeThumbnail(src)
}

// EncodeThumbnail downscales any frame image into the thumbnail
// encoding used by the gallery.
func EncodeThumbnail(src image.Image) ([]byte, error) {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}

	thumbWidth := ThumbnailMaxWidth
	if width < thumbWidth {
		thumbWidth = width
	}
	thumbHeight := thumbWidth * height / width
	if thumbHeight < 1 {
		thumbHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, thumbWidth, thumbHeight))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: ThumbnailQuality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
