package canvas

import (
	"github.com/gogpu/gg"

	apperrors "github.com/louisbranch/artshop/internal/errors"
)

// Mode selects how a stroke composites onto the raster.
type Mode string

const (
	// ModeDraw paints the tool color.
	ModeDraw Mode = "draw"
	// ModeErase restores the background regardless of the chosen
	// color. Cap, join, and brush size behave exactly as in draw mode
	// so erasing feels continuous.
	ModeErase Mode = "erase"
)

// Tool is the transient brush configuration read per stroke segment.
// The UI layer owns it and may change it between strokes.
type Tool struct {
	Color     string // RGB hex, e.g. "#FF0000"
	BrushSize int
	Mode      Mode
}

// BackgroundHex is the canvas background color.
const BackgroundHex = "#FFFFFF"

// Surface rasterizes pointer input into a pixel buffer and delegates
// snapshotting to a History. It is a two-state machine: Idle until
// PointerDown, Drawing until PointerUp (or pointer-leave, which the
// caller maps to PointerUp so the machine can never stick in Drawing).
type Surface struct {
	dc      *gg.Context
	history *History

	drawing bool
	lastX   float64
	lastY   float64
}

// ErrInvalidSize indicates non-positive canvas dimensions.
var ErrInvalidSize = apperrors.New(apperrors.CodeCanvasInvalidSize, "canvas dimensions must be positive")

// NewSurface creates a white surface and captures the initial blank
// frame, so the first undo always lands on a blank canvas.
func NewSurface(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}

	dc := gg.NewContext(width, height)
	dc.ClearWithColor(gg.White)

	s := &Surface{
		dc:      dc,
		history: NewHistory(DefaultHistoryCapacity),
	}
	s.capture()
	return s, nil
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.dc.Width() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.dc.Height() }

// Drawing reports whether a stroke is in progress.
func (s *Surface) Drawing() bool { return s.drawing }

// PointerDown begins a stroke at the given position. The raster is
// not touched until the pointer moves.
func (s *Surface) PointerDown(x, y float64) {
	s.drawing = true
	s.lastX, s.lastY = x, y
}

// PointerMove rasterizes one segment of the active stroke from the
// last recorded position to the new one, then advances the recorded
// position so fast pointer paths render as a connected polyline.
// Events outside a stroke are ignored.
func (s *Surface) PointerMove(x, y float64, tool Tool) error {
	if !s.drawing {
		return nil
	}

	if tool.Mode == ModeErase {
		s.dc.SetHexColor(BackgroundHex)
	} else {
		s.dc.SetHexColor(tool.Color)
	}
	size := tool.BrushSize
	if size < 1 {
		size = 1
	}
	s.dc.SetLineWidth(float64(size))
	s.dc.SetLineCap(gg.LineCapRound)
	s.dc.SetLineJoin(gg.LineJoinRound)

	s.dc.DrawLine(s.lastX, s.lastY, x, y)
	if err := s.dc.Stroke(); err != nil {
		return err
	}

	s.lastX, s.lastY = x, y
	return nil
}

// PointerUp ends the active stroke and captures exactly one history
// frame for it. Pointer-leave events must be routed here as well.
func (s *Surface) PointerUp() {
	if !s.drawing {
		return
	}
	s.drawing = false
	s.capture()
}

// Clear fills the surface with the background color and records the
// result as a new undoable frame.
func (s *Surface) Clear() {
	s.dc.ClearWithColor(gg.White)
	s.capture()
}

// Undo restores the previous frame. Ignored mid-stroke and at the
// oldest frame.
func (s *Surface) Undo() bool {
	if s.drawing {
		return false
	}
	frame, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.restore(frame)
	return true
}

// Redo restores the next frame. Ignored mid-stroke and at the newest
// frame.
func (s *Surface) Redo() bool {
	if s.drawing {
		return false
	}
	frame, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.restore(frame)
	return true
}

// CanUndo reports whether Undo would change the surface.
func (s *Surface) CanUndo() bool { return !s.drawing && s.history.CanUndo() }

// CanRedo reports whether Redo would change the surface.
func (s *Surface) CanRedo() bool { return !s.drawing && s.history.CanRedo() }

// History exposes the snapshot stack for inspection.
func (s *Surface) History() *History { return s.history }

// Snapshot clones the current raster without touching history.
func (s *Surface) Snapshot() Frame {
	return captureFrame(s.dc.Image())
}

// IsEmpty reports whether no visible paint has been applied: every
// pixel is either fully transparent or pure white. Submitting an empty
// surface is rejected by the caller before any valuation happens.
func (s *Surface) IsEmpty() bool {
	img := s.Snapshot()
	pix := img.pix
	for i := 0; i+3 < len(pix); i += 4 {
		if pix[i+3] == 0 {
			continue
		}
		if pix[i] != 255 || pix[i+1] != 255 || pix[i+2] != 255 {
			return false
		}
	}
	return true
}

func (s *Surface) capture() {
	s.history.Capture(s.Snapshot())
}

// restore swaps in a context built from the frame's pixels. Building
// from the image keeps restores pixel-exact; compositing the frame
// onto the old raster would resample it.
func (s *Surface) restore(frame Frame) {
	s.dc = gg.NewContextForImage(frame.Image())
}
