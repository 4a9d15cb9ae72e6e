package canvas

// DefaultHistoryCapacity bounds how many snapshots are retained.
const DefaultHistoryCapacity = 20

// History is a bounded linear undo/redo stack of frames with a cursor
// pointing at the currently displayed frame. Capturing after an undo
// discards the redo branch; there is no branching or merging.
type History struct {
	frames   []Frame
	step     int
	capacity int
}

// NewHistory creates an empty history. Non-positive capacities fall
// back to the default.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{step: -1, capacity: capacity}
}

// Capture appends a frame, truncating any redo entries beyond the
// cursor first, then evicting from the front when capacity is
// exceeded. The cursor always lands on the newly captured frame.
func (h *History) Capture(frame Frame) {
	h.frames = append(h.frames[:h.step+1], frame)
	if len(h.frames) > h.capacity {
		evicted := len(h.frames) - h.capacity
		h.frames = append(h.frames[:0], h.frames[evicted:]...)
	}
	h.step = len(h.frames) - 1
}

// Undo moves the cursor one frame back and returns the frame to
// render. It is a no-op at the oldest frame.
func (h *History) Undo() (Frame, bool) {
	if !h.CanUndo() {
		return Frame{}, false
	}
	h.step--
	return h.frames[h.step], true
}

// Redo moves the cursor one frame forward and returns the frame to
// render. It is a no-op at the newest frame.
func (h *History) Redo() (Frame, bool) {
	if !h.CanRedo() {
		return Frame{}, false
	}
	h.step++
	return h.frames[h.step], true
}

// CanUndo reports whether an older frame exists.
func (h *History) CanUndo() bool {
	return h.step > 0
}

// CanRedo reports whether a newer frame exists.
func (h *History) CanRedo() bool {
	return len(h.frames) > 0 && h.step < len(h.frames)-1
}

// Current returns the frame at the cursor.
func (h *History) Current() (Frame, bool) {
	if h.step < 0 || h.step >= len(h.frames) {
		return Frame{}, false
	}
	return h.frames[h.step], true
}

// Len returns the number of retained frames.
func (h *History) Len() int {
	return len(h.frames)
}

// Step returns the cursor position.
func (h *History) Step() int {
	return h.step
}
