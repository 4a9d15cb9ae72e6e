// Package economy holds the coin-and-unlock game state and the pure
// transition functions that mutate it. Callers persist the returned
// state; nothing in this package touches storage.
package economy

// CanvasSize describes one purchasable canvas dimension.
type CanvasSize struct {
	ID     string `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Name   string `json:"name"`
	Price  int    `json:"price"`
}

// GameState is the single mutable progression record for a session.
// It is only changed through the transition functions in this package
// and is persisted after every change.
type GameState struct {
	Coins               int          `json:"coins"`
	UnlockedColors      []string     `json:"unlockedColors"`
	UnlockedBrushSizes  []int        `json:"unlockedBrushSizes"`
	UnlockedCanvasSizes []CanvasSize `json:"unlockedCanvasSizes"`
	CurrentCanvasSize   CanvasSize   `json:"currentCanvasSize"`
	PaintingCount       int          `json:"paintingCount"`
	TotalEarnings       int          `json:"totalEarnings"`
	TutorialCompleted   bool         `json:"tutorialCompleted"`
}

// Clone returns a deep copy so transitions never alias the caller's
// slices.
func (s GameState) Clone() GameState {
	out := s
	out.UnlockedColors = append([]string(nil), s.UnlockedColors...)
	out.UnlockedBrushSizes = append([]int(nil), s.UnlockedBrushSizes...)
	out.UnlockedCanvasSizes = append([]CanvasSize(nil), s.UnlockedCanvasSizes...)
	return out
}

// HasColor reports whether a color hex is unlocked.
func (s GameState) HasColor(hex string) bool {
	for _, c := range s.UnlockedColors {
		if c == hex {
			return true
		}
	}
	return false
}

// HasBrushSize reports whether a brush size is unlocked.
func (s GameState) HasBrushSize(size int) bool {
	for _, b := range s.UnlockedBrushSizes {
		if b == size {
			return true
		}
	}
	return false
}

// HasCanvasSize reports whether a canvas size id is unlocked.
func (s GameState) HasCanvasSize(id string) bool {
	for _, cs := range s.UnlockedCanvasSizes {
		if cs.ID == id {
			return true
		}
	}
	return false
}
