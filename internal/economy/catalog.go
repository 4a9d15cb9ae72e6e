package economy

// ItemType distinguishes the three catalog dimensions.
type ItemType string

const (
	// ItemColor unlocks a paint color.
	ItemColor ItemType = "color"
	// ItemBrush unlocks a brush size.
	ItemBrush ItemType = "brush"
	// ItemCanvas unlocks a canvas size.
	ItemCanvas ItemType = "canvas"
)

// ShopItem is one catalog entry. Exactly one of ColorHex, BrushSize,
// or Canvas is meaningful, selected by Type. Unlocked is a derived
// view recomputed from GameState, never primary truth.
type ShopItem struct {
	ID          string     `json:"id"`
	Type        ItemType   `json:"type"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       int        `json:"price"`
	ColorHex    string     `json:"colorHex,omitempty"`
	BrushSize   int        `json:"brushSize,omitempty"`
	Canvas      CanvasSize `json:"canvas,omitempty"`
	Unlocked    bool       `json:"unlocked"`
}

// StartingCoins is the balance seeded for a brand new session.
const StartingCoins = 50

// SmallCanvas is the starting canvas every session begins with.
var SmallCanvas = CanvasSize{ID: "small", Width: 400, Height: 300, Name: "Small", Price: 0}

// NewGameState returns the initial progression record for a fresh
// session: starting coins, the base palette and brushes, and the small
// canvas unlocked and selected.
func NewGameState() GameState {
	return GameState{
		Coins:               StartingCoins,
		UnlockedColors:      []string{"#000000", "#FFFFFF", "#FF0000", "#00FF00", "#0000FF"},
		UnlockedBrushSizes:  []int{2, 5, 10},
		UnlockedCanvasSizes: []CanvasSize{SmallCanvas},
		CurrentCanvasSize:   SmallCanvas,
	}
}

// DefaultCatalog returns the static shop catalog with all entries
// locked. Unlocked flags are recomputed against a GameState via
// MarkUnlocked.
func DefaultCatalog() []ShopItem {
	return []ShopItem{
		// Basic colors
		{ID: "color-yellow", Type: ItemColor, Name: "Yellow", Description: "Bright and cheerful", Price: 10, ColorHex: "#FFFF00"},
		{ID: "color-orange", Type: ItemColor, Name: "Orange", Description: "Warm and vibrant", Price: 10, ColorHex: "#FFA500"},
		{ID: "color-purple", Type: ItemColor, Name: "Purple", Description: "Royal and mysterious", Price: 10, ColorHex: "#800080"},
		{ID: "color-pink", Type: ItemColor, Name: "Pink", Description: "Soft and sweet", Price: 10, ColorHex: "#FFC0CB"},

		// Advanced colors
		{ID: "color-cyan", Type: ItemColor, Name: "Cyan", Description: "Cool aqua tone", Price: 25, ColorHex: "#00FFFF"},
		{ID: "color-magenta", Type: ItemColor, Name: "Magenta", Description: "Bold pink-purple", Price: 25, ColorHex: "#FF00FF"},
		{ID: "color-lime", Type: ItemColor, Name: "Lime", Description: "Electric green", Price: 25, ColorHex: "#00FF00"},
		{ID: "color-navy", Type: ItemColor, Name: "Navy", Description: "Deep ocean blue", Price: 25, ColorHex: "#000080"},
		{ID: "color-maroon", Type: ItemColor, Name: "Maroon", Description: "Rich deep red", Price: 25, ColorHex: "#800000"},

		// Special colors
		{ID: "color-gold", Type: ItemColor, Name: "Gold", Description: "Luxurious metallic", Price: 50, ColorHex: "#FFD700"},
		{ID: "color-silver", Type: ItemColor, Name: "Silver", Description: "Sleek and modern", Price: 50, ColorHex: "#C0C0C0"},
		{ID: "color-bronze", Type: ItemColor, Name: "Bronze", Description: "Warm metallic", Price: 50, ColorHex: "#CD7F32"},

		// Brush sizes
		{ID: "brush-1", Type: ItemBrush, Name: "Fine Brush", Description: "Perfect for details", Price: 40, BrushSize: 1},
		{ID: "brush-15", Type: ItemBrush, Name: "Medium Brush", Description: "Versatile size", Price: 30, BrushSize: 15},
		{ID: "brush-20", Type: ItemBrush, Name: "Large Brush", Description: "Cover more area", Price: 50, BrushSize: 20},
		{ID: "brush-30", Type: ItemBrush, Name: "Huge Brush", Description: "Bold strokes", Price: 100, BrushSize: 30},

		// Canvas sizes
		{ID: "canvas-medium", Type: ItemCanvas, Name: "Medium Canvas", Description: "More space to create", Price: 100, Canvas: CanvasSize{ID: "medium", Width: 600, Height: 450, Name: "Medium", Price: 100}},
		{ID: "canvas-large", Type: ItemCanvas, Name: "Large Canvas", Description: "Expansive workspace", Price: 250, Canvas: CanvasSize{ID: "large", Width: 800, Height: 600, Name: "Large", Price: 250}},
		{ID: "canvas-xl", Type: ItemCanvas, Name: "XL Canvas", Description: "Maximum creative space", Price: 500, Canvas: CanvasSize{ID: "xl", Width: 1000, Height: 750, Name: "XL", Price: 500}},
	}
}

// FindItem looks up a catalog entry by id.
func FindItem(items []ShopItem, id string) (ShopItem, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return ShopItem{}, false
}

// MarkUnlocked recomputes every item's Unlocked flag from the state's
// unlocked-sets. The flag is a pure function of state so catalog
// records and progression can never drift apart.
func MarkUnlocked(state GameState, items []ShopItem) []ShopItem {
	out := make([]ShopItem, len(items))
	for i, item := range items {
		switch item.Type {
		case ItemColor:
			item.Unlocked = state.HasColor(item.ColorHex)
		case ItemBrush:
			item.Unlocked = state.HasBrushSize(item.BrushSize)
		case ItemCanvas:
			item.Unlocked = state.HasCanvasSize(item.Canvas.ID)
		}
		out[i] = item
	}
	return out
}
