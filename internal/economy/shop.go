package economy

import (
	"sort"
	"time"
)

// DailyBonusCoins is granted once per calendar day on login.
const DailyBonusCoins = 10

// CanPurchase reports whether an item can be bought with the given
// balance. Already-unlocked items are never purchasable again.
func CanPurchase(item ShopItem, coins int) bool {
	return coins >= item.Price && !item.Unlocked
}

// Purchase deducts the item price and merges its value into the
// matching unlocked-set. A purchase that fails CanPurchase returns the
// state unchanged; it is a no-op, not an error. Exactly one
// unlocked-set is touched, selected by the item type.
func Purchase(item ShopItem, state GameState) GameState {
	if !CanPurchase(item, state.Coins) {
		return state
	}

	next := state.Clone()
	next.Coins -= item.Price

	switch item.Type {
	case ItemColor:
		if !next.HasColor(item.ColorHex) {
			next.UnlockedColors = append(next.UnlockedColors, item.ColorHex)
		}
	case ItemBrush:
		if !next.HasBrushSize(item.BrushSize) {
			next.UnlockedBrushSizes = append(next.UnlockedBrushSizes, item.BrushSize)
			sort.Ints(next.UnlockedBrushSizes)
		}
	case ItemCanvas:
		if !next.HasCanvasSize(item.Canvas.ID) {
			next.UnlockedCanvasSizes = append(next.UnlockedCanvasSizes, item.Canvas)
		}
	}

	return next
}

// RecordSale credits an accepted offer: coins, painting count, and
// lifetime earnings move together. Called exactly once per painting at
// acceptance time.
func RecordSale(price int, state GameState) GameState {
	next := state.Clone()
	next.Coins += price
	next.PaintingCount++
	next.TotalEarnings += price
	return next
}

// AverageSalePrice returns the floored lifetime average, or 0 before
// the first sale. Used only to contextualize valuations.
func AverageSalePrice(state GameState) int {
	if state.PaintingCount == 0 {
		return 0
	}
	return state.TotalEarnings / state.PaintingCount
}

// NextUnlock returns the cheapest locked item the player can already
// afford, if any. A pure hint for the UI.
func NextUnlock(state GameState, items []ShopItem) (ShopItem, bool) {
	var best ShopItem
	found := false
	for _, item := range items {
		if item.Unlocked || item.Price > state.Coins {
			continue
		}
		if !found || item.Price < best.Price {
			best = item
			found = true
		}
	}
	return best, found
}

// ApplyDailyBonus grants the daily coins when the calendar day has
// changed since the last play. The bonus only fires when explicitly
// invoked by the caller; nothing triggers it automatically.
func ApplyDailyBonus(state GameState, lastPlayed, now time.Time) (GameState, bool) {
	if sameDay(lastPlayed, now) {
		return state, false
	}
	next := state.Clone()
	next.Coins += DailyBonusCoins
	return next, true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
