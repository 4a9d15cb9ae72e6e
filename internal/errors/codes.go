// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Canvas errors
	CodeCanvasEmpty       Code = "CANVAS_EMPTY"
	CodeCanvasInvalidSize Code = "CANVAS_INVALID_SIZE"
	CodeCanvasSizeLocked  Code = "CANVAS_SIZE_LOCKED"

	// Shop errors
	CodeShopItemNotFound Code = "SHOP_ITEM_NOT_FOUND"

	// Painting errors
	CodePaintingNotFound    Code = "PAINTING_NOT_FOUND"
	CodePaintingAlreadySold Code = "PAINTING_ALREADY_SOLD"
	CodePaintingInvalidSale Code = "PAINTING_INVALID_SALE_PRICE"

	// Valuation errors
	CodeValuationInProgress Code = "VALUATION_IN_PROGRESS"

	// Storage errors
	CodeNotFound           Code = "NOT_FOUND"
	CodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"
)

// UserVisible reports whether a code maps to a failure the player is
// shown directly. Everything else degrades gracefully and is only
// logged.
func (c Code) UserVisible() bool {
	switch c {
	case CodeCanvasEmpty, CodeStorageUnavailable:
		return true
	default:
		return false
	}
}
