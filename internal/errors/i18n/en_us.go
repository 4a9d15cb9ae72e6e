package i18n

// Error codes must match the codes defined in internal/errors/codes.go.
const (
	CodeUnknown = "UNKNOWN"

	CodeCanvasEmpty       = "CANVAS_EMPTY"
	CodeCanvasInvalidSize = "CANVAS_INVALID_SIZE"
	CodeCanvasSizeLocked  = "CANVAS_SIZE_LOCKED"

	CodeShopItemNotFound = "SHOP_ITEM_NOT_FOUND"

	CodePaintingNotFound    = "PAINTING_NOT_FOUND"
	CodePaintingAlreadySold = "PAINTING_ALREADY_SOLD"
	CodePaintingInvalidSale = "PAINTING_INVALID_SALE_PRICE"

	CodeValuationInProgress = "VALUATION_IN_PROGRESS"

	CodeNotFound           = "NOT_FOUND"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		CodeUnknown: "Something went wrong. Please try again.",

		// Canvas errors
		CodeCanvasEmpty:       "Please add some paint to your canvas first!",
		CodeCanvasInvalidSize: "Canvas dimensions must be positive",
		CodeCanvasSizeLocked:  "Unlock the {{.Name}} canvas in the shop first",

		// Shop errors
		CodeShopItemNotFound: "That shop item is no longer available",

		// Painting errors
		CodePaintingNotFound:    "The requested painting was not found",
		CodePaintingAlreadySold: "This painting has already been sold",
		CodePaintingInvalidSale: "Sale price must be greater than zero",

		// Valuation errors
		CodeValuationInProgress: "Your painting is still being evaluated",

		// Storage errors
		CodeNotFound:           "The requested record was not found",
		CodeStorageUnavailable: "Your progress could not be saved. Check storage permissions and try again.",
	},
}
