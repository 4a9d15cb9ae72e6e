// Package painting models saved artworks and their one-way sale
// transition.
package painting

import (
	"sort"
	"time"

	"github.com/louisbranch/artshop/internal/economy"
	apperrors "github.com/louisbranch/artshop/internal/errors"
	"github.com/louisbranch/artshop/internal/platform/id"
	"github.com/louisbranch/artshop/internal/valuation"
)

var (
	// ErrEmptyImage indicates a painting with no image payload.
	ErrEmptyImage = apperrors.New(apperrors.CodeCanvasEmpty, "painting image is required")
	// ErrAlreadySold indicates a second sale attempt; soldFor/soldAt
	// transition exactly once.
	ErrAlreadySold = apperrors.New(apperrors.CodePaintingAlreadySold, "painting was already sold")
	// ErrInvalidSalePrice indicates a non-positive sale price.
	ErrInvalidSalePrice = apperrors.New(apperrors.CodePaintingInvalidSale, "sale price must be positive")
)

// Painting is one saved artwork. SoldFor and SoldAt are absent until
// the single sale happens and immutable afterwards.
type Painting struct {
	ID         string             `json:"id"`
	ImageData  []byte             `json:"imageData"`
	Thumbnail  []byte             `json:"thumbnail"`
	CreatedAt  time.Time          `json:"createdAt"`
	SoldFor    *int               `json:"soldFor,omitempty"`
	SoldAt     *time.Time         `json:"soldAt,omitempty"`
	CanvasSize economy.CanvasSize `json:"canvasSize"`
	AIReview   *valuation.Review  `json:"aiReview,omitempty"`
}

// New constructs an unsold painting with a generated identifier.
func New(image, thumbnail []byte, size economy.CanvasSize, now func() time.Time, idGenerator func() (string, error)) (Painting, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}
	if len(image) == 0 {
		return Painting{}, ErrEmptyImage
	}

	paintingID, err := idGenerator()
	if err != nil {
		return Painting{}, err
	}

	return Painting{
		ID:         paintingID,
		ImageData:  image,
		Thumbnail:  thumbnail,
		CreatedAt:  now(),
		CanvasSize: size,
	}, nil
}

// Sold reports whether the painting has been sold.
func (p Painting) Sold() bool {
	return p.SoldFor != nil
}

// MarkSold records the accepted price and sale time. Re-selling a
// painting is rejected; the first sale is final.
func (p Painting) MarkSold(price int, at time.Time) (Painting, error) {
	if p.Sold() {
		return Painting{}, ErrAlreadySold
	}
	if price <= 0 {
		return Painting{}, ErrInvalidSalePrice
	}
	sold := p
	sold.SoldFor = &price
	sold.SoldAt = &at
	return sold, nil
}

// SoldOnly filters to paintings that have been sold.
func SoldOnly(paintings []Painting) []Painting {
	out := make([]Painting, 0, len(paintings))
	for _, p := range paintings {
		if p.Sold() {
			out = append(out, p)
		}
	}
	return out
}

// UnsoldOnly filters to paintings still waiting for a sale.
func UnsoldOnly(paintings []Painting) []Painting {
	out := make([]Painting, 0, len(paintings))
	for _, p := range paintings {
		if !p.Sold() {
			out = append(out, p)
		}
	}
	return out
}

// SortNewestFirst orders paintings by creation time, newest first, the
// gallery's default ordering.
func SortNewestFirst(paintings []Painting) {
	sort.SliceStable(paintings, func(i, j int) bool {
		return paintings[i].CreatedAt.After(paintings[j].CreatedAt)
	})
}
