// Package storage defines the persistence interfaces for game state,
// paintings, and the shop catalog.
package storage

import (
	"context"
	"errors"

	"github.com/louisbranch/artshop/internal/economy"
	"github.com/louisbranch/artshop/internal/painting"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// StateStore persists the single player's economy state.
type StateStore interface {
	SaveState(ctx context.Context, state economy.GameState) error
	// LoadState returns ErrNotFound when no state has been saved yet.
	LoadState(ctx context.Context) (economy.GameState, error)
}

// PaintingStore persists finished paintings and their valuations.
type PaintingStore interface {
	SavePainting(ctx context.Context, p painting.Painting) error
	GetPainting(ctx context.Context, id string) (painting.Painting, error)
	GetAllPaintings(ctx context.Context) ([]painting.Painting, error)
	UpdatePainting(ctx context.Context, p painting.Painting) error
	DeletePainting(ctx context.Context, id string) error
}

// CatalogStore persists the shop catalog definition.
type CatalogStore interface {
	SaveCatalog(ctx context.Context, items []economy.ShopItem) error
	// LoadCatalog returns ErrNotFound when no catalog has been saved yet.
	LoadCatalog(ctx context.Context) ([]economy.ShopItem, error)
}

// Store is the full persistence surface used by a game session.
type Store interface {
	StateStore
	PaintingStore
	CatalogStore

	// ClearAll removes every stored record, returning the store to an
	// empty first-run condition.
	ClearAll(ctx context.Context) error
}
