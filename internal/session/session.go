// Package session owns the single player's game loop: it wires the
// drawing surface, the valuation service, the economy transitions, and
// the persistence collaborator together.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/louisbranch/artshop/internal/canvas"
	"github.com/louisbranch/artshop/internal/economy"
	apperrors "github.com/louisbranch/artshop/internal/errors"
	"github.com/louisbranch/artshop/internal/painting"
	"github.com/louisbranch/artshop/internal/storage"
	"github.com/louisbranch/artshop/internal/valuation"
)

var (
	// ErrEvaluationDismissed reports that the player dismissed the
	// evaluating view before the valuation resolved; the result was
	// discarded without touching game state.
	ErrEvaluationDismissed = errors.New("evaluation dismissed")
	// ErrNoPendingOffer reports an accept with nothing to accept.
	ErrNoPendingOffer = errors.New("no pending offer")
	// ErrCannotPurchase reports an unaffordable or already-unlocked item.
	ErrCannotPurchase = errors.New("item cannot be purchased")
)

// Offer is a resolved valuation waiting for the player's decision.
// Accepting it sells the painting at the reviewed price; dismissing it
// discards the submission entirely.
type Offer struct {
	Review     valuation.Review
	Image      []byte
	Thumbnail  []byte
	CanvasSize economy.CanvasSize
}

// Session is the explicitly owned game state holder. All mutation goes
// through economy transition functions and is persisted before the
// in-memory copy is replaced, so a failed write leaves the session as
// it was.
type Session struct {
	mu sync.Mutex

	store  storage.Store
	valuer *valuation.Service

	state   economy.GameState
	catalog []economy.ShopItem
	surface *canvas.Surface

	pending    *Offer
	evaluating bool
	generation int

	lastPlayed time.Time

	now         func() time.Time
	idGenerator func() (string, error)
}

// Option customizes a Session.
type Option func(*Session)

// WithClock overrides the session clock, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides painting id generation, used by tests.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *Session) {
		if gen != nil {
			s.idGenerator = gen
		}
	}
}

// New creates a session backed by the given store and valuation
// service. Call Start before anything else.
func New(store storage.Store, valuer *valuation.Service, opts ...Option) *Session {
	s := &Session{
		store:  store,
		valuer: valuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Start loads persisted state and catalog, seeding defaults on first
// run, and prepares a drawing surface at the current canvas size.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.LoadState(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		state = economy.NewGameState()
		if err := s.store.SaveState(ctx, state); err != nil {
			return s.storageErr("seed game state", err)
		}
	case err != nil:
		return s.storageErr("load game state", err)
	}

	catalog, err := s.store.LoadCatalog(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		catalog = economy.DefaultCatalog()
		if err := s.store.SaveCatalog(ctx, catalog); err != nil {
			return s.storageErr("seed catalog", err)
		}
	case err != nil:
		return s.storageErr("load catalog", err)
	}

	surface, err := canvas.NewSurface(state.CurrentCanvasSize.Width, state.CurrentCanvasSize.Height)
	if err != nil {
		return err
	}

	s.state = state
	s.catalog = catalog
	s.surface = surface
	s.lastPlayed = s.now()
	return nil
}

// State returns a copy of the current game state.
func (s *Session) State() economy.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Catalog returns the shop catalog with unlocked flags derived from
// the current state.
func (s *Session) Catalog() []economy.ShopItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return economy.MarkUnlocked(s.state, s.catalog)
}

// Surface returns the active drawing surface.
func (s *Session) Surface() *canvas.Surface {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface
}

// Evaluating reports whether a valuation call is outstanding.
func (s *Session) Evaluating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evaluating
}

// Submit exports the current canvas and asks the valuation service for
// an offer. An untouched canvas is rejected before any external call.
// Only one valuation may be outstanding; a second submit fails until
// the first resolves or is dismissed.
func (s *Session) Submit(ctx context.Context) (Offer, error) {
	s.mu.Lock()
	if s.evaluating {
		s.mu.Unlock()
		return Offer{}, apperrors.New(apperrors.CodeValuationInProgress, "a valuation is already in progress")
	}
	if s.surface.IsEmpty() {
		s.mu.Unlock()
		return Offer{}, apperrors.New(apperrors.CodeCanvasEmpty, "canvas has no paint")
	}

	image, err := s.surface.Export()
	if err != nil {
		s.mu.Unlock()
		return Offer{}, err
	}
	thumbnail, err := s.surface.Thumbnail()
	if err != nil {
		s.mu.Unlock()
		return Offer{}, err
	}

	game := valuation.GameContext{
		PaintingCount:    s.state.PaintingCount,
		AverageSalePrice: economy.AverageSalePrice(s.state),
		CanvasSize:       s.state.CurrentCanvasSize,
	}
	size := s.state.CurrentCanvasSize
	s.evaluating = true
	generation := s.generation
	s.mu.Unlock()

	review := s.valuer.Evaluate(ctx, image, game)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		// Dismissed while evaluating; drop the late result.
		return Offer{}, ErrEvaluationDismissed
	}
	s.evaluating = false
	offer := Offer{Review: review, Image: image, Thumbnail: thumbnail, CanvasSize: size}
	s.pending = &offer
	return offer, nil
}

// Dismiss discards the pending offer, or cancels an outstanding
// valuation so its result is dropped when it resolves. Game state is
// never mutated by a dismissal.
func (s *Session) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.evaluating = false
	s.pending = nil
}

// AcceptOffer sells the pending painting at the offered price. The
// painting and the updated state are persisted before the in-memory
// state changes, and the surface is reset for the next work.
func (s *Session) AcceptOffer(ctx context.Context) (painting.Painting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return painting.Painting{}, ErrNoPendingOffer
	}
	offer := *s.pending

	p, err := painting.New(offer.Image, offer.Thumbnail, offer.CanvasSize, s.now, s.idGenerator)
	if err != nil {
		return painting.Painting{}, err
	}
	review := offer.Review
	p.AIReview = &review

	sold, err := p.MarkSold(offer.Review.Price, s.now())
	if err != nil {
		return painting.Painting{}, err
	}

	if err := s.store.SavePainting(ctx, sold); err != nil {
		return painting.Painting{}, s.storageErr("save painting", err)
	}

	next := economy.RecordSale(offer.Review.Price, s.state)
	if err := s.store.SaveState(ctx, next); err != nil {
		// Roll the painting back so state and gallery stay consistent.
		_ = s.store.DeletePainting(ctx, sold.ID)
		return painting.Painting{}, s.storageErr("save game state", err)
	}

	surface, err := canvas.NewSurface(next.CurrentCanvasSize.Width, next.CurrentCanvasSize.Height)
	if err != nil {
		return painting.Painting{}, err
	}

	s.state = next
	s.pending = nil
	s.surface = surface
	return sold, nil
}

// Purchase unlocks a shop item by id, deducting its price. Unknown ids
// fail with a not-found error; unaffordable or already-unlocked items
// fail without touching state.
func (s *Session) Purchase(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := economy.FindItem(economy.MarkUnlocked(s.state, s.catalog), itemID)
	if !ok {
		return apperrors.WithMetadata(apperrors.CodeShopItemNotFound, "shop item not found", map[string]string{"item_id": itemID})
	}
	if !economy.CanPurchase(item, s.state.Coins) {
		return ErrCannotPurchase
	}

	next := economy.Purchase(item, s.state)
	if err := s.store.SaveState(ctx, next); err != nil {
		return s.storageErr("save game state", err)
	}
	s.state = next
	return nil
}

// SetCanvasSize switches the working canvas to an unlocked size and
// resets the surface to a blank canvas at the new dimensions.
func (s *Session) SetCanvasSize(ctx context.Context, sizeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var target economy.CanvasSize
	found := false
	for _, size := range s.state.UnlockedCanvasSizes {
		if size.ID == sizeID {
			target = size
			found = true
			break
		}
	}
	if !found {
		return apperrors.WithMetadata(apperrors.CodeCanvasSizeLocked, "canvas size is not unlocked", map[string]string{"Name": sizeID})
	}

	next := s.state.Clone()
	next.CurrentCanvasSize = target
	if err := s.store.SaveState(ctx, next); err != nil {
		return s.storageErr("save game state", err)
	}

	surface, err := canvas.NewSurface(target.Width, target.Height)
	if err != nil {
		return err
	}
	s.state = next
	s.surface = surface
	return nil
}

// ClaimDailyBonus grants the daily login bonus when a calendar day has
// passed since the session last played. It reports whether coins were
// granted.
func (s *Session) ClaimDailyBonus(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, granted := economy.ApplyDailyBonus(s.state, s.lastPlayed, s.now())
	if !granted {
		return false, nil
	}
	if err := s.store.SaveState(ctx, next); err != nil {
		return false, s.storageErr("save game state", err)
	}
	s.state = next
	s.lastPlayed = s.now()
	return true, nil
}

// CompleteTutorial marks the tutorial as done.
func (s *Session) CompleteTutorial(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.TutorialCompleted {
		return nil
	}
	next := s.state.Clone()
	next.TutorialCompleted = true
	if err := s.store.SaveState(ctx, next); err != nil {
		return s.storageErr("save game state", err)
	}
	s.state = next
	return nil
}

// NextUnlock suggests the cheapest locked item the player can afford.
func (s *Session) NextUnlock() (economy.ShopItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return economy.NextUnlock(s.state, s.catalog)
}

// Paintings returns every stored painting, newest first.
func (s *Session) Paintings(ctx context.Context) ([]painting.Painting, error) {
	all, err := s.store.GetAllPaintings(ctx)
	if err != nil {
		return nil, s.storageErr("list paintings", err)
	}
	painting.SortNewestFirst(all)
	return all, nil
}

// SoldPaintings returns stored paintings that have been sold.
func (s *Session) SoldPaintings(ctx context.Context) ([]painting.Painting, error) {
	all, err := s.Paintings(ctx)
	if err != nil {
		return nil, err
	}
	return painting.SoldOnly(all), nil
}

// UnsoldPaintings returns stored paintings still waiting for a sale.
func (s *Session) UnsoldPaintings(ctx context.Context) ([]painting.Painting, error) {
	all, err := s.Paintings(ctx)
	if err != nil {
		return nil, err
	}
	return painting.UnsoldOnly(all), nil
}

// DeletePainting removes a painting from the gallery. Unknown ids are
// surfaced as a not-found error and touch nothing else.
func (s *Session) DeletePainting(ctx context.Context, id string) error {
	err := s.store.DeletePainting(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.WithMetadata(apperrors.CodePaintingNotFound, "painting not found", map[string]string{"painting_id": id})
	}
	if err != nil {
		return s.storageErr("delete painting", err)
	}
	return nil
}

// Reset wipes all persisted records and reseeds a fresh game.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ClearAll(ctx); err != nil {
		return s.storageErr("clear storage", err)
	}

	state := economy.NewGameState()
	if err := s.store.SaveState(ctx, state); err != nil {
		return s.storageErr("seed game state", err)
	}
	catalog := economy.DefaultCatalog()
	if err := s.store.SaveCatalog(ctx, catalog); err != nil {
		return s.storageErr("seed catalog", err)
	}

	surface, err := canvas.NewSurface(state.CurrentCanvasSize.Width, state.CurrentCanvasSize.Height)
	if err != nil {
		return err
	}

	s.state = state
	s.catalog = catalog
	s.surface = surface
	s.pending = nil
	s.evaluating = false
	s.generation++
	return nil
}

func (s *Session) storageErr(op string, err error) error {
	return apperrors.Wrap(apperrors.CodeStorageUnavailable, op+" failed", err)
}
