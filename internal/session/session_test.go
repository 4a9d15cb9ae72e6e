package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/louisbranch/artshop/internal/canvas"
	"github.com/louisbranch/artshop/internal/economy"
	apperrors "github.com/louisbranch/artshop/internal/errors"
	"github.com/louisbranch/artshop/internal/painting"
	"github.com/louisbranch/artshop/internal/storage"
	"github.com/louisbranch/artshop/internal/valuation"
)

// memStore is an in-memory storage.Store for session tests.
type memStore struct {
	state     *economy.GameState
	catalog   []economy.ShopItem
	paintings map[string]painting.Painting

	failSaveState bool
	saveStateCnt  int
}

func newMemStore() *memStore {
	return &memStore{paintings: map[string]painting.Painting{}}
}

func (m *memStore) SaveState(_ context.Context, state economy.GameState) error {
	m.saveStateCnt++
	if m.failSaveState {
		return fmt.Errorf("disk full")
	}
	clone := state.Clone()
	m.state = &clone
	return nil
}

func (m *memStore) LoadState(context.Context) (economy.GameState, error) {
	if m.state == nil {
		return economy.GameState{}, storage.ErrNotFound
	}
	return m.state.Clone(), nil
}

func (m *memStore) SavePainting(_ context.Context, p painting.Painting) error {
	m.paintings[p.ID] = p
	return nil
}

func (m *memStore) GetPainting(_ context.Context, id string) (painting.Painting, error) {
	p, ok := m.paintings[id]
	if !ok {
		return painting.Painting{}, storage.ErrNotFound
	}
	return p, nil
}

func (m *memStore) GetAllPaintings(context.Context) ([]painting.Painting, error) {
	var all []painting.Painting
	for _, p := range m.paintings {
		all = append(all, p)
	}
	return all, nil
}

func (m *memStore) UpdatePainting(_ context.Context, p painting.Painting) error {
	if _, ok := m.paintings[p.ID]; !ok {
		return storage.ErrNotFound
	}
	m.paintings[p.ID] = p
	return nil
}

func (m *memStore) DeletePainting(_ context.Context, id string) error {
	if _, ok := m.paintings[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.paintings, id)
	return nil
}

func (m *memStore) SaveCatalog(_ context.Context, items []economy.ShopItem) error {
	m.catalog = append([]economy.ShopItem(nil), items...)
	return nil
}

func (m *memStore) LoadCatalog(context.Context) ([]economy.ShopItem, error) {
	if m.catalog == nil {
		return nil, storage.ErrNotFound
	}
	return append([]economy.ShopItem(nil), m.catalog...), nil
}

func (m *memStore) ClearAll(context.Context) error {
	m.state = nil
	m.catalog = nil
	m.paintings = map[string]painting.Painting{}
	return nil
}

// blockingCritic holds every critique until released.
type blockingCritic struct {
	started chan struct{}
	release chan struct{}
}

func (c *blockingCritic) Critique(ctx context.Context, image []byte, prompt string) (string, error) {
	close(c.started)
	select {
	case <-c.release:
	case <-ctx.Done():
	}
	return "", fmt.Errorf("oracle unavailable")
}

func startedSession(t *testing.T, store storage.Store, opts ...Option) *Session {
	t.Helper()
	valuer := valuation.NewService(nil, valuation.WithRand(rand.New(rand.NewSource(1))))
	s := New(store, valuer, opts...)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start session: %v", err)
	}
	return s
}

func paintSomething(t *testing.T, s *Session) {
	t.Helper()
	surface := s.Surface()
	tool := canvas.Tool{Color: "#FF0000", BrushSize: 5, Mode: canvas.ModeDraw}
	surface.PointerDown(50, 50)
	if err := surface.PointerMove(150, 120, tool); err != nil {
		t.Fatalf("pointer move: %v", err)
	}
	surface.PointerUp()
}

func TestStartSeedsDefaults(t *testing.T) {
	store := newMemStore()
	s := startedSession(t, store)

	state := s.State()
	if state.Coins != economy.StartingCoins {
		t.Fatalf("expected %d starting coins, got %d", economy.StartingCoins, state.Coins)
	}
	if store.state == nil {
		t.Fatal("expected seeded state to be persisted")
	}
	if len(store.catalog) == 0 {
		t.Fatal("expected seeded catalog to be persisted")
	}
	if s.Surface().Width() != 400 || s.Surface().Height() != 300 {
		t.Fatalf("expected small canvas surface, got %dx%d", s.Surface().Width(), s.Surface().Height())
	}
}

func TestStartLoadsExistingState(t *testing.T) {
	store := newMemStore()
	saved := economy.NewGameState()
	saved.Coins = 300
	saved.PaintingCount = 7
	if err := store.SaveState(context.Background(), saved); err != nil {
		t.Fatalf("save state: %v", err)
	}
	if err := store.SaveCatalog(context.Background(), economy.DefaultCatalog()); err != nil {
		t.Fatalf("save catalog: %v", err)
	}

	s := startedSession(t, store)
	state := s.State()
	if state.Coins != 300 || state.PaintingCount != 7 {
		t.Fatalf("expected loaded state, got %+v", state)
	}
}

func TestSubmitRejectsEmptyCanvas(t *testing.T) {
	s := startedSession(t, newMemStore())

	_, err := s.Submit(context.Background())
	if !apperrors.IsCode(err, apperrors.CodeCanvasEmpty) {
		t.Fatalf("expected canvas empty error, got %v", err)
	}
}

func TestSubmitProducesOffer(t *testing.T) {
	s := startedSession(t, newMemStore())
	paintSomething(t, s)

	offer, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if offer.Review.Price < valuation.PriceMin || offer.Review.Price > valuation.PriceMax {
		t.Fatalf("offer price %d out of range", offer.Review.Price)
	}
	if offer.Review.Feedback == "" {
		t.Fatal("expected non-empty feedback")
	}
	if len(offer.Image) == 0 || len(offer.Thumbnail) == 0 {
		t.Fatal("expected exported image and thumbnail")
	}
	if offer.CanvasSize.ID != "small" {
		t.Fatalf("expected small canvas offer, got %+v", offer.CanvasSize)
	}
}

func TestSubmitRejectsConcurrentValuation(t *testing.T) {
	critic := &blockingCritic{started: make(chan struct{}), release: make(chan struct{})}
	valuer := valuation.NewService(critic, valuation.WithRand(rand.New(rand.NewSource(1))))
	s := New(newMemStore(), valuer)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start session: %v", err)
	}
	paintSomething(t, s)

	type result struct {
		offer Offer
		err   error
	}
	done := make(chan result, 1)
	go func() {
		offer, err := s.Submit(context.Background())
		done <- result{offer, err}
	}()

	<-critic.started
	if _, err := s.Submit(context.Background()); !apperrors.IsCode(err, apperrors.CodeValuationInProgress) {
		t.Fatalf("expected valuation-in-progress error, got %v", err)
	}

	close(critic.release)
	first := <-done
	if first.err != nil {
		t.Fatalf("first submit: %v", first.err)
	}
	if first.offer.Review.Price < valuation.PriceMin {
		t.Fatalf("expected fallback offer, got %+v", first.offer.Review)
	}
}

func TestDismissDiscardsLateResult(t *testing.T) {
	store := newMemStore()
	critic := &blockingCritic{started: make(chan struct{}), release: make(chan struct{})}
	valuer := valuation.NewService(critic, valuation.WithRand(rand.New(rand.NewSource(1))))
	s := New(store, valuer)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start session: %v", err)
	}
	paintSomething(t, s)
	before := s.State()

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background())
		done <- err
	}()

	<-critic.started
	s.Dismiss()
	close(critic.release)

	if err := <-done; !errors.Is(err, ErrEvaluationDismissed) {
		t.Fatalf("expected dismissed error, got %v", err)
	}
	if s.Evaluating() {
		t.Fatal("expected evaluation to be cleared")
	}
	after := s.State()
	if after.Coins != before.Coins || after.PaintingCount != before.PaintingCount {
		t.Fatalf("dismissal must not mutate state: before %+v after %+v", before, after)
	}
	if _, err := s.AcceptOffer(context.Background()); !errors.Is(err, ErrNoPendingOffer) {
		t.Fatalf("expected no pending offer after dismissal, got %v", err)
	}
}

func TestAcceptOfferSellsPainting(t *testing.T) {
	store := newMemStore()
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	s := startedSession(t, store,
		WithClock(func() time.Time { return now }),
		WithIDGenerator(func() (string, error) { return "p1", nil }))
	paintSomething(t, s)

	offer, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	before := s.State()

	sold, err := s.AcceptOffer(context.Background())
	if err != nil {
		t.Fatalf("accept offer: %v", err)
	}
	if !sold.Sold() || *sold.SoldFor != offer.Review.Price {
		t.Fatalf("expected painting sold for %d, got %+v", offer.Review.Price, sold.SoldFor)
	}
	if sold.AIReview == nil || sold.AIReview.Price != offer.Review.Price {
		t.Fatalf("expected attached review, got %+v", sold.AIReview)
	}

	after := s.State()
	if after.Coins != before.Coins+offer.Review.Price {
		t.Fatalf("expected coins %d, got %d", before.Coins+offer.Review.Price, after.Coins)
	}
	if after.PaintingCount != before.PaintingCount+1 {
		t.Fatalf("expected painting count %d, got %d", before.PaintingCount+1, after.PaintingCount)
	}
	if after.TotalEarnings != before.TotalEarnings+offer.Review.Price {
		t.Fatalf("expected earnings %d, got %d", before.TotalEarnings+offer.Review.Price, after.TotalEarnings)
	}
	if store.state.Coins != after.Coins {
		t.Fatal("expected state to be persisted")
	}
	if _, ok := store.paintings["p1"]; !ok {
		t.Fatal("expected painting to be persisted")
	}

	if !s.Surface().IsEmpty() {
		t.Fatal("expected fresh surface after sale")
	}
	if _, err := s.AcceptOffer(context.Background()); !errors.Is(err, ErrNoPendingOffer) {
		t.Fatalf("expected offer to be consumed, got %v", err)
	}
}

func TestAcceptOfferKeepsCurrentCanvasSize(t *testing.T) {
	store := newMemStore()
	saved := economy.NewGameState()
	saved.Coins = 500
	if err := store.SaveState(context.Background(), saved); err != nil {
		t.Fatalf("save state: %v", err)
	}
	if err := store.SaveCatalog(context.Background(), economy.DefaultCatalog()); err != nil {
		t.Fatalf("save catalog: %v", err)
	}
	s := startedSession(t, store, WithIDGenerator(func() (string, error) { return "p1", nil }))

	if err := s.Purchase(context.Background(), "canvas-medium"); err != nil {
		t.Fatalf("purchase canvas: %v", err)
	}
	if err := s.SetCanvasSize(context.Background(), "medium"); err != nil {
		t.Fatalf("set canvas size: %v", err)
	}
	paintSomething(t, s)

	offer, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if offer.CanvasSize.ID != "medium" {
		t.Fatalf("expected medium canvas offer, got %+v", offer.CanvasSize)
	}
	if _, err := s.AcceptOffer(context.Background()); err != nil {
		t.Fatalf("accept offer: %v", err)
	}

	if s.State().CurrentCanvasSize.ID != "medium" {
		t.Fatalf("expected current size medium after sale, got %+v", s.State().CurrentCanvasSize)
	}
	if s.Surface().Width() != 600 || s.Surface().Height() != 450 {
		t.Fatalf("expected fresh 600x450 surface after sale, got %dx%d", s.Surface().Width(), s.Surface().Height())
	}
}

func TestAcceptOfferPersistFailureLeavesStateUntouched(t *testing.T) {
	store := newMemStore()
	s := startedSession(t, store, WithIDGenerator(func() (string, error) { return "p1", nil }))
	paintSomething(t, s)

	if _, err := s.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	before := s.State()

	store.failSaveState = true
	_, err := s.AcceptOffer(context.Background())
	if !apperrors.IsCode(err, apperrors.CodeStorageUnavailable) {
		t.Fatalf("expected storage error, got %v", err)
	}

	after := s.State()
	if after.Coins != before.Coins || after.PaintingCount != before.PaintingCount {
		t.Fatalf("expected unchanged state, before %+v after %+v", before, after)
	}
	if len(store.paintings) != 0 {
		t.Fatal("expected painting write to be rolled back")
	}
}

func TestPurchase(t *testing.T) {
	store := newMemStore()
	s := startedSession(t, store)

	if err := s.Purchase(context.Background(), "color-orange"); err != nil {
		t.Fatalf("purchase: %v", err)
	}
	state := s.State()
	if state.Coins != economy.StartingCoins-10 {
		t.Fatalf("expected %d coins, got %d", economy.StartingCoins-10, state.Coins)
	}
	if !state.HasColor("#FFA500") {
		t.Fatal("expected orange to be unlocked")
	}
	if store.state.Coins != state.Coins {
		t.Fatal("expected purchase to be persisted")
	}

	if err := s.Purchase(context.Background(), "color-orange"); !errors.Is(err, ErrCannotPurchase) {
		t.Fatalf("expected repeat purchase to fail, got %v", err)
	}
}

func TestPurchaseUnknownItem(t *testing.T) {
	s := startedSession(t, newMemStore())

	err := s.Purchase(context.Background(), "color-imaginary")
	if !apperrors.IsCode(err, apperrors.CodeShopItemNotFound) {
		t.Fatalf("expected shop item not found, got %v", err)
	}
}

func TestPurchaseInsufficientCoins(t *testing.T) {
	s := startedSession(t, newMemStore())

	// canvas-medium costs 100, starting coins are 50
	err := s.Purchase(context.Background(), "canvas-medium")
	if !errors.Is(err, ErrCannotPurchase) {
		t.Fatalf("expected purchase failure, got %v", err)
	}
	if s.State().Coins != economy.StartingCoins {
		t.Fatalf("expected coins untouched, got %d", s.State().Coins)
	}
}

func TestSetCanvasSize(t *testing.T) {
	store := newMemStore()
	saved := economy.NewGameState()
	saved.Coins = 500
	if err := store.SaveState(context.Background(), saved); err != nil {
		t.Fatalf("save state: %v", err)
	}
	if err := store.SaveCatalog(context.Background(), economy.DefaultCatalog()); err != nil {
		t.Fatalf("save catalog: %v", err)
	}
	s := startedSession(t, store)

	if err := s.SetCanvasSize(context.Background(), "medium"); !apperrors.IsCode(err, apperrors.CodeCanvasSizeLocked) {
		t.Fatalf("expected locked canvas error, got %v", err)
	}

	if err := s.Purchase(context.Background(), "canvas-medium"); err != nil {
		t.Fatalf("purchase canvas: %v", err)
	}
	if err := s.SetCanvasSize(context.Background(), "medium"); err != nil {
		t.Fatalf("set canvas size: %v", err)
	}
	if s.Surface().Width() != 600 || s.Surface().Height() != 450 {
		t.Fatalf("expected 600x450 surface, got %dx%d", s.Surface().Width(), s.Surface().Height())
	}
	if s.State().CurrentCanvasSize.ID != "medium" {
		t.Fatalf("expected current size medium, got %+v", s.State().CurrentCanvasSize)
	}
}

func TestClaimDailyBonus(t *testing.T) {
	now := time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	s := startedSession(t, newMemStore(), WithClock(clock))

	granted, err := s.ClaimDailyBonus(context.Background())
	if err != nil {
		t.Fatalf("claim bonus: %v", err)
	}
	if granted {
		t.Fatal("expected no bonus on the same day")
	}

	now = now.Add(2 * time.Hour)
	granted, err = s.ClaimDailyBonus(context.Background())
	if err != nil {
		t.Fatalf("claim bonus: %v", err)
	}
	if !granted {
		t.Fatal("expected bonus after day change")
	}
	if s.State().Coins != economy.StartingCoins+economy.DailyBonusCoins {
		t.Fatalf("expected bonus coins, got %d", s.State().Coins)
	}

	granted, err = s.ClaimDailyBonus(context.Background())
	if err != nil {
		t.Fatalf("claim bonus: %v", err)
	}
	if granted {
		t.Fatal("expected bonus to grant at most once per day")
	}
}

func TestCompleteTutorial(t *testing.T) {
	store := newMemStore()
	s := startedSession(t, store)

	if err := s.CompleteTutorial(context.Background()); err != nil {
		t.Fatalf("complete tutorial: %v", err)
	}
	if !s.State().TutorialCompleted {
		t.Fatal("expected tutorial completed")
	}
	saves := store.saveStateCnt
	if err := s.CompleteTutorial(context.Background()); err != nil {
		t.Fatalf("repeat complete tutorial: %v", err)
	}
	if store.saveStateCnt != saves {
		t.Fatal("expected repeat completion to skip the write")
	}
}

func TestDeletePaintingNotFound(t *testing.T) {
	s := startedSession(t, newMemStore())

	err := s.DeletePainting(context.Background(), "ghost")
	if !apperrors.IsCode(err, apperrors.CodePaintingNotFound) {
		t.Fatalf("expected painting not found, got %v", err)
	}
}

func TestReset(t *testing.T) {
	store := newMemStore()
	s := startedSession(t, store, WithIDGenerator(func() (string, error) { return "p1", nil }))
	paintSomething(t, s)
	if _, err := s.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := s.AcceptOffer(context.Background()); err != nil {
		t.Fatalf("accept offer: %v", err)
	}

	if err := s.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	state := s.State()
	if state.Coins != economy.StartingCoins || state.PaintingCount != 0 {
		t.Fatalf("expected fresh state, got %+v", state)
	}
	all, err := s.Paintings(context.Background())
	if err != nil {
		t.Fatalf("list paintings: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty gallery, got %d", len(all))
	}
}

func TestNextUnlockSuggestion(t *testing.T) {
	s := startedSession(t, newMemStore())

	item, ok := s.NextUnlock()
	if !ok {
		t.Fatal("expected an affordable unlock at game start")
	}
	if item.Price > economy.StartingCoins {
		t.Fatalf("suggested item %s costs %d, more than starting coins", item.ID, item.Price)
	}
}
