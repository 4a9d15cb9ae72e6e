package valuation

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/artshop/internal/random"
)

// DefaultTimeout bounds how long one oracle round-trip may take before
// the fallback kicks in.
const DefaultTimeout = 30 * time.Second

// Service evaluates paintings. Oracle failures are never surfaced to
// the caller as evaluation errors; the player must always receive an
// offer.
type Service struct {
	critic  Critic
	timeout time.Duration
	now     func() time.Time

	// rngMu serializes jitter draws: a dismissed valuation may still
	// be resolving while a new submission evaluates, and rand.Rand is
	// not safe for concurrent use.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// Option configures a Service.
type Option func(*Service)

// WithTimeout overrides the oracle round-trip budget.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithRand injects the jitter source for fallback sub-scores.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

// WithClock injects the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService builds a valuation service. A nil critic disables the
// oracle path entirely and every evaluation uses the fallback.
func NewService(critic Critic, opts ...Option) *Service {
	s := &Service{
		critic:  critic,
		timeout: DefaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.rng == nil {
		seed, err := random.NewSeed()
		if err != nil {
			seed = time.Now().UnixNano()
		}
		s.rng = rand.New(rand.NewSource(seed))
	}
	return s
}

// Evaluate appraises one exported painting. The oracle reply must be
// strict JSON, possibly wrapped in markdown fences that are stripped
// before parsing; any transport, status, or parse failure falls
// through to the local heuristic and is only logged.
func (s *Service) Evaluate(ctx context.Context, image []byte, game GameContext) Review {
	if s.critic == nil {
		return s.fallback(game)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.critic.Critique(callCtx, image, BuildPrompt(game))
	if err != nil {
		log.Printf("valuation: critic unavailable, using fallback: %v", err)
		return s.fallback(game)
	}

	review, err := parseReview(reply, s.now())
	if err != nil {
		log.Printf("valuation: malformed critic reply, using fallback: %v", err)
		return s.fallback(game)
	}
	return review
}

func (s *Service) fallback(game GameContext) Review {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return FallbackReview(game, s.rng, s.now())
}

// BuildPrompt renders the scoring rubric sent alongside the image.
func BuildPrompt(game GameContext) string {
	var sb strings.Builder
	sb.WriteString("You are an AI art critic in a game where players paint and sell their artwork.\n\n")
	sb.WriteString("Analyze this painting and provide:\n")
	sb.WriteString("1. A fair price in coins (10-500 range, scaled by canvas size and quality)\n")
	sb.WriteString("2. Encouraging, specific feedback (2-3 sentences)\n")
	sb.WriteString("3. Ratings for composition, color use, creativity, and technical skill (1-10 each)\n\n")
	fmt.Fprintf(&sb, "Context:\n- Canvas size: %s (%dx%d)\n- This is painting #%d\n- Average sale price: %d coins\n\n",
		game.CanvasSize.Name, game.CanvasSize.Width, game.CanvasSize.Height,
		game.PaintingCount+1, game.AverageSalePrice)
	sb.WriteString("Be generous for early paintings, more discerning as the player progresses.\n\n")
	sb.WriteString("Respond ONLY with valid JSON in this exact format (no markdown, no backticks):\n")
	sb.WriteString(`{"price": <number between 10-500>, "feedback": "<encouraging feedback string>", "composition": <number 1-10>, "colorUse": <number 1-10>, "creativity": <number 1-10>, "technicalSkill": <number 1-10>}`)
	return sb.String()
}

// stripFences removes incidental markdown code fences around a reply.
func stripFences(reply string) string {
	reply = strings.ReplaceAll(reply, "```json", "")
	reply = strings.ReplaceAll(reply, "```", "")
	return strings.TrimSpace(reply)
}

func parseReview(reply string, now time.Time) (Review, error) {
	var parsed struct {
		Price          int    `json:"price"`
		Feedback       string `json:"feedback"`
		Composition    int    `json:"composition"`
		ColorUse       int    `json:"colorUse"`
		Creativity     int    `json:"creativity"`
		TechnicalSkill int    `json:"technicalSkill"`
	}
	if err := json.Unmarshal([]byte(stripFences(reply)), &parsed); err != nil {
		return Review{}, fmt.Errorf("parse critic reply: %w", err)
	}
	if parsed.Price == 0 {
		return Review{}, fmt.Errorf("critic reply missing price")
	}
	if strings.TrimSpace(parsed.Feedback) == "" {
		return Review{}, fmt.Errorf("critic reply missing feedback")
	}

	return Review{
		Price:    clamp(parsed.Price, PriceMin, PriceMax),
		Feedback: parsed.Feedback,
		AnalysisPoints: AnalysisPoints{
			Composition:    clamp(parsed.Composition, ScoreMin, ScoreMax),
			ColorUse:       clamp(parsed.ColorUse, ScoreMin, ScoreMax),
			Creativity:     clamp(parsed.Creativity, ScoreMin, ScoreMax),
			TechnicalSkill: clamp(parsed.TechnicalSkill, ScoreMin, ScoreMax),
		},
		Timestamp: now,
	}, nil
}
