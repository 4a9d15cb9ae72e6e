package valuation

import (
	"math"
	"math/rand"
	"time"

	"github.com/louisbranch/artshop/internal/economy"
)

// fallbackBasePrice anchors the heuristic before size scaling.
const fallbackBasePrice = 20

// progressionBonus front-loads earnings: 25 coins on the first
// painting, shrinking by 5 per sale and vanishing after the fifth.
func progressionBonus(paintingCount int) int {
	remaining := 5 - paintingCount
	if remaining < 0 {
		remaining = 0
	}
	return remaining * 5
}

// fallbackFeedback is a fixed rotation indexed by painting count, so
// the same progression point always yields the same message.
var fallbackFeedback = [...]string{
	"I appreciate your creative effort! Keep painting to improve your skills.",
	"This shows promise! I can see you're exploring different techniques.",
	"You're making progress! Your use of the canvas is developing nicely.",
	"I see potential in your work. Keep experimenting with colors and composition!",
	"Your artistic journey is underway! Each painting teaches you something new.",
}

// FallbackReview prices a painting without the oracle. The price and
// feedback are fully deterministic for a given context; sub-scores
// carry bounded jitter drawn from rng (time-seeded when nil) but always
// stay inside their fixed ranges.
func FallbackReview(game GameContext, rng *rand.Rand, now time.Time) Review {
	if rng == nil {
		rng = rand.New(rand.NewSource(now.UnixNano()))
	}

	baseArea := economy.SmallCanvas.Width * economy.SmallCanvas.Height
	sizeMultiplier := float64(game.CanvasSize.Width*game.CanvasSize.Height) / float64(baseArea)
	price := int(math.Floor(fallbackBasePrice*sizeMultiplier + float64(progressionBonus(game.PaintingCount))))

	count := game.PaintingCount
	if count < 0 {
		count = 0
	}

	return Review{
		Price:    clamp(price, PriceMin, PriceMax),
		Feedback: fallbackFeedback[count%len(fallbackFeedback)],
		AnalysisPoints: AnalysisPoints{
			Composition:    5 + rng.Intn(3),
			ColorUse:       5 + rng.Intn(3),
			Creativity:     6 + rng.Intn(3),
			TechnicalSkill: 4 + rng.Intn(3),
		},
		Timestamp: now,
	}
}
