// Package valuation prices submitted paintings. The primary path asks
// an external critic oracle; any failure there collapses silently into
// a deterministic local heuristic so the player always receives an
// offer.
package valuation

import (
	"time"

	"github.com/louisbranch/artshop/internal/economy"
)

// AnalysisPoints are the critic's four sub-scores, each in [1,10].
type AnalysisPoints struct {
	Composition    int `json:"composition"`
	ColorUse       int `json:"colorUse"`
	Creativity     int `json:"creativity"`
	TechnicalSkill int `json:"technicalSkill"`
}

// Review is one appraisal of a painting. Immutable once produced.
type Review struct {
	Price          int            `json:"price"`
	Feedback       string         `json:"feedback"`
	AnalysisPoints AnalysisPoints `json:"analysisPoints"`
	Timestamp      time.Time      `json:"timestamp"`
}

// GameContext carries the progression facts the critic weighs: how
// many paintings were sold before this one, at what average price, and
// on what canvas.
type GameContext struct {
	PaintingCount    int
	AverageSalePrice int
	CanvasSize       economy.CanvasSize
}

// Price bounds for any review, oracle-produced or fallback.
const (
	PriceMin = 10
	PriceMax = 500
)

// Sub-score bounds for any review.
const (
	ScoreMin = 1
	ScoreMax = 10
)

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
