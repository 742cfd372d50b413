package risk

import (
	"math"

	engerrors "github.com/vutran1810/market-analysis-engine/internal/errors"
	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// Weights blend the three risk components. They should sum to 1 so the
// composite stays naturally inside [0, 1] before the final clamp.
type Weights struct {
	Volatility float64
	Liquidity  float64
	Drawdown   float64
}

// neutralLiquidityRisk is the conservative stand-in when no usable order
// book accompanies the window
const neutralLiquidityRisk = 0.5

// Scorer blends volatility, liquidity, and drawdown into one bounded
// composite risk score
type Scorer struct {
	weights     Weights
	drawdownCap float64
}

// NewScorer creates a new risk scorer
func NewScorer(weights Weights, drawdownCap float64) *Scorer {
	return &Scorer{
		weights:     weights,
		drawdownCap: drawdownCap,
	}
}

// Score computes the composite risk for the window. volatilityRisk is the
// ATR-versus-trailing-maximum magnitude from the volatility analyzer.
// A missing or unusable book costs nothing but a degradation notice.
func (s *Scorer) Score(data []types.OHLCV, book *types.OrderBook, volatilityRisk float64) (float64, *engerrors.DegradedInputWarning) {
	liquidity, warning := s.liquidityRisk(book)
	drawdown := s.drawdownRisk(data)

	composite := s.weights.Volatility*volatilityRisk +
		s.weights.Liquidity*liquidity +
		s.weights.Drawdown*drawdown

	return clamp01(composite), warning
}

// liquidityRisk scores the relative spread of the book. No book, or a
// book without a valid mid price, falls back to the neutral constant.
func (s *Scorer) liquidityRisk(book *types.OrderBook) (float64, *engerrors.DegradedInputWarning) {
	if book == nil || len(book.Bids) == 0 || len(book.Asks) == 0 {
		return neutralLiquidityRisk, engerrors.NewDegradedInput("order_book", "liquidity risk defaulted to 0.5")
	}

	bid := book.BestBid()
	ask := book.BestAsk()
	mid := book.MidPrice()
	if mid <= 0 || ask < bid {
		return neutralLiquidityRisk, engerrors.NewDegradedInput("order_book", "liquidity risk defaulted to 0.5")
	}

	return clamp01(100 * (ask - bid) / mid), nil
}

// drawdownRisk normalizes the worst peak-to-trough loss of the window's
// closes by the configured cap
func (s *Scorer) drawdownRisk(data []types.OHLCV) float64 {
	if s.drawdownCap <= 0 {
		return 0
	}
	return clamp01(maxDrawdown(data) / s.drawdownCap)
}

// maxDrawdown is the deepest fractional decline from a running peak
func maxDrawdown(data []types.OHLCV) float64 {
	peak, worst := 0.0, 0.0
	for _, candle := range data {
		if candle.Close > peak {
			peak = candle.Close
		}
		if peak > 0 {
			drawdown := (peak - candle.Close) / peak
			worst = math.Max(worst, drawdown)
		}
	}
	return worst
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
