package risk

import (
	"math"

	engerrors "github.com/vutran1810/market-analysis-engine/internal/errors"
	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// tradingDaysPerYear annualizes per-candle return statistics
const tradingDaysPerYear = 252

// Metrics assembles the realized risk bundle for the window: the
// composite score plus annualized volatility, Sharpe ratio, and the raw
// maximum drawdown.
func (s *Scorer) Metrics(data []types.OHLCV, book *types.OrderBook, volatilityRisk float64, regime types.MarketRegime) (*types.RiskMetrics, *engerrors.DegradedInputWarning) {
	composite, warning := s.Score(data, book, volatilityRisk)

	returns := simpleReturns(data)
	meanReturn, stdev := meanStdev(returns)

	sharpe := 0.0
	if stdev > 0 {
		sharpe = meanReturn / stdev * math.Sqrt(tradingDaysPerYear)
	}

	metrics := &types.RiskMetrics{
		OverallRiskScore: composite,
		Volatility:       stdev * math.Sqrt(tradingDaysPerYear),
		SharpeRatio:      sharpe,
		MaxDrawdown:      maxDrawdown(data),
		MarketRegime:     regime,
	}
	if len(data) > 0 {
		metrics.Timestamp = data[len(data)-1].Timestamp
	}
	return metrics, warning
}

// simpleReturns is the close-to-close fractional change series
func simpleReturns(data []types.OHLCV) []float64 {
	if len(data) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(data)-1)
	for i := 1; i < len(data); i++ {
		prev := data[i-1].Close
		if prev <= 0 {
			continue
		}
		returns = append(returns, (data[i].Close-prev)/prev)
	}
	return returns
}

// meanStdev computes the mean and population standard deviation
func meanStdev(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))

	return mean, math.Sqrt(variance)
}
