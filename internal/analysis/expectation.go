package analysis

import (
	"math"

	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// ExpectationModel is the rule-based read on the next move: fixed
// thresholds over short returns and volume shifts, no fitted weights.
type ExpectationModel struct{}

// NewExpectationModel creates a new expectation model
func NewExpectationModel() *ExpectationModel {
	return &ExpectationModel{}
}

// Predict scores the near-term bias from recent returns and volume
func (e *ExpectationModel) Predict(data []types.OHLCV) *types.Expectation {
	if len(data) < 11 {
		return &types.Expectation{Bias: types.FlowNeutral, Confidence: 0.5}
	}

	last := data[len(data)-1].Close
	ret5 := changePct(data[len(data)-6].Close, last)
	ret10 := changePct(data[len(data)-11].Close, last)

	score := 0.0
	switch {
	case ret5 >= 0.02:
		score++
	case ret5 <= -0.02:
		score--
	}
	switch {
	case ret10 >= 0.05:
		score++
	case ret10 <= -0.05:
		score--
	}

	recent := avgVolume(data[len(data)-5:])
	prior := avgVolume(data[len(data)-10 : len(data)-5])
	if prior > 0 {
		switch ratio := recent / prior; {
		case ratio > 1.2:
			score += 0.5
		case ratio < 0.8:
			score -= 0.5
		}
	}

	expectation := &types.Expectation{
		Bias:       types.FlowNeutral,
		Score:      score,
		Confidence: 0.5,
	}
	if math.Abs(score) > 1 {
		if score > 0 {
			expectation.Bias = types.FlowBullish
		} else {
			expectation.Bias = types.FlowBearish
		}
		expectation.Confidence = 0.7
		if realizedVol(data, 5) > 0.03 {
			expectation.Confidence *= 0.8
		}
	}
	return expectation
}

// changePct returns the fractional change from a base price
func changePct(base, current float64) float64 {
	if base <= 0 {
		return 0
	}
	return (current - base) / base
}

// avgVolume is the mean volume over the given candles
func avgVolume(data []types.OHLCV) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, candle := range data {
		sum += candle.Volume
	}
	return sum / float64(len(data))
}

// realizedVol is the standard deviation of the last n simple returns
func realizedVol(data []types.OHLCV, n int) float64 {
	if len(data) < n+1 {
		return 0
	}

	returns := make([]float64, 0, n)
	for i := len(data) - n; i < len(data); i++ {
		prev := data[i-1].Close
		if prev <= 0 {
			continue
		}
		returns = append(returns, (data[i].Close-prev)/prev)
	}
	if len(returns) == 0 {
		return 0
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns))
	return math.Sqrt(variance)
}
