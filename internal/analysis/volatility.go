package analysis

import (
	"fmt"
	"math"

	"github.com/vutran1810/market-analysis-engine/internal/indicators"
	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// VolatilityAnalyzer measures how stretched the current range is against
// the window's own history. The score is a magnitude in [0, 1]; it feeds
// the risk path only, never the directional composite.
type VolatilityAnalyzer struct {
	atr              *indicators.ATR
	lookback         int
	squeezeThreshold float64
}

// NewVolatilityAnalyzer creates a new volatility analyzer
func NewVolatilityAnalyzer(atrPeriod, lookback int, squeezeThreshold float64) *VolatilityAnalyzer {
	return &VolatilityAnalyzer{
		atr:              indicators.NewATR(atrPeriod),
		lookback:         lookback,
		squeezeThreshold: squeezeThreshold,
	}
}

// Analyze scores the current ATR against its trailing maximum
func (v *VolatilityAnalyzer) Analyze(data []types.OHLCV, snap *types.IndicatorSnapshot) (*Result, error) {
	series, err := v.atr.CalculateSeries(data)
	if err != nil {
		return nil, err
	}

	trailing := series
	if len(trailing) > v.lookback {
		trailing = trailing[len(trailing)-v.lookback:]
	}
	peak := 0.0
	for _, value := range trailing {
		peak = math.Max(peak, value)
	}

	result := &Result{}
	if peak > 0 {
		result.Score = math.Min(1, series[len(series)-1]/peak)
	}
	result.Strength = result.Score

	if snap.BBWidth < v.squeezeThreshold {
		result.Reasons = append(result.Reasons, fmt.Sprintf("Bollinger squeeze: band width %.1f%%", snap.BBWidth*100))
	}
	if snap.LastClose > snap.BBUpper {
		result.Reasons = append(result.Reasons, "Price broke above the upper Bollinger band")
	} else if snap.LastClose < snap.BBLower {
		result.Reasons = append(result.Reasons, "Price broke below the lower Bollinger band")
	}

	switch {
	case result.Score >= 0.95:
		result.Reasons = append(result.Reasons, "ATR near the top of its trailing range")
	case result.Score <= 0.25:
		result.Reasons = append(result.Reasons, "ATR near the bottom of its trailing range")
	}

	return result, nil
}
