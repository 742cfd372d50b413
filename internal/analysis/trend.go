package analysis

import (
	"math"

	"github.com/vutran1810/market-analysis-engine/internal/indicators"
	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// TrendAnalyzer scores the directional structure of the EMA stack. A full
// EMA9 > EMA21 > EMA50 alignment counts as a strong trend; a lone
// EMA9/EMA21 split counts as a short-term trend only.
type TrendAnalyzer struct {
	fastEMA     *indicators.EMA
	slopePeriod int
}

// NewTrendAnalyzer creates a new trend analyzer
func NewTrendAnalyzer(fastPeriod, slopePeriod int) *TrendAnalyzer {
	return &TrendAnalyzer{
		fastEMA:     indicators.NewEMA(fastPeriod),
		slopePeriod: slopePeriod,
	}
}

// Analyze scores the EMA alignment of the window
func (t *TrendAnalyzer) Analyze(data []types.OHLCV, snap *types.IndicatorSnapshot) (*Result, error) {
	result := &Result{}

	switch {
	case snap.EMA9 > snap.EMA21 && snap.EMA21 > snap.EMA50:
		result.Score = 1.0
		result.Reasons = append(result.Reasons, "Strong uptrend: EMA9 > EMA21 > EMA50")
	case snap.EMA9 < snap.EMA21 && snap.EMA21 < snap.EMA50:
		result.Score = -1.0
		result.Reasons = append(result.Reasons, "Strong downtrend: EMA9 < EMA21 < EMA50")
	case snap.EMA9 > snap.EMA21:
		result.Score = 0.7
		result.Reasons = append(result.Reasons, "Short-term uptrend: EMA9 above EMA21")
	case snap.EMA9 < snap.EMA21:
		result.Score = -0.7
		result.Reasons = append(result.Reasons, "Short-term downtrend: EMA9 below EMA21")
	}

	if snap.PrevEMA9 <= snap.PrevEMA21 && snap.EMA9 > snap.EMA21 && snap.EMA9 > snap.EMA50 {
		result.Reasons = append(result.Reasons, "Golden cross: EMA9 crossed above EMA21")
	} else if snap.PrevEMA9 >= snap.PrevEMA21 && snap.EMA9 < snap.EMA21 && snap.EMA9 < snap.EMA50 {
		result.Reasons = append(result.Reasons, "Death cross: EMA9 crossed below EMA21")
	}

	strength, err := t.slopeStrength(data)
	if err != nil {
		return nil, err
	}
	result.Strength = strength

	return result, nil
}

// slopeStrength measures how steeply the fast EMA has been moving,
// normalized by the current close and capped at 1.
func (t *TrendAnalyzer) slopeStrength(data []types.OHLCV) (float64, error) {
	series, err := t.fastEMA.CalculateSeries(data)
	if err != nil {
		return 0, err
	}

	deltas := t.slopePeriod
	if len(series)-1 < deltas {
		deltas = len(series) - 1
	}
	if deltas < 1 {
		return 0, nil
	}

	sum := 0.0
	for i := len(series) - deltas; i < len(series); i++ {
		sum += math.Abs(series[i] - series[i-1])
	}
	meanDelta := sum / float64(deltas)

	currentPrice := data[len(data)-1].Close
	if currentPrice <= 0 {
		return 0, nil
	}
	return math.Min(1, meanDelta/currentPrice*100), nil
}
