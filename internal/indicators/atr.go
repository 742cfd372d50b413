package indicators

import (
	"math"

	engerrors "github.com/vutran1810/market-analysis-engine/internal/errors"
	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// ATR represents the Average True Range technical indicator, Wilder-smoothed
// over the full window. The first candle's true range is its high-low span.
type ATR struct {
	period int
}

// NewATR creates a new ATR indicator
func NewATR(period int) *ATR {
	return &ATR{period: period}
}

// Calculate computes the ATR value for the window
func (a *ATR) Calculate(data []types.OHLCV) (float64, error) {
	series, err := a.CalculateSeries(data)
	if err != nil {
		return 0, err
	}
	return series[len(series)-1], nil
}

// CalculateSeries computes the full ATR series. Element 0 corresponds to
// candle index period-1; later elements follow Wilder smoothing. The series
// is what percentile-based volatility checks rank the current ATR against.
func (a *ATR) CalculateSeries(data []types.OHLCV) ([]float64, error) {
	if len(data) < a.GetRequiredPeriods() {
		return nil, engerrors.NewInsufficientData(a.GetName(), a.GetRequiredPeriods(), len(data))
	}

	trueRanges := make([]float64, len(data))
	trueRanges[0] = data[0].High - data[0].Low
	for i := 1; i < len(data); i++ {
		trueRanges[i] = trueRange(data[i], data[i-1].Close)
	}

	series := make([]float64, 0, len(data)-a.period+1)
	atr := mean(trueRanges[:a.period])
	series = append(series, atr)

	for i := a.period; i < len(trueRanges); i++ {
		atr = (atr*float64(a.period-1) + trueRanges[i]) / float64(a.period)
		series = append(series, atr)
	}
	return series, nil
}

// trueRange computes max(high-low, |high-prevClose|, |low-prevClose|)
func trueRange(current types.OHLCV, prevClose float64) float64 {
	hl := current.High - current.Low
	hc := math.Abs(current.High - prevClose)
	lc := math.Abs(current.Low - prevClose)

	return math.Max(hl, math.Max(hc, lc))
}

// GetName returns the indicator name
func (a *ATR) GetName() string {
	return "ATR"
}

// GetRequiredPeriods returns the minimum number of periods needed
func (a *ATR) GetRequiredPeriods() int {
	return a.period + 1 // Need extra period for a true prev-close range
}
