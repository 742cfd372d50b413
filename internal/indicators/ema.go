package indicators

import (
	engerrors "github.com/vutran1810/market-analysis-engine/internal/errors"
	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// EMA represents the Exponential Moving Average technical indicator.
// Seeded by the simple average of the first 'period' closes, then
// smoothed with alpha = 2/(period+1).
type EMA struct {
	period int
}

// NewEMA creates a new EMA indicator
func NewEMA(period int) *EMA {
	return &EMA{period: period}
}

// Calculate computes the EMA of the window's closes
func (e *EMA) Calculate(data []types.OHLCV) (float64, error) {
	series, err := e.CalculateSeries(data)
	if err != nil {
		return 0, err
	}
	return series[len(series)-1], nil
}

// CalculateSeries computes the EMA at every candle from index period-1
// onward. Element 0 corresponds to candle index period-1.
func (e *EMA) CalculateSeries(data []types.OHLCV) ([]float64, error) {
	if len(data) < e.period {
		return nil, engerrors.NewInsufficientData(e.GetName(), e.period, len(data))
	}

	return emaSeries(closePrices(data), e.period), nil
}

// GetName returns the indicator name
func (e *EMA) GetName() string {
	return "EMA"
}

// GetRequiredPeriods returns the minimum number of periods needed
func (e *EMA) GetRequiredPeriods() int {
	return e.period
}
