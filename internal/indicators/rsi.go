package indicators

import (
	"math"

	engerrors "github.com/vutran1810/market-analysis-engine/internal/errors"
	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// RSI represents the Relative Strength Index technical indicator, computed
// with Wilder smoothing over the full window: the first 'period' changes
// seed the averages, every later change is blended in at weight 1/period.
type RSI struct {
	period int
}

// NewRSI creates a new RSI indicator
func NewRSI(period int) *RSI {
	return &RSI{period: period}
}

// Calculate computes the RSI value for the window
func (r *RSI) Calculate(data []types.OHLCV) (float64, error) {
	if len(data) < r.GetRequiredPeriods() {
		return 0, engerrors.NewInsufficientData(r.GetName(), r.GetRequiredPeriods(), len(data))
	}

	closes := closePrices(data)

	gains := make([]float64, len(closes)-1)
	losses := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i-1] = change
		} else {
			losses[i-1] = math.Abs(change)
		}
	}

	avgGain := mean(gains[:r.period])
	avgLoss := mean(losses[:r.period])

	// Wilder smoothing over the remaining changes
	for i := r.period; i < len(gains); i++ {
		avgGain = (avgGain*float64(r.period-1) + gains[i]) / float64(r.period)
		avgLoss = (avgLoss*float64(r.period-1) + losses[i]) / float64(r.period)
	}

	if avgLoss == 0 {
		return 100, nil
	}

	rs := avgGain / avgLoss
	return 100 - (100 / (1 + rs)), nil
}

// GetName returns the indicator name
func (r *RSI) GetName() string {
	return "RSI"
}

// GetRequiredPeriods returns the minimum number of periods needed
func (r *RSI) GetRequiredPeriods() int {
	return r.period + 1
}
