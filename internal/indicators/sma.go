package indicators

import (
	engerrors "github.com/vutran1810/market-analysis-engine/internal/errors"
	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// SMA represents the Simple Moving Average technical indicator
type SMA struct {
	period int
}

// NewSMA creates a new SMA indicator
func NewSMA(period int) *SMA {
	return &SMA{period: period}
}

// Calculate computes the SMA of the window's last 'period' closes
func (s *SMA) Calculate(data []types.OHLCV) (float64, error) {
	if len(data) < s.period {
		return 0, engerrors.NewInsufficientData(s.GetName(), s.period, len(data))
	}

	closes := closePrices(data)
	return mean(closes[len(closes)-s.period:]), nil
}

// GetName returns the indicator name
func (s *SMA) GetName() string {
	return "SMA"
}

// GetRequiredPeriods returns the minimum number of periods needed
func (s *SMA) GetRequiredPeriods() int {
	return s.period
}
