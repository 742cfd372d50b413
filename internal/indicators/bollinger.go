package indicators

import (
	engerrors "github.com/vutran1810/market-analysis-engine/internal/errors"
	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// BollingerBands represents the Bollinger Bands indicator.
// Middle = SMA(period); upper/lower = middle +/- stdDevMultiple * stddev.
type BollingerBands struct {
	period         int
	stdDevMultiple float64
}

// NewBollingerBands creates a new BollingerBands indicator
func NewBollingerBands(period int, stdDev float64) *BollingerBands {
	return &BollingerBands{
		period:         period,
		stdDevMultiple: stdDev,
	}
}

// Calculate computes the middle band for the window
func (bb *BollingerBands) Calculate(data []types.OHLCV) (float64, error) {
	_, middle, _, err := bb.CalculateBands(data)
	return middle, err
}

// CalculateBands computes the upper, middle, and lower bands
func (bb *BollingerBands) CalculateBands(data []types.OHLCV) (upper, middle, lower float64, err error) {
	if len(data) < bb.period {
		return 0, 0, 0, engerrors.NewInsufficientData(bb.GetName(), bb.period, len(data))
	}

	closes := closePrices(data)
	recent := closes[len(closes)-bb.period:]

	middle = mean(recent)
	sd := stddev(recent)

	upper = middle + (bb.stdDevMultiple * sd)
	lower = middle - (bb.stdDevMultiple * sd)
	return upper, middle, lower, nil
}

// PercentB returns the price position within the bands in [0,100].
// 50 when the bands collapse to a point.
func (bb *BollingerBands) PercentB(data []types.OHLCV) (float64, error) {
	upper, _, lower, err := bb.CalculateBands(data)
	if err != nil {
		return 0, err
	}

	if upper == lower {
		return 50, nil
	}
	price := data[len(data)-1].Close
	return ((price - lower) / (upper - lower)) * 100, nil
}

// Width returns the band width normalized by the middle band; 0 when the
// middle band is not positive. Low width signals a squeeze.
func (bb *BollingerBands) Width(data []types.OHLCV) (float64, error) {
	upper, middle, lower, err := bb.CalculateBands(data)
	if err != nil {
		return 0, err
	}

	if middle <= 0 {
		return 0, nil
	}
	return (upper - lower) / middle, nil
}

// GetName returns the indicator name
func (bb *BollingerBands) GetName() string {
	return "BollingerBands"
}

// GetRequiredPeriods returns the minimum number of periods needed
func (bb *BollingerBands) GetRequiredPeriods() int {
	return bb.period
}
