package indicators

import (
	engerrors "github.com/vutran1810/market-analysis-engine/internal/errors"
	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// OBV represents the On-Balance Volume technical indicator: a running sum
// of volume signed by the close-to-close direction.
// Formula:
//   - If Close[i] > Close[i-1], OBV[i] = OBV[i-1] + Volume[i]
//   - If Close[i] = Close[i-1], OBV[i] = OBV[i-1]
//   - If Close[i] < Close[i-1], OBV[i] = OBV[i-1] - Volume[i]
type OBV struct{}

// NewOBV creates a new OBV indicator
func NewOBV() *OBV {
	return &OBV{}
}

// Calculate computes the final OBV value for the window
func (o *OBV) Calculate(data []types.OHLCV) (float64, error) {
	series, err := o.CalculateSeries(data)
	if err != nil {
		return 0, err
	}
	return series[len(series)-1], nil
}

// CalculateSeries computes the OBV value at every candle, starting from 0.
// The series feeds the OBV-trend check (current OBV vs its own SMA).
func (o *OBV) CalculateSeries(data []types.OHLCV) ([]float64, error) {
	if len(data) < o.GetRequiredPeriods() {
		return nil, engerrors.NewInsufficientData(o.GetName(), o.GetRequiredPeriods(), len(data))
	}

	series := make([]float64, len(data))
	for i := 1; i < len(data); i++ {
		series[i] = series[i-1]
		if data[i].Close > data[i-1].Close {
			series[i] += data[i].Volume
		} else if data[i].Close < data[i-1].Close {
			series[i] -= data[i].Volume
		}
	}
	return series, nil
}

// GetName returns the indicator name
func (o *OBV) GetName() string {
	return "OBV"
}

// GetRequiredPeriods returns the minimum number of periods needed
func (o *OBV) GetRequiredPeriods() int {
	return 2
}
