package indicators

import (
	engerrors "github.com/vutran1810/market-analysis-engine/internal/errors"
	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// Stochastic represents the Stochastic oscillator.
// %K = 100 * (close - lowestLow) / (highestHigh - lowestLow) over kPeriod;
// %D = SMA of %K over dPeriod. A flat high/low range yields a neutral 50.
type Stochastic struct {
	kPeriod int
	dPeriod int
}

// NewStochastic creates a new Stochastic oscillator
func NewStochastic(kPeriod, dPeriod int) *Stochastic {
	return &Stochastic{
		kPeriod: kPeriod,
		dPeriod: dPeriod,
	}
}

// Calculate computes the %K value for the window
func (s *Stochastic) Calculate(data []types.OHLCV) (float64, error) {
	k, _, err := s.CalculateValues(data)
	return k, err
}

// CalculateValues computes %K and %D for the window
func (s *Stochastic) CalculateValues(data []types.OHLCV) (k, d float64, err error) {
	if len(data) < s.GetRequiredPeriods() {
		return 0, 0, engerrors.NewInsufficientData(s.GetName(), s.GetRequiredPeriods(), len(data))
	}

	// %K for each of the last dPeriod candles
	kValues := make([]float64, s.dPeriod)
	for i := 0; i < s.dPeriod; i++ {
		end := len(data) - s.dPeriod + 1 + i
		kValues[i] = s.percentK(data[:end])
	}

	k = kValues[len(kValues)-1]
	d = mean(kValues)
	return k, d, nil
}

// percentK computes %K for the last kPeriod candles of the window
func (s *Stochastic) percentK(data []types.OHLCV) float64 {
	window := data[len(data)-s.kPeriod:]

	lowest := window[0].Low
	highest := window[0].High
	for _, candle := range window[1:] {
		if candle.Low < lowest {
			lowest = candle.Low
		}
		if candle.High > highest {
			highest = candle.High
		}
	}

	if highest == lowest {
		return 50
	}
	return 100 * (window[len(window)-1].Close - lowest) / (highest - lowest)
}

// GetName returns the indicator name
func (s *Stochastic) GetName() string {
	return "Stochastic"
}

// GetRequiredPeriods returns the minimum number of periods needed
func (s *Stochastic) GetRequiredPeriods() int {
	return s.kPeriod + s.dPeriod - 1
}
