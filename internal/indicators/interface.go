package indicators

import (
	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// TechnicalIndicator is the common contract for all technical indicators.
// Implementations are stateless: Calculate derives its value from the full
// supplied window on every call, so one instance is safe for concurrent use
// across symbols and goroutines.
type TechnicalIndicator interface {
	// Calculate computes the indicator value for the given window
	Calculate(data []types.OHLCV) (float64, error)

	// GetName returns the indicator name
	GetName() string

	// GetRequiredPeriods returns the minimum number of candles needed
	GetRequiredPeriods() int
}
