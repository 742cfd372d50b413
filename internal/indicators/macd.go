package indicators

import (
	engerrors "github.com/vutran1810/market-analysis-engine/internal/errors"
	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// MACD represents the Moving Average Convergence Divergence indicator.
// Line = EMA(fast) - EMA(slow); signal = EMA(signalPeriod) of the line;
// histogram = line - signal. A histogram sign change between consecutive
// candles is a crossover event.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD indicator with the given fast, slow, and signal periods
func NewMACD(fastPeriod, slowPeriod, signalPeriod int) *MACD {
	return &MACD{
		fastPeriod:   fastPeriod,
		slowPeriod:   slowPeriod,
		signalPeriod: signalPeriod,
	}
}

// Calculate computes the MACD line for the window
func (m *MACD) Calculate(data []types.OHLCV) (float64, error) {
	line, _, _, err := m.CalculateValues(data)
	return line, err
}

// CalculateValues computes the MACD line, signal line, and histogram
func (m *MACD) CalculateValues(data []types.OHLCV) (macdLine, signalLine, histogram float64, err error) {
	if len(data) < m.GetRequiredPeriods() {
		return 0, 0, 0, engerrors.NewInsufficientData(m.GetName(), m.GetRequiredPeriods(), len(data))
	}

	lineValues := m.lineSeries(closePrices(data))
	signalValues := emaSeries(lineValues, m.signalPeriod)

	macdLine = lineValues[len(lineValues)-1]
	signalLine = signalValues[len(signalValues)-1]
	histogram = macdLine - signalLine

	return macdLine, signalLine, histogram, nil
}

// lineSeries computes the MACD line over closes, aligned so both EMAs are
// seeded. Element 0 corresponds to close index slowPeriod-1.
func (m *MACD) lineSeries(closes []float64) []float64 {
	fast := emaSeries(closes, m.fastPeriod)
	slow := emaSeries(closes, m.slowPeriod)

	offset := m.slowPeriod - m.fastPeriod
	line := make([]float64, len(slow))
	for i := range slow {
		line[i] = fast[i+offset] - slow[i]
	}
	return line
}

// GetName returns the indicator name
func (m *MACD) GetName() string {
	return "MACD"
}

// GetRequiredPeriods returns the minimum number of periods needed
func (m *MACD) GetRequiredPeriods() int {
	return m.slowPeriod + m.signalPeriod
}
