package indicators

import (
	"math"

	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// closePrices extracts the close series from a candle window.
func closePrices(data []types.OHLCV) []float64 {
	closes := make([]float64, len(data))
	for i, candle := range data {
		closes[i] = candle.Close
	}
	return closes
}

// mean returns the arithmetic mean of values. Zero for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddev returns the population standard deviation of values.
func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	sumSq := 0.0
	for _, v := range values {
		diff := v - m
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// emaSeries computes the EMA over values, seeded by the simple average of
// the first period entries. The returned slice holds only the defined
// values: element 0 corresponds to input index period-1.
// Callers must ensure len(values) >= period.
func emaSeries(values []float64, period int) []float64 {
	alpha := 2.0 / float64(period+1)
	out := make([]float64, 0, len(values)-period+1)

	seed := mean(values[:period])
	out = append(out, seed)

	prev := seed
	for i := period; i < len(values); i++ {
		prev = (values[i] * alpha) + (prev * (1 - alpha))
		out = append(out, prev)
	}
	return out
}

// smaSeries computes the rolling simple average over values. The returned
// slice holds only the defined values: element 0 corresponds to input index
// period-1. Callers must ensure len(values) >= period.
func smaSeries(values []float64, period int) []float64 {
	out := make([]float64, 0, len(values)-period+1)

	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out = append(out, sum/float64(period))
		}
	}
	return out
}
