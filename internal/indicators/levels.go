package indicators

import (
	engerrors "github.com/vutran1810/market-analysis-engine/internal/errors"
	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// Levels holds the support/resistance read of a window. Nearest values fall
// back to price*0.95 / price*1.05 when no level sits on the relevant side.
type Levels struct {
	Support           []float64
	Resistance        []float64
	NearestSupport    float64
	NearestResistance float64
}

// NearSupport reports whether price sits within pct of the nearest support
func (l Levels) NearSupport(price, pct float64) bool {
	if price <= 0 {
		return false
	}
	return (price-l.NearestSupport)/price < pct && price >= l.NearestSupport
}

// NearResistance reports whether price sits within pct of the nearest resistance
func (l Levels) NearResistance(price, pct float64) bool {
	if price <= 0 {
		return false
	}
	return (l.NearestResistance-price)/price < pct && price <= l.NearestResistance
}

// LevelFinder locates support and resistance as local close extrema over a
// rolling window: a close that is the maximum (minimum) of the surrounding
// 2*window+1 candles marks a resistance (support) level.
type LevelFinder struct {
	window int
}

// NewLevelFinder creates a new support/resistance finder
func NewLevelFinder(window int) *LevelFinder {
	return &LevelFinder{window: window}
}

// Find locates the window's levels and the nearest ones to the last close
func (f *LevelFinder) Find(data []types.OHLCV) (Levels, error) {
	if len(data) < f.GetRequiredPeriods() {
		return Levels{}, engerrors.NewInsufficientData(f.GetName(), f.GetRequiredPeriods(), len(data))
	}

	closes := closePrices(data)
	levels := Levels{}

	for i := f.window; i < len(closes)-f.window; i++ {
		isMax, isMin := true, true
		for j := i - f.window; j <= i+f.window; j++ {
			if closes[j] > closes[i] {
				isMax = false
			}
			if closes[j] < closes[i] {
				isMin = false
			}
		}
		if isMax {
			levels.Resistance = append(levels.Resistance, closes[i])
		}
		if isMin {
			levels.Support = append(levels.Support, closes[i])
		}
	}

	price := closes[len(closes)-1]
	levels.NearestSupport = nearestBelow(levels.Support, price)
	levels.NearestResistance = nearestAbove(levels.Resistance, price)
	return levels, nil
}

// nearestBelow returns the highest level at or below price, or price*0.95
func nearestBelow(levels []float64, price float64) float64 {
	best := 0.0
	found := false
	for _, lvl := range levels {
		if lvl <= price && (!found || lvl > best) {
			best = lvl
			found = true
		}
	}
	if !found {
		return price * 0.95
	}
	return best
}

// nearestAbove returns the lowest level at or above price, or price*1.05
func nearestAbove(levels []float64, price float64) float64 {
	best := 0.0
	found := false
	for _, lvl := range levels {
		if lvl >= price && (!found || lvl < best) {
			best = lvl
			found = true
		}
	}
	if !found {
		return price * 1.05
	}
	return best
}

// GetName returns the indicator name
func (f *LevelFinder) GetName() string {
	return "SupportResistance"
}

// GetRequiredPeriods returns the minimum number of periods needed
func (f *LevelFinder) GetRequiredPeriods() int {
	return 2*f.window + 1
}
