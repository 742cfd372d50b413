package analysis

import (
	"fmt"
	"math"

	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// MomentumAnalyzer blends RSI, MACD, and Stochastic readings into one
// oscillator score. Each contribution is normalized to [-1, +1] and the
// final score is their mean, so the RSI term rises monotonically with RSI.
type MomentumAnalyzer struct {
	rsiPeriod  int
	overbought float64
	oversold   float64
}

// NewMomentumAnalyzer creates a new momentum analyzer
func NewMomentumAnalyzer(rsiPeriod int, overbought, oversold float64) *MomentumAnalyzer {
	return &MomentumAnalyzer{
		rsiPeriod:  rsiPeriod,
		overbought: overbought,
		oversold:   oversold,
	}
}

// Analyze scores the oscillator stack for the window
func (m *MomentumAnalyzer) Analyze(data []types.OHLCV, snap *types.IndicatorSnapshot) (*Result, error) {
	rsiScore, rsiReasons := m.scoreRSI(data, snap)
	macdScore, macdReasons := m.scoreMACD(snap)
	stochScore, stochReasons := m.scoreStochastic(snap)

	result := &Result{
		Score:    (rsiScore + macdScore + stochScore) / 3,
		Strength: (math.Abs(rsiScore) + math.Abs(macdScore) + math.Abs(stochScore)) / 3,
	}
	result.Reasons = append(result.Reasons, rsiReasons...)
	result.Reasons = append(result.Reasons, macdReasons...)
	result.Reasons = append(result.Reasons, stochReasons...)

	return result, nil
}

// scoreRSI maps RSI onto [-1, +1] around the 50 midline and flags
// overbought, oversold, and divergence conditions.
func (m *MomentumAnalyzer) scoreRSI(data []types.OHLCV, snap *types.IndicatorSnapshot) (float64, []string) {
	contribution := (snap.RSI - 50) / 50
	if contribution > 1 {
		contribution = 1
	} else if contribution < -1 {
		contribution = -1
	}

	var reasons []string
	if snap.RSI >= m.overbought {
		reasons = append(reasons, fmt.Sprintf("RSI overbought at %.1f", snap.RSI))
	} else if snap.RSI <= m.oversold {
		reasons = append(reasons, fmt.Sprintf("RSI oversold at %.1f", snap.RSI))
	}

	if len(data) > m.rsiPeriod {
		priceChange := data[len(data)-1].Close - data[len(data)-1-m.rsiPeriod].Close
		if contribution > 0 && priceChange < 0 {
			reasons = append(reasons, "Bullish divergence: RSI strengthening while price falls")
		} else if contribution < 0 && priceChange > 0 {
			reasons = append(reasons, "Bearish divergence: RSI weakening while price rises")
		}
	}

	return contribution, reasons
}

// scoreMACD weighs a fresh histogram sign flip heavier than a standing one
func (m *MomentumAnalyzer) scoreMACD(snap *types.IndicatorSnapshot) (float64, []string) {
	switch {
	case snap.PrevMACDHist <= 0 && snap.MACDHist > 0:
		return 0.7, []string{"MACD bullish crossover"}
	case snap.PrevMACDHist >= 0 && snap.MACDHist < 0:
		return -0.7, []string{"MACD bearish crossover"}
	case snap.MACDHist > 0:
		return 0.3, nil
	case snap.MACDHist < 0:
		return -0.3, nil
	}
	return 0, nil
}

// scoreStochastic only scores %K/%D crossovers inside an extreme zone;
// an extreme reading without a crossover is rationale, not signal.
func (m *MomentumAnalyzer) scoreStochastic(snap *types.IndicatorSnapshot) (float64, []string) {
	crossedUp := snap.PrevStochK <= snap.PrevStochD && snap.StochK > snap.StochD
	crossedDown := snap.PrevStochK >= snap.PrevStochD && snap.StochK < snap.StochD

	switch {
	case crossedUp && snap.StochK < 20:
		return 1, []string{"Stochastic bullish crossover in the oversold zone"}
	case crossedDown && snap.StochK > 80:
		return -1, []string{"Stochastic bearish crossover in the overbought zone"}
	case snap.StochK > 80:
		return 0, []string{"Stochastic overbought"}
	case snap.StochK < 20:
		return 0, []string{"Stochastic oversold"}
	}
	return 0, nil
}
