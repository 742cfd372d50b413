package analysis

import (
	"fmt"
	"math"

	"github.com/vutran1810/market-analysis-engine/internal/indicators"
	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// VolumeAnalyzer builds the confirmation multiplier. OBV agreement with
// price direction and unusual volume each nudge the multiplier one step
// away from 1.0; two steps in either direction is the bound.
type VolumeAnalyzer struct {
	spike *indicators.VolumeSpike
	step  float64
}

// NewVolumeAnalyzer creates a new volume analyzer
func NewVolumeAnalyzer(spikePeriod int, spikeRatio, droughtRatio, step float64) *VolumeAnalyzer {
	return &VolumeAnalyzer{
		spike: indicators.NewVolumeSpike(spikePeriod, spikeRatio, droughtRatio),
		step:  step,
	}
}

// Analyze derives the volume confirmation multiplier for the window
func (v *VolumeAnalyzer) Analyze(data []types.OHLCV, snap *types.IndicatorSnapshot) (*VolumeResult, error) {
	result := &VolumeResult{Multiplier: 1.0}

	priceDirection := sign(snap.LastClose - snap.EMA21)
	obvDirection := sign(snap.OBV - snap.OBVSMA)
	if priceDirection != 0 && obvDirection != 0 {
		if priceDirection == obvDirection {
			result.Multiplier += v.step
			result.Reasons = append(result.Reasons, "OBV confirms the price move")
		} else {
			result.Multiplier -= v.step
			result.Reasons = append(result.Reasons, "OBV diverging from price")
		}
	}

	ratio, err := v.spike.Calculate(data)
	if err != nil {
		return nil, err
	}
	isSpike, err := v.spike.IsSpike(data)
	if err != nil {
		return nil, err
	}
	isDrought, err := v.spike.IsDrought(data)
	if err != nil {
		return nil, err
	}

	if isSpike {
		result.Multiplier += v.step
		result.Reasons = append(result.Reasons, fmt.Sprintf("Volume spike: %.1fx the trailing average", ratio))
	} else if isDrought {
		result.Multiplier -= v.step
		result.Reasons = append(result.Reasons, fmt.Sprintf("Volume drought: %.1fx the trailing average", ratio))
	}

	floor := 1 - 2*v.step
	ceiling := 1 + 2*v.step
	if result.Multiplier < floor {
		result.Multiplier = floor
	}
	if result.Multiplier > ceiling {
		result.Multiplier = ceiling
	}

	result.Score = (result.Multiplier - 1) / (2 * v.step)
	result.Strength = math.Abs(result.Score)

	return result, nil
}

// sign returns -1, 0, or +1 by the sign of x
func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
