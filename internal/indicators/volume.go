package indicators

import (
	engerrors "github.com/vutran1810/market-analysis-engine/internal/errors"
	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// VolumeSpike flags unusual volume against a trailing rolling average.
// The average covers the 'period' candles preceding the current one, so a
// single huge bar cannot mask itself.
type VolumeSpike struct {
	period       int
	spikeRatio   float64
	droughtRatio float64
}

// NewVolumeSpike creates a new volume spike detector
func NewVolumeSpike(period int, spikeRatio, droughtRatio float64) *VolumeSpike {
	return &VolumeSpike{
		period:       period,
		spikeRatio:   spikeRatio,
		droughtRatio: droughtRatio,
	}
}

// Calculate computes the ratio of current volume to the trailing average.
// 1 when the trailing average is zero.
func (v *VolumeSpike) Calculate(data []types.OHLCV) (float64, error) {
	avg, err := v.Average(data)
	if err != nil {
		return 0, err
	}

	if avg == 0 {
		return 1, nil
	}
	return data[len(data)-1].Volume / avg, nil
}

// Average computes the trailing average volume, excluding the current candle
func (v *VolumeSpike) Average(data []types.OHLCV) (float64, error) {
	if len(data) < v.GetRequiredPeriods() {
		return 0, engerrors.NewInsufficientData(v.GetName(), v.GetRequiredPeriods(), len(data))
	}

	window := data[len(data)-1-v.period : len(data)-1]
	sum := 0.0
	for _, candle := range window {
		sum += candle.Volume
	}
	return sum / float64(v.period), nil
}

// IsSpike reports whether the current volume exceeds spikeRatio times the
// trailing average
func (v *VolumeSpike) IsSpike(data []types.OHLCV) (bool, error) {
	ratio, err := v.Calculate(data)
	if err != nil {
		return false, err
	}
	return ratio > v.spikeRatio, nil
}

// IsDrought reports whether the current volume sits below droughtRatio times
// the trailing average
func (v *VolumeSpike) IsDrought(data []types.OHLCV) (bool, error) {
	ratio, err := v.Calculate(data)
	if err != nil {
		return false, err
	}
	return ratio < v.droughtRatio, nil
}

// GetName returns the indicator name
func (v *VolumeSpike) GetName() string {
	return "VolumeSpike"
}

// GetRequiredPeriods returns the minimum number of periods needed
func (v *VolumeSpike) GetRequiredPeriods() int {
	return v.period + 1
}
