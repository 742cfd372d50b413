package analysis

import (
	"math"

	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// VolumeProfiler bins recent volume by price to locate the point of
// control and the value area around it.
type VolumeProfiler struct {
	window    int
	bins      int
	valueArea float64
}

// NewVolumeProfiler creates a new volume profiler
func NewVolumeProfiler() *VolumeProfiler {
	return &VolumeProfiler{
		window:    50,
		bins:      20,
		valueArea: 0.70,
	}
}

// Profile builds the volume-by-price histogram for the recent window
func (v *VolumeProfiler) Profile(data []types.OHLCV) *types.VolumeProfile {
	if len(data) == 0 {
		return nil
	}
	tail := data
	if len(tail) > v.window {
		tail = tail[len(tail)-v.window:]
	}

	low, high := math.MaxFloat64, -math.MaxFloat64
	for _, candle := range tail {
		mid := (candle.High + candle.Low) / 2
		low = math.Min(low, mid)
		high = math.Max(high, mid)
	}

	lastClose := data[len(data)-1].Close
	if high <= low {
		return &types.VolumeProfile{
			POC:           low,
			ValueAreaHigh: low,
			ValueAreaLow:  low,
			Position:      types.InValue,
		}
	}

	binSize := (high - low) / float64(v.bins)
	volumes := make([]float64, v.bins)
	total := 0.0
	for _, candle := range tail {
		mid := (candle.High + candle.Low) / 2
		bin := int((mid - low) / binSize)
		if bin >= v.bins {
			bin = v.bins - 1
		}
		volumes[bin] += candle.Volume
		total += candle.Volume
	}

	poc := 0
	for i, volume := range volumes {
		if volume > volumes[poc] {
			poc = i
		}
	}

	// Expand from the POC toward the heavier neighbor until the value
	// area holds the target share of volume
	lowBin, highBin := poc, poc
	covered := volumes[poc]
	for covered < total*v.valueArea && (lowBin > 0 || highBin < v.bins-1) {
		lowerNext, upperNext := -1.0, -1.0
		if lowBin > 0 {
			lowerNext = volumes[lowBin-1]
		}
		if highBin < v.bins-1 {
			upperNext = volumes[highBin+1]
		}
		if upperNext >= lowerNext {
			highBin++
			covered += upperNext
		} else {
			lowBin--
			covered += lowerNext
		}
	}

	profile := &types.VolumeProfile{
		POC:           low + (float64(poc)+0.5)*binSize,
		ValueAreaHigh: low + float64(highBin+1)*binSize,
		ValueAreaLow:  low + float64(lowBin)*binSize,
	}
	switch {
	case lastClose > profile.ValueAreaHigh:
		profile.Position = types.AboveValue
	case lastClose < profile.ValueAreaLow:
		profile.Position = types.BelowValue
	default:
		profile.Position = types.InValue
	}
	return profile
}
