package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

func TestVolumeProfiler_POCAtHeaviestNode(t *testing.T) {
	profiler := NewVolumeProfiler()

	closes := make([]float64, 0, 50)
	volumes := make([]float64, 0, 50)
	for i := 0; i <= 40; i++ { // thin background spanning 90..110
		closes = append(closes, 90+float64(i)*0.5)
		volumes = append(volumes, 100)
	}
	for i := 0; i < 9; i++ { // heavy node at 100.5
		closes = append(closes, 100.5)
		volumes = append(volumes, 5000)
	}

	profile := profiler.Profile(candlesFromClosesVolumes(closes, volumes))
	require.NotNil(t, profile)

	assert.InDelta(t, 100.5, profile.POC, 1e-9)
	assert.LessOrEqual(t, profile.ValueAreaLow, profile.POC)
	assert.GreaterOrEqual(t, profile.ValueAreaHigh, profile.POC)
	assert.Equal(t, types.InValue, profile.Position)
}

func TestVolumeProfiler_CloseAboveValueArea(t *testing.T) {
	profiler := NewVolumeProfiler()

	closes := make([]float64, 0, 50)
	volumes := make([]float64, 0, 50)
	for i := 0; i < 49; i++ {
		closes = append(closes, 95)
		volumes = append(volumes, 5000)
	}
	closes = append(closes, 115)
	volumes = append(volumes, 100)

	profile := profiler.Profile(candlesFromClosesVolumes(closes, volumes))
	require.NotNil(t, profile)

	assert.Equal(t, types.AboveValue, profile.Position)
}

func TestVolumeProfiler_CloseBelowValueArea(t *testing.T) {
	profiler := NewVolumeProfiler()

	closes := make([]float64, 0, 50)
	volumes := make([]float64, 0, 50)
	for i := 0; i < 49; i++ {
		closes = append(closes, 105)
		volumes = append(volumes, 5000)
	}
	closes = append(closes, 85)
	volumes = append(volumes, 100)

	profile := profiler.Profile(candlesFromClosesVolumes(closes, volumes))
	require.NotNil(t, profile)

	assert.Equal(t, types.BelowValue, profile.Position)
}

func TestVolumeProfiler_FlatWindowDegenerates(t *testing.T) {
	profiler := NewVolumeProfiler()

	profile := profiler.Profile(flatCandles(50, 100))
	require.NotNil(t, profile)

	assert.Equal(t, 100.0, profile.POC)
	assert.Equal(t, 100.0, profile.ValueAreaHigh)
	assert.Equal(t, 100.0, profile.ValueAreaLow)
	assert.Equal(t, types.InValue, profile.Position)
}

func TestVolumeProfiler_UsesOnlyRecentWindow(t *testing.T) {
	profiler := NewVolumeProfiler()

	closes := make([]float64, 0, 60)
	volumes := make([]float64, 0, 60)
	for i := 0; i < 10; i++ { // stale heavy node outside the window
		closes = append(closes, 90)
		volumes = append(volumes, 99999)
	}
	for i := 0; i < 50; i++ {
		closes = append(closes, 100)
		volumes = append(volumes, 100)
	}

	profile := profiler.Profile(candlesFromClosesVolumes(closes, volumes))
	require.NotNil(t, profile)

	assert.Equal(t, 100.0, profile.POC)
}

func TestVolumeProfiler_EmptyDataReturnsNil(t *testing.T) {
	profiler := NewVolumeProfiler()

	assert.Nil(t, profiler.Profile(nil))
}
