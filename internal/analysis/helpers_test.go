package analysis

import (
	"strings"
	"time"

	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// candlesFromCloses builds a window from explicit closes. Open carries the
// prior close so up/down candles follow the close-to-close direction.
func candlesFromCloses(closes []float64, volume float64) []types.OHLCV {
	volumes := make([]float64, len(closes))
	for i := range volumes {
		volumes[i] = volume
	}
	return candlesFromClosesVolumes(closes, volumes)
}

// candlesFromClosesVolumes pairs explicit closes with explicit volumes
func candlesFromClosesVolumes(closes, volumes []float64) []types.OHLCV {
	data := make([]types.OHLCV, len(closes))
	for i, c := range closes {
		open := c
		if i > 0 {
			open = closes[i-1]
		}
		data[i] = types.OHLCV{
			Timestamp: time.Now().Add(time.Duration(i) * time.Hour),
			Open:      open,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    volumes[i],
		}
	}
	return data
}

func risingCandles(n int, start, step float64) []types.OHLCV {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start + float64(i)*step
	}
	return candlesFromCloses(closes, 1000)
}

func fallingCandles(n int, start, step float64) []types.OHLCV {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start - float64(i)*step
	}
	return candlesFromCloses(closes, 1000)
}

func flatCandles(n int, price float64) []types.OHLCV {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = price
	}
	return candlesFromCloses(closes, 1000)
}

// neutralSnapshot is a midline snapshot tests tweak field by field
func neutralSnapshot() *types.IndicatorSnapshot {
	return &types.IndicatorSnapshot{
		EMA9:       100,
		EMA21:      100,
		EMA50:      100,
		PrevEMA9:   100,
		PrevEMA21:  100,
		RSI:        50,
		StochK:     50,
		StochD:     50,
		PrevStochK: 50,
		PrevStochD: 50,
		BBUpper:    102,
		BBMiddle:   100,
		BBLower:    98,
		BBWidth:    0.04,
		ATR:        2,
		AvgVolume:  1000,
		LastClose:  100,
	}
}

// containsReason reports whether any rationale contains the fragment
func containsReason(reasons []string, fragment string) bool {
	for _, reason := range reasons {
		if strings.Contains(reason, fragment) {
			return true
		}
	}
	return false
}
