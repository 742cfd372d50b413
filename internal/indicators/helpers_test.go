package indicators

import (
	"time"

	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// generateTestData creates test data with small repeating price movements
func generateTestData(count int) []types.OHLCV {
	data := make([]types.OHLCV, count)
	basePrice := 100.0

	for i := 0; i < count; i++ {
		change := (float64(i%3) - 1) * 2.0 // -2, 0, or 2
		price := basePrice + change

		data[i] = types.OHLCV{
			Timestamp: time.Now().Add(time.Duration(i) * time.Hour),
			Open:      price,
			High:      price + 1.0,
			Low:       price - 1.0,
			Close:     price,
			Volume:    1000.0,
		}
		basePrice = price
	}

	return data
}

// generateRisingData creates data with a steady rising trend
func generateRisingData(count int) []types.OHLCV {
	data := make([]types.OHLCV, count)
	basePrice := 100.0

	for i := 0; i < count; i++ {
		price := basePrice + float64(i)*0.5
		data[i] = types.OHLCV{
			Timestamp: time.Now().Add(time.Duration(i) * time.Hour),
			Open:      price,
			High:      price + 1.0,
			Low:       price - 1.0,
			Close:     price,
			Volume:    1000.0,
		}
	}

	return data
}

// generateFallingData creates data with a steady falling trend
func generateFallingData(count int) []types.OHLCV {
	data := make([]types.OHLCV, count)
	basePrice := 200.0

	for i := 0; i < count; i++ {
		price := basePrice - float64(i)*0.5
		data[i] = types.OHLCV{
			Timestamp: time.Now().Add(time.Duration(i) * time.Hour),
			Open:      price,
			High:      price + 1.0,
			Low:       price - 1.0,
			Close:     price,
			Volume:    1000.0,
		}
	}

	return data
}

// generateFlatData creates data with constant closes
func generateFlatData(count int) []types.OHLCV {
	data := make([]types.OHLCV, count)

	for i := 0; i < count; i++ {
		data[i] = types.OHLCV{
			Timestamp: time.Now().Add(time.Duration(i) * time.Hour),
			Open:      100.0,
			High:      101.0,
			Low:       99.0,
			Close:     100.0,
			Volume:    1000.0,
		}
	}

	return data
}

// generateVolatileData creates data with large alternating swings
func generateVolatileData(count int) []types.OHLCV {
	data := make([]types.OHLCV, count)
	basePrice := 100.0

	for i := 0; i < count; i++ {
		change := (float64(i%2)*2 - 1) * 10.0 // -10 or +10
		price := basePrice + change

		data[i] = types.OHLCV{
			Timestamp: time.Now().Add(time.Duration(i) * time.Hour),
			Open:      price,
			High:      price + 12.0,
			Low:       price - 12.0,
			Close:     price,
			Volume:    1000.0,
		}
	}

	return data
}
