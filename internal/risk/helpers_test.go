package risk

import (
	"time"

	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

func candlesAt(closes []float64) []types.OHLCV {
	data := make([]types.OHLCV, len(closes))
	for i, c := range closes {
		data[i] = types.OHLCV{
			Timestamp: time.Now().Add(time.Duration(i) * time.Hour),
			Open:      c,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    1000,
		}
	}
	return data
}

func flatCandles(n int, price float64) []types.OHLCV {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = price
	}
	return candlesAt(closes)
}

func risingCandles(n int, start, step float64) []types.OHLCV {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start + float64(i)*step
	}
	return candlesAt(closes)
}

func fallingCandles(n int, start, step float64) []types.OHLCV {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start - float64(i)*step
	}
	return candlesAt(closes)
}

func bookWithSpread(bid, ask float64) *types.OrderBook {
	return &types.OrderBook{
		Bids: []types.PriceLevel{{Price: bid, Size: 5}, {Price: bid - 0.1, Size: 10}},
		Asks: []types.PriceLevel{{Price: ask, Size: 5}, {Price: ask + 0.1, Size: 10}},
	}
}
