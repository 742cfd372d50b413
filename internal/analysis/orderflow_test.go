package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// bookWithSizes builds a book with uniform level sizes per side
func bookWithSizes(bidPrice, askPrice float64, bidSize, askSize float64, levels int) *types.OrderBook {
	book := &types.OrderBook{}
	for i := 0; i < levels; i++ {
		offset := float64(i) * 0.1
		book.Bids = append(book.Bids, types.PriceLevel{Price: bidPrice - offset, Size: bidSize})
		book.Asks = append(book.Asks, types.PriceLevel{Price: askPrice + offset, Size: askSize})
	}
	return book
}

// tapeWithPressure alternates up and down candles with distinct volumes
func tapeWithPressure(n int, upVolume, downVolume float64) []types.OHLCV {
	closes := make([]float64, n)
	volumes := make([]float64, n)
	price := 100.0
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			price += 1
			volumes[i] = upVolume
		} else {
			price -= 0.5
			volumes[i] = downVolume
		}
		closes[i] = price
	}
	return candlesFromClosesVolumes(closes, volumes)
}

func TestOrderFlowAnalyzer_MissingBookYieldsNeutralDefaults(t *testing.T) {
	analyzer := NewOrderFlowAnalyzer()

	snapshot := analyzer.Analyze(nil, flatCandles(30, 100))
	require.NotNil(t, snapshot)

	assert.Equal(t, 0.5, snapshot.BuyPressure)
	assert.Equal(t, 1.0, snapshot.BidAskRatio)
	assert.Equal(t, 0.001, snapshot.SpreadPct)
	assert.Equal(t, 0.5, snapshot.LiquidityScore)
	assert.Equal(t, types.FlowNeutral, snapshot.Sentiment)
}

func TestOrderFlowAnalyzer_EmptyBookYieldsNeutralDefaults(t *testing.T) {
	analyzer := NewOrderFlowAnalyzer()

	snapshot := analyzer.Analyze(&types.OrderBook{}, flatCandles(30, 100))
	assert.Equal(t, types.FlowNeutral, snapshot.Sentiment)
	assert.Equal(t, 0.5, snapshot.LiquidityScore)
}

func TestOrderFlowAnalyzer_BullishImbalance(t *testing.T) {
	analyzer := NewOrderFlowAnalyzer()
	book := bookWithSizes(99.9, 100.0, 2.0, 1.0, 10)
	data := tapeWithPressure(20, 2000, 500)

	snapshot := analyzer.Analyze(book, data)

	assert.Greater(t, snapshot.BuyPressure, 0.6)
	assert.InDelta(t, 2.0, snapshot.BidAskRatio, 1e-9)
	assert.Equal(t, types.FlowBullish, snapshot.Sentiment)
}

func TestOrderFlowAnalyzer_BearishImbalance(t *testing.T) {
	analyzer := NewOrderFlowAnalyzer()
	book := bookWithSizes(99.9, 100.0, 1.0, 2.0, 10)
	data := tapeWithPressure(20, 500, 2000)

	snapshot := analyzer.Analyze(book, data)

	assert.Less(t, snapshot.BuyPressure, 0.4)
	assert.InDelta(t, 0.5, snapshot.BidAskRatio, 1e-9)
	assert.Equal(t, types.FlowBearish, snapshot.Sentiment)
}

func TestOrderFlowAnalyzer_TightSpreadScoresLiquid(t *testing.T) {
	analyzer := NewOrderFlowAnalyzer()
	book := bookWithSizes(99.9, 100.0, 1.0, 1.0, 10)

	snapshot := analyzer.Analyze(book, flatCandles(30, 100))

	spread := (100.0 - 99.9) / 99.9
	assert.InDelta(t, spread, snapshot.SpreadPct, 1e-9)
	assert.InDelta(t, 1-spread*100, snapshot.LiquidityScore, 1e-9)
}

func TestOrderFlowAnalyzer_WideSpreadDrainsLiquidity(t *testing.T) {
	analyzer := NewOrderFlowAnalyzer()
	book := bookWithSizes(95.0, 100.0, 1.0, 1.0, 5)

	snapshot := analyzer.Analyze(book, flatCandles(30, 100))

	assert.Equal(t, 0.0, snapshot.LiquidityScore)
}

func TestOrderFlowAnalyzer_DepthCappedAtTopTen(t *testing.T) {
	analyzer := NewOrderFlowAnalyzer()
	book := bookWithSizes(99.9, 100.0, 1.0, 1.0, 15)

	snapshot := analyzer.Analyze(book, flatCandles(30, 100))

	// Fifteen levels per side, but only the top ten count on each
	assert.InDelta(t, 1.0, snapshot.BidAskRatio, 1e-9)
}
