package analysis

import (
	"math"

	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// OrderFlowAnalyzer reads pressure from the order book and the recent
// tape. A missing or empty book yields the neutral defaults; the engine
// records the degradation instead of failing.
type OrderFlowAnalyzer struct {
	depth      int
	tapePeriod int
}

// NewOrderFlowAnalyzer creates a new order-flow analyzer
func NewOrderFlowAnalyzer() *OrderFlowAnalyzer {
	return &OrderFlowAnalyzer{
		depth:      10,
		tapePeriod: 20,
	}
}

// Analyze summarizes book imbalance and tape direction
func (o *OrderFlowAnalyzer) Analyze(book *types.OrderBook, data []types.OHLCV) *types.OrderFlowSnapshot {
	snapshot := &types.OrderFlowSnapshot{
		BuyPressure:    0.5,
		BidAskRatio:    1.0,
		SpreadPct:      0.001,
		LiquidityScore: 0.5,
		Sentiment:      types.FlowNeutral,
	}
	if book == nil || len(book.Bids) == 0 || len(book.Asks) == 0 {
		return snapshot
	}

	snapshot.BuyPressure = o.buyPressure(data)

	bidSize := depthSize(book.Bids, o.depth)
	askSize := depthSize(book.Asks, o.depth)
	if askSize > 0 {
		snapshot.BidAskRatio = bidSize / askSize
	}

	bestBid := book.BestBid()
	bestAsk := book.BestAsk()
	snapshot.SpreadPct = 0
	if bestBid > 0 && bestAsk > bestBid {
		snapshot.SpreadPct = (bestAsk - bestBid) / bestBid
	}
	snapshot.LiquidityScore = 1 - math.Min(1, snapshot.SpreadPct*100)

	switch {
	case snapshot.BuyPressure > 0.6 && snapshot.BidAskRatio > 1.2:
		snapshot.Sentiment = types.FlowBullish
	case snapshot.BuyPressure < 0.4 && snapshot.BidAskRatio < 0.8:
		snapshot.Sentiment = types.FlowBearish
	}

	return snapshot
}

// buyPressure is the share of recent volume printed on up candles
func (o *OrderFlowAnalyzer) buyPressure(data []types.OHLCV) float64 {
	tail := data
	if len(tail) > o.tapePeriod {
		tail = tail[len(tail)-o.tapePeriod:]
	}

	up, total := 0.0, 0.0
	for _, candle := range tail {
		total += candle.Volume
		if candle.Close > candle.Open {
			up += candle.Volume
		}
	}
	if total == 0 {
		return 0.5
	}
	return up / total
}

// depthSize sums the size of the top levels on one side of the book
func depthSize(levels []types.PriceLevel, depth int) float64 {
	if len(levels) > depth {
		levels = levels[:depth]
	}
	sum := 0.0
	for _, level := range levels {
		sum += level.Size
	}
	return sum
}
