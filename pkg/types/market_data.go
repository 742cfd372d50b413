package types

import "time"

type OHLCV struct {
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	Timestamp time.Time
}

// PriceLevel is one side entry of an order book: price and resting size.
type PriceLevel struct {
	Price float64
	Size  float64
}

// OrderBook is an optional depth snapshot supplied alongside candles.
// Bids and asks are expected best-first; the helpers scan every level
// so unsorted sides still resolve.
type OrderBook struct {
	Bids []PriceLevel
	Asks []PriceLevel
}

// BestBid returns the highest bid price, or 0 when the side is empty.
func (b *OrderBook) BestBid() float64 {
	if b == nil || len(b.Bids) == 0 {
		return 0
	}
	best := b.Bids[0].Price
	for _, lvl := range b.Bids[1:] {
		if lvl.Price > best {
			best = lvl.Price
		}
	}
	return best
}

// BestAsk returns the lowest ask price, or 0 when the side is empty.
func (b *OrderBook) BestAsk() float64 {
	if b == nil || len(b.Asks) == 0 {
		return 0
	}
	best := b.Asks[0].Price
	for _, lvl := range b.Asks[1:] {
		if lvl.Price < best {
			best = lvl.Price
		}
	}
	return best
}

// MidPrice returns the bid/ask midpoint, or 0 when either side is empty.
func (b *OrderBook) MidPrice() float64 {
	bid := b.BestBid()
	ask := b.BestAsk()
	if bid <= 0 || ask <= 0 {
		return 0
	}
	return (bid + ask) / 2
}

// MarketData is the full input for one analysis call: a chronological,
// oldest-first candle window and an optional order book snapshot.
// The engine never mutates it.
type MarketData struct {
	Symbol    string
	Candles   []OHLCV
	OrderBook *OrderBook
}

// LastCandle returns the most recent candle of the window.
func (m *MarketData) LastCandle() OHLCV {
	if len(m.Candles) == 0 {
		return OHLCV{}
	}
	return m.Candles[len(m.Candles)-1]
}

// LastClose returns the most recent close, or 0 for an empty window.
func (m *MarketData) LastClose() float64 {
	return m.LastCandle().Close
}

// Timestamp returns the last candle's timestamp. Output records carry it so
// identical windows produce identical records.
func (m *MarketData) Timestamp() time.Time {
	return m.LastCandle().Timestamp
}
