package types

// FlowSentiment is the directional read of an order-flow snapshot.
type FlowSentiment string

const (
	FlowBullish FlowSentiment = "bullish"
	FlowBearish FlowSentiment = "bearish"
	FlowNeutral FlowSentiment = "neutral"
)

// OrderFlowSnapshot summarizes order-book pressure and tape direction.
// When no book is supplied every field holds its neutral default.
type OrderFlowSnapshot struct {
	BuyPressure    float64       `json:"buy_pressure"`
	BidAskRatio    float64       `json:"bid_ask_ratio"`
	SpreadPct      float64       `json:"spread_pct"`
	LiquidityScore float64       `json:"liquidity_score"`
	Sentiment      FlowSentiment `json:"sentiment"`
}

// ValuePosition locates the last close relative to the volume value area.
type ValuePosition string

const (
	AboveValue ValuePosition = "above_value"
	InValue    ValuePosition = "in_value"
	BelowValue ValuePosition = "below_value"
)

// VolumeProfile is the binned volume-by-price view of the recent window.
type VolumeProfile struct {
	POC           float64       `json:"poc"`
	ValueAreaHigh float64       `json:"value_area_high"`
	ValueAreaLow  float64       `json:"value_area_low"`
	Position      ValuePosition `json:"position"`
}

// PatternType names a detected chart formation.
type PatternType string

const (
	PatternHeadAndShoulders        PatternType = "head_and_shoulders"
	PatternInverseHeadAndShoulders PatternType = "inverse_head_and_shoulders"
	PatternDoubleTop               PatternType = "double_top"
	PatternDoubleBottom            PatternType = "double_bottom"
	PatternAscendingTriangle       PatternType = "ascending_triangle"
	PatternDescendingTriangle      PatternType = "descending_triangle"
	PatternBullFlag                PatternType = "bull_flag"
)

// PatternMatch is one detected formation with its projected target.
type PatternMatch struct {
	Type       PatternType `json:"type"`
	Direction  TradeAction `json:"direction"`
	Confidence float64     `json:"confidence"`
	Target     float64     `json:"target"`
}

// Expectation is the rule-based next-move bias. Hand-written thresholds over
// recent returns and volume, no learned weights.
type Expectation struct {
	Bias       FlowSentiment `json:"bias"`
	Score      float64       `json:"score"`
	Confidence float64       `json:"confidence"`
}
