package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// TradeAction represents the type of trading action
type TradeAction int

const (
	ActionHold TradeAction = iota
	ActionBuy
	ActionSell
)

func (a TradeAction) String() string {
	switch a {
	case ActionBuy:
		return "buy"
	case ActionSell:
		return "sell"
	case ActionHold:
		return "hold"
	default:
		return "unknown"
	}
}

func (a TradeAction) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *TradeAction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "buy":
		*a = ActionBuy
	case "sell":
		*a = ActionSell
	case "hold":
		*a = ActionHold
	default:
		return fmt.Errorf("unknown trade action %q", s)
	}
	return nil
}

// MarketRegime labels the coarse market state used to retune parameters.
type MarketRegime int

const (
	RegimeSideways MarketRegime = iota
	RegimeBull
	RegimeBear
	RegimeVolatile
)

func (r MarketRegime) String() string {
	switch r {
	case RegimeBull:
		return "bull"
	case RegimeBear:
		return "bear"
	case RegimeSideways:
		return "sideways"
	case RegimeVolatile:
		return "volatile"
	default:
		return "unknown"
	}
}

func (r MarketRegime) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *MarketRegime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "bull":
		*r = RegimeBull
	case "bear":
		*r = RegimeBear
	case "sideways":
		*r = RegimeSideways
	case "volatile":
		*r = RegimeVolatile
	default:
		return fmt.Errorf("unknown market regime %q", s)
	}
	return nil
}

// MarketSignal is the primary engine output: one trading action with its
// calibrated scores and the ordered rationale behind it. Immutable value
// object; Timestamp is the last candle's timestamp.
type MarketSignal struct {
	Symbol     string      `json:"symbol"`
	Action     TradeAction `json:"action"`
	Confidence float64     `json:"confidence"`
	Strength   float64     `json:"strength"`
	RiskScore  float64     `json:"risk_score"`
	Reasoning  []string    `json:"reasoning"`
	Timestamp  time.Time   `json:"timestamp"`
}

// RiskMetrics is the on-demand risk view of a window.
type RiskMetrics struct {
	OverallRiskScore float64      `json:"overall_risk_score"`
	Volatility       float64      `json:"volatility"`
	SharpeRatio      float64      `json:"sharpe_ratio"`
	MaxDrawdown      float64      `json:"max_drawdown"`
	MarketRegime     MarketRegime `json:"market_regime"`
	Timestamp        time.Time    `json:"timestamp"`
}

// AdaptiveParameters is the regime-tuned strategy parameter bundle.
// AdaptiveReasoning records every deviation from the global defaults.
type AdaptiveParameters struct {
	MarketRegime        MarketRegime `json:"market_regime"`
	ConfidenceThreshold float64      `json:"confidence_threshold"`
	PositionMultiplier  float64      `json:"position_multiplier"`
	RiskPerTrade        float64      `json:"risk_per_trade"`
	StopLossPct         float64      `json:"stop_loss_pct"`
	TakeProfitPct       float64      `json:"take_profit_pct"`
	TrailingStopEnabled bool         `json:"trailing_stop_enabled"`
	AdaptiveReasoning   []string     `json:"adaptive_reasoning"`
}
