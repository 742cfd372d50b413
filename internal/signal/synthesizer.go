package signal

import (
	"math"

	"github.com/vutran1810/market-analysis-engine/internal/analysis"
	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// Weights control the trend/momentum blend of the composite score.
// Volatility never enters the blend (it feeds the risk path) and volume
// enters only as a multiplier, so no direction is counted twice.
type Weights struct {
	Trend    float64
	Momentum float64
}

// Inputs bundles the analyzer results feeding one synthesis
type Inputs struct {
	Trend      *analysis.Result
	Momentum   *analysis.Result
	Volatility *analysis.Result
	Volume     *analysis.VolumeResult
}

// Decision is the synthesized call before the engine attaches symbol,
// risk score, and timestamp
type Decision struct {
	Action     types.TradeAction
	Score      float64
	Confidence float64
	Strength   float64
	Reasoning  []string
}

// Synthesizer fuses analyzer scores into one trade decision
type Synthesizer struct {
	weights Weights
}

// NewSynthesizer creates a new synthesizer
func NewSynthesizer(weights Weights) *Synthesizer {
	return &Synthesizer{weights: weights}
}

// Synthesize blends the analyzer results against the active confidence
// threshold. All four inputs must be present.
func (s *Synthesizer) Synthesize(in Inputs, confidenceThreshold float64) *Decision {
	score := s.weights.Trend*in.Trend.Score + s.weights.Momentum*in.Momentum.Score
	score *= in.Volume.Multiplier

	action := types.ActionHold
	switch {
	case score >= confidenceThreshold:
		action = types.ActionBuy
	case score <= -confidenceThreshold:
		action = types.ActionSell
	}

	// Opposing weak readings cancel to hold instead of netting a trade
	if opposed(in.Trend.Score, in.Momentum.Score) &&
		math.Abs(in.Trend.Score) <= 0.5 && math.Abs(in.Momentum.Score) <= 0.5 {
		action = types.ActionHold
	}

	decision := &Decision{
		Action:     action,
		Score:      score,
		Confidence: math.Min(1, math.Abs(score)),
		Strength:   math.Min(1, (math.Abs(in.Trend.Score)+math.Abs(in.Momentum.Score))/2),
	}

	decision.Reasoning = append(decision.Reasoning, in.Trend.Reasons...)
	decision.Reasoning = append(decision.Reasoning, in.Momentum.Reasons...)
	decision.Reasoning = append(decision.Reasoning, in.Volatility.Reasons...)
	decision.Reasoning = append(decision.Reasoning, in.Volume.Reasons...)
	if len(decision.Reasoning) == 0 {
		decision.Reasoning = append(decision.Reasoning, "No strong signal detected")
	}

	return decision
}

// opposed reports whether the two scores pull in opposite directions
func opposed(a, b float64) bool {
	return (a > 0 && b < 0) || (a < 0 && b > 0)
}
