package regime

import (
	"fmt"

	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// Global baselines the regime bundles are measured against when
// reporting deviations
const (
	defaultConfidenceThreshold = 0.65
	defaultPositionMultiplier  = 1.0
	defaultRiskPerTrade        = 0.02
	defaultStopLossPct         = 0.02
	defaultTakeProfitPct       = 0.05
)

// Parameters returns the adaptive bundle for the classification. The
// reasoning opens with the regime itself and then records every field
// that deviates from the global defaults.
func (c *Classification) Parameters() *types.AdaptiveParameters {
	params := &types.AdaptiveParameters{
		MarketRegime:        c.Regime,
		ConfidenceThreshold: defaultConfidenceThreshold,
		PositionMultiplier:  defaultPositionMultiplier,
		RiskPerTrade:        defaultRiskPerTrade,
		StopLossPct:         defaultStopLossPct,
		TakeProfitPct:       defaultTakeProfitPct,
	}

	switch c.Regime {
	case types.RegimeBull:
		params.PositionMultiplier = 1.2
		params.TakeProfitPct = 0.06
		params.TrailingStopEnabled = true
	case types.RegimeBear:
		params.ConfidenceThreshold = 0.70
		params.PositionMultiplier = 0.8
		params.StopLossPct = 0.025
		params.TakeProfitPct = 0.04
		params.TrailingStopEnabled = true
	case types.RegimeVolatile:
		params.ConfidenceThreshold = 0.75
		params.PositionMultiplier = 0.7
		params.StopLossPct = 0.03
		params.TakeProfitPct = 0.08
		params.TrailingStopEnabled = true
	default:
		params.ConfidenceThreshold = 0.70
		params.PositionMultiplier = 0.6
		params.StopLossPct = 0.015
	}

	params.AdaptiveReasoning = adaptiveReasoning(c, params)
	return params
}

// adaptiveReasoning renders the regime line plus one line per deviation
func adaptiveReasoning(c *Classification, params *types.AdaptiveParameters) []string {
	lines := []string{fmt.Sprintf("Market regime: %s (confidence %.2f)", c.Regime, c.Confidence)}

	if params.ConfidenceThreshold != defaultConfidenceThreshold {
		lines = append(lines, fmt.Sprintf("Confidence threshold %.2f (default %.2f)",
			params.ConfidenceThreshold, defaultConfidenceThreshold))
	}
	if params.PositionMultiplier != defaultPositionMultiplier {
		lines = append(lines, fmt.Sprintf("Position multiplier %.1fx (default %.1fx)",
			params.PositionMultiplier, defaultPositionMultiplier))
	}
	if params.RiskPerTrade != defaultRiskPerTrade {
		lines = append(lines, fmt.Sprintf("Risk per trade %.1f%% (default %.1f%%)",
			params.RiskPerTrade*100, defaultRiskPerTrade*100))
	}
	if params.StopLossPct != defaultStopLossPct {
		lines = append(lines, fmt.Sprintf("Stop loss %.1f%% (default %.1f%%)",
			params.StopLossPct*100, defaultStopLossPct*100))
	}
	if params.TakeProfitPct != defaultTakeProfitPct {
		lines = append(lines, fmt.Sprintf("Take profit %.1f%% (default %.1f%%)",
			params.TakeProfitPct*100, defaultTakeProfitPct*100))
	}
	if params.TrailingStopEnabled {
		lines = append(lines, "Trailing stop enabled")
	}
	return lines
}
