package types

import "time"

// Evaluation bundles everything the engine can say about one window:
// the signal, the risk view, the regime-tuned parameters, the indicator
// snapshot they were derived from, and the advisory observations. One
// record per window, ready for hosts and reporting.
type Evaluation struct {
	Symbol      string              `json:"symbol"`
	Signal      *MarketSignal       `json:"signal"`
	Risk        *RiskMetrics        `json:"risk"`
	Parameters  *AdaptiveParameters `json:"parameters"`
	Snapshot    *IndicatorSnapshot  `json:"snapshot"`
	Patterns    []PatternMatch      `json:"patterns,omitempty"`
	OrderFlow   *OrderFlowSnapshot  `json:"order_flow"`
	Profile     *VolumeProfile      `json:"volume_profile"`
	Expectation *Expectation        `json:"expectation"`
	Warnings    []string            `json:"warnings,omitempty"`
	Timestamp   time.Time           `json:"timestamp"`
}
