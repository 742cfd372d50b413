package analysis

// Result carries one analyzer's contribution to the composite signal:
// a directional score in [-1, +1] (negative = bearish), a magnitude in
// [0, 1], and the rationale strings behind them.
type Result struct {
	Score    float64
	Strength float64
	Reasons  []string
}

// VolumeResult extends Result with the confirmation multiplier applied
// to the composite score. The multiplier stays within [0.8, 1.2].
type VolumeResult struct {
	Result
	Multiplier float64
}
