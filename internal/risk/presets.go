package risk

// Tolerance selects one of the closed risk bundles. The set is fixed at
// compile time; there is no string-keyed lookup to extend.
type Tolerance int

const (
	Conservative Tolerance = iota
	Moderate
	Aggressive
)

// Preset is the explicit parameter bundle behind one tolerance
type Preset struct {
	RiskPerTrade  float64
	StopLossPct   float64
	TakeProfitPct float64
	MaxExposure   float64
}

// Bundle returns the preset parameters for the tolerance. Unknown values
// fall back to the moderate bundle.
func (t Tolerance) Bundle() Preset {
	switch t {
	case Conservative:
		return Preset{
			RiskPerTrade:  0.005,
			StopLossPct:   0.01,
			TakeProfitPct: 0.02,
			MaxExposure:   0.05,
		}
	case Aggressive:
		return Preset{
			RiskPerTrade:  0.02,
			StopLossPct:   0.03,
			TakeProfitPct: 0.06,
			MaxExposure:   0.15,
		}
	default:
		return Preset{
			RiskPerTrade:  0.01,
			StopLossPct:   0.02,
			TakeProfitPct: 0.04,
			MaxExposure:   0.10,
		}
	}
}

// String returns the tolerance name
func (t Tolerance) String() string {
	switch t {
	case Conservative:
		return "conservative"
	case Aggressive:
		return "aggressive"
	default:
		return "moderate"
	}
}

// Tolerances enumerates every bundle, mildest first
func Tolerances() []Tolerance {
	return []Tolerance{Conservative, Moderate, Aggressive}
}
