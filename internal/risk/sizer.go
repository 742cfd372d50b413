package risk

import (
	"math"

	engerrors "github.com/vutran1810/market-analysis-engine/internal/errors"
)

// Request carries the inputs of one position-sizing computation. The
// balance is a plain scalar; the caller's execution layer owns the
// account itself.
type Request struct {
	AccountBalance   float64
	EntryPrice       float64
	StopDistance     float64
	RegimeMultiplier float64
}

// Sizer turns account balance and stop distance into a bounded position
// size. The exposure cap binds after the regime multiplier, so no
// multiplier can push the size past it.
type Sizer struct {
	riskPerTrade float64
	maxExposure  float64
}

// NewSizer creates a new position sizer
func NewSizer(riskPerTrade, maxExposure float64) *Sizer {
	return &Sizer{
		riskPerTrade: riskPerTrade,
		maxExposure:  maxExposure,
	}
}

// Size computes the position for the request
func (s *Sizer) Size(req Request) (float64, error) {
	if err := validateRequest(req); err != nil {
		return 0, err
	}

	rawSize := req.AccountBalance * s.riskPerTrade / req.StopDistance
	exposureCap := req.AccountBalance * s.maxExposure / req.EntryPrice

	size := math.Min(rawSize, exposureCap)
	size *= req.RegimeMultiplier
	if size > exposureCap {
		size = exposureCap
	}
	return size, nil
}

func validateRequest(req Request) error {
	for _, field := range []struct {
		name  string
		value float64
	}{
		{"account_balance", req.AccountBalance},
		{"entry_price", req.EntryPrice},
		{"stop_distance", req.StopDistance},
		{"regime_multiplier", req.RegimeMultiplier},
	} {
		if math.IsNaN(field.value) || math.IsInf(field.value, 0) {
			return engerrors.NewInvalidParameter(field.name, field.value, "must be a finite number")
		}
	}

	if req.AccountBalance <= 0 {
		return engerrors.NewInvalidParameter("account_balance", req.AccountBalance, "must be positive")
	}
	if req.EntryPrice <= 0 {
		return engerrors.NewInvalidParameter("entry_price", req.EntryPrice, "must be positive")
	}
	if req.StopDistance <= 0 {
		return engerrors.NewInvalidParameter("stop_distance", req.StopDistance, "must be positive")
	}
	if req.RegimeMultiplier < 0 {
		return engerrors.NewInvalidParameter("regime_multiplier", req.RegimeMultiplier, "must not be negative")
	}
	return nil
}
