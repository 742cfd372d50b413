package errors

import (
	stderrors "errors"
	"fmt"
	"math"
)

// InsufficientDataError reports a window shorter than an indicator's minimum
// lookback. Nothing transient to retry: the caller must supply more candles.
type InsufficientDataError struct {
	Indicator string
	Required  int
	Got       int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %s calculation: need %d candles, got %d",
		e.Indicator, e.Required, e.Got)
}

// NewInsufficientData creates an InsufficientDataError for the given indicator.
func NewInsufficientData(indicator string, required, got int) *InsufficientDataError {
	return &InsufficientDataError{
		Indicator: indicator,
		Required:  required,
		Got:       got,
	}
}

// InvalidParameterError reports a contract violation in the inputs: a
// non-positive stop distance or balance, NaN/Inf in the series, broken
// candle ordering. Fails fast, never handled permissively.
type InvalidParameterError struct {
	Parameter string
	Value     float64
	Reason    string
}

func (e *InvalidParameterError) Error() string {
	if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
		return fmt.Sprintf("invalid parameter %s: %s", e.Parameter, e.Reason)
	}
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Parameter, e.Value, e.Reason)
}

// NewInvalidParameter creates an InvalidParameterError.
func NewInvalidParameter(parameter string, value float64, reason string) *InvalidParameterError {
	return &InvalidParameterError{
		Parameter: parameter,
		Value:     value,
		Reason:    reason,
	}
}

// DegradedInputWarning records a non-fatal input degradation. The engine
// proceeds with the documented conservative fallback and surfaces the
// degradation in reasoning instead of failing.
type DegradedInputWarning struct {
	Input    string
	Fallback string
}

func (w *DegradedInputWarning) Error() string {
	return fmt.Sprintf("degraded input %s: %s", w.Input, w.Fallback)
}

// Notice renders the warning as a reasoning entry.
func (w *DegradedInputWarning) Notice() string {
	return fmt.Sprintf("Degraded input (%s): %s", w.Input, w.Fallback)
}

// NewDegradedInput creates a DegradedInputWarning.
func NewDegradedInput(input, fallback string) *DegradedInputWarning {
	return &DegradedInputWarning{Input: input, Fallback: fallback}
}

// IsInsufficientData reports whether err is an InsufficientDataError.
func IsInsufficientData(err error) bool {
	var target *InsufficientDataError
	return stderrors.As(err, &target)
}

// IsInvalidParameter reports whether err is an InvalidParameterError.
func IsInvalidParameter(err error) bool {
	var target *InvalidParameterError
	return stderrors.As(err, &target)
}
