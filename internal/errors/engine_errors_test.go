package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsufficientDataError_Message(t *testing.T) {
	err := NewInsufficientData("RSI", 15, 7)
	assert.Contains(t, err.Error(), "insufficient data for RSI calculation")
	assert.Contains(t, err.Error(), "need 15")
	assert.Contains(t, err.Error(), "got 7")
}

func TestIsInsufficientData_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("trend stage: %w", NewInsufficientData("EMA", 50, 20))
	assert.True(t, IsInsufficientData(err))
	assert.False(t, IsInvalidParameter(err))
}

func TestIsInvalidParameter_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("sizing: %w", NewInvalidParameter("stop_distance", -1, "must be positive"))
	assert.True(t, IsInvalidParameter(err))
	assert.False(t, IsInsufficientData(err))
}

func TestDegradedInputWarning_Notice(t *testing.T) {
	w := NewDegradedInput("orderbook", "liquidity risk defaulted to 0.5")
	assert.Contains(t, w.Notice(), "orderbook")
	assert.Contains(t, w.Error(), "liquidity risk defaulted")
}
