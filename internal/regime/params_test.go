package regime

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

func hasLineWithPrefix(lines []string, prefix string) bool {
	for _, line := range lines {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func TestParameters_BullBundle(t *testing.T) {
	classification := &Classification{Regime: types.RegimeBull, Confidence: 0.72}

	params := classification.Parameters()

	assert.Equal(t, types.RegimeBull, params.MarketRegime)
	assert.Equal(t, 0.65, params.ConfidenceThreshold)
	assert.Equal(t, 1.2, params.PositionMultiplier)
	assert.Equal(t, 0.02, params.RiskPerTrade)
	assert.Equal(t, 0.02, params.StopLossPct)
	assert.Equal(t, 0.06, params.TakeProfitPct)
	assert.True(t, params.TrailingStopEnabled)
}

func TestParameters_BearBundle(t *testing.T) {
	classification := &Classification{Regime: types.RegimeBear, Confidence: 0.80}

	params := classification.Parameters()

	assert.Equal(t, 0.70, params.ConfidenceThreshold)
	assert.Equal(t, 0.8, params.PositionMultiplier)
	assert.Equal(t, 0.025, params.StopLossPct)
	assert.Equal(t, 0.04, params.TakeProfitPct)
	assert.True(t, params.TrailingStopEnabled)
}

func TestParameters_SidewaysBundle(t *testing.T) {
	classification := &Classification{Regime: types.RegimeSideways, Confidence: 0.95}

	params := classification.Parameters()

	assert.Equal(t, 0.70, params.ConfidenceThreshold)
	assert.Equal(t, 0.6, params.PositionMultiplier)
	assert.Equal(t, 0.015, params.StopLossPct)
	assert.Equal(t, 0.05, params.TakeProfitPct)
	assert.False(t, params.TrailingStopEnabled)
}

func TestParameters_VolatileBundle(t *testing.T) {
	classification := &Classification{Regime: types.RegimeVolatile, Confidence: 0.88}

	params := classification.Parameters()

	assert.Equal(t, 0.75, params.ConfidenceThreshold)
	assert.Equal(t, 0.7, params.PositionMultiplier)
	assert.Equal(t, 0.03, params.StopLossPct)
	assert.Equal(t, 0.08, params.TakeProfitPct)
	assert.True(t, params.TrailingStopEnabled)
}

func TestParameters_ReasoningLeadsWithRegime(t *testing.T) {
	classification := &Classification{Regime: types.RegimeBull, Confidence: 0.72}

	params := classification.Parameters()

	require.NotEmpty(t, params.AdaptiveReasoning)
	assert.Equal(t, "Market regime: bull (confidence 0.72)", params.AdaptiveReasoning[0])
}

func TestParameters_ReasoningRecordsOnlyDeviations(t *testing.T) {
	bull := (&Classification{Regime: types.RegimeBull, Confidence: 0.72}).Parameters()

	assert.Contains(t, bull.AdaptiveReasoning, "Position multiplier 1.2x (default 1.0x)")
	assert.Contains(t, bull.AdaptiveReasoning, "Take profit 6.0% (default 5.0%)")
	assert.Contains(t, bull.AdaptiveReasoning, "Trailing stop enabled")
	// Bull keeps the default threshold, stop loss, and risk budget
	assert.False(t, hasLineWithPrefix(bull.AdaptiveReasoning, "Confidence threshold"))
	assert.False(t, hasLineWithPrefix(bull.AdaptiveReasoning, "Stop loss"))
	assert.False(t, hasLineWithPrefix(bull.AdaptiveReasoning, "Risk per trade"))

	sideways := (&Classification{Regime: types.RegimeSideways, Confidence: 0.95}).Parameters()

	assert.Contains(t, sideways.AdaptiveReasoning, "Confidence threshold 0.70 (default 0.65)")
	assert.Contains(t, sideways.AdaptiveReasoning, "Position multiplier 0.6x (default 1.0x)")
	assert.Contains(t, sideways.AdaptiveReasoning, "Stop loss 1.5% (default 2.0%)")
	assert.False(t, hasLineWithPrefix(sideways.AdaptiveReasoning, "Take profit"))
	assert.NotContains(t, sideways.AdaptiveReasoning, "Trailing stop enabled")
}
