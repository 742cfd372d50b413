package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

func TestMetrics_FlatWindowHasNoRealizedRisk(t *testing.T) {
	scorer := NewScorer(defaultWeights(), 0.20)

	metrics, warning := scorer.Metrics(flatCandles(100, 100), nil, 0, types.RegimeSideways)

	require.NotNil(t, metrics)
	assert.Equal(t, 0.0, metrics.Volatility)
	assert.Equal(t, 0.0, metrics.SharpeRatio)
	assert.Equal(t, 0.0, metrics.MaxDrawdown)
	// Only the defaulted liquidity component contributes
	assert.InDelta(t, 0.3*0.5, metrics.OverallRiskScore, 1e-9)
	assert.NotNil(t, warning)
}

func TestMetrics_RisingWindowEarnsPositiveSharpe(t *testing.T) {
	scorer := NewScorer(defaultWeights(), 0.20)

	metrics, _ := scorer.Metrics(risingCandles(100, 100, 1), nil, 0, types.RegimeBull)

	require.NotNil(t, metrics)
	assert.Greater(t, metrics.SharpeRatio, 0.0)
	assert.Greater(t, metrics.Volatility, 0.0)
	assert.Equal(t, 0.0, metrics.MaxDrawdown)
}

func TestMetrics_DecliningWindowMeasuresDrawdown(t *testing.T) {
	scorer := NewScorer(defaultWeights(), 0.20)

	metrics, _ := scorer.Metrics(fallingCandles(60, 200, 1), nil, 0, types.RegimeBear)

	require.NotNil(t, metrics)
	// 200 down to 141 is a 29.5% peak-to-trough decline
	assert.InDelta(t, 0.295, metrics.MaxDrawdown, 1e-9)
	assert.Less(t, metrics.SharpeRatio, 0.0)
}

func TestMetrics_CarriesRegimeAndTimestamp(t *testing.T) {
	scorer := NewScorer(defaultWeights(), 0.20)
	data := risingCandles(50, 100, 0.5)

	metrics, _ := scorer.Metrics(data, bookWithSpread(124, 124.1), 0.3, types.RegimeVolatile)

	require.NotNil(t, metrics)
	assert.Equal(t, types.RegimeVolatile, metrics.MarketRegime)
	assert.True(t, metrics.Timestamp.Equal(data[len(data)-1].Timestamp))
}

func TestMetrics_PropagatesBookDegradation(t *testing.T) {
	scorer := NewScorer(defaultWeights(), 0.20)

	withBook, warning := scorer.Metrics(flatCandles(100, 100), bookWithSpread(99.9, 100.1), 0.2, types.RegimeSideways)
	assert.Nil(t, warning)

	withoutBook, warning := scorer.Metrics(flatCandles(100, 100), nil, 0.2, types.RegimeSideways)
	require.NotNil(t, warning)
	assert.Equal(t, "order_book", warning.Input)
	assert.NotEqual(t, withBook.OverallRiskScore, withoutBook.OverallRiskScore)
}
