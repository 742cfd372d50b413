package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

func defaultWeights() Weights {
	return Weights{Volatility: 0.5, Liquidity: 0.3, Drawdown: 0.2}
}

func TestScorer_MissingBookDefaultsLiquidityRisk(t *testing.T) {
	// Liquidity-only weights expose the fallback constant directly
	scorer := NewScorer(Weights{Liquidity: 1}, 0.20)

	score, warning := scorer.Score(flatCandles(100, 100), nil, 0)

	assert.Equal(t, 0.5, score)
	require.NotNil(t, warning)
	assert.Equal(t, "order_book", warning.Input)
}

func TestScorer_EmptyBookDefaultsLiquidityRisk(t *testing.T) {
	scorer := NewScorer(Weights{Liquidity: 1}, 0.20)

	score, warning := scorer.Score(flatCandles(100, 100), &types.OrderBook{}, 0)

	assert.Equal(t, 0.5, score)
	assert.NotNil(t, warning)
}

func TestScorer_TightSpreadScoresLowLiquidityRisk(t *testing.T) {
	scorer := NewScorer(Weights{Liquidity: 1}, 0.20)

	score, warning := scorer.Score(flatCandles(100, 100), bookWithSpread(99.95, 100.05), 0)

	assert.Nil(t, warning)
	assert.InDelta(t, 0.1, score, 1e-9)
}

func TestScorer_WideSpreadClampsLiquidityRisk(t *testing.T) {
	scorer := NewScorer(Weights{Liquidity: 1}, 0.20)

	score, warning := scorer.Score(flatCandles(100, 100), bookWithSpread(90, 110), 0)

	assert.Nil(t, warning)
	assert.Equal(t, 1.0, score)
}

func TestScorer_DrawdownNormalizedByCap(t *testing.T) {
	scorer := NewScorer(Weights{Drawdown: 1}, 0.20)

	// A 30% slide saturates the 20% cap
	deep, _ := scorer.Score(fallingCandles(100, 200, 0.6), nil, 0)
	assert.Equal(t, 1.0, deep)

	// A 5% slide covers a quarter of it
	shallow, _ := scorer.Score(fallingCandles(101, 200, 0.1), nil, 0)
	assert.InDelta(t, 0.25, shallow, 1e-9)
}

func TestScorer_FlatWindowHasNoDrawdownRisk(t *testing.T) {
	scorer := NewScorer(Weights{Drawdown: 1}, 0.20)

	score, _ := scorer.Score(flatCandles(100, 100), nil, 0)
	assert.Equal(t, 0.0, score)
}

func TestScorer_CompositeBlendsWeights(t *testing.T) {
	scorer := NewScorer(defaultWeights(), 0.20)

	// volatility 0.4 weighted 0.5, defaulted liquidity 0.5 weighted 0.3,
	// no drawdown on a flat window
	score, warning := scorer.Score(flatCandles(100, 100), nil, 0.4)

	require.NotNil(t, warning)
	assert.InDelta(t, 0.5*0.4+0.3*0.5, score, 1e-9)
}

func TestScorer_CompositeClampedToOne(t *testing.T) {
	scorer := NewScorer(defaultWeights(), 0.20)

	// Out-of-range volatility input cannot push the composite past 1
	score, _ := scorer.Score(fallingCandles(100, 200, 0.6), nil, 5)
	assert.Equal(t, 1.0, score)
}
