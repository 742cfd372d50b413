package regime

import (
	"math"

	engerrors "github.com/vutran1810/market-analysis-engine/internal/errors"
	"github.com/vutran1810/market-analysis-engine/internal/indicators"
	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// atrFlatSpread is the relative ATR range under which the trailing
// series is treated as flat and carries no percentile ranking
const atrFlatSpread = 0.05

// Config holds the classifier lookbacks and thresholds
type Config struct {
	FastPeriod         int
	MidPeriod          int
	SlowPeriod         int
	ATRPeriod          int
	ATRLookback        int
	PersistenceBars    int
	TrendThreshold     float64
	AlignmentThreshold float64
	VolatileThreshold  float64
}

// DefaultConfig returns the classifier defaults
func DefaultConfig() Config {
	return Config{
		FastPeriod:         9,
		MidPeriod:          21,
		SlowPeriod:         50,
		ATRPeriod:          14,
		ATRLookback:        90,
		PersistenceBars:    10,
		TrendThreshold:     0.6,
		AlignmentThreshold: 0.6,
		VolatileThreshold:  0.80,
	}
}

// Classification is the regime read for one window
type Classification struct {
	Regime        types.MarketRegime `json:"regime"`
	Confidence    float64            `json:"confidence"`
	TrendStrength float64            `json:"trend_strength"`
	Persistence   float64            `json:"persistence"`
	ATRPercentile float64            `json:"atr_percentile"`
}

// Classifier assigns each window exactly one market regime from the
// window's own geometry: the least-squares trend slope, the persistence
// of EMA alignment over recent bars, and the current ATR's rank within
// its trailing series.
type Classifier struct {
	config Config
	fast   *indicators.EMA
	mid    *indicators.EMA
	slow   *indicators.EMA
	atr    *indicators.ATR
}

// NewClassifier creates a new regime classifier
func NewClassifier(config Config) *Classifier {
	return &Classifier{
		config: config,
		fast:   indicators.NewEMA(config.FastPeriod),
		mid:    indicators.NewEMA(config.MidPeriod),
		slow:   indicators.NewEMA(config.SlowPeriod),
		atr:    indicators.NewATR(config.ATRPeriod),
	}
}

// RequiredPeriods returns the minimum window the classifier can read
func (c *Classifier) RequiredPeriods() int {
	alignment := c.config.SlowPeriod - 1 + c.config.PersistenceBars
	if atr := c.atr.GetRequiredPeriods(); atr > alignment {
		return atr
	}
	return alignment
}

// Classify assigns the regime for the window. High volatility overrides
// directional alignment; bull and bear require both a strong slope and
// persistent EMA ordering; everything else reads as sideways.
func (c *Classifier) Classify(data []types.OHLCV) (*Classification, error) {
	if len(data) < c.RequiredPeriods() {
		return nil, engerrors.NewInsufficientData("regime", c.RequiredPeriods(), len(data))
	}

	trend := c.trendStrength(data)
	bullish, bearish, err := c.alignmentFractions(data)
	if err != nil {
		return nil, err
	}
	percentile, err := c.atrPercentile(data)
	if err != nil {
		return nil, err
	}

	persistence := bullish
	if trend < 0 {
		persistence = bearish
	}

	result := &Classification{
		TrendStrength: trend,
		Persistence:   persistence,
		ATRPercentile: percentile,
	}

	switch {
	case percentile > c.config.VolatileThreshold:
		result.Regime = types.RegimeVolatile
		result.Confidence = percentile
	case trend > c.config.TrendThreshold && bullish >= c.config.AlignmentThreshold:
		result.Regime = types.RegimeBull
		result.Confidence = clamp01(trend * bullish)
	case trend < -c.config.TrendThreshold && bearish >= c.config.AlignmentThreshold:
		result.Regime = types.RegimeBear
		result.Confidence = clamp01(-trend * bearish)
	default:
		result.Regime = types.RegimeSideways
		result.Confidence = 1 - math.Abs(trend)
	}
	return result, nil
}

// trendStrength squashes the fitted move of the whole window, relative
// to a tenth of the last price, into (-1, 1)
func (c *Classifier) trendStrength(data []types.OHLCV) float64 {
	lastClose := data[len(data)-1].Close
	if lastClose <= 0 {
		return 0
	}
	slope := leastSquaresSlope(data)
	return math.Tanh(slope * float64(len(data)) / (lastClose * 0.1))
}

// alignmentFractions counts fully ordered EMA bars among the last
// PersistenceBars candles, in each direction
func (c *Classifier) alignmentFractions(data []types.OHLCV) (bullish, bearish float64, err error) {
	fastSeries, err := c.fast.CalculateSeries(data)
	if err != nil {
		return 0, 0, err
	}
	midSeries, err := c.mid.CalculateSeries(data)
	if err != nil {
		return 0, 0, err
	}
	slowSeries, err := c.slow.CalculateSeries(data)
	if err != nil {
		return 0, 0, err
	}

	bars := c.config.PersistenceBars
	bullCount, bearCount := 0, 0
	for i := len(data) - bars; i < len(data); i++ {
		fast := fastSeries[i-(c.config.FastPeriod-1)]
		mid := midSeries[i-(c.config.MidPeriod-1)]
		slow := slowSeries[i-(c.config.SlowPeriod-1)]
		switch {
		case fast > mid && mid > slow:
			bullCount++
		case fast < mid && mid < slow:
			bearCount++
		}
	}
	return float64(bullCount) / float64(bars), float64(bearCount) / float64(bars), nil
}

// atrPercentile ranks the current ATR inside its trailing series as the
// fraction of values strictly below it. A near-flat series offers no
// meaningful ranking and reports zero.
func (c *Classifier) atrPercentile(data []types.OHLCV) (float64, error) {
	series, err := c.atr.CalculateSeries(data)
	if err != nil {
		return 0, err
	}
	trailing := series
	if len(trailing) > c.config.ATRLookback {
		trailing = trailing[len(trailing)-c.config.ATRLookback:]
	}

	low, high := trailing[0], trailing[0]
	for _, value := range trailing {
		low = math.Min(low, value)
		high = math.Max(high, value)
	}
	if high <= 0 || (high-low)/high < atrFlatSpread {
		return 0, nil
	}

	current := trailing[len(trailing)-1]
	below := 0
	for _, value := range trailing {
		if value < current {
			below++
		}
	}
	return float64(below) / float64(len(trailing)), nil
}

// leastSquaresSlope fits the closes against their bar index
func leastSquaresSlope(data []types.OHLCV) float64 {
	if len(data) < 2 {
		return 0
	}

	n := float64(len(data))
	meanX := (n - 1) / 2
	meanY := 0.0
	for _, candle := range data {
		meanY += candle.Close
	}
	meanY /= n

	num, den := 0.0, 0.0
	for i, candle := range data {
		dx := float64(i) - meanX
		num += dx * (candle.Close - meanY)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	return num / den
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
