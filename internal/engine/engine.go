package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/vutran1810/market-analysis-engine/internal/analysis"
	engerrors "github.com/vutran1810/market-analysis-engine/internal/errors"
	"github.com/vutran1810/market-analysis-engine/internal/regime"
	"github.com/vutran1810/market-analysis-engine/internal/risk"
	"github.com/vutran1810/market-analysis-engine/internal/signal"
	"github.com/vutran1810/market-analysis-engine/pkg/config"
	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// trendSlopePeriod is the lookback for the trend analyzer's slope read
const trendSlopePeriod = 14

// SizingRequest carries the inputs of one position-sizing call
type SizingRequest = risk.Request

// Engine orchestrates the analyzers, the signal synthesizer, the risk
// scorer, and the regime classifier over one candle window at a time.
// It holds no state between calls: identical inputs produce identical
// records, and concurrent calls are safe.
type Engine struct {
	config *config.Config
	logger zerolog.Logger

	snapshots   *snapshotBuilder
	trend       *analysis.TrendAnalyzer
	momentum    *analysis.MomentumAnalyzer
	volatility  *analysis.VolatilityAnalyzer
	volume      *analysis.VolumeAnalyzer
	patterns    *analysis.PatternDetector
	orderFlow   *analysis.OrderFlowAnalyzer
	profiler    *analysis.VolumeProfiler
	expectation *analysis.ExpectationModel

	synthesizer *signal.Synthesizer
	scorer      *risk.Scorer
	sizer       *risk.Sizer
	classifier  *regime.Classifier
}

// Option configures an Engine at construction
type Option func(*Engine)

// WithLogger attaches a structured logger; the default discards everything
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New creates an engine from the configuration. A nil cfg selects the
// built-in defaults; any other cfg must pass validation.
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	regimeConfig := regime.DefaultConfig()
	regimeConfig.ATRLookback = cfg.Volatility.Lookback
	regimeConfig.TrendThreshold = cfg.Regime.TrendThreshold
	regimeConfig.AlignmentThreshold = cfg.Regime.AlignmentThreshold
	regimeConfig.VolatileThreshold = cfg.Regime.VolatileThreshold

	e := &Engine{
		config:      cfg,
		logger:      zerolog.Nop(),
		snapshots:   newSnapshotBuilder(),
		trend:       analysis.NewTrendAnalyzer(fastEMAPeriod, trendSlopePeriod),
		momentum:    analysis.NewMomentumAnalyzer(rsiPeriod, cfg.Momentum.Overbought, cfg.Momentum.Oversold),
		volatility:  analysis.NewVolatilityAnalyzer(atrPeriod, cfg.Volatility.Lookback, cfg.Volatility.SqueezeThreshold),
		volume:      analysis.NewVolumeAnalyzer(cfg.Volume.SpikePeriod, cfg.Volume.SpikeRatio, cfg.Volume.DroughtRatio, cfg.Volume.MultiplierStep),
		patterns:    analysis.NewPatternDetector(),
		orderFlow:   analysis.NewOrderFlowAnalyzer(),
		profiler:    analysis.NewVolumeProfiler(),
		expectation: analysis.NewExpectationModel(),
		synthesizer: signal.NewSynthesizer(signal.Weights{
			Trend:    cfg.Weights.Trend,
			Momentum: cfg.Weights.Momentum,
		}),
		scorer: risk.NewScorer(risk.Weights{
			Volatility: cfg.Risk.VolatilityWeight,
			Liquidity:  cfg.Risk.LiquidityWeight,
			Drawdown:   cfg.Risk.DrawdownWeight,
		}, cfg.Risk.DrawdownCap),
		sizer:      risk.NewSizer(cfg.Risk.RiskPerTrade, cfg.Risk.MaxExposure),
		classifier: regime.NewClassifier(regimeConfig),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Analyze produces the trading signal for the window
func (e *Engine) Analyze(md types.MarketData) (*types.MarketSignal, error) {
	start := time.Now()
	r, err := e.runChecked(md)
	if err != nil {
		return nil, err
	}

	sig := e.signalFromRun(md, r)
	e.logger.Debug().
		Str("symbol", md.Symbol).
		Stringer("action", sig.Action).
		Float64("confidence", sig.Confidence).
		Float64("risk", sig.RiskScore).
		Dur("elapsed", time.Since(start)).
		Msg("analysis complete")
	return sig, nil
}

// AssessRisk produces the standalone risk view for the window
func (e *Engine) AssessRisk(md types.MarketData) (*types.RiskMetrics, error) {
	r, err := e.runChecked(md)
	if err != nil {
		return nil, err
	}
	return r.metrics, nil
}

// AdaptParameters classifies the regime and returns its tuned bundle
func (e *Engine) AdaptParameters(md types.MarketData) (*types.AdaptiveParameters, error) {
	r, err := e.runChecked(md)
	if err != nil {
		return nil, err
	}
	return r.params, nil
}

// Evaluate produces the full record for the window: signal, risk,
// adaptive parameters, the indicator snapshot, and the advisory
// observations, in one pass.
func (e *Engine) Evaluate(md types.MarketData) (*types.Evaluation, error) {
	start := time.Now()
	r, err := e.runChecked(md)
	if err != nil {
		return nil, err
	}

	eval := &types.Evaluation{
		Symbol:      md.Symbol,
		Signal:      e.signalFromRun(md, r),
		Risk:        r.metrics,
		Parameters:  r.params,
		Snapshot:    r.snapshot,
		Patterns:    e.patterns.Detect(md.Candles),
		OrderFlow:   e.orderFlow.Analyze(md.OrderBook, md.Candles),
		Profile:     e.profiler.Profile(md.Candles),
		Expectation: e.expectation.Predict(md.Candles),
		Timestamp:   md.Timestamp(),
	}
	if r.warning != nil {
		eval.Warnings = []string{r.warning.Notice()}
	}
	e.logger.Debug().
		Str("symbol", md.Symbol).
		Int("patterns", len(eval.Patterns)).
		Dur("elapsed", time.Since(start)).
		Msg("evaluation complete")
	return eval, nil
}

// PositionSize computes the bounded position for the request
func (e *Engine) PositionSize(req SizingRequest) (float64, error) {
	size, err := e.sizer.Size(req)
	if err != nil {
		e.logger.Error().Err(err).Msg("rejected sizing request")
		return 0, err
	}
	return size, nil
}

// runResult is everything one pipeline pass derives from a window
type runResult struct {
	snapshot *types.IndicatorSnapshot
	decision *signal.Decision
	params   *types.AdaptiveParameters
	metrics  *types.RiskMetrics
	warning  *engerrors.DegradedInputWarning
}

func (e *Engine) runChecked(md types.MarketData) (*runResult, error) {
	if err := e.validate(md); err != nil {
		e.logger.Error().Err(err).Str("symbol", md.Symbol).Msg("rejected market data")
		return nil, err
	}
	return e.run(md)
}

func (e *Engine) run(md types.MarketData) (*runResult, error) {
	snap, err := e.snapshots.Build(md.Candles)
	if err != nil {
		return nil, err
	}

	trendRes, err := e.trend.Analyze(md.Candles, snap)
	if err != nil {
		return nil, err
	}
	momentumRes, err := e.momentum.Analyze(md.Candles, snap)
	if err != nil {
		return nil, err
	}
	volatilityRes, err := e.volatility.Analyze(md.Candles, snap)
	if err != nil {
		return nil, err
	}
	volumeRes, err := e.volume.Analyze(md.Candles, snap)
	if err != nil {
		return nil, err
	}

	classification, err := e.classifier.Classify(md.Candles)
	if err != nil {
		return nil, err
	}
	params := classification.Parameters()

	decision := e.synthesizer.Synthesize(signal.Inputs{
		Trend:      trendRes,
		Momentum:   momentumRes,
		Volatility: volatilityRes,
		Volume:     volumeRes,
	}, params.ConfidenceThreshold)

	metrics, warning := e.scorer.Metrics(md.Candles, md.OrderBook, volatilityRes.Score, classification.Regime)
	if warning != nil {
		e.logger.Warn().
			Str("symbol", md.Symbol).
			Str("input", warning.Input).
			Str("fallback", warning.Fallback).
			Msg("degraded input")
		params.AdaptiveReasoning = append(params.AdaptiveReasoning, warning.Notice())
	}

	return &runResult{
		snapshot: snap,
		decision: decision,
		params:   params,
		metrics:  metrics,
		warning:  warning,
	}, nil
}

func (e *Engine) signalFromRun(md types.MarketData, r *runResult) *types.MarketSignal {
	reasoning := r.decision.Reasoning
	if r.warning != nil {
		reasoning = append(reasoning, r.warning.Notice())
	}
	return &types.MarketSignal{
		Symbol:     md.Symbol,
		Action:     r.decision.Action,
		Confidence: r.decision.Confidence,
		Strength:   r.decision.Strength,
		RiskScore:  r.metrics.OverallRiskScore,
		Reasoning:  reasoning,
		Timestamp:  md.Timestamp(),
	}
}

// validate enforces the window contract before any computation
func (e *Engine) validate(md types.MarketData) error {
	if md.Symbol == "" {
		return engerrors.NewInvalidParameter("symbol", math.NaN(), "must not be empty")
	}
	if len(md.Candles) < e.config.MinCandles {
		return engerrors.NewInsufficientData("analysis", e.config.MinCandles, len(md.Candles))
	}

	for i, candle := range md.Candles {
		if i > 0 && !candle.Timestamp.After(md.Candles[i-1].Timestamp) {
			return engerrors.NewInvalidParameter("candles", math.NaN(),
				fmt.Sprintf("timestamps must be strictly increasing, violated at index %d", i))
		}
		for _, field := range []struct {
			name  string
			value float64
		}{
			{"open", candle.Open},
			{"high", candle.High},
			{"low", candle.Low},
			{"close", candle.Close},
			{"volume", candle.Volume},
		} {
			if math.IsNaN(field.value) || math.IsInf(field.value, 0) {
				return engerrors.NewInvalidParameter("candles", field.value,
					fmt.Sprintf("non-finite %s at index %d", field.name, i))
			}
		}
	}
	return nil
}
