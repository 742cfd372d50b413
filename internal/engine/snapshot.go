package engine

import (
	"github.com/vutran1810/market-analysis-engine/internal/indicators"
	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// Fixed indicator geometry behind the snapshot contract. The analyzer
// rationale names these periods, so they are constants rather than
// configuration.
const (
	fastEMAPeriod    = 9
	midEMAPeriod     = 21
	slowEMAPeriod    = 50
	rsiPeriod        = 14
	macdFastPeriod   = 12
	macdSlowPeriod   = 26
	macdSignalPeriod = 9
	stochKPeriod     = 14
	stochDPeriod     = 3
	bbPeriod         = 20
	bbStdDev         = 2.0
	atrPeriod        = 14
	obvSMAPeriod     = 20
	avgVolumePeriod  = 20
	levelWindow      = 2
)

// snapshotBuilder derives one IndicatorSnapshot per analysis call
type snapshotBuilder struct {
	fastEMA    *indicators.EMA
	midEMA     *indicators.EMA
	slowEMA    *indicators.EMA
	rsi        *indicators.RSI
	macd       *indicators.MACD
	stochastic *indicators.Stochastic
	bollinger  *indicators.BollingerBands
	atr        *indicators.ATR
	obv        *indicators.OBV
	volume     *indicators.VolumeSpike
	levels     *indicators.LevelFinder
}

func newSnapshotBuilder() *snapshotBuilder {
	return &snapshotBuilder{
		fastEMA:    indicators.NewEMA(fastEMAPeriod),
		midEMA:     indicators.NewEMA(midEMAPeriod),
		slowEMA:    indicators.NewEMA(slowEMAPeriod),
		rsi:        indicators.NewRSI(rsiPeriod),
		macd:       indicators.NewMACD(macdFastPeriod, macdSlowPeriod, macdSignalPeriod),
		stochastic: indicators.NewStochastic(stochKPeriod, stochDPeriod),
		bollinger:  indicators.NewBollingerBands(bbPeriod, bbStdDev),
		atr:        indicators.NewATR(atrPeriod),
		obv:        indicators.NewOBV(),
		volume:     indicators.NewVolumeSpike(avgVolumePeriod, 1.5, 0.5),
		levels:     indicators.NewLevelFinder(levelWindow),
	}
}

// Build computes every snapshot field: current values over the full
// window, Prev* values over the window without its last candle.
func (b *snapshotBuilder) Build(data []types.OHLCV) (*types.IndicatorSnapshot, error) {
	snap := &types.IndicatorSnapshot{}
	prev := data[:len(data)-1]
	var err error

	if snap.EMA9, err = b.fastEMA.Calculate(data); err != nil {
		return nil, err
	}
	if snap.EMA21, err = b.midEMA.Calculate(data); err != nil {
		return nil, err
	}
	if snap.EMA50, err = b.slowEMA.Calculate(data); err != nil {
		return nil, err
	}
	if snap.PrevEMA9, err = b.fastEMA.Calculate(prev); err != nil {
		return nil, err
	}
	if snap.PrevEMA21, err = b.midEMA.Calculate(prev); err != nil {
		return nil, err
	}

	if snap.RSI, err = b.rsi.Calculate(data); err != nil {
		return nil, err
	}

	if snap.MACDLine, snap.MACDSignal, snap.MACDHist, err = b.macd.CalculateValues(data); err != nil {
		return nil, err
	}
	if _, _, snap.PrevMACDHist, err = b.macd.CalculateValues(prev); err != nil {
		return nil, err
	}

	if snap.StochK, snap.StochD, err = b.stochastic.CalculateValues(data); err != nil {
		return nil, err
	}
	if snap.PrevStochK, snap.PrevStochD, err = b.stochastic.CalculateValues(prev); err != nil {
		return nil, err
	}

	if snap.BBUpper, snap.BBMiddle, snap.BBLower, err = b.bollinger.CalculateBands(data); err != nil {
		return nil, err
	}
	if snap.BBWidth, err = b.bollinger.Width(data); err != nil {
		return nil, err
	}

	if snap.ATR, err = b.atr.Calculate(data); err != nil {
		return nil, err
	}

	if snap.OBV, err = b.obv.Calculate(data); err != nil {
		return nil, err
	}
	obvSeries, err := b.obv.CalculateSeries(data)
	if err != nil {
		return nil, err
	}
	snap.OBVSMA = tailMean(obvSeries, obvSMAPeriod)

	if snap.AvgVolume, err = b.volume.Average(data); err != nil {
		return nil, err
	}
	snap.LastVolume = data[len(data)-1].Volume
	snap.LastClose = data[len(data)-1].Close

	levels, err := b.levels.Find(data)
	if err != nil {
		return nil, err
	}
	snap.Support = levels.NearestSupport
	snap.Resistance = levels.NearestResistance

	return snap, nil
}

// tailMean averages the last n values of the series
func tailMean(values []float64, n int) float64 {
	if len(values) == 0 {
		return 0
	}
	if len(values) > n {
		values = values[len(values)-n:]
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
