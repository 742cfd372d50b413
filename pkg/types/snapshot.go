package types

// IndicatorSnapshot carries every indicator value derived from one window.
// Computed once per analysis call, handed to all analyzers, never persisted.
// Prev* fields hold the same value one candle earlier for crossover checks.
type IndicatorSnapshot struct {
	EMA9      float64 `json:"ema_9"`
	EMA21     float64 `json:"ema_21"`
	EMA50     float64 `json:"ema_50"`
	PrevEMA9  float64 `json:"prev_ema_9"`
	PrevEMA21 float64 `json:"prev_ema_21"`

	RSI float64 `json:"rsi_14"`

	MACDLine     float64 `json:"macd_line"`
	MACDSignal   float64 `json:"macd_signal"`
	MACDHist     float64 `json:"macd_hist"`
	PrevMACDHist float64 `json:"prev_macd_hist"`

	StochK     float64 `json:"stoch_k"`
	StochD     float64 `json:"stoch_d"`
	PrevStochK float64 `json:"prev_stoch_k"`
	PrevStochD float64 `json:"prev_stoch_d"`

	BBUpper  float64 `json:"bb_upper"`
	BBMiddle float64 `json:"bb_mid"`
	BBLower  float64 `json:"bb_lower"`
	BBWidth  float64 `json:"bb_width"`

	ATR float64 `json:"atr_14"`

	OBV    float64 `json:"obv"`
	OBVSMA float64 `json:"obv_sma"`

	AvgVolume  float64 `json:"avg_volume"`
	LastVolume float64 `json:"last_volume"`
	LastClose  float64 `json:"last_close"`

	Support    float64 `json:"support"`
	Resistance float64 `json:"resistance"`
}
