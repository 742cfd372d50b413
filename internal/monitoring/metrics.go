package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Evaluation metrics
	evaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_engine_evaluations_total",
			Help: "Total number of market evaluations by emitted action",
		},
		[]string{"symbol", "action"},
	)

	evaluationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analysis_engine_evaluation_duration_seconds",
			Help:    "Distribution of evaluation latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"symbol"},
	)

	// Signal metrics
	signalConfidence = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "analysis_engine_signal_confidence",
			Help: "Confidence of the latest signal per symbol",
		},
		[]string{"symbol"},
	)

	riskScore = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "analysis_engine_risk_score",
			Help: "Composite risk score of the latest evaluation per symbol",
		},
		[]string{"symbol"},
	)

	regimeObservations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_engine_regime_observations_total",
			Help: "Total number of regime reads per symbol and regime",
		},
		[]string{"symbol", "regime"},
	)

	// Error metrics
	rejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_engine_rejections_total",
			Help: "Total number of rejected market data windows",
		},
		[]string{"reason"},
	)
)

func init() {
	// Register metrics
	prometheus.MustRegister(evaluationsTotal)
	prometheus.MustRegister(evaluationDuration)
	prometheus.MustRegister(signalConfidence)
	prometheus.MustRegister(riskScore)
	prometheus.MustRegister(regimeObservations)
	prometheus.MustRegister(rejectionsTotal)
}

// MetricsHandler handles the Prometheus metrics endpoint
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordEvaluation records one completed evaluation
func RecordEvaluation(symbol, action string, confidence, risk float64, elapsed time.Duration) {
	evaluationsTotal.WithLabelValues(symbol, action).Inc()
	evaluationDuration.WithLabelValues(symbol).Observe(elapsed.Seconds())
	signalConfidence.WithLabelValues(symbol).Set(confidence)
	riskScore.WithLabelValues(symbol).Set(risk)
}

// RecordRegime records the detected regime for a symbol
func RecordRegime(symbol, regime string) {
	regimeObservations.WithLabelValues(symbol, regime).Inc()
}

// RecordRejection records a rejected input window
func RecordRejection(reason string) {
	rejectionsTotal.WithLabelValues(reason).Inc()
}
