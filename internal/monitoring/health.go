package monitoring

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

var startTime = time.Now()

type HealthChecker struct {
	mu             sync.RWMutex
	lastEvaluation time.Time
	lastSymbol     string
	evaluations    int64
	ready          bool
	errors         []string
}

type HealthStatus struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	LastEvaluation time.Time `json:"last_evaluation"`
	LastSymbol     string    `json:"last_symbol,omitempty"`
	Evaluations    int64     `json:"evaluations"`
	Ready          bool      `json:"ready"`
	Uptime         string    `json:"uptime"`
	Errors         []string  `json:"errors,omitempty"`
}

func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		errors: make([]string, 0),
	}
}

// MarkReady flags the service as able to serve evaluations.
func (h *HealthChecker) MarkReady() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ready = true
}

// MarkEvaluation records a completed evaluation for liveness reporting.
func (h *HealthChecker) MarkEvaluation(symbol string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastEvaluation = time.Now()
	h.lastSymbol = symbol
	h.evaluations++
}

// MarkError records a failure surfaced to health reporting.
func (h *HealthChecker) MarkError(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors = append(h.errors, msg)
	if len(h.errors) > 20 {
		h.errors = h.errors[len(h.errors)-20:]
	}
}

func (h *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := "healthy"
	if !h.ready {
		status = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	if len(h.errors) > 0 {
		status = "unhealthy"
		w.WriteHeader(http.StatusInternalServerError)
	}

	health := HealthStatus{
		Status:         status,
		Timestamp:      time.Now(),
		LastEvaluation: h.lastEvaluation,
		LastSymbol:     h.lastSymbol,
		Evaluations:    h.evaluations,
		Ready:          h.ready,
		Uptime:         time.Since(startTime).String(),
		Errors:         h.errors,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}
