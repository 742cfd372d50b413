// Package audit stores emitted signals so hosts can review what the engine
// said about a window after the fact.
package audit

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	engerrors "github.com/vutran1810/market-analysis-engine/internal/errors"
	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// Record is one stored signal with its assigned audit id.
type Record struct {
	ID         string             `json:"id"`
	Signal     types.MarketSignal `json:"signal"`
	RecordedAt time.Time          `json:"recorded_at"`
}

// Recorder stores signals keyed by symbol and window timestamp.
type Recorder interface {
	// Record stores a signal. Recording the same (symbol, timestamp) again
	// replaces the stored payload under a fresh id.
	Record(signal *types.MarketSignal) (Record, error)

	// Find returns the record for a symbol at a window timestamp.
	Find(symbol string, at time.Time) (Record, bool)

	// BySymbol returns all records for a symbol in insertion order.
	BySymbol(symbol string) []Record

	// All returns every record in insertion order.
	All() []Record

	// Len returns the number of stored records.
	Len() int
}

// MemoryRecorder is the in-memory Recorder implementation.
type MemoryRecorder struct {
	mu      sync.RWMutex
	records map[string]Record
	order   []string
}

// NewMemoryRecorder creates an empty in-memory recorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{
		records: make(map[string]Record),
	}
}

func (r *MemoryRecorder) Record(signal *types.MarketSignal) (Record, error) {
	if signal == nil {
		return Record{}, engerrors.NewInvalidParameter("signal", math.NaN(), "must not be nil")
	}
	if signal.Symbol == "" {
		return Record{}, engerrors.NewInvalidParameter("symbol", math.NaN(), "must not be empty")
	}
	if signal.Timestamp.IsZero() {
		return Record{}, engerrors.NewInvalidParameter("timestamp", math.NaN(), "must not be zero")
	}

	record := Record{
		ID:         uuid.New().String(),
		Signal:     *signal,
		RecordedAt: time.Now().UTC(),
	}
	// Detach the reasoning slice so later caller mutations cannot reach
	// the stored record.
	record.Signal.Reasoning = append([]string(nil), signal.Reasoning...)

	key := recordKey(signal.Symbol, signal.Timestamp)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[key]; !exists {
		r.order = append(r.order, key)
	}
	r.records[key] = record

	return record, nil
}

func (r *MemoryRecorder) Find(symbol string, at time.Time) (Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[recordKey(symbol, at)]
	return record, ok
}

func (r *MemoryRecorder) BySymbol(symbol string) []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Record
	for _, key := range r.order {
		record := r.records[key]
		if record.Signal.Symbol == symbol {
			out = append(out, record)
		}
	}
	return out
}

func (r *MemoryRecorder) All() []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Record, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.records[key])
	}
	return out
}

func (r *MemoryRecorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.records)
}

func recordKey(symbol string, at time.Time) string {
	return fmt.Sprintf("%s@%d", symbol, at.UnixNano())
}
