package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// DefaultJSONReporter implements JSON output functionality
type DefaultJSONReporter struct{}

// NewDefaultJSONReporter creates a new JSON reporter
func NewDefaultJSONReporter() *DefaultJSONReporter {
	return &DefaultJSONReporter{}
}

// WriteEvaluationJSON writes one evaluation to a JSON file
func (f *DefaultJSONReporter) WriteEvaluationJSON(eval *types.Evaluation, path string) error {
	if eval == nil {
		return fmt.Errorf("no evaluation to write")
	}
	return writeJSONFile(eval, path)
}

// WriteBatchJSON writes a scan result set to a JSON file
func (f *DefaultJSONReporter) WriteBatchJSON(evals []*types.Evaluation, path string) error {
	out := make([]*types.Evaluation, 0, len(evals))
	for _, eval := range evals {
		if eval != nil {
			out = append(out, eval)
		}
	}
	return writeJSONFile(out, path)
}

// FormatEvaluation formats one evaluation as indented JSON bytes
func (f *DefaultJSONReporter) FormatEvaluation(eval *types.Evaluation) ([]byte, error) {
	if eval == nil {
		return nil, fmt.Errorf("no evaluation to format")
	}
	return json.MarshalIndent(eval, "", "  ")
}

func writeJSONFile(payload interface{}, path string) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}

	// Ensure directory exists
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0644)
}

// ExtractIntervalFromPath extracts the candle interval from a data file path.
// Example: "data/bybit/linear/BTCUSDT/5m/candles.csv" -> "5m"
func ExtractIntervalFromPath(dataPath string) string {
	if dataPath == "" {
		return ""
	}

	// Normalize path separators
	dataPath = filepath.ToSlash(dataPath)
	parts := strings.Split(dataPath, "/")

	// Look for interval pattern (number followed by m,h,d)
	for i := len(parts) - 1; i >= 0; i-- {
		part := parts[i]
		if len(part) >= 2 {
			lastChar := part[len(part)-1]
			if lastChar == 'm' || lastChar == 'h' || lastChar == 'd' {
				numPart := part[:len(part)-1]
				if _, err := strconv.Atoi(numPart); err == nil {
					return part
				}
			}
		}
	}

	return ""
}

// Package-level convenience functions

func WriteEvaluationJSON(eval *types.Evaluation, path string) error {
	return NewDefaultJSONReporter().WriteEvaluationJSON(eval, path)
}

func WriteBatchJSON(evals []*types.Evaluation, path string) error {
	return NewDefaultJSONReporter().WriteBatchJSON(evals, path)
}
