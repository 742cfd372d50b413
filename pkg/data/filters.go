package data

import (
	"fmt"
	"sort"
	"time"

	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// DefaultDataFilter implements DataFilter for common filtering operations
type DefaultDataFilter struct{}

// NewDefaultDataFilter creates a new default data filter
func NewDefaultDataFilter() *DefaultDataFilter {
	return &DefaultDataFilter{}
}

// FilterByPeriod keeps candles within the trailing period measured from the
// latest candle's timestamp.
func (f *DefaultDataFilter) FilterByPeriod(data []types.OHLCV, period time.Duration) []types.OHLCV {
	if period <= 0 || len(data) == 0 {
		return data
	}

	cutoff := data[len(data)-1].Timestamp.Add(-period)

	startIdx := 0
	for i, candle := range data {
		if !candle.Timestamp.Before(cutoff) {
			startIdx = i
			break
		}
	}

	return data[startIdx:]
}

// FilterByDateRange keeps candles between start and end, bounds inclusive.
func (f *DefaultDataFilter) FilterByDateRange(data []types.OHLCV, start, end time.Time) []types.OHLCV {
	if len(data) == 0 {
		return data
	}

	var filtered []types.OHLCV
	for _, candle := range data {
		if !candle.Timestamp.Before(start) && !candle.Timestamp.After(end) {
			filtered = append(filtered, candle)
		}
	}

	return filtered
}

// ValidateTimeSequence ensures data is strictly chronological
func (f *DefaultDataFilter) ValidateTimeSequence(data []types.OHLCV) error {
	for i := 1; i < len(data); i++ {
		if data[i].Timestamp.Before(data[i-1].Timestamp) {
			return fmt.Errorf("data not in chronological order at index %d: %s comes after %s",
				i, data[i].Timestamp.Format(time.RFC3339), data[i-1].Timestamp.Format(time.RFC3339))
		}

		if data[i].Timestamp.Equal(data[i-1].Timestamp) {
			return fmt.Errorf("duplicate timestamp at index %d: %s",
				i, data[i].Timestamp.Format(time.RFC3339))
		}
	}

	return nil
}

// SortByTimestamp returns a copy of data sorted chronologically
func (f *DefaultDataFilter) SortByTimestamp(data []types.OHLCV) []types.OHLCV {
	if len(data) <= 1 {
		return data
	}

	sorted := make([]types.OHLCV, len(data))
	copy(sorted, data)

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	return sorted
}

// RemoveDuplicates removes duplicate timestamps, keeping the first occurrence
func (f *DefaultDataFilter) RemoveDuplicates(data []types.OHLCV) []types.OHLCV {
	if len(data) <= 1 {
		return data
	}

	var filtered []types.OHLCV
	seen := make(map[int64]bool)

	for _, candle := range data {
		key := candle.Timestamp.UnixNano()
		if !seen[key] {
			seen[key] = true
			filtered = append(filtered, candle)
		}
	}

	return filtered
}

// FilterOutliers drops candles whose open gaps more than maxPercentChange
// away from the previous close.
func (f *DefaultDataFilter) FilterOutliers(data []types.OHLCV, maxPercentChange float64) []types.OHLCV {
	if len(data) <= 1 || maxPercentChange <= 0 {
		return data
	}

	filtered := make([]types.OHLCV, 0, len(data))
	filtered = append(filtered, data[0])

	for i := 1; i < len(data); i++ {
		prevClose := data[i-1].Close
		percentChange := (data[i].Open - prevClose) / prevClose * 100

		if percentChange <= maxPercentChange && percentChange >= -maxPercentChange {
			filtered = append(filtered, data[i])
		}
	}

	return filtered
}
