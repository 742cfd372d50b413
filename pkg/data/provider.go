package data

import (
	"strconv"
	"strings"
	"time"

	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// DataManager combines loading, filtering, and locating in one interface
type DataManager struct {
	provider DataProvider
	filter   *DefaultDataFilter
	locator  FileLocator
}

// NewDataManager creates a data manager with cached CSV loading
func NewDataManager() *DataManager {
	return &DataManager{
		provider: NewCachedProvider(NewCSVProvider()),
		filter:   NewDefaultDataFilter(),
		locator:  NewDefaultFileLocator(),
	}
}

// NewDataManagerWithProvider creates a data manager with a custom provider
func NewDataManagerWithProvider(provider DataProvider) *DataManager {
	return &DataManager{
		provider: provider,
		filter:   NewDefaultDataFilter(),
		locator:  NewDefaultFileLocator(),
	}
}

// LoadHistoricalData loads candle history from a file
func (dm *DataManager) LoadHistoricalData(filename string) ([]types.OHLCV, error) {
	return dm.provider.LoadData(filename)
}

// FilterDataByPeriod filters data to the trailing period
func (dm *DataManager) FilterDataByPeriod(data []types.OHLCV, period time.Duration) []types.OHLCV {
	return dm.filter.FilterByPeriod(data, period)
}

// Sanitize sorts candles chronologically and drops duplicate timestamps
func (dm *DataManager) Sanitize(data []types.OHLCV) []types.OHLCV {
	return dm.filter.RemoveDuplicates(dm.filter.SortByTimestamp(data))
}

// FindDataFile locates the candle file for a symbol and interval
func (dm *DataManager) FindDataFile(dataRoot, symbol, interval string) string {
	return dm.locator.FindDataFile(dataRoot, symbol, interval)
}

// ValidateData validates loaded data
func (dm *DataManager) ValidateData(data []types.OHLCV) error {
	return dm.provider.ValidateData(data)
}

// ParseTrailingPeriod parses period strings like "7d", "30d", "180d".
// Raw durations such as "168h" are accepted too.
func ParseTrailingPeriod(s string) (time.Duration, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasSuffix(s, "days") {
		s = strings.TrimSuffix(s, "days") + "d"
	}
	if strings.HasSuffix(s, "d") {
		nStr := strings.TrimSuffix(s, "d")
		if nStr == "" {
			return 0, false
		}
		n, err := strconv.Atoi(nStr)
		if err != nil || n <= 0 {
			return 0, false
		}
		return time.Duration(n) * 24 * time.Hour, true
	}
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d, true
	}
	return 0, false
}
