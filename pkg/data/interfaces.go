package data

import (
	"time"

	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// DataProvider interface for loading candle history from various sources
type DataProvider interface {
	// LoadData loads candle history from the specified source
	LoadData(source string) ([]types.OHLCV, error)

	// ValidateData validates the integrity of the loaded data
	ValidateData(data []types.OHLCV) error

	// GetName returns the name of the data provider
	GetName() string
}

// DataCache interface for caching loaded data
type DataCache interface {
	// Get retrieves data from cache if available
	Get(key string) ([]types.OHLCV, bool)

	// Set stores data in cache
	Set(key string, data []types.OHLCV)

	// Clear removes all cached data
	Clear()

	// Size returns the number of cached entries
	Size() int
}

// DataFilter interface for filtering and sanitizing candle data
type DataFilter interface {
	// FilterByPeriod filters data to the trailing period
	FilterByPeriod(data []types.OHLCV, period time.Duration) []types.OHLCV

	// FilterByDateRange filters data to a specific date range
	FilterByDateRange(data []types.OHLCV, start, end time.Time) []types.OHLCV

	// ValidateTimeSequence ensures data is strictly chronological
	ValidateTimeSequence(data []types.OHLCV) error
}

// FileLocator interface for finding candle files under a data root
type FileLocator interface {
	// FindDataFile attempts to locate the candle file for a symbol and interval
	FindDataFile(dataRoot, symbol, interval string) string
}

// CSVColumnMapping defines the column positions for different CSV layouts
type CSVColumnMapping struct {
	TimestampCol int
	OpenCol      int
	HighCol      int
	LowCol       int
	CloseCol     int
	VolumeCol    int
	MinColumns   int
	DateFormat   string
}

// DefaultCSVFormat covers the common timestamp,open,high,low,close,volume
// layout. Timestamps may be datetime strings in DateFormat or integer epoch
// values (seconds or milliseconds); the provider detects which per row.
var DefaultCSVFormat = CSVColumnMapping{
	TimestampCol: 0,
	OpenCol:      1,
	HighCol:      2,
	LowCol:       3,
	CloseCol:     4,
	VolumeCol:    5,
	MinColumns:   6,
	DateFormat:   "2006-01-02 15:04:05",
}
