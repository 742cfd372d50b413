package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

func hourlyCandles(n int, start float64) []types.OHLCV {
	base := time.Unix(1700000000, 0)
	candles := make([]types.OHLCV, n)
	for i := 0; i < n; i++ {
		c := start + float64(i)
		candles[i] = types.OHLCV{
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Open:      c, High: c + 1, Low: c - 1, Close: c, Volume: 1000,
		}
	}
	return candles
}

func TestFilterByPeriod_KeepsTrailingWindow(t *testing.T) {
	filter := NewDefaultDataFilter()
	data := hourlyCandles(24, 100)

	filtered := filter.FilterByPeriod(data, 6*time.Hour)

	require.Len(t, filtered, 7)
	assert.Equal(t, data[17].Timestamp, filtered[0].Timestamp)
	assert.Equal(t, data[23].Timestamp, filtered[6].Timestamp)
}

func TestFilterByPeriod_ZeroPeriodReturnsAll(t *testing.T) {
	filter := NewDefaultDataFilter()
	data := hourlyCandles(10, 100)

	assert.Len(t, filter.FilterByPeriod(data, 0), 10)
}

func TestFilterByDateRange_BoundsAreInclusive(t *testing.T) {
	filter := NewDefaultDataFilter()
	data := hourlyCandles(10, 100)

	filtered := filter.FilterByDateRange(data, data[2].Timestamp, data[5].Timestamp)

	require.Len(t, filtered, 4)
	assert.Equal(t, data[2].Timestamp, filtered[0].Timestamp)
	assert.Equal(t, data[5].Timestamp, filtered[3].Timestamp)
}

func TestValidateTimeSequence_FlagsDisorderAndDuplicates(t *testing.T) {
	filter := NewDefaultDataFilter()
	data := hourlyCandles(5, 100)

	assert.NoError(t, filter.ValidateTimeSequence(data))

	swapped := append([]types.OHLCV{}, data...)
	swapped[1], swapped[3] = swapped[3], swapped[1]
	err := filter.ValidateTimeSequence(swapped)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chronological order")

	duplicated := append([]types.OHLCV{}, data...)
	duplicated[2].Timestamp = duplicated[1].Timestamp
	err = filter.ValidateTimeSequence(duplicated)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate timestamp")
}

func TestSortByTimestamp_OrdersWithoutMutatingInput(t *testing.T) {
	filter := NewDefaultDataFilter()
	data := hourlyCandles(5, 100)
	shuffled := []types.OHLCV{data[3], data[0], data[4], data[2], data[1]}

	sorted := filter.SortByTimestamp(shuffled)

	require.Len(t, sorted, 5)
	assert.NoError(t, filter.ValidateTimeSequence(sorted))
	assert.Equal(t, data[3].Timestamp, shuffled[0].Timestamp)
}

func TestRemoveDuplicates_KeepsFirstOccurrence(t *testing.T) {
	filter := NewDefaultDataFilter()
	data := hourlyCandles(4, 100)
	dup := data[1]
	dup.Close = 999
	withDup := []types.OHLCV{data[0], data[1], dup, data[2], data[3]}

	deduped := filter.RemoveDuplicates(withDup)

	require.Len(t, deduped, 4)
	assert.Equal(t, data[1].Close, deduped[1].Close)
}

func TestFilterOutliers_DropsLargeGaps(t *testing.T) {
	filter := NewDefaultDataFilter()
	data := hourlyCandles(5, 100)
	data[3].Open = data[2].Close * 2

	filtered := filter.FilterOutliers(data, 10)

	require.Len(t, filtered, 4)
	for _, c := range filtered {
		assert.NotEqual(t, data[3].Open, c.Open)
	}
}

func TestParseTrailingPeriod(t *testing.T) {
	cases := []struct {
		input string
		want  time.Duration
		ok    bool
	}{
		{"7d", 7 * 24 * time.Hour, true},
		{"30days", 30 * 24 * time.Hour, true},
		{" 180D ", 180 * 24 * time.Hour, true},
		{"168h", 168 * time.Hour, true},
		{"d", 0, false},
		{"0d", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		got, ok := ParseTrailingPeriod(tc.input)
		assert.Equal(t, tc.ok, ok, tc.input)
		assert.Equal(t, tc.want, got, tc.input)
	}
}

func TestDataManager_SanitizeSortsAndDedupes(t *testing.T) {
	dm := NewDataManager()
	data := hourlyCandles(4, 100)
	messy := []types.OHLCV{data[2], data[0], data[2], data[1], data[3]}

	clean := dm.Sanitize(messy)

	require.Len(t, clean, 4)
	assert.NoError(t, dm.ValidateData(clean))
}
