package data

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

func writeDataFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCSVProvider_LoadsDatetimeRows(t *testing.T) {
	path := writeDataFile(t, "candles.csv", `timestamp,open,high,low,close,volume
2024-01-01 00:00:00,100,105,99,104,1500
2024-01-01 01:00:00,104,108,103,107,1800
2024-01-01 02:00:00,107,109,105,106,1200
`)
	provider := NewCSVProvider()

	data, err := provider.LoadData(path)

	require.NoError(t, err)
	require.Len(t, data, 3)
	assert.Equal(t, 100.0, data[0].Open)
	assert.Equal(t, 109.0, data[2].High)
	assert.Equal(t, time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC), data[1].Timestamp)
}

func TestCSVProvider_LoadsEpochMillisRows(t *testing.T) {
	path := writeDataFile(t, "candles.csv", `1704067200000,100,105,99,104,1500
1704070800000,104,108,103,107,1800
`)
	provider := NewCSVProvider()

	data, err := provider.LoadData(path)

	require.NoError(t, err)
	require.Len(t, data, 2)
	assert.True(t, data[0].Timestamp.Equal(time.UnixMilli(1704067200000)))
	assert.True(t, data[1].Timestamp.Equal(time.UnixMilli(1704070800000)))
}

func TestCSVProvider_LoadsEpochSecondsRows(t *testing.T) {
	path := writeDataFile(t, "candles.csv", `1704067200,100,105,99,104,1500
`)
	provider := NewCSVProvider()

	data, err := provider.LoadData(path)

	require.NoError(t, err)
	require.Len(t, data, 1)
	assert.True(t, data[0].Timestamp.Equal(time.Unix(1704067200, 0)))
}

func TestCSVProvider_SkipsMalformedRows(t *testing.T) {
	path := writeDataFile(t, "candles.csv", `timestamp,open,high,low,close,volume
2024-01-01 00:00:00,100,105,99,104,1500
not-a-date,104,108,103,107,1800
2024-01-01 02:00:00,104,108,103,107,oops
2024-01-01 03:00:00,104,108,103
2024-01-01 04:00:00,107,109,105,106,1200
`)
	provider := NewCSVProvider()

	data, err := provider.LoadData(path)

	require.NoError(t, err)
	require.Len(t, data, 2)
	assert.Equal(t, 104.0, data[0].Close)
	assert.Equal(t, 106.0, data[1].Close)
}

func TestCSVProvider_SkipsInconsistentPriceRows(t *testing.T) {
	path := writeDataFile(t, "candles.csv", `timestamp,open,high,low,close,volume
2024-01-01 00:00:00,100,99,105,104,1500
2024-01-01 01:00:00,-5,108,103,107,1800
2024-01-01 02:00:00,104,108,103,107,1800
`)
	provider := NewCSVProvider()

	data, err := provider.LoadData(path)

	require.NoError(t, err)
	require.Len(t, data, 1)
	assert.Equal(t, 107.0, data[0].Close)
}

func TestCSVProvider_MissingFileErrors(t *testing.T) {
	provider := NewCSVProvider()

	data, err := provider.LoadData(filepath.Join(t.TempDir(), "absent.csv"))

	assert.Nil(t, data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open data file")
}

func TestCSVProvider_ValidateData(t *testing.T) {
	provider := NewCSVProvider()
	base := time.Unix(1700000000, 0)
	valid := []types.OHLCV{
		{Timestamp: base, Open: 100, High: 105, Low: 99, Close: 104, Volume: 1500},
		{Timestamp: base.Add(time.Hour), Open: 104, High: 108, Low: 103, Close: 107, Volume: 1800},
	}

	assert.NoError(t, provider.ValidateData(valid))
	assert.Error(t, provider.ValidateData(nil))

	negative := append([]types.OHLCV{}, valid...)
	negative[0].Open = -1
	assert.Error(t, provider.ValidateData(negative))

	inverted := append([]types.OHLCV{}, valid...)
	inverted[1].High, inverted[1].Low = inverted[1].Low, inverted[1].High
	assert.Error(t, provider.ValidateData(inverted))

	duplicate := append([]types.OHLCV{}, valid...)
	duplicate[1].Timestamp = duplicate[0].Timestamp
	err := provider.ValidateData(duplicate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strictly increasing")
}

type countingProvider struct {
	loads int
	data  []types.OHLCV
	err   error
}

func (c *countingProvider) LoadData(source string) ([]types.OHLCV, error) {
	c.loads++
	return c.data, c.err
}

func (c *countingProvider) ValidateData(data []types.OHLCV) error { return nil }

func (c *countingProvider) GetName() string { return "Counting Provider" }

func TestCachedProvider_LoadsOncePerSource(t *testing.T) {
	inner := &countingProvider{data: []types.OHLCV{{Close: 100}}}
	provider := NewCachedProvider(inner)

	first, err := provider.LoadData("a.csv")
	require.NoError(t, err)
	second, err := provider.LoadData("a.csv")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.loads)
	assert.Equal(t, 1, provider.CacheSize())

	provider.ClearCache()
	_, err = provider.LoadData("a.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.loads)
}

func TestCachedProvider_DoesNotCacheFailures(t *testing.T) {
	inner := &countingProvider{err: errors.New("boom")}
	provider := NewCachedProvider(inner)

	_, err := provider.LoadData("a.csv")
	require.Error(t, err)
	_, err = provider.LoadData("a.csv")
	require.Error(t, err)

	assert.Equal(t, 2, inner.loads)
	assert.Equal(t, 0, provider.CacheSize())
	assert.Equal(t, "Cached Counting Provider", provider.GetName())
}

func TestFileLocator_ChecksKnownLayouts(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "BTCUSDT_1h.csv"), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "ETHUSDT", "4h"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ETHUSDT", "4h", "candles.csv"), []byte("x"), 0o644))

	locator := NewDefaultFileLocator()

	assert.Equal(t, filepath.Join(root, "BTCUSDT_1h.csv"), locator.FindDataFile(root, "btcusdt", "1h"))
	assert.Equal(t, filepath.Join(root, "ETHUSDT", "4h", "candles.csv"), locator.FindDataFile(root, "ETHUSDT", "4h"))
	assert.Equal(t, "", locator.FindDataFile(root, "SOLUSDT", "1h"))
}
