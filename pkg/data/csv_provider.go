package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// CSVProvider implements DataProvider for CSV candle files
type CSVProvider struct {
	format CSVColumnMapping
}

// NewCSVProvider creates a new CSV data provider with the default layout
func NewCSVProvider() *CSVProvider {
	return &CSVProvider{
		format: DefaultCSVFormat,
	}
}

// NewCSVProviderWithFormat creates a new CSV data provider with a custom layout
func NewCSVProviderWithFormat(format CSVColumnMapping) *CSVProvider {
	return &CSVProvider{
		format: format,
	}
}

// GetName returns the name of the data provider
func (p *CSVProvider) GetName() string {
	return "CSV Provider"
}

// LoadData loads candle history from a CSV file. Malformed rows are skipped
// with a warning; a header row is detected and skipped silently.
func (p *CSVProvider) LoadData(source string) ([]types.OHLCV, error) {
	file, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var data []types.OHLCV

	lineNum := 0
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read CSV at line %d: %w", lineNum+1, err)
		}
		lineNum++

		if len(record) < p.format.MinColumns {
			log.Printf("⚠️ Insufficient columns at line %d (expected %d, got %d), skipping", lineNum, p.format.MinColumns, len(record))
			continue
		}

		timestamp, err := parseTimestamp(record[p.format.TimestampCol], p.format.DateFormat)
		if err != nil {
			// First row with an unparseable timestamp is the header
			if lineNum == 1 {
				continue
			}
			log.Printf("⚠️ Invalid timestamp %q at line %d, skipping: %v", record[p.format.TimestampCol], lineNum, err)
			continue
		}

		candle := types.OHLCV{Timestamp: timestamp}
		fields := []struct {
			name string
			col  int
			dst  *float64
		}{
			{"open", p.format.OpenCol, &candle.Open},
			{"high", p.format.HighCol, &candle.High},
			{"low", p.format.LowCol, &candle.Low},
			{"close", p.format.CloseCol, &candle.Close},
			{"volume", p.format.VolumeCol, &candle.Volume},
		}

		ok := true
		for _, f := range fields {
			v, err := strconv.ParseFloat(record[f.col], 64)
			if err != nil {
				log.Printf("⚠️ Invalid %s %q at line %d, skipping: %v", f.name, record[f.col], lineNum, err)
				ok = false
				break
			}
			*f.dst = v
		}
		if !ok {
			continue
		}

		if candle.Open <= 0 || candle.High <= 0 || candle.Low <= 0 || candle.Close <= 0 || candle.Volume < 0 {
			log.Printf("⚠️ Non-positive price data at line %d, skipping", lineNum)
			continue
		}
		if candle.High < candle.Low || candle.High < candle.Open || candle.High < candle.Close ||
			candle.Low > candle.Open || candle.Low > candle.Close {
			log.Printf("⚠️ Inconsistent high/low bounds at line %d, skipping", lineNum)
			continue
		}

		data = append(data, candle)
	}

	return data, nil
}

// parseTimestamp accepts integer epoch values (milliseconds when 13+ digits,
// seconds otherwise) or a datetime string in the configured layout.
func parseTimestamp(raw, layout string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if isDigits(raw) {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return time.Time{}, err
		}
		if len(raw) >= 13 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	return time.Parse(layout, raw)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidateData validates the integrity of loaded data
func (p *CSVProvider) ValidateData(data []types.OHLCV) error {
	if len(data) == 0 {
		return fmt.Errorf("no data provided")
	}

	for i, candle := range data {
		if candle.Open <= 0 || candle.High <= 0 || candle.Low <= 0 || candle.Close <= 0 {
			return fmt.Errorf("invalid price data at index %d: prices must be positive", i)
		}

		if candle.High < candle.Low {
			return fmt.Errorf("invalid price data at index %d: high (%.4f) cannot be less than low (%.4f)",
				i, candle.High, candle.Low)
		}

		if candle.High < candle.Open || candle.High < candle.Close {
			return fmt.Errorf("invalid price data at index %d: high (%.4f) must be >= open (%.4f) and close (%.4f)",
				i, candle.High, candle.Open, candle.Close)
		}

		if candle.Low > candle.Open || candle.Low > candle.Close {
			return fmt.Errorf("invalid price data at index %d: low (%.4f) must be <= open (%.4f) and close (%.4f)",
				i, candle.Low, candle.Open, candle.Close)
		}

		if i > 0 && !candle.Timestamp.After(data[i-1].Timestamp) {
			return fmt.Errorf("invalid timestamp sequence at index %d: timestamps must be strictly increasing", i)
		}
	}

	return nil
}
