package data

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileLocator implements FileLocator over the local filesystem
type DefaultFileLocator struct{}

// NewDefaultFileLocator creates a new default file locator
func NewDefaultFileLocator() *DefaultFileLocator {
	return &DefaultFileLocator{}
}

// FindDataFile attempts to locate the candle file for a symbol and interval.
// Layouts checked, in order:
//
//	{dataRoot}/{SYMBOL}_{interval}.csv
//	{dataRoot}/{SYMBOL}/{interval}/candles.csv
//	{dataRoot}/{SYMBOL}.csv
//
// Returns empty string if no file is found.
func (f *DefaultFileLocator) FindDataFile(dataRoot, symbol, interval string) string {
	symbol = strings.ToUpper(symbol)

	candidates := []string{
		filepath.Join(dataRoot, fmt.Sprintf("%s_%s.csv", symbol, interval)),
		filepath.Join(dataRoot, symbol, interval, "candles.csv"),
		filepath.Join(dataRoot, symbol+".csv"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	log.Printf("⚠️ No data file found for %s %s in:", symbol, interval)
	for _, path := range candidates {
		log.Printf("   - %s", path)
	}

	return ""
}
