package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultPathManager implements path management functionality
type DefaultPathManager struct{}

// NewDefaultPathManager creates a new path manager
func NewDefaultPathManager() *DefaultPathManager {
	return &DefaultPathManager{}
}

// GetDefaultOutputDir returns the default output directory for a symbol and interval
func (p *DefaultPathManager) GetDefaultOutputDir(symbol, interval string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	i := strings.ToLower(strings.TrimSpace(interval))
	if s == "" {
		s = "UNKNOWN"
	}
	if i == "" {
		i = "unknown"
	}

	return filepath.Join("results", fmt.Sprintf("%s_%s", s, i))
}

// EnsureDirectoryExists creates the parent directory of path if needed
func (p *DefaultPathManager) EnsureDirectoryExists(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// TimestampedFileName builds an output file name like BTCUSDT_20240101_150405.xlsx.
// The window end goes into the name so repeated runs never overwrite each other.
func TimestampedFileName(symbol string, windowEnd time.Time, ext string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" {
		s = "UNKNOWN"
	}
	ext = strings.TrimPrefix(ext, ".")
	return fmt.Sprintf("%s_%s.%s", s, windowEnd.Format("20060102_150405"), ext)
}

// Package-level convenience function
func DefaultOutputDir(symbol, interval string) string {
	manager := NewDefaultPathManager()
	return manager.GetDefaultOutputDir(symbol, interval)
}
