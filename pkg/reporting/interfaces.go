package reporting

import (
	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// Package reporting renders engine evaluations for humans and files

// ConsoleReporter defines the console output surface
type ConsoleReporter interface {
	RenderEvaluation(eval *types.Evaluation)
	RenderBatch(evals []*types.Evaluation)
}

// FileReporter defines the file output surface
type FileReporter interface {
	WriteEvaluationXLSX(eval *types.Evaluation, path string) error
	WriteBatchXLSX(evals []*types.Evaluation, path string) error
	WriteEvaluationJSON(eval *types.Evaluation, path string) error
	WriteBatchJSON(evals []*types.Evaluation, path string) error
}

// PathManager defines output path management
type PathManager interface {
	GetDefaultOutputDir(symbol, interval string) string
	EnsureDirectoryExists(path string) error
}

// ExcelStyles holds the style ids used across workbook sheets
type ExcelStyles struct {
	HeaderStyle  int
	BaseStyle    int
	PercentStyle int
	NumberStyle  int
	GoodStyle    int
	BadStyle     int
}
