package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// DefaultExcelReporter writes evaluation workbooks
type DefaultExcelReporter struct{}

// NewDefaultExcelReporter creates a new Excel reporter
func NewDefaultExcelReporter() *DefaultExcelReporter {
	return &DefaultExcelReporter{}
}

// WriteEvaluationXLSX writes one evaluation as a three-sheet workbook
func (r *DefaultExcelReporter) WriteEvaluationXLSX(eval *types.Evaluation, path string) error {
	if eval == nil {
		return fmt.Errorf("no evaluation to write")
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const signalSheet = "Signal"
	const indicatorSheet = "Indicators"
	const riskSheet = "Risk"

	fx.SetSheetName(fx.GetSheetName(0), signalSheet)
	fx.NewSheet(indicatorSheet)
	fx.NewSheet(riskSheet)

	styles, err := r.createExcelStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeSignalSheet(fx, signalSheet, eval, styles); err != nil {
		return err
	}
	if err := r.writeIndicatorSheet(fx, indicatorSheet, eval.Snapshot, styles); err != nil {
		return err
	}
	if err := r.writeRiskSheet(fx, riskSheet, eval.Risk, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

// WriteBatchXLSX writes a scan summary workbook with one row per symbol
func (r *DefaultExcelReporter) WriteBatchXLSX(evals []*types.Evaluation, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const sheet = "Scan"
	fx.SetSheetName(fx.GetSheetName(0), sheet)

	styles, err := r.createExcelStyles(fx)
	if err != nil {
		return err
	}

	headers := []string{"Symbol", "Window End", "Action", "Confidence", "Strength", "Risk", "Regime", "RSI", "Last Close", "Support", "Resistance"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		fx.SetCellValue(sheet, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	fx.SetCellStyle(sheet, "A1", last, styles.HeaderStyle)

	row := 2
	for _, eval := range evals {
		if eval == nil {
			continue
		}
		values := []interface{}{
			eval.Symbol,
			eval.Timestamp.Format("2006-01-02 15:04:05"),
			strings.ToUpper(eval.Signal.Action.String()),
			eval.Signal.Confidence,
			eval.Signal.Strength,
			eval.Signal.RiskScore,
			eval.Risk.MarketRegime.String(),
			eval.Snapshot.RSI,
			eval.Snapshot.LastClose,
			eval.Snapshot.Support,
			eval.Snapshot.Resistance,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			fx.SetCellValue(sheet, cell, v)
		}
		start, _ := excelize.CoordinatesToCellName(1, row)
		end, _ := excelize.CoordinatesToCellName(len(values), row)
		fx.SetCellStyle(sheet, start, end, styles.BaseStyle)

		confCell, _ := excelize.CoordinatesToCellName(4, row)
		riskCell, _ := excelize.CoordinatesToCellName(6, row)
		fx.SetCellStyle(sheet, confCell, riskCell, styles.PercentStyle)

		row++
	}

	fx.SetColWidth(sheet, "A", "B", 20)
	fx.SetColWidth(sheet, "C", "K", 12)

	return fx.SaveAs(path)
}

// createExcelStyles creates the shared workbook styles
func (r *DefaultExcelReporter) createExcelStyles(fx *excelize.File) (ExcelStyles, error) {
	var styles ExcelStyles
	var err error

	lightBorder := []excelize.Border{
		{Type: "left", Color: "E0E0E0", Style: 1},
		{Type: "right", Color: "E0E0E0", Style: 1},
		{Type: "bottom", Color: "E0E0E0", Style: 1},
	}

	styles.HeaderStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return styles, err
	}

	styles.BaseStyle, err = fx.NewStyle(&excelize.Style{
		Border: lightBorder,
	})
	if err != nil {
		return styles, err
	}

	styles.PercentStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt: 10,
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
		Border: lightBorder,
	})
	if err != nil {
		return styles, err
	}

	styles.NumberStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt: 4,
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
		Border: lightBorder,
	})
	if err != nil {
		return styles, err
	}

	styles.GoodStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Color: "008000",
		},
		Border: lightBorder,
	})
	if err != nil {
		return styles, err
	}

	styles.BadStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Color: "FF0000",
		},
		Border: lightBorder,
	})
	if err != nil {
		return styles, err
	}

	return styles, nil
}

// writeSignalSheet writes the signal, parameters, and reasoning block
func (r *DefaultExcelReporter) writeSignalSheet(fx *excelize.File, sheet string, eval *types.Evaluation, styles ExcelStyles) error {
	fx.SetCellValue(sheet, "A1", "Field")
	fx.SetCellValue(sheet, "B1", "Value")
	fx.SetCellStyle(sheet, "A1", "B1", styles.HeaderStyle)

	rows := []struct {
		field string
		value interface{}
	}{
		{"Symbol", eval.Symbol},
		{"Window End", eval.Timestamp.Format("2006-01-02 15:04:05")},
		{"Action", strings.ToUpper(eval.Signal.Action.String())},
		{"Confidence", eval.Signal.Confidence},
		{"Strength", eval.Signal.Strength},
		{"Risk Score", eval.Signal.RiskScore},
		{"Regime", eval.Parameters.MarketRegime.String()},
		{"Confidence Threshold", eval.Parameters.ConfidenceThreshold},
		{"Position Multiplier", eval.Parameters.PositionMultiplier},
		{"Risk Per Trade", eval.Parameters.RiskPerTrade},
		{"Stop Loss", eval.Parameters.StopLossPct},
		{"Take Profit", eval.Parameters.TakeProfitPct},
		{"Trailing Stop", onOff(eval.Parameters.TrailingStopEnabled)},
	}

	row := 2
	for _, item := range rows {
		fx.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.field)
		fx.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.value)
		fx.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), styles.BaseStyle)
		row++
	}

	row++
	fx.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Reasoning")
	fx.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), styles.HeaderStyle)
	row++
	for _, line := range eval.Signal.Reasoning {
		fx.SetCellValue(sheet, fmt.Sprintf("B%d", row), line)
		fx.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), styles.BaseStyle)
		row++
	}
	for _, line := range eval.Parameters.AdaptiveReasoning {
		fx.SetCellValue(sheet, fmt.Sprintf("B%d", row), line)
		fx.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), styles.BaseStyle)
		row++
	}

	fx.SetColWidth(sheet, "A", "A", 24)
	fx.SetColWidth(sheet, "B", "B", 60)

	return nil
}

// writeIndicatorSheet writes every snapshot value
func (r *DefaultExcelReporter) writeIndicatorSheet(fx *excelize.File, sheet string, snapshot *types.IndicatorSnapshot, styles ExcelStyles) error {
	fx.SetCellValue(sheet, "A1", "Indicator")
	fx.SetCellValue(sheet, "B1", "Value")
	fx.SetCellStyle(sheet, "A1", "B1", styles.HeaderStyle)

	if snapshot == nil {
		return nil
	}

	rows := []struct {
		name  string
		value float64
	}{
		{"EMA 9", snapshot.EMA9},
		{"EMA 21", snapshot.EMA21},
		{"EMA 50", snapshot.EMA50},
		{"RSI 14", snapshot.RSI},
		{"MACD Line", snapshot.MACDLine},
		{"MACD Signal", snapshot.MACDSignal},
		{"MACD Histogram", snapshot.MACDHist},
		{"Stochastic %K", snapshot.StochK},
		{"Stochastic %D", snapshot.StochD},
		{"Bollinger Upper", snapshot.BBUpper},
		{"Bollinger Middle", snapshot.BBMiddle},
		{"Bollinger Lower", snapshot.BBLower},
		{"Bollinger Width", snapshot.BBWidth},
		{"ATR 14", snapshot.ATR},
		{"OBV", snapshot.OBV},
		{"OBV SMA", snapshot.OBVSMA},
		{"Average Volume", snapshot.AvgVolume},
		{"Last Volume", snapshot.LastVolume},
		{"Last Close", snapshot.LastClose},
		{"Support", snapshot.Support},
		{"Resistance", snapshot.Resistance},
	}

	row := 2
	for _, item := range rows {
		fx.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.name)
		fx.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.value)
		fx.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), styles.BaseStyle)
		fx.SetCellStyle(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), styles.NumberStyle)
		row++
	}

	fx.SetColWidth(sheet, "A", "A", 20)
	fx.SetColWidth(sheet, "B", "B", 16)

	return nil
}

// writeRiskSheet writes risk metrics with reading guidance
func (r *DefaultExcelReporter) writeRiskSheet(fx *excelize.File, sheet string, risk *types.RiskMetrics, styles ExcelStyles) error {
	fx.SetCellValue(sheet, "A1", "Metric")
	fx.SetCellValue(sheet, "B1", "Value")
	fx.SetCellValue(sheet, "C1", "Insight")
	fx.SetCellStyle(sheet, "A1", "C1", styles.HeaderStyle)

	if risk == nil {
		return nil
	}

	rows := []struct {
		name    string
		value   float64
		percent bool
		insight string
	}{
		{"Overall Risk Score", risk.OverallRiskScore, true, riskInsight(risk.OverallRiskScore)},
		{"Annualized Volatility", risk.Volatility, true, ""},
		{"Sharpe Ratio", risk.SharpeRatio, false, sharpeInsight(risk.SharpeRatio)},
		{"Max Drawdown", risk.MaxDrawdown, true, drawdownInsight(risk.MaxDrawdown)},
	}

	row := 2
	for _, item := range rows {
		fx.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.name)
		fx.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.value)
		fx.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.insight)
		fx.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), styles.BaseStyle)
		valueStyle := styles.NumberStyle
		if item.percent {
			valueStyle = styles.PercentStyle
		}
		fx.SetCellStyle(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), valueStyle)
		fx.SetCellStyle(sheet, fmt.Sprintf("C%d", row), fmt.Sprintf("C%d", row), styles.BaseStyle)
		row++
	}

	fx.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Regime")
	fx.SetCellValue(sheet, fmt.Sprintf("B%d", row), risk.MarketRegime.String())
	fx.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("C%d", row), styles.BaseStyle)

	fx.SetColWidth(sheet, "A", "A", 22)
	fx.SetColWidth(sheet, "B", "B", 14)
	fx.SetColWidth(sheet, "C", "C", 44)

	return nil
}

func riskInsight(score float64) string {
	switch {
	case score < 0.33:
		return "Low composite risk, standard sizing applies"
	case score < 0.66:
		return "Moderate composite risk, watch exposure"
	default:
		return "High composite risk, reduce position sizes"
	}
}

func sharpeInsight(sharpe float64) string {
	switch {
	case sharpe > 2:
		return "Excellent risk-adjusted performance"
	case sharpe > 1:
		return "Good risk-adjusted performance"
	case sharpe > 0:
		return "Positive but modest risk-adjusted performance"
	default:
		return "Negative risk-adjusted performance"
	}
}

func drawdownInsight(drawdown float64) string {
	switch {
	case drawdown < 0.10:
		return "Shallow drawdown, equity curve is stable"
	case drawdown < 0.20:
		return "Moderate drawdown, acceptable for trend strategies"
	default:
		return "Deep drawdown, capital at meaningful risk"
	}
}

// Package-level convenience functions

func WriteEvaluationXLSX(eval *types.Evaluation, path string) error {
	return NewDefaultExcelReporter().WriteEvaluationXLSX(eval, path)
}

func WriteBatchXLSX(evals []*types.Evaluation, path string) error {
	return NewDefaultExcelReporter().WriteBatchXLSX(evals, path)
}
