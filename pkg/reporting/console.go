package reporting

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// DefaultConsoleReporter renders evaluations as rounded tables
type DefaultConsoleReporter struct {
	out io.Writer
}

// NewDefaultConsoleReporter creates a console reporter writing to stdout
func NewDefaultConsoleReporter() *DefaultConsoleReporter {
	return &DefaultConsoleReporter{out: os.Stdout}
}

// NewConsoleReporterWithWriter creates a console reporter with a custom writer
func NewConsoleReporterWithWriter(w io.Writer) *DefaultConsoleReporter {
	return &DefaultConsoleReporter{out: w}
}

// RenderEvaluation prints the full evaluation for one window
func (r *DefaultConsoleReporter) RenderEvaluation(eval *types.Evaluation) {
	if eval == nil {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle("MARKET EVALUATION")
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"📊 Symbol", eval.Symbol},
		{"🕐 Window End", eval.Timestamp.Format("2006-01-02 15:04:05")},
		{"📈 Action", strings.ToUpper(eval.Signal.Action.String())},
		{"🎯 Confidence", fmt.Sprintf("%.2f", eval.Signal.Confidence)},
		{"💪 Strength", fmt.Sprintf("%.2f", eval.Signal.Strength)},
		{"⚠️ Risk Score", fmt.Sprintf("%.2f", eval.Signal.RiskScore)},
		{"🧭 Regime", eval.Risk.MarketRegime.String()},
	})

	t.AppendSeparator()

	t.AppendRows([]table.Row{
		{"📉 Volatility", fmt.Sprintf("%.1f%%", eval.Risk.Volatility*100)},
		{"📊 Sharpe Ratio", fmt.Sprintf("%.2f", eval.Risk.SharpeRatio)},
		{"📉 Max Drawdown", fmt.Sprintf("%.1f%%", eval.Risk.MaxDrawdown*100)},
	})

	t.AppendSeparator()

	t.AppendRows([]table.Row{
		{"📐 EMA 9/21/50", fmt.Sprintf("%.2f / %.2f / %.2f", eval.Snapshot.EMA9, eval.Snapshot.EMA21, eval.Snapshot.EMA50)},
		{"📐 RSI", fmt.Sprintf("%.1f", eval.Snapshot.RSI)},
		{"📐 MACD Histogram", fmt.Sprintf("%.4f", eval.Snapshot.MACDHist)},
		{"📐 ATR", fmt.Sprintf("%.2f", eval.Snapshot.ATR)},
		{"📐 Support / Resistance", fmt.Sprintf("%.2f / %.2f", eval.Snapshot.Support, eval.Snapshot.Resistance)},
	})

	t.AppendSeparator()

	t.AppendRows([]table.Row{
		{"🎚️ Position Multiplier", fmt.Sprintf("%.1fx", eval.Parameters.PositionMultiplier)},
		{"🎚️ Risk Per Trade", fmt.Sprintf("%.1f%%", eval.Parameters.RiskPerTrade*100)},
		{"🎚️ Stop / Take Profit", fmt.Sprintf("%.1f%% / %.1f%%", eval.Parameters.StopLossPct*100, eval.Parameters.TakeProfitPct*100)},
		{"🎚️ Trailing Stop", onOff(eval.Parameters.TrailingStopEnabled)},
	})

	if rows := r.contextRows(eval); len(rows) > 0 {
		t.AppendSeparator()
		t.AppendRows(rows)
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 24, WidthMax: 24, Align: text.AlignLeft},
		{Number: 2, WidthMin: 30, WidthMax: 48, Align: text.AlignLeft},
	})

	t.Render()

	r.renderReasonList("💡 Reasoning", eval.Signal.Reasoning)
	r.renderReasonList("🎛️ Adaptive Parameters", eval.Parameters.AdaptiveReasoning)
	fmt.Fprintln(r.out)
}

// contextRows collects the optional order-flow, profile, pattern, and
// expectation rows present on a full evaluation.
func (r *DefaultConsoleReporter) contextRows(eval *types.Evaluation) []table.Row {
	var rows []table.Row

	if eval.OrderFlow != nil {
		rows = append(rows, table.Row{
			"🌊 Order Flow",
			fmt.Sprintf("%s (buy pressure %.2f)", eval.OrderFlow.Sentiment, eval.OrderFlow.BuyPressure),
		})
	}
	if eval.Profile != nil {
		rows = append(rows, table.Row{
			"📦 Value Area",
			fmt.Sprintf("%.2f .. %.2f (POC %.2f), %s", eval.Profile.ValueAreaLow, eval.Profile.ValueAreaHigh, eval.Profile.POC, eval.Profile.Position),
		})
	}
	for _, p := range eval.Patterns {
		rows = append(rows, table.Row{
			"🔎 Pattern",
			fmt.Sprintf("%s (%s) conf %.2f target %.2f", p.Type, p.Direction.String(), p.Confidence, p.Target),
		})
	}
	if eval.Expectation != nil {
		rows = append(rows, table.Row{
			"🔮 Expected Bias",
			fmt.Sprintf("%s (score %.2f, conf %.2f)", eval.Expectation.Bias, eval.Expectation.Score, eval.Expectation.Confidence),
		})
	}

	return rows
}

func (r *DefaultConsoleReporter) renderReasonList(title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(r.out, "\n%s:\n", title)
	for _, line := range lines {
		fmt.Fprintf(r.out, "  • %s\n", line)
	}
}

// RenderBatch prints one summary row per evaluated symbol
func (r *DefaultConsoleReporter) RenderBatch(evals []*types.Evaluation) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle("SCAN RESULTS")
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Symbol", "Action", "Conf", "Risk", "Regime", "RSI", "Close"})

	for _, eval := range evals {
		if eval == nil {
			continue
		}
		t.AppendRow(table.Row{
			eval.Symbol,
			strings.ToUpper(eval.Signal.Action.String()),
			fmt.Sprintf("%.2f", eval.Signal.Confidence),
			fmt.Sprintf("%.2f", eval.Signal.RiskScore),
			eval.Risk.MarketRegime.String(),
			fmt.Sprintf("%.1f", eval.Snapshot.RSI),
			fmt.Sprintf("%.2f", eval.Snapshot.LastClose),
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})

	t.Render()
	fmt.Fprintln(r.out)
}

func onOff(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
