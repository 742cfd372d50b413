package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/vutran1810/market-analysis-engine/internal/batch"
	"github.com/vutran1810/market-analysis-engine/internal/engine"
	engerrors "github.com/vutran1810/market-analysis-engine/internal/errors"
	"github.com/vutran1810/market-analysis-engine/internal/logger"
	"github.com/vutran1810/market-analysis-engine/internal/monitoring"
	"github.com/vutran1810/market-analysis-engine/pkg/audit"
	"github.com/vutran1810/market-analysis-engine/pkg/config"
	datamanager "github.com/vutran1810/market-analysis-engine/pkg/data"
	"github.com/vutran1810/market-analysis-engine/pkg/reporting"
	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

func main() {
	var (
		configFile = flag.String("config", "", "Path to configuration file (YAML)")
		dataRoot   = flag.String("data-root", "data", "Root folder containing <SYMBOL>_<INTERVAL>.csv or <SYMBOL>/<INTERVAL>/candles.csv")
		symbolsArg = flag.String("symbols", "", "Comma-separated symbols to scan (empty scans every symbol found under -data-root)")
		interval   = flag.String("interval", "1h", "Data interval to use (e.g., 15m,1h,4h,1d)")
		periodStr  = flag.String("period", "", "Limit data to trailing window (e.g., 7d,30d,180d or raw durations like 168h)")
		workers    = flag.Int("workers", 0, "Worker count for parallel evaluation (0 uses all CPUs)")
		listenAddr = flag.String("listen", "", "Serve /metrics and /healthz on this address and stay up after the scan (e.g. :9090)")
		xlsxOut    = flag.String("xlsx", "", "Write the scan workbook to this path")
		jsonOut    = flag.String("json", "", "Write the scan JSON to this path")
		envFile    = flag.String("env", ".env", "Environment file path")
	)

	flag.Parse()

	log := logger.New("info", "console")

	if err := loadEnvFile(*envFile); err != nil {
		log.Debug().Err(err).Msg("No env file, using process environment")
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log = logger.New(cfg.Logging.Level, cfg.Logging.Format)

	eng, err := engine.New(cfg, engine.WithLogger(log))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build engine")
	}

	health := monitoring.NewHealthChecker()
	if *listenAddr != "" {
		startHTTPServer(log, *listenAddr, health)
	}

	symbols := resolveSymbols(*symbolsArg, *dataRoot, *interval)
	if len(symbols) == 0 {
		log.Fatal().Str("data_root", *dataRoot).Str("interval", *interval).
			Msg("No symbols to scan")
	}
	log.Info().Int("symbols", len(symbols)).Str("interval", *interval).Msg("Starting market scan")

	windows := loadWindows(log, symbols, *dataRoot, *interval, *periodStr)
	if len(windows) == 0 {
		log.Fatal().Msg("No candle windows to scan")
	}
	health.MarkReady()

	results := runScan(log, eng, windows, *workers)

	recorder := audit.NewMemoryRecorder()
	evals := collectEvaluations(log, results, health, recorder)
	log.Info().
		Int("evaluated", len(evals)).
		Int("rejected", len(results)-len(evals)).
		Int("signals_recorded", recorder.Len()).
		Msg("Scan complete")

	sort.Slice(evals, func(i, j int) bool { return evals[i].Symbol < evals[j].Symbol })
	reporting.NewDefaultConsoleReporter().RenderBatch(evals)

	if *xlsxOut != "" {
		if err := reporting.WriteBatchXLSX(evals, *xlsxOut); err != nil {
			log.Error().Err(err).Str("file", *xlsxOut).Msg("Failed to write workbook")
		} else {
			fmt.Printf("📁 Workbook written to %s\n", *xlsxOut)
		}
	}
	if *jsonOut != "" {
		if err := reporting.WriteBatchJSON(evals, *jsonOut); err != nil {
			log.Error().Err(err).Str("file", *jsonOut).Msg("Failed to write JSON report")
		} else {
			fmt.Printf("📁 JSON report written to %s\n", *jsonOut)
		}
	}

	if *listenAddr != "" {
		log.Info().Str("addr", *listenAddr).Msg("Serving metrics until interrupted (Ctrl+C to exit)")
		waitForInterrupt()
	}
}

// resolveSymbols returns the explicit -symbols list, or discovers symbols
// from the known data layouts under dataRoot.
func resolveSymbols(symbolsArg, dataRoot, interval string) []string {
	if s := strings.TrimSpace(symbolsArg); s != "" {
		var symbols []string
		for _, part := range strings.Split(s, ",") {
			if sym := strings.ToUpper(strings.TrimSpace(part)); sym != "" {
				symbols = append(symbols, sym)
			}
		}
		return symbols
	}
	return discoverSymbols(dataRoot, interval)
}

// discoverSymbols scans dataRoot for <SYMBOL>_<interval>.csv files and
// <SYMBOL>/<interval>/candles.csv directories.
func discoverSymbols(dataRoot, interval string) []string {
	entries, err := os.ReadDir(dataRoot)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	suffix := "_" + strings.ToLower(interval) + ".csv"
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			nested := filepath.Join(dataRoot, name, interval, "candles.csv")
			if _, err := os.Stat(nested); err == nil {
				seen[strings.ToUpper(name)] = true
			}
			continue
		}
		if strings.HasSuffix(strings.ToLower(name), suffix) {
			seen[strings.ToUpper(name[:len(name)-len(suffix)])] = true
		}
	}

	symbols := make([]string, 0, len(seen))
	for sym := range seen {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	return symbols
}

// loadWindows loads and sanitizes one candle window per symbol, skipping
// symbols whose data cannot be read.
func loadWindows(log zerolog.Logger, symbols []string, dataRoot, interval, periodStr string) []types.MarketData {
	dm := datamanager.NewDataManager()

	var period time.Duration
	if s := strings.TrimSpace(periodStr); s != "" {
		if d, ok := datamanager.ParseTrailingPeriod(s); ok {
			period = d
		} else {
			log.Warn().Str("period", s).Msg("Unrecognized trailing period, using full history")
		}
	}

	windows := make([]types.MarketData, 0, len(symbols))
	for _, sym := range symbols {
		path := dm.FindDataFile(dataRoot, sym, interval)
		if path == "" {
			monitoring.RecordRejection("no_data_file")
			continue
		}

		candles, err := dm.LoadHistoricalData(path)
		if err != nil {
			log.Warn().Err(err).Str("symbol", sym).Str("file", path).Msg("Failed to load candle history")
			monitoring.RecordRejection("load_failed")
			continue
		}
		candles = dm.Sanitize(candles)
		if period > 0 {
			candles = dm.FilterDataByPeriod(candles, period)
		}

		windows = append(windows, types.MarketData{Symbol: sym, Candles: candles})
	}
	return windows
}

// runScan pushes every window through the worker pool and collects the
// results, logging progress as they land.
func runScan(log zerolog.Logger, eng *engine.Engine, windows []types.MarketData, workers int) []batch.Result {
	pool := batch.NewWorkerPool(eng, workers, len(windows))
	pool.Start()

	submitted := 0
	for i, window := range windows {
		job := batch.Job{
			ID:   fmt.Sprintf("%s_%d", window.Symbol, i),
			Data: window,
		}
		if err := pool.Submit(job); err != nil {
			log.Warn().Err(err).Str("symbol", window.Symbol).Msg("Submit failed")
			continue
		}
		submitted++
	}

	tracker := batch.NewProgressTracker(submitted)
	results := make([]batch.Result, 0, submitted)
	for i := 0; i < submitted; i++ {
		res := <-pool.Results()
		tracker.Increment()
		done, total, percent, _ := tracker.Progress()
		log.Info().
			Str("symbol", res.Symbol).
			Dur("took", res.Duration).
			Str("progress", fmt.Sprintf("%d/%d (%.0f%%)", done, total, percent)).
			Msg("Window evaluated")
		results = append(results, res)
	}
	pool.Stop()

	return results
}

// collectEvaluations splits results into evaluations and rejections,
// feeding metrics, health state, and the audit trail along the way.
func collectEvaluations(log zerolog.Logger, results []batch.Result, health *monitoring.HealthChecker, recorder audit.Recorder) []*types.Evaluation {
	evals := make([]*types.Evaluation, 0, len(results))
	for _, res := range results {
		if res.Error != nil {
			log.Warn().Err(res.Error).Str("symbol", res.Symbol).Msg("Window rejected")
			health.MarkError(fmt.Sprintf("%s: %v", res.Symbol, res.Error))
			monitoring.RecordRejection(rejectionReason(res.Error))
			continue
		}

		eval := res.Evaluation
		evals = append(evals, eval)
		health.MarkEvaluation(res.Symbol)
		monitoring.RecordEvaluation(res.Symbol, eval.Signal.Action.String(), eval.Signal.Confidence, eval.Signal.RiskScore, res.Duration)
		monitoring.RecordRegime(res.Symbol, eval.Risk.MarketRegime.String())

		if _, err := recorder.Record(eval.Signal); err != nil {
			log.Warn().Err(err).Str("symbol", res.Symbol).Msg("Audit record failed")
		}
	}
	return evals
}

func rejectionReason(err error) string {
	switch {
	case engerrors.IsInsufficientData(err):
		return "insufficient_data"
	case engerrors.IsInvalidParameter(err):
		return "invalid_parameter"
	default:
		return "evaluation_failed"
	}
}

func startHTTPServer(log zerolog.Logger, addr string, health *monitoring.HealthChecker) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", monitoring.NewMetricsHandler())
	mux.Handle("/healthz", health)

	go func() {
		log.Info().Str("addr", addr).Msg("Serving metrics and health endpoints")
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Error().Err(err).Msg("Metrics server stopped")
		}
	}()
}

// waitForInterrupt blocks until SIGINT or SIGTERM
func waitForInterrupt() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}

func loadEnvFile(envFile string) error {
	// Load .env file if it exists
	if _, err := os.Stat(envFile); err == nil {
		return godotenv.Load(envFile)
	}
	return fmt.Errorf("env file %s not found", envFile)
}
