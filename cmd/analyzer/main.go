package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/vutran1810/market-analysis-engine/internal/engine"
	"github.com/vutran1810/market-analysis-engine/internal/logger"
	"github.com/vutran1810/market-analysis-engine/pkg/config"
	datamanager "github.com/vutran1810/market-analysis-engine/pkg/data"
	"github.com/vutran1810/market-analysis-engine/pkg/reporting"
	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

func main() {
	var (
		configFile = flag.String("config", "", "Path to configuration file (YAML)")
		dataFile   = flag.String("data", "", "Path to historical data file (overrides -symbol/-interval lookup)")
		dataRoot   = flag.String("data-root", "data", "Root folder containing <SYMBOL>_<INTERVAL>.csv or <SYMBOL>/<INTERVAL>/candles.csv")
		symbol     = flag.String("symbol", "BTCUSDT", "Trading symbol")
		interval   = flag.String("interval", "1h", "Data interval to use (e.g., 15m,1h,4h,1d)")
		periodStr  = flag.String("period", "", "Limit data to trailing window (e.g., 7d,30d,180d or raw durations like 168h)")
		balance    = flag.Float64("balance", 0, "Account balance for position sizing (0 skips the sizing block)")
		xlsxOut    = flag.String("xlsx", "", "Write the evaluation workbook to this path")
		jsonOut    = flag.String("json", "", "Write the evaluation JSON to this path")
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

	printConfig(log, cfg, *symbol, *interval)

	eng, err := engine.New(cfg, engine.WithLogger(log))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build engine")
	}

	dm := datamanager.NewDataManager()

	path := strings.TrimSpace(*dataFile)
	if path == "" {
		path = dm.FindDataFile(*dataRoot, *symbol, *interval)
		if path == "" {
			log.Fatal().Str("symbol", *symbol).Str("interval", *interval).Str("data_root", *dataRoot).
				Msg("No data file found")
		}
	}

	candles, err := dm.LoadHistoricalData(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("Failed to load candle history")
	}
	candles = dm.Sanitize(candles)

	if s := strings.TrimSpace(*periodStr); s != "" {
		if d, ok := datamanager.ParseTrailingPeriod(s); ok {
			candles = dm.FilterDataByPeriod(candles, d)
			log.Info().Str("period", s).Int("candles", len(candles)).Msg("Trailing window applied")
		} else {
			log.Warn().Str("period", s).Msg("Unrecognized trailing period, using full history")
		}
	}

	md := types.MarketData{
		Symbol:  strings.ToUpper(strings.TrimSpace(*symbol)),
		Candles: candles,
	}

	eval, err := eng.Evaluate(md)
	if err != nil {
		log.Fatal().Err(err).Str("symbol", md.Symbol).Msg("Evaluation failed")
	}

	reporting.NewDefaultConsoleReporter().RenderEvaluation(eval)

	if *balance > 0 {
		printPositionSize(eng, eval, *balance)
	}

	if *xlsxOut != "" {
		if err := reporting.WriteEvaluationXLSX(eval, *xlsxOut); err != nil {
			log.Error().Err(err).Str("file", *xlsxOut).Msg("Failed to write workbook")
		} else {
			fmt.Printf("📁 Workbook written to %s\n", *xlsxOut)
		}
	}
	if *jsonOut != "" {
		if err := reporting.WriteEvaluationJSON(eval, *jsonOut); err != nil {
			log.Error().Err(err).Str("file", *jsonOut).Msg("Failed to write JSON report")
		} else {
			fmt.Printf("📁 JSON report written to %s\n", *jsonOut)
		}
	}
}

// printPositionSize suggests a size from the evaluated window. The stop
// distance comes from the support level, falling back to one ATR when
// support sits above the close.
func printPositionSize(eng *engine.Engine, eval *types.Evaluation, balance float64) {
	stop := eval.Snapshot.LastClose - eval.Snapshot.Support
	if stop <= 0 {
		stop = eval.Snapshot.ATR
	}

	qty, err := eng.PositionSize(engine.SizingRequest{
		AccountBalance:   balance,
		EntryPrice:       eval.Snapshot.LastClose,
		StopDistance:     stop,
		RegimeMultiplier: eval.Parameters.PositionMultiplier,
	})
	if err != nil {
		fmt.Printf("⚠️ Position sizing unavailable: %v\n", err)
		return
	}

	fmt.Printf("💰 Suggested position: %.4f units at %.2f (balance %.2f, stop distance %.2f)\n",
		qty, eval.Snapshot.LastClose, balance, stop)
}

// printConfig outputs the effective configuration
func printConfig(log zerolog.Logger, cfg *config.Config, symbol, interval string) {
	log.Info().
		Str("Symbol", symbol).
		Str("Interval", interval).
		Int("MinCandles", cfg.MinCandles).
		Float64("TrendWeight", cfg.Weights.Trend).
		Float64("MomentumWeight", cfg.Weights.Momentum).
		Float64("RiskPerTrade", cfg.Risk.RiskPerTrade).
		Float64("MaxExposure", cfg.Risk.MaxExposure).
		Str("LogLevel", cfg.Logging.Level).
		Str("LogFormat", cfg.Logging.Format).
		Msg("Configuration loaded")
}

func loadEnvFile(envFile string) error {
	// Load .env file if it exists
	if _, err := os.Stat(envFile); err == nil {
		return godotenv.Load(envFile)
	}
	return fmt.Errorf("env file %s not found", envFile)
}
