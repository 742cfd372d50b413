package config

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Config carries every tunable of the analysis engine. Field defaults
// are applied first, then the YAML file, then environment overrides;
// the result must pass validation before the engine accepts it.
type Config struct {
	MinCandles int `yaml:"min_candles" default:"100" validate:"gte=60"`

	Weights struct {
		Trend    float64 `yaml:"trend" default:"0.30" validate:"gte=0,lte=1"`
		Momentum float64 `yaml:"momentum" default:"0.40" validate:"gte=0,lte=1"`
	} `yaml:"weights"`

	Momentum struct {
		Overbought float64 `yaml:"overbought" default:"70" validate:"gt=50,lte=100"`
		Oversold   float64 `yaml:"oversold" default:"30" validate:"gte=0,lt=50"`
	} `yaml:"momentum"`

	Volatility struct {
		Lookback         int     `yaml:"lookback" default:"90" validate:"gte=14"`
		SqueezeThreshold float64 `yaml:"squeeze_threshold" default:"0.04" validate:"gt=0"`
	} `yaml:"volatility"`

	Volume struct {
		SpikePeriod    int     `yaml:"spike_period" default:"20" validate:"gte=2"`
		SpikeRatio     float64 `yaml:"spike_ratio" default:"1.5" validate:"gt=1"`
		DroughtRatio   float64 `yaml:"drought_ratio" default:"0.5" validate:"gt=0,lt=1"`
		MultiplierStep float64 `yaml:"multiplier_step" default:"0.1" validate:"gt=0,lte=0.5"`
	} `yaml:"volume"`

	Risk struct {
		VolatilityWeight float64 `yaml:"volatility_weight" default:"0.5" validate:"gte=0,lte=1"`
		LiquidityWeight  float64 `yaml:"liquidity_weight" default:"0.3" validate:"gte=0,lte=1"`
		DrawdownWeight   float64 `yaml:"drawdown_weight" default:"0.2" validate:"gte=0,lte=1"`
		DrawdownCap      float64 `yaml:"drawdown_cap" default:"0.20" validate:"gt=0,lte=1"`
		RiskPerTrade     float64 `yaml:"risk_per_trade" default:"0.02" validate:"gt=0,lte=0.1"`
		MaxExposure      float64 `yaml:"max_exposure" default:"0.10" validate:"gt=0,lte=1"`
	} `yaml:"risk"`

	Regime struct {
		TrendThreshold     float64 `yaml:"trend_threshold" default:"0.6" validate:"gt=0,lt=1"`
		AlignmentThreshold float64 `yaml:"alignment_threshold" default:"0.6" validate:"gt=0,lte=1"`
		VolatileThreshold  float64 `yaml:"volatile_threshold" default:"0.8" validate:"gt=0,lt=1"`
	} `yaml:"regime"`

	Logging struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
	} `yaml:"logging"`
}

// Load builds the configuration from defaults, the optional YAML file at
// path, and environment overrides, then validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate checks the struct tags plus the invariants tags cannot express
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	riskSum := c.Risk.VolatilityWeight + c.Risk.LiquidityWeight + c.Risk.DrawdownWeight
	if math.Abs(riskSum-1) > 0.001 {
		return fmt.Errorf("risk weights must sum to 1, got %.3f", riskSum)
	}
	if c.Weights.Trend+c.Weights.Momentum > 1 {
		return fmt.Errorf("trend and momentum weights must not exceed 1 combined, got %.3f",
			c.Weights.Trend+c.Weights.Momentum)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Logging.Level = getEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("LOG_FORMAT", cfg.Logging.Format)
	cfg.MinCandles = getEnvInt("MIN_CANDLES", cfg.MinCandles)
	cfg.Risk.RiskPerTrade = getEnvFloat("RISK_PER_TRADE", cfg.Risk.RiskPerTrade)
	cfg.Risk.MaxExposure = getEnvFloat("MAX_EXPOSURE", cfg.Risk.MaxExposure)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}
