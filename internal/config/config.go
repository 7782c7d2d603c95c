// Package config loads and validates the growthsim configuration from YAML,
// environment variables, and command-line overrides.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for a growthsim run. It is built
// once (defaults, then YAML, then env, then flags) and never mutated after;
// components receive it by value or as read-only fields.
type Config struct {
	Simulation Simulation `yaml:"simulation"`
	Histogram  Histogram  `yaml:"histogram"`
	Files      Files      `yaml:"files"`
	Export     Export     `yaml:"export"`
	Logging    Logging    `yaml:"logging"`
	Alpaca     Alpaca     `yaml:"alpaca"`
}

// Simulation holds the Monte Carlo engine parameters.
type Simulation struct {
	Trials     int     `yaml:"trials"`
	Volatility float64 `yaml:"volatility_factor"`
	Workers    int     `yaml:"workers"`
	// Seed of 0 selects a time-based seed per run.
	Seed int64 `yaml:"seed"`
}

// Histogram holds the ASCII histogram dimensions.
type Histogram struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Files holds input/output paths.
type Files struct {
	Input      string `yaml:"input"`
	Output     string `yaml:"output"`
	DataDir    string `yaml:"data_dir"`
	SQLitePath string `yaml:"sqlite_path"`
}

// Export selects optional exports of the raw trial outcomes and summaries.
type Export struct {
	CSV     bool `yaml:"csv"`
	Parquet bool `yaml:"parquet"`
	History bool `yaml:"history"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Alpaca holds credentials and endpoints for the Alpaca market-data API,
// used only by the forecast gatherer.
type Alpaca struct {
	APIKey          string `yaml:"api_key"`
	APISecret       string `yaml:"api_secret"`
	DataURL         string `yaml:"data_url"`
	YearsBack       int    `yaml:"years_back"`
	RateLimitPerMin int    `yaml:"rate_limit_per_min"`
}

// ---------------------------------------------------------------------------
// Defaults and loading
// ---------------------------------------------------------------------------

// Default returns the configuration used when no YAML file or overrides are
// supplied. Defaults mirror the tool's documented behaviour: 10,000 trials,
// volatility factor 1.5, one worker per CPU, 60x20 histogram.
func Default() Config {
	return Config{
		Simulation: Simulation{
			Trials:     10_000,
			Volatility: 1.5,
			Workers:    runtime.NumCPU(),
		},
		Histogram: Histogram{Width: 60, Height: 20},
		Files: Files{
			Input:      "Forecasts.txt",
			Output:     "Monte_Carlo_Results.txt",
			DataDir:    "data",
			SQLitePath: "growthsim.db",
		},
		Logging: Logging{Level: "info", Format: "text"},
		Alpaca: Alpaca{
			YearsBack:       5,
			RateLimitPerMin: 200,
		},
	}
}

// Load reads the YAML configuration file at the given path on top of the
// defaults and then applies environment variable overrides. An empty path
// yields defaults plus env overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	return cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides
// the corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GROWTHSIM_DATA_DIR"); v != "" {
		cfg.Files.DataDir = v
	}
	if v := os.Getenv("GROWTHSIM_SQLITE_PATH"); v != "" {
		cfg.Files.SQLitePath = v
	}
	if v := os.Getenv("GROWTHSIM_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("GROWTHSIM_TRIALS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.Trials = n
		}
	}
	if v := os.Getenv("GROWTHSIM_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.Workers = n
		}
	}

	// Standard Alpaca env vars (canonical names used by the SDK).
	if v := os.Getenv("APCA_API_KEY_ID"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("APCA_API_SECRET_KEY"); v != "" {
		cfg.Alpaca.APISecret = v
	}
}

// Validate rejects configurations the engine must never see. All engine
// components assume a validated, positive configuration.
func (c Config) Validate() error {
	if c.Simulation.Trials <= 0 {
		return fmt.Errorf("config: trials must be positive, got %d", c.Simulation.Trials)
	}
	if c.Simulation.Volatility <= 0 {
		return fmt.Errorf("config: volatility factor must be positive, got %g", c.Simulation.Volatility)
	}
	if c.Simulation.Workers <= 0 {
		return fmt.Errorf("config: workers must be positive, got %d", c.Simulation.Workers)
	}
	if c.Histogram.Width <= 0 || c.Histogram.Height <= 0 {
		return fmt.Errorf("config: histogram dimensions must be positive, got %dx%d",
			c.Histogram.Width, c.Histogram.Height)
	}
	if c.Files.Input == "" {
		return fmt.Errorf("config: input file must be set")
	}
	return nil
}
