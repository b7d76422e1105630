package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/payrecon/internal/reconcile"
	"github.com/cleared-dev/payrecon/internal/simulate"
)

// FileName is the conventional config file name.
const FileName = "payrecon.yaml"

// Config represents the top-level payrecon.yaml configuration.
type Config struct {
	Matching   MatchingConfig   `yaml:"matching"`
	Data       DataConfig       `yaml:"data"`
	Simulation SimulationConfig `yaml:"simulation"`
	Logging    LoggingConfig    `yaml:"logging"`
	Server     ServerConfig     `yaml:"server"`
}

// MatchingConfig tunes the reconciliation engine.
type MatchingConfig struct {
	Tolerance         float64 `yaml:"tolerance"`
	MinPlausibleRatio float64 `yaml:"min_plausible_ratio"`
	MaxPlausibleRatio float64 `yaml:"max_plausible_ratio"`
}

// DataConfig locates the CSV dataset and its companions.
type DataConfig struct {
	Dir    string `yaml:"dir"`
	Inbox  string `yaml:"inbox"`   // bank exports waiting for import
	RunLog string `yaml:"run_log"` // CSV history of recorded runs
}

// SimulationConfig controls the demo data generator.
type SimulationConfig struct {
	Seed          uint64        `yaml:"seed"`
	ExtraInvoices int           `yaml:"extra_invoices"`
	ExtraPayments int           `yaml:"extra_payments"`
	Delay         time.Duration `yaml:"delay"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

// Load reads a payrecon.yaml file from disk. Keys absent from the file keep
// their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Matching: MatchingConfig{
			Tolerance:         0.01,
			MinPlausibleRatio: 0.30,
			MaxPlausibleRatio: 1.10,
		},
		Data: DataConfig{
			Dir:    "data",
			Inbox:  "import",
			RunLog: "reports/runs.csv",
		},
		Simulation: SimulationConfig{
			Seed:          1,
			ExtraInvoices: simulate.DefaultExtraInvoices,
			ExtraPayments: simulate.DefaultExtraPayments,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
		},
	}
}

// Validate checks value ranges across all sections.
func (c *Config) Validate() error {
	if _, err := c.Matching.Options(); err != nil {
		return fmt.Errorf("matching: %w", err)
	}
	if err := c.Simulation.Generator().Validate(); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging: unknown level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging: unknown format %q", c.Logging.Format)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server: port %d out of range", c.Server.Port)
	}
	return nil
}

// Options converts the matching section to engine options.
func (m MatchingConfig) Options() (reconcile.Options, error) {
	opts := reconcile.Options{
		Tolerance:         decimal.NewFromFloat(m.Tolerance),
		MinPlausibleRatio: decimal.NewFromFloat(m.MinPlausibleRatio),
		MaxPlausibleRatio: decimal.NewFromFloat(m.MaxPlausibleRatio),
	}
	if err := opts.Validate(); err != nil {
		return reconcile.Options{}, err
	}
	return opts, nil
}

// Generator builds the simulator described by the simulation section.
func (s SimulationConfig) Generator() *simulate.Generator {
	return &simulate.Generator{
		Seed:          s.Seed,
		ExtraInvoices: s.ExtraInvoices,
		ExtraPayments: s.ExtraPayments,
		Delay:         s.Delay,
	}
}
