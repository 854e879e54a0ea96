package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete bot configuration. Brokerage credentials are
// deliberately absent: they come from the environment, never a file.
type Config struct {
	Broker   BrokerConfig   `json:"broker" yaml:"broker"`
	Engine   EngineConfig   `json:"engine" yaml:"engine"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Screener ScreenerConfig `json:"screener" yaml:"screener"`
}

// BrokerConfig selects the trading environment.
type BrokerConfig struct {
	// Env is "paper" or "live". APCA_API_BASE_URL, when set, overrides
	// the environment's default URL.
	Env string `json:"env" yaml:"env"`
}

// EngineConfig contains the decision parameters.
type EngineConfig struct {
	DividendSymbol string  `json:"dividend_symbol" yaml:"dividend_symbol"`
	ProfitTarget   float64 `json:"profit_target" yaml:"profit_target"`
	SizingFraction float64 `json:"sizing_fraction" yaml:"sizing_fraction"`
	MinReinvest    float64 `json:"min_reinvest" yaml:"min_reinvest"`
	OrderPause     string  `json:"order_pause,omitempty" yaml:"order_pause,omitempty"` // e.g. "2s"
}

// ParseOrderPause converts the pause string to a time.Duration.
func (e EngineConfig) ParseOrderPause() (time.Duration, error) {
	if e.OrderPause == "" {
		return 0, nil
	}
	return time.ParseDuration(e.OrderPause)
}

// JournalConfig selects where the audit log and profit ledger live.
type JournalConfig struct {
	Type    string `json:"type" yaml:"type"` // "csv" or "sqlite"
	LogFile string `json:"log_file,omitempty" yaml:"log_file,omitempty"`
	DBPath  string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// ScreenerConfig points at the signal feed.
type ScreenerConfig struct {
	CSVPath string `json:"csv_path" yaml:"csv_path"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on
// content).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on
// extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Broker.Env != "paper" && c.Broker.Env != "live" {
		return fmt.Errorf("broker.env must be 'paper' or 'live'")
	}
	if c.Engine.DividendSymbol == "" {
		return fmt.Errorf("engine.dividend_symbol is required")
	}
	if c.Engine.ProfitTarget <= 0 {
		return fmt.Errorf("engine.profit_target must be positive")
	}
	if c.Engine.SizingFraction <= 0 || c.Engine.SizingFraction > 1 {
		return fmt.Errorf("engine.sizing_fraction must be between 0 and 1")
	}
	if c.Engine.MinReinvest < 0 {
		return fmt.Errorf("engine.min_reinvest must not be negative")
	}
	if _, err := c.Engine.ParseOrderPause(); err != nil {
		return fmt.Errorf("engine.order_pause: %w", err)
	}
	if c.Journal.Type != "csv" && c.Journal.Type != "sqlite" {
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if c.Journal.Type == "csv" && c.Journal.LogFile == "" {
		return fmt.Errorf("journal.log_file required for CSV type")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path required for SQLite type")
	}
	if c.Screener.CSVPath == "" {
		return fmt.Errorf("screener.csv_path is required")
	}
	return nil
}

// Default returns a configuration with the design defaults.
func Default() *Config {
	return &Config{
		Broker: BrokerConfig{
			Env: "paper",
		},
		Engine: EngineConfig{
			DividendSymbol: "VIG",
			ProfitTarget:   0.05,
			SizingFraction: 0.05,
			MinReinvest:    1.00,
			OrderPause:     "2s",
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "trading-log.db",
		},
		Screener: ScreenerConfig{
			CSVPath: "screener.csv",
		},
	}
}
