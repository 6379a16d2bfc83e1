package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/bwmfi/market"
	"github.com/rustyeddy/bwmfi/params"
)

// Config is a parameter file: one symbol, an optional change to the shared
// baselines, and per-timeframe overrides. Keys left out inherit.
type Config struct {
	Symbol     string                      `json:"symbol" yaml:"symbol"`
	Baseline   params.Overrides            `json:"baseline" yaml:"baseline,omitempty"`
	Timeframes map[string]params.Overrides `json:"timeframes" yaml:"timeframes"`
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = &Config{}
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

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
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

// Validate checks the file by building the registry it describes.
func (c *Config) Validate() error {
	if c.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if len(c.Timeframes) == 0 {
		return fmt.Errorf("timeframes must list at least one timeframe")
	}
	_, err := c.Registry()
	return err
}

// Table converts the timeframe keys and returns the override table.
func (c *Config) Table() (params.Table, error) {
	t := make(params.Table, len(c.Timeframes))
	for name, ov := range c.Timeframes {
		tf, err := market.ParseTimeframe(name)
		if err != nil {
			return nil, fmt.Errorf("timeframes: %w", err)
		}
		if _, dup := t[tf]; dup {
			return nil, fmt.Errorf("timeframes: %s listed twice", tf)
		}
		t[tf] = ov
	}
	return t, nil
}

// Registry builds the parameter registry described by c. Extra options are
// applied after the ones derived from the file.
func (c *Config) Registry(opts ...params.Option) (*params.Registry, error) {
	table, err := c.Table()
	if err != nil {
		return nil, err
	}
	ind := params.NewIndicatorParams(params.IndicatorDefaults(), "", c.Baseline.Indicator)
	stg := params.NewStrategyParams(params.StrategyDefaults(), c.Baseline.Strategy)

	all := append([]params.Option{
		params.WithBaselines(ind, stg),
		params.WithTable(c.Symbol, table),
	}, opts...)
	return params.NewRegistry(all...)
}

// Default returns the built-in EURUSD parameter set.
func Default() *Config {
	cfg := &Config{
		Symbol:     "EUR_USD",
		Timeframes: make(map[string]params.Overrides),
	}
	for tf, ov := range params.EURUSD() {
		cfg.Timeframes[string(tf)] = ov
	}
	return cfg
}
