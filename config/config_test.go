package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/bwmfi/market"
	"github.com/rustyeddy/bwmfi/params"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "EUR_USD", cfg.Symbol)
	assert.Len(t, cfg.Timeframes, 3)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultMatchesBuiltinRegistry(t *testing.T) {
	reg, err := Default().Registry()
	require.NoError(t, err)

	want := params.Default()
	require.Equal(t, want.Keys(), reg.Keys())
	for _, k := range want.Keys() {
		a, err := want.Lookup(k.Symbol, k.Timeframe)
		require.NoError(t, err)
		b, err := reg.Lookup(k.Symbol, k.Timeframe)
		require.NoError(t, err)
		assert.Equal(t, a, b, k.String())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			config: Default(),
		},
		{
			name:    "missing symbol",
			config:  &Config{Timeframes: map[string]params.Overrides{"H1": {}}},
			wantErr: true,
			errMsg:  "symbol is required",
		},
		{
			name:    "no timeframes",
			config:  &Config{Symbol: "EURUSD"},
			wantErr: true,
			errMsg:  "at least one timeframe",
		},
		{
			name:    "unknown instrument",
			config:  &Config{Symbol: "INVALID", Timeframes: map[string]params.Overrides{"H1": {}}},
			wantErr: true,
			errMsg:  "unknown instrument",
		},
		{
			name:    "unknown timeframe",
			config:  &Config{Symbol: "EURUSD", Timeframes: map[string]params.Overrides{"H5": {}}},
			wantErr: true,
			errMsg:  "unknown timeframe",
		},
		{
			name: "duplicate timeframe",
			config: &Config{Symbol: "EURUSD", Timeframes: map[string]params.Overrides{
				"H1":        {},
				"PERIOD_H1": {},
			}},
			wantErr: true,
			errMsg:  "listed twice",
		},
		{
			name: "negative max spread",
			config: &Config{Symbol: "EURUSD", Timeframes: map[string]params.Overrides{
				"M15": {Strategy: params.StrategyOverrides{MaxSpread: floatp(-1)}},
			}},
			wantErr: true,
			errMsg:  "strategy.max_spread",
		},
		{
			name: "bad baseline",
			config: &Config{
				Symbol:     "EURUSD",
				Baseline:   params.Overrides{Indicator: params.IndicatorOverrides{MaxModes: intp(0)}},
				Timeframes: map[string]params.Overrides{"H1": {}},
			},
			wantErr: true,
			errMsg:  "indicator baseline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg.Symbol, loaded.Symbol)
			assert.Equal(t, cfg.Timeframes, loaded.Timeframes)
		})
	}
}

func TestLoadPartialOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	doc := `symbol: EURUSD
baseline:
  strategy:
    order_close_time: 30
timeframes:
  h1:
    strategy:
      signal_open_method: 2
      max_spread: 0
  PERIOD_M30:
    indicator:
      shift: 1
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	reg, err := cfg.Registry()
	require.NoError(t, err)
	assert.Equal(t, []market.Timeframe{market.M30, market.H1}, reg.Timeframes("EURUSD"))

	h1, err := reg.Lookup("EURUSD", market.H1)
	require.NoError(t, err)
	assert.Equal(t, 2, h1.Strategy.SignalOpenMethod)
	assert.Equal(t, 0.0, h1.Strategy.MaxSpread, "explicit zero must survive")
	assert.Equal(t, 30, h1.Strategy.OrderCloseTime)
	assert.Equal(t, 2.0, h1.Strategy.PriceStopLevel)

	m30, err := reg.Lookup("EURUSD", market.M30)
	require.NoError(t, err)
	assert.Equal(t, 1, m30.Indicator.Shift)
	assert.Equal(t, 4.0, m30.Strategy.MaxSpread, "absent key inherits the baseline")
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "garbage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not: [valid"), 0644))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}
