package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "VIG", cfg.Engine.DividendSymbol)
	assert.Equal(t, 0.05, cfg.Engine.ProfitTarget)
	assert.Equal(t, 0.05, cfg.Engine.SizingFraction)
	assert.Equal(t, 1.00, cfg.Engine.MinReinvest)

	pause, err := cfg.Engine.ParseOrderPause()
	assert.NoError(t, err)
	assert.Equal(t, 2*time.Second, pause)
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad broker env", func(c *Config) { c.Broker.Env = "sandbox" }},
		{"empty dividend symbol", func(c *Config) { c.Engine.DividendSymbol = "" }},
		{"zero profit target", func(c *Config) { c.Engine.ProfitTarget = 0 }},
		{"sizing fraction above one", func(c *Config) { c.Engine.SizingFraction = 1.5 }},
		{"negative reinvest threshold", func(c *Config) { c.Engine.MinReinvest = -1 }},
		{"bad order pause", func(c *Config) { c.Engine.OrderPause = "2 seconds" }},
		{"bad journal type", func(c *Config) { c.Journal.Type = "postgres" }},
		{"csv journal without file", func(c *Config) { c.Journal.Type = "csv"; c.Journal.LogFile = "" }},
		{"sqlite journal without path", func(c *Config) { c.Journal.DBPath = "" }},
		{"missing screener feed", func(c *Config) { c.Screener.CSVPath = "" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadFromFileYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "reinvestor.yaml")
	cfg := Default()
	cfg.Engine.ProfitTarget = 0.10
	cfg.Journal.Type = "csv"
	cfg.Journal.LogFile = "log.csv"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0.10, loaded.Engine.ProfitTarget)
	assert.Equal(t, "csv", loaded.Journal.Type)
	assert.Equal(t, "log.csv", loaded.Journal.LogFile)
}

func TestLoadFromFileJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "reinvestor.json")
	cfg := Default()
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "VIG", loaded.Engine.DividendSymbol)
}

func TestLoadFromFileMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromFileInvalidContent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  profit_target: -3\n"), 0644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}
