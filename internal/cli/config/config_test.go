package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "md:", cfg.Database.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 100*time.Millisecond, cfg.UI.TickInterval)
	assert.Equal(t, 100*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, 50*time.Millisecond, cfg.Watch.Settle)
	assert.Equal(t, 20, cfg.History.Limit)
	assert.Equal(t, 50, cfg.Data.MaxRows)

	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, filepath.Join(cfg.DataDir, "current.json"), cfg.WatchFile)
	assert.Equal(t, filepath.Join(cfg.DataDir, "state.db"), cfg.StateFile)
	assert.Equal(t, filepath.Join(cfg.DataDir, "history"), cfg.History.Dir)
	assert.Equal(t, filepath.Join(cfg.DataDir, "leapscope.log"), cfg.Log.File)
}

func TestLoadConfigFromFile(t *testing.T) {
	ResetConfig()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "leapscope.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
data_dir: `+dir+`
database:
  dsn: local.duckdb
ui:
  tick_interval: 250ms
history:
  limit: 5
`), 0o644))

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "local.duckdb", cfg.Database.DSN)
	assert.Equal(t, 250*time.Millisecond, cfg.UI.TickInterval)
	assert.Equal(t, 5, cfg.History.Limit)
	assert.Equal(t, cfgPath, GetConfigFileUsed())
	// Untouched keys keep their defaults.
	assert.Equal(t, 50, cfg.Data.MaxRows)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	ResetConfig()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "leapscope.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("database:\n  dsn: from_file.duckdb\n"), 0o644))

	t.Setenv("LEAPSCOPE_DATABASE_DSN", "from_env.duckdb")
	t.Setenv("LEAPSCOPE_DATA_MAX_ROWS", "10")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)
	assert.Equal(t, "from_env.duckdb", cfg.Database.DSN)
	assert.Equal(t, 10, cfg.Data.MaxRows)
}

func TestLoadConfigFlagsWin(t *testing.T) {
	ResetConfig()
	t.Setenv("LEAPSCOPE_DATABASE_DSN", "from_env.duckdb")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("database", "", "")
	flags.String("log-level", "", "")
	flags.String("data-dir", "", "")
	require.NoError(t, flags.Parse([]string{
		"--database", "from_flag.duckdb",
		"--log-level", "warn",
	}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "from_flag.duckdb", cfg.Database.DSN)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfigUnchangedFlagsAreIgnored(t *testing.T) {
	ResetConfig()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("database", "flag-default", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "md:", cfg.Database.DSN, "unset flags never override defaults")
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"LEAPSCOPE_DATA_DIR", "data_dir"},
		{"LEAPSCOPE_WATCH_FILE", "watch_file"},
		{"LEAPSCOPE_DATABASE_DSN", "database.dsn"},
		{"LEAPSCOPE_DATA_MAX_ROWS", "data.max_rows"},
		{"LEAPSCOPE_UI_TICK_INTERVAL", "ui.tick_interval"},
		{"LEAPSCOPE_LOG_LEVEL", "log.level"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, envTransform(tt.in), tt.in)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{DSN: "md:"},
			Log:      LogConfig{Level: "info"},
			UI:       UIConfig{TickInterval: 100 * time.Millisecond},
			Watch:    WatchConfig{Debounce: 100 * time.Millisecond, Settle: 50 * time.Millisecond},
			History:  HistoryConfig{Limit: 20},
			Data:     DataConfig{MaxRows: 50},
		}
	}

	assert.NoError(t, Validate(valid()))

	cfg := valid()
	cfg.Log.Level = "loud"
	assert.ErrorContains(t, Validate(cfg), "log.level")

	cfg = valid()
	cfg.Data.MaxRows = 0
	assert.ErrorContains(t, Validate(cfg), "data.max_rows")

	cfg = valid()
	cfg.Database.DSN = ""
	assert.ErrorContains(t, Validate(cfg), "database.dsn")

	cfg = valid()
	cfg.UI.TickInterval = 0
	assert.ErrorContains(t, Validate(cfg), "tick_interval")
}

func TestLogLevel(t *testing.T) {
	cfg := &Config{Log: LogConfig{Level: "warn"}}
	assert.Equal(t, "WARN", cfg.LogLevel().String())

	cfg.Verbose = true
	assert.Equal(t, "DEBUG", cfg.LogLevel().String(), "verbose wins over log.level")
}
