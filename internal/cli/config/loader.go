package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey stores the logger in the command context.
type loggerKey struct{}

// Package-level koanf instance and config file tracking.
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

// Top-level keys that keep their underscores when mapping environment
// variables; everything else nests at the first underscore
// (LEAPSCOPE_DATABASE_DSN -> database.dsn).
var flatKeys = map[string]bool{
	"data_dir":   true,
	"watch_file": true,
	"state_file": true,
	"verbose":    true,
}

// findConfigFile finds the config file to use.
// Priority: explicit path > leapscope.yaml > leapscope.yml > data dir copy.
func findConfigFile(explicit, dataDir string) string {
	if explicit != "" {
		return explicit
	}
	candidates := []string{
		"leapscope.yaml",
		"leapscope.yml",
		filepath.Join(dataDir, "leapscope.yaml"),
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig loads configuration from file, environment variables, and
// flags. Precedence (highest to lowest): flags > env vars > config file
// > defaults.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")

	// 1. Defaults. Durations are strings here and decode via the
	// mapstructure hook below.
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"data_dir":         "",
		"watch_file":       "",
		"state_file":       "",
		"verbose":          false,
		"database.dsn":     "md:",
		"database.attach":  "",
		"log.level":        "info",
		"log.file":         "",
		"ui.tick_interval": "100ms",
		"watch.debounce":   "100ms",
		"watch.settle":     "50ms",
		"history.dir":      "",
		"history.limit":    20,
		"data.max_rows":    50,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file.
	configFileUsed = findConfigFile(cfgFile, DefaultDataDir())
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Environment variables (LEAPSCOPE_ prefix).
	if err := k.Load(env.Provider("LEAPSCOPE_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority).
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set.
			if !f.Changed {
				return "", nil
			}
			return flagKey(f.Name), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal with duration decoding.
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	resolvePaths(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	currentConfig = &cfg
	return &cfg, nil
}

// envTransform maps LEAPSCOPE_DATABASE_DSN style names onto config keys.
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "LEAPSCOPE_"))
	if flatKeys[key] {
		return key
	}
	return strings.Replace(key, "_", ".", 1)
}

// flagKey maps kebab-case flag names onto config keys.
func flagKey(name string) string {
	switch name {
	case "database":
		return "database.dsn"
	case "attach":
		return "database.attach"
	case "log-level":
		return "log.level"
	default:
		return strings.ReplaceAll(name, "-", "_")
	}
}

// resolvePaths fills in everything derived from the data directory.
func resolvePaths(cfg *Config) {
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir()
	}
	if cfg.WatchFile == "" {
		cfg.WatchFile = filepath.Join(cfg.DataDir, "current.json")
	}
	if cfg.StateFile == "" {
		cfg.StateFile = filepath.Join(cfg.DataDir, "state.db")
	}
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(cfg.DataDir, "leapscope.log")
	}
	if cfg.History.Dir == "" {
		cfg.History.Dir = filepath.Join(cfg.DataDir, "history")
	}
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key used for storing the logger, letting
// the commands package retrieve it without an import cycle.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
