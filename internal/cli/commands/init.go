package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// starterHeader sits above the generated body. It covers the path
// settings, which stay commented out because their defaults derive
// from data_dir.
const starterHeader = `# leapscope configuration.
# Every value can also be set with a LEAPSCOPE_* environment variable
# or a command-line flag; flags win over the environment, which wins
# over this file.
#
# Paths default to locations under the data directory. Uncomment to
# relocate them:
# data_dir: /home/you/.leapscope
# watch_file: /home/you/.leapscope/current.json
#
# database.dsn "md:" targets MotherDuck and needs MOTHERDUCK_TOKEN in
# the environment; a file path or ":memory:" opens a local database.
# database.attach is a statement run once after connecting, typically
# "ATTACH 'analytics.duckdb' AS analytics".
#
# log.level is one of debug, info, warn, error. watch.debounce and
# watch.settle control how feed-file event bursts are coalesced.
# history.limit caps the snapshots on the Home tab, data.max_rows the
# rows kept per payload.

`

// starterBody mirrors the keys the config loader reads, so the file
// init writes always round-trips through LoadConfig.
type starterBody struct {
	Database struct {
		DSN string `yaml:"dsn"`
	} `yaml:"database"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	UI struct {
		TickInterval string `yaml:"tick_interval"`
	} `yaml:"ui"`
	Watch struct {
		Debounce string `yaml:"debounce"`
		Settle   string `yaml:"settle"`
	} `yaml:"watch"`
	History struct {
		Limit int `yaml:"limit"`
	} `yaml:"history"`
	Data struct {
		MaxRows int `yaml:"max_rows"`
	} `yaml:"data"`
}

func starterConfig() ([]byte, error) {
	var b starterBody
	b.Database.DSN = "md:"
	b.Log.Level = "info"
	b.UI.TickInterval = "100ms"
	b.Watch.Debounce = "100ms"
	b.Watch.Settle = "50ms"
	b.History.Limit = 20
	b.Data.MaxRows = 50

	body, err := yaml.Marshal(b)
	if err != nil {
		return nil, err
	}
	return append([]byte(starterHeader), body...), nil
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a starter configuration file",
		Long: `Write a commented leapscope.yaml with the default configuration.

The file is created in the current directory unless another directory
is given. Existing files are left alone unless --force is set.`,
		Example: `  # Write ./leapscope.yaml
  leapscope init

  # Write it somewhere else
  leapscope init ~/projects/dashboards

  # Overwrite an existing file
  leapscope init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	// Create directory if specified and doesn't exist
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "leapscope.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
	}

	content, err := starterConfig()
	if err != nil {
		return fmt.Errorf("failed to render starter config: %w", err)
	}
	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Set MOTHERDUCK_TOKEN or change database.dsn, then run 'leapscope' to start the dashboard.")
	return nil
}
