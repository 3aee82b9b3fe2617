// Package cli provides the command-line interface for leapscope.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapscope/internal/cli/commands"
	"github.com/leapstack-labs/leapscope/internal/cli/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// configKey is used to store config in context.
type configKey struct{}

// NewRootCmd creates and returns the root command. Running it with no
// subcommand starts the dashboard.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "leapscope",
		Short: "Leapscope - live terminal dashboard for chart data",
		Long: `Leapscope renders a live terminal dashboard over a JSON chart feed.

It watches a feed file for chart payloads, draws them as bar, line, or
scatter charts, and drills into individual data points with SQL queries
against DuckDB or MotherDuck. Past payloads are kept as snapshots that
can be reopened at any time.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for commands that must work before
			// (or without) a valid configuration.
			switch cmd.Name() {
			case "help", "completion", "__complete", "version", "init":
				return nil
			}

			// Load configuration with CLI flag overrides
			var err error
			cfg, err = config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			// Build the file-backed logger; the terminal belongs to the
			// dashboard, so nothing is ever logged to stdout.
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}

			// Store config and logger in context
			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = context.WithValue(ctx, config.LoggerKey(), logger)
			cmd.SetContext(ctx)

			// Print config file used (if verbose)
			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", configFile)
				}
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd.Context())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set version template
	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Built with Go and DuckDB
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./leapscope.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "Data directory (default: ~/.leapscope)")
	rootCmd.PersistentFlags().String("watch-file", "", "Chart feed file to watch (default: <data-dir>/current.json)")
	rootCmd.PersistentFlags().String("database", "", "DuckDB connection string (md: for MotherDuck, path for a local file)")
	rootCmd.PersistentFlags().String("attach", "", "Statement executed once after connecting, e.g. an ATTACH")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose logging (implies --log-level debug)")

	// Register completion for log-level flag
	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewQueryCommand())
	rootCmd.AddCommand(commands.NewHistoryCommand())
	rootCmd.AddCommand(commands.NewLogCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	// Fall back to the last loaded config if none in context
	if c := config.GetCurrentConfig(); c != nil {
		return c
	}
	return &config.Config{}
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for leapscope.

To load completions:

Bash:
  $ source <(leapscope completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ leapscope completion bash > /etc/bash_completion.d/leapscope
  # macOS:
  $ leapscope completion bash > $(brew --prefix)/etc/bash_completion.d/leapscope

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ leapscope completion zsh > "${fpath[1]}/_leapscope"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ leapscope completion fish | source

  # To load completions for each session, execute once:
  $ leapscope completion fish > ~/.config/fish/completions/leapscope.fish

PowerShell:
  PS> leapscope completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> leapscope completion powershell > leapscope.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	return cmd
}
