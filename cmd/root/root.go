// Package root contains the root command for the application
package root

import (
	"fmt"

	"lldbank/lld-validator/internal/config"
	"lldbank/lld-validator/internal/container"
	"lldbank/lld-validator/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to all commands
type CommonFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
	Backend    string
	Delimiter  string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// AppConfig is the configuration loaded before any subcommand runs
	AppConfig *config.Config

	// NewContainer builds the dependency container for a command. Tests
	// replace it to inject an in-memory store.
	NewContainer = container.NewContainer

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "lld-validator",
		Short: "Validate party categories and statuses of cross-border transaction reports.",
		Long: `lld-validator checks the receiver and payer of every row of a cross-border
transaction report against reference keyword tables and bank codes, and flags
the category and status cells that disagree with the suggested values.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to lld-validator!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.InitializeConfigFromFile(SharedFlags.ConfigFile)
			if err != nil {
				return err
			}
			applyFlagOverrides(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			Log = config.ConfigureLoggingFromConfig(cfg)
			logging.SetDefaultLogger(logging.NewLogrusAdapterFromLogger(Log))
			AppConfig = cfg
			return nil
		},
	}

	// SharedFlags holds the persistent flag values
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	flags := Cmd.PersistentFlags()
	flags.StringVarP(&SharedFlags.ConfigFile, "config", "c", "", "Config file (default: search $HOME/.lld-validator, .lld-validator, .)")
	flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	flags.StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format (text, json)")
	flags.StringVar(&SharedFlags.Backend, "store", "", "Reference store backend (yaml, sqlite)")
	flags.StringVar(&SharedFlags.Delimiter, "csv-delimiter", "", "CSV delimiter of input and output files")
}

func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	changed := func(name string) bool {
		f := cmd.Root().PersistentFlags().Lookup(name)
		return f != nil && f.Changed
	}
	if changed("log-level") {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if changed("log-format") {
		cfg.Log.Format = SharedFlags.LogFormat
	}
	if changed("store") {
		cfg.Store.Backend = SharedFlags.Backend
	}
	if changed("csv-delimiter") {
		cfg.CSV.Delimiter = SharedFlags.Delimiter
	}
}

// Container builds the dependency container from the loaded configuration.
// The caller closes it.
func Container() (*container.Container, error) {
	cfg := AppConfig
	if cfg == nil {
		cfg = config.Default()
	}
	return NewContainer(cfg)
}
