// Package root contains the root command for the application.
package root

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ledgerlens/internal/common"
	"ledgerlens/internal/config"
	"ledgerlens/internal/logging"
	"ledgerlens/pkg/ledger"
)

// CommonFlags represents the flags shared by multiple commands.
type CommonFlags struct {
	Input     string
	Output    string
	HintsFile string
	Format    string
}

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "ledgerlens",
		Short: "A CLI tool to turn bank statement PDFs into a normalized transaction ledger.",
		Long: `ledgerlens extracts transaction lines from bank and credit-card
statements, infers the statement's layout, year and date order, and emits a
normalized ledger as CSV together with a parse summary.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to ledgerlens!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()
			logging.SetDefaultLogger(logging.NewLogrusAdapterFromLogger(Log))
			common.SetLogger(logging.NewLogrusAdapterFromLogger(Log))

			cfg = config.GetGlobalConfig()
			if delim := os.Getenv("CSV_DELIMITER"); delim != "" {
				Log.WithField("delimiter", delim).Debug("Setting CSV delimiter from environment")
				common.SetDelimiter([]rune(delim)[0])
			} else if cfg.CSV.Delimiter != "" {
				common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
			}
		},
	}

	// SharedFlags holds common flag values accessible to all commands.
	SharedFlags = CommonFlags{}

	cfg *config.Config
)

// Config returns the global configuration, loading it if the root
// PersistentPreRun has not run yet.
func Config() *config.Config {
	if cfg == nil {
		cfg = config.GetGlobalConfig()
	}
	return cfg
}

// ParseOptions builds the parse options from the global configuration,
// overridden by the shared flags.
func ParseOptions() ledger.Options {
	c := Config()
	opts := ledger.DefaultOptions()
	opts.Logger = GetLogger()
	opts.HintsFile = SharedFlags.HintsFile
	if opts.HintsFile == "" {
		opts.HintsFile = c.Parse.HintsFile
	}
	opts.Extract.MergeWrapped = c.Extract.MergeWrapped
	opts.Extract.DropHeaderFooter = c.Extract.DropHeaderFooter
	opts.Extract.YTolerance = c.Extract.YTolerance
	opts.Reconcile.OutlierMinRows = c.Reconcile.OutlierMinRows
	opts.Reconcile.OutlierMultiplier = int64(c.Reconcile.OutlierMultiplier)
	return opts
}

// GetLogger returns the structured logger backed by the shared logrus
// instance.
func GetLogger() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}

// Init initializes the root command and all flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().StringVar(&SharedFlags.HintsFile, "hints", "", "YAML file overriding the description hint lists")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Format, "format", "text", "Report format (text or json)")
}
