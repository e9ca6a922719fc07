// Cupcraft is an interactive coffee order wizard for the terminal.
//
// It walks through bean, grind, preparation and toppings, shows a review
// with the running total, and hands the finished order to a cupcraft
// counter or, when none is configured, to the local log.
//
// Usage:
//
//	cupcraft [command] [flags]
//
// Running without arguments launches the wizard.
// See 'cupcraft --help' for available commands.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/muurk/cupcraft/internal/config"
	"github.com/muurk/cupcraft/internal/logging"
	"github.com/muurk/cupcraft/internal/version"
)

func main() {
	// load .env if present so CUPCRAFT_LOG_LEVEL can live there
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	catalogPath string
	counterAddr string
	discover    bool
	logLevel    string
	logFile     string
)

// settings is loaded once in PersistentPreRunE
var settings *config.Settings

var rootCmd = &cobra.Command{
	Use:   "cupcraft",
	Short: "Craft a custom coffee order",
	Long: `An interactive wizard for building a custom coffee order.

Choose a bean, a grind level, a preparation method and any toppings, then
review the order and send it to a cupcraft counter.

If no command is specified, the wizard will launch automatically.`,
	Version:      version.Version,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run wizard when no subcommand provided
		return runWizard(cmd, args)
	},
}

func init() {
	// Assigned here rather than in the literal: setup refers to rootCmd
	rootCmd.PersistentPreRunE = setup

	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Catalog YAML file (default: built-in menu)")
	rootCmd.PersistentFlags().StringVar(&counterAddr, "counter", "", "Counter address host:port to send orders to")
	rootCmd.PersistentFlags().BoolVar(&discover, "discover", false, "Find a counter on the local network via mDNS")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); logging is off when empty")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file (default: cupcraft.log in the config directory for the wizard)")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cupcraft\n\n%s", version.Get())
	},
}

// setup loads user settings and starts logging. Flags win over settings.
func setup(cmd *cobra.Command, args []string) error {
	s, err := config.LoadSettings()
	if err != nil {
		return err
	}
	settings = s
	prefs := settings.Preferences

	if catalogPath == "" {
		catalogPath = prefs.CatalogPath
	}
	if counterAddr == "" {
		counterAddr = prefs.CounterAddr
	}
	if !cmd.Flags().Changed("discover") {
		discover = prefs.AutoDiscover
	}
	if logLevel == "" {
		logLevel = prefs.LogLevel
	}
	if logFile == "" {
		logFile = prefs.LogFile
	}

	// The wizard owns the terminal, so its logs go to a file
	output := logFile
	if output == "" && logLevel != "" && cmd == rootCmd {
		if output, err = config.DefaultLogPath(); err != nil {
			return err
		}
	}
	return logging.Initialize(logLevel, output)
}
