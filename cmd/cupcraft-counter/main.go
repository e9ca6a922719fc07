// Cupcraft-counter is the order counter for the cupcraft wizard.
//
// It accepts orders over a websocket at /orders, reprices every ticket
// against its own catalog, journals accepted orders in a bbolt file and
// acknowledges them. Prometheus metrics are served at /metrics and a JSON
// health report at /healthz. With --advertise the counter announces itself
// over mDNS so wizards on the local network can find it.
//
// Usage:
//
//	cupcraft-counter serve [flags]
//
// See 'cupcraft-counter serve --help' for available options.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/muurk/cupcraft/internal/logging"
	"github.com/muurk/cupcraft/internal/version"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cupcraft-counter",
	Short: "Cupcraft order counter",
	Long: `A websocket order counter for the cupcraft wizard.

Wizards send finished orders to ws://<host>:<port>/orders. The counter
checks each ticket against its catalog, journals it and replies with an
acknowledgement.`,
	Version:      version.Version,
	SilenceUsage: true,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cupcraft-counter\n\n%s", version.Get())
	},
}
