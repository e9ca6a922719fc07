package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/cupcraft/internal/catalog"
	"github.com/muurk/cupcraft/internal/counter"
	"github.com/muurk/cupcraft/internal/journal"
	"github.com/muurk/cupcraft/internal/logging"
	"github.com/muurk/cupcraft/internal/order"
	"github.com/muurk/cupcraft/internal/version"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ordersCmd)
}

// Serve command flags
var (
	serveConfig = counter.DefaultConfig()
	catalogPath string
	logFile     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the order counter",
	Long: `Start the counter and accept orders until SIGINT or SIGTERM.

Each websocket connection gets its own rate limiter (--rate orders per
second with bursts of --burst). Orders whose total does not match the
counter's catalog are rejected.`,
	Example: `  # Start on the default port with info logging
  cupcraft-counter serve --log-level info

  # Announce the counter on the local network
  cupcraft-counter serve --name front-bar --advertise

  # Custom journal file and a stricter rate limit
  cupcraft-counter serve --db /var/lib/cupcraft/orders.db --rate 0.5 --burst 2`,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveConfig.Host, "host", serveConfig.Host, "Listen host (empty = all interfaces)")
	f.IntVar(&serveConfig.Port, "port", serveConfig.Port, "Listen port")
	f.StringVar(&serveConfig.DBPath, "db", serveConfig.DBPath, "Order journal file")
	f.StringVar(&serveConfig.Name, "name", serveConfig.Name, "Counter name shown to wizards")
	f.BoolVar(&serveConfig.Advertise, "advertise", false, "Advertise the counter over mDNS")
	f.Float64Var(&serveConfig.Rate, "rate", serveConfig.Rate, "Sustained orders per second per connection")
	f.IntVar(&serveConfig.Burst, "burst", serveConfig.Burst, "Burst size per connection")
	f.StringVar(&serveConfig.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	f.StringVar(&logFile, "log-file", "", "Log file (default: stderr)")
	f.StringVar(&catalogPath, "catalog", "", "Catalog YAML file used to price orders (default: built-in menu)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(serveConfig.LogLevel, logFile); err != nil {
		return err
	}
	if err := serveConfig.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	serveConfig.Version = version.Version

	cat, err := catalog.LoadOrDefault(catalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	srv, err := counter.New(serveConfig, cat)
	if err != nil {
		return fmt.Errorf("failed to create counter: %w", err)
	}

	return srv.Start()
}

// Orders command flags
var (
	ordersDB    string
	ordersLimit int
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List journaled orders",
	Long: `Print the most recent orders from a counter journal, newest first.

The journal is opened read-write, so stop a running counter on the same
file first.`,
	Example: `  # Last 10 orders
  cupcraft-counter orders

  # Last 50 orders from a specific journal
  cupcraft-counter orders --db /var/lib/cupcraft/orders.db --limit 50`,
	RunE: runOrders,
}

func init() {
	ordersCmd.Flags().StringVar(&ordersDB, "db", journal.DefaultOptions().Path, "Order journal file")
	ordersCmd.Flags().IntVar(&ordersLimit, "limit", 10, "Maximum orders to list (0 = all)")
}

func runOrders(cmd *cobra.Command, args []string) error {
	opts := journal.DefaultOptions()
	opts.Path = ordersDB
	opts.Timeout = 2 * time.Second

	store, err := journal.Open(opts)
	if err != nil {
		return err
	}
	defer store.Close()

	total, err := store.Count()
	if err != nil {
		return err
	}
	entries, err := store.List(ordersLimit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No orders journaled yet.")
		return nil
	}

	fmt.Printf("Showing %d of %d order(s):\n\n", len(entries), total)
	var revenue float64
	for _, e := range entries {
		fmt.Printf("%s  #%s  %s\n", e.ReceivedAt.Local().Format("2006-01-02 15:04:05"), e.Ticket.ShortID(), e.Ticket.Summary())
		if e.RemoteAddr != "" {
			fmt.Printf("    from %s\n", e.RemoteAddr)
		}
		revenue += e.Ticket.Total
	}
	fmt.Printf("\nTotal for listed orders: %s\n", order.FormatPrice(revenue))
	return nil
}
