package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/cupcraft/internal/catalog"
	"github.com/muurk/cupcraft/internal/discovery"
	"github.com/muurk/cupcraft/internal/handoff"
	"github.com/muurk/cupcraft/internal/logging"
	"github.com/muurk/cupcraft/internal/order"
	"github.com/muurk/cupcraft/internal/ui"
	"github.com/muurk/cupcraft/internal/wizard/tui"
)

func init() {
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(scanCmd)
}

// destination is where orders are handed off to
type destination struct {
	processor handoff.Processor
	name      string // counter name, empty for the local log
	addr      string
}

func (d destination) String() string {
	if d.addr == "" {
		return "the local log"
	}
	return "counter " + d.name
}

// resolveDestination picks the order processor: an explicit --counter
// address first, then mDNS discovery, then the local log.
func resolveDestination() (destination, error) {
	if counterAddr != "" {
		p := handoff.NewCounterProcessor(counterAddr)
		name := counterAddr
		for n, known := range settings.Counters {
			if known.Addr == counterAddr {
				name = n
			}
		}
		p.Name = name
		return destination{processor: p, name: name, addr: counterAddr}, nil
	}

	if discover {
		timeout := settings.Preferences.DiscoverDuration()
		fmt.Printf("Looking for a counter (timeout: %s)...\n", timeout)

		counters, err := discovery.ScanForCounters(timeout)
		if err != nil {
			return destination{}, fmt.Errorf("counter discovery failed: %w", err)
		}
		if len(counters) == 0 {
			return destination{}, fmt.Errorf("no counters found on the local network; start one with 'cupcraft-counter serve --advertise'")
		}

		c := counters[0]
		logging.Info("Using discovered counter", zap.String("name", c.Name), zap.String("addr", c.Addr()))
		p := handoff.NewCounterProcessor(c.Addr())
		p.Name = c.Name
		return destination{processor: p, name: c.Name, addr: c.Addr()}, nil
	}

	return destination{processor: handoff.LogProcessor{}}, nil
}

// recordOrders remembers the counter used for accepted orders.
func recordOrders(dest destination, tickets []order.Ticket) error {
	if dest.addr == "" || len(tickets) == 0 {
		return nil
	}
	for _, t := range tickets {
		settings.RecordOrder(dest.name, dest.addr, t.PlacedAt)
	}
	return settings.Save()
}

func loadCatalog() (*catalog.Catalog, error) {
	cat, err := catalog.LoadOrDefault(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cat, nil
}

func runWizard(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	dest, err := resolveDestination()
	if err != nil {
		return err
	}

	model := tui.NewAppModel(tui.Options{
		Catalog:     cat,
		Processor:   dest.processor,
		Size:        settings.Preferences.Size(),
		Temperature: settings.Preferences.Temperature(),
		Destination: dest.String(),
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("wizard error: %w", err)
	}

	app, ok := final.(tui.AppModel)
	if !ok {
		return nil
	}

	var tickets []order.Ticket
	for _, placed := range app.PlacedOrders() {
		tickets = append(tickets, placed.Ticket)
		fmt.Printf("%s Order #%s: %s\n", ui.SuccessMarker, placed.Ticket.ShortID(), placed.Ticket.Summary())
	}
	return recordOrders(dest, tickets)
}

// menuCmd prints the catalog
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Show the coffee menu",
	Long: `Print every bean, grind level, preparation method and topping in the
catalog, with topping prices.`,
	Example: `  # Built-in menu
  cupcraft menu

  # A custom catalog
  cupcraft menu --catalog ./autumn.yaml`,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	source := "built-in"
	if catalogPath != "" {
		source = catalogPath
	}

	fmt.Println(ui.RenderCommandHeader(ui.HeaderConfig{
		Title:   "Menu",
		Command: "cupcraft menu",
		Params:  []ui.Detail{{Key: "Catalog", Value: source}},
	}))
	fmt.Println(ui.RenderMenu(cat, ui.GetTerminalWidth()))
	return nil
}

// Quote command flags
var (
	quoteBean        string
	quoteGrind       string
	quotePreparation string
	quoteToppings    []string
	quoteSize        string
	quoteTemperature string
	quotePlace       bool
	quoteTimeout     time.Duration
)

// quoteCmd prices an order without the wizard
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price an order from flags",
	Long: `Build an order from catalog ids and print its receipt and total.

With --place the order is also handed to the configured counter (or the
local log) exactly as the wizard would.`,
	Example: `  # Price a pour over with oat milk and vanilla
  cupcraft quote --bean arabica-1 --grind medium --preparation pourover \
    --topping oat-milk --topping vanilla

  # Place it with the counter at localhost:8787
  cupcraft quote --bean arabica-1 --grind medium --preparation pourover \
    --place --counter localhost:8787`,
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().StringVar(&quoteBean, "bean", "", "Bean id")
	quoteCmd.Flags().StringVar(&quoteGrind, "grind", "", "Grind level id")
	quoteCmd.Flags().StringVar(&quotePreparation, "preparation", "", "Preparation method id")
	quoteCmd.Flags().StringArrayVar(&quoteToppings, "topping", nil, "Topping id (repeatable, order is kept)")
	quoteCmd.Flags().StringVar(&quoteSize, "size", "", "Size (small, medium, large)")
	quoteCmd.Flags().StringVar(&quoteTemperature, "temperature", "", "Temperature (hot, iced)")
	quoteCmd.Flags().BoolVar(&quotePlace, "place", false, "Place the order after quoting")
	quoteCmd.Flags().DurationVar(&quoteTimeout, "timeout", tui.DefaultOrderTimeout, "Order hand-off timeout")
}

// buildSelection turns quote flags into a selection. Unset ids stay unset.
func buildSelection(cat *catalog.Catalog) (order.Selection, error) {
	size := settings.Preferences.Size()
	if quoteSize != "" {
		s, err := order.ParseSize(quoteSize)
		if err != nil {
			return order.Selection{}, err
		}
		size = s
	}
	temp := settings.Preferences.Temperature()
	if quoteTemperature != "" {
		t, err := order.ParseTemperature(quoteTemperature)
		if err != nil {
			return order.Selection{}, err
		}
		temp = t
	}

	sel := order.NewSelection(size, temp)

	if quoteBean != "" {
		b, err := cat.Bean(quoteBean)
		if err != nil {
			return sel, err
		}
		sel = sel.Apply(order.WithBean(b))
	}
	if quoteGrind != "" {
		g, err := cat.Grind(quoteGrind)
		if err != nil {
			return sel, err
		}
		sel = sel.Apply(order.WithGrind(g))
	}
	if quotePreparation != "" {
		p, err := cat.Preparation(quotePreparation)
		if err != nil {
			return sel, err
		}
		sel = sel.Apply(order.WithPreparation(p))
	}

	toppings := make([]catalog.Topping, 0, len(quoteToppings))
	for _, id := range quoteToppings {
		t, err := cat.Topping(id)
		if err != nil {
			return sel, err
		}
		toppings = append(toppings, t)
	}
	return sel.Apply(order.WithToppings(toppings)), nil
}

func runQuote(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	sel, err := buildSelection(cat)
	if err != nil {
		return err
	}

	fmt.Println(ui.RenderCommandHeader(ui.HeaderConfig{
		Title:   "Quote",
		Command: "cupcraft quote",
	}))
	fmt.Println(ui.RenderSuccess("Your coffee", ui.QuoteDetails(sel)))

	if !quotePlace {
		return nil
	}

	ticket, err := order.NewTicket(sel, time.Now())
	if err != nil {
		return err
	}
	dest, err := resolveDestination()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), quoteTimeout)
	defer cancel()
	result := dest.processor.PlaceOrder(ctx, ticket)

	if !result.Accepted() {
		title := "Order " + result.Status.String()
		fmt.Println(ui.RenderFailure(title, resultError(result), orderHints(result)))
		return fmt.Errorf("order %s was %s", ticket.ShortID(), result.Status)
	}

	fmt.Println(ui.RenderSuccess("Order placed", []ui.Detail{
		{Key: "Order", Value: ticket.ID},
		{Key: "Sent to", Value: dest.String()},
		{Key: "Message", Value: result.Message},
	}))
	return recordOrders(dest, []order.Ticket{ticket})
}

func resultError(r handoff.Result) error {
	if r.Err != nil {
		return r.Err
	}
	return fmt.Errorf("%s", r.Message)
}

func orderHints(r handoff.Result) []string {
	switch {
	case handoff.IsKind(r.Err, handoff.KindDial):
		return []string{
			"Start a counter: cupcraft-counter serve",
			"Check the --counter address",
			"Use --discover to find counters on the local network",
		}
	case handoff.IsKind(r.Err, handoff.KindTimeout):
		return []string{"Increase --timeout", "Check the counter logs"}
	case r.Status == handoff.StatusRejected:
		return []string{"Check the ids with 'cupcraft menu'", "Make sure wizard and counter use the same catalog"}
	default:
		return nil
	}
}

// Scan command flags
var scanTimeout time.Duration

// scanCmd discovers counters on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for cupcraft counters on the network",
	Long: `Scan for cupcraft counters using mDNS/DNS-SD discovery.

Counters started with 'cupcraft-counter serve --advertise' announce
themselves as _cupcraft._tcp on the local network.`,
	Example: `  # Scan with the configured timeout
  cupcraft scan

  # Longer scan for busy networks
  cupcraft scan --timeout 10s`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 0, "Scan timeout (default: discover_timeout from settings)")
}

func runScan(cmd *cobra.Command, args []string) error {
	timeout := scanTimeout
	if timeout <= 0 {
		timeout = settings.Preferences.DiscoverDuration()
	}

	fmt.Println(ui.RenderCommandHeader(ui.HeaderConfig{
		Title:   "Scan",
		Command: "cupcraft scan",
		Params:  []ui.Detail{{Key: "Service", Value: discovery.ServiceType}, {Key: "Timeout", Value: timeout.String()}},
	}))

	counters, err := discovery.ScanForCounters(timeout)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(counters) == 0 {
		r := ui.NewWarningResult("No counters found", nil)
		r.Hints = []string{
			"Start one with: cupcraft-counter serve --advertise",
			"Try increasing --timeout for slower networks",
			"Use --counter host:port if multicast is blocked",
		}
		fmt.Println(r.Render())
		return nil
	}

	details := make([]ui.Detail, 0, len(counters))
	for _, c := range counters {
		value := c.Addr()
		if v := c.GetMetadata("version"); v != "" {
			value += "  " + v
		}
		details = append(details, ui.Detail{Key: c.Name, Value: value})
	}
	fmt.Println(ui.RenderSuccess(fmt.Sprintf("Found %d counter(s)", len(counters)), details))
	fmt.Printf("Use 'cupcraft --counter %s' to order from a counter\n", counters[0].Addr())
	return nil
}
