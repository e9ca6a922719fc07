package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrIncomplete is returned when a ticket is built from a selection that is
// missing its bean, grind or preparation.
var ErrIncomplete = errors.New("selection is incomplete")

// ItemRef identifies a catalog entry on a ticket.
type ItemRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Ticket is the finalized order handed to the order-processing side.
type Ticket struct {
	ID          string      `json:"id"`
	PlacedAt    time.Time   `json:"placed_at"`
	Bean        ItemRef     `json:"bean"`
	Grind       ItemRef     `json:"grind"`
	Preparation ItemRef     `json:"preparation"`
	Toppings    []ItemRef   `json:"toppings"`
	Size        Size        `json:"size"`
	Temperature Temperature `json:"temperature"`
	Total       float64     `json:"total"`
}

// NewTicket finalizes a selection into a ticket with a fresh order id.
func NewTicket(s Selection, now time.Time) (Ticket, error) {
	if !s.IsComplete() {
		return Ticket{}, fmt.Errorf("cannot place order: %w (missing %s)", ErrIncomplete, strings.Join(missingFields(s), ", "))
	}

	toppings := make([]ItemRef, len(s.Toppings))
	for i, t := range s.Toppings {
		toppings[i] = ItemRef{ID: t.ID, Name: t.Name}
	}

	return Ticket{
		ID:          uuid.NewString(),
		PlacedAt:    now.UTC(),
		Bean:        ItemRef{ID: s.Bean.ID, Name: s.Bean.Name},
		Grind:       ItemRef{ID: s.Grind.ID, Name: s.Grind.Name},
		Preparation: ItemRef{ID: s.Preparation.ID, Name: s.Preparation.Name},
		Toppings:    toppings,
		Size:        s.Size,
		Temperature: s.Temperature,
		Total:       Total(s),
	}, nil
}

// Validate checks the structural invariants of a received ticket.
func (t Ticket) Validate() error {
	if _, err := uuid.Parse(t.ID); err != nil {
		return fmt.Errorf("invalid order id %q: %w", t.ID, err)
	}
	if t.Bean.ID == "" || t.Grind.ID == "" || t.Preparation.ID == "" {
		return fmt.Errorf("ticket %s: %w", t.ID, ErrIncomplete)
	}
	if _, err := ParseSize(string(t.Size)); err != nil {
		return fmt.Errorf("ticket %s: %w", t.ID, err)
	}
	if _, err := ParseTemperature(string(t.Temperature)); err != nil {
		return fmt.Errorf("ticket %s: %w", t.ID, err)
	}
	seen := make(map[string]bool, len(t.Toppings))
	for _, ref := range t.Toppings {
		if seen[ref.ID] {
			return fmt.Errorf("ticket %s: duplicate topping %q", t.ID, ref.ID)
		}
		seen[ref.ID] = true
	}
	if t.Total < BasePrice {
		return fmt.Errorf("ticket %s: total %s is below the base price", t.ID, FormatPrice(t.Total))
	}
	return nil
}

// ShortID returns the first block of the order id, for display.
func (t Ticket) ShortID() string {
	return ShortID(t.ID)
}

// ShortID returns the first block of a uuid order id. Ids without a dash
// are returned unchanged.
func ShortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// Summary returns a one-line description of the ticket.
func (t Ticket) Summary() string {
	line := fmt.Sprintf("%s %s %s, %s grind, %s", t.Size, t.Temperature, t.Bean.Name, t.Grind.Name, t.Preparation.Name)
	if len(t.Toppings) > 0 {
		names := make([]string, len(t.Toppings))
		for i, ref := range t.Toppings {
			names[i] = ref.Name
		}
		line += " with " + strings.Join(names, ", ")
	}
	return line + " (" + FormatPrice(t.Total) + ")"
}

func missingFields(s Selection) []string {
	var missing []string
	if s.Bean == nil {
		missing = append(missing, "bean")
	}
	if s.Grind == nil {
		missing = append(missing, "grind")
	}
	if s.Preparation == nil {
		missing = append(missing, "preparation")
	}
	return missing
}
