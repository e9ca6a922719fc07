package order

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalBasePrice(t *testing.T) {
	assert.Equal(t, 3.50, Total(NewSelection("", "")))
}

func TestTotalIsPure(t *testing.T) {
	cat := mustCatalog(t)
	oat := mustTopping(t, cat, "oat-milk")
	vanilla := mustTopping(t, cat, "vanilla")

	a := NewSelection("", "").ToggleTopping(oat).ToggleTopping(vanilla)
	b := NewSelection("", "").ToggleTopping(vanilla).ToggleTopping(oat)

	assert.Equal(t, Total(a), Total(a))
	assert.InDelta(t, Total(a), Total(b), 1e-9)
}

func TestScenarioFullOrder(t *testing.T) {
	cat := mustCatalog(t)
	bean, err := cat.Bean("arabica-1")
	require.NoError(t, err)
	grind, err := cat.Grind("medium")
	require.NoError(t, err)
	prep, err := cat.Preparation("pourover")
	require.NoError(t, err)

	sel := NewSelection("", "").
		Apply(WithBean(bean)).
		Apply(WithGrind(grind)).
		Apply(WithPreparation(prep)).
		ToggleTopping(mustTopping(t, cat, "oat-milk")).
		ToggleTopping(mustTopping(t, cat, "vanilla"))

	assert.Equal(t, 180, sel.Preparation.BrewTime)
	assert.Equal(t, 92, sel.Preparation.Temperature)
	assert.InDelta(t, 4.75, Total(sel), 1e-9)
	assert.Equal(t, "$4.75", FormatPrice(Total(sel)))
}

func TestScenarioToggleBackToEmpty(t *testing.T) {
	cat := mustCatalog(t)
	oat := mustTopping(t, cat, "oat-milk")

	sel := NewSelection("", "").ToggleTopping(oat).ToggleTopping(oat)

	assert.Empty(t, sel.Toppings)
	assert.Equal(t, 3.50, Total(sel))
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{3.5, "$3.50"},
		{4.75, "$4.75"},
		{0, "$0.00"},
		{3.5 + 0.1 + 0.2, "$3.80"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.in))
	}
}

func TestToppingPriceLabel(t *testing.T) {
	cat := mustCatalog(t)
	assert.Equal(t, "+$0.50", ToppingPriceLabel(mustTopping(t, cat, "oat-milk")))
	assert.Equal(t, "", ToppingPriceLabel(mustTopping(t, cat, "whole-milk")))
}

func TestNewTicket(t *testing.T) {
	cat := mustCatalog(t)
	bean, _ := cat.Bean("arabica-1")
	grind, _ := cat.Grind("medium")
	prep, _ := cat.Preparation("pourover")

	t.Run("incomplete selection", func(t *testing.T) {
		_, err := NewTicket(NewSelection("", "").Apply(WithBean(bean)), time.Now())
		require.ErrorIs(t, err, ErrIncomplete)
		assert.Contains(t, err.Error(), "grind, preparation")
	})

	t.Run("complete selection", func(t *testing.T) {
		sel := NewSelection(SizeLarge, TemperatureIced).
			Apply(WithBean(bean), WithGrind(grind), WithPreparation(prep)).
			ToggleTopping(mustTopping(t, cat, "oat-milk"))

		now := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
		ticket, err := NewTicket(sel, now)
		require.NoError(t, err)

		_, err = uuid.Parse(ticket.ID)
		assert.NoError(t, err)
		assert.Equal(t, now, ticket.PlacedAt)
		assert.Equal(t, ItemRef{ID: "arabica-1", Name: "Arabica"}, ticket.Bean)
		assert.Equal(t, "pourover", ticket.Preparation.ID)
		assert.Equal(t, []ItemRef{{ID: "oat-milk", Name: "Oat Milk"}}, ticket.Toppings)
		assert.Equal(t, SizeLarge, ticket.Size)
		assert.InDelta(t, 4.00, ticket.Total, 1e-9)
		assert.NoError(t, ticket.Validate())
		assert.Len(t, ticket.ShortID(), 8)
		assert.True(t, strings.HasPrefix(ticket.Summary(), "large iced Arabica, Medium grind, Pour Over with Oat Milk"))
		assert.True(t, strings.HasSuffix(ticket.Summary(), "($4.00)"))
	})
}

func TestShortID(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"1b4e28ba-2fa1-11d2-883f-0016d3cca427", "1b4e28ba"},
		{"order1", "order1"},
		{"-leading", "-leading"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ShortID(tt.id))
		assert.Equal(t, tt.want, Ticket{ID: tt.id}.ShortID())
	}
}

func TestTicketValidate(t *testing.T) {
	valid := Ticket{
		ID:          uuid.NewString(),
		Bean:        ItemRef{ID: "arabica-1"},
		Grind:       ItemRef{ID: "medium"},
		Preparation: ItemRef{ID: "pourover"},
		Size:        SizeMedium,
		Temperature: TemperatureHot,
		Total:       BasePrice,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Ticket)
	}{
		{"bad id", func(tk *Ticket) { tk.ID = "order-1" }},
		{"missing bean", func(tk *Ticket) { tk.Bean = ItemRef{} }},
		{"bad size", func(tk *Ticket) { tk.Size = "venti" }},
		{"bad temperature", func(tk *Ticket) { tk.Temperature = "warm" }},
		{"duplicate topping", func(tk *Ticket) { tk.Toppings = []ItemRef{{ID: "sugar"}, {ID: "sugar"}} }},
		{"total below base", func(tk *Ticket) { tk.Total = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := valid
			tt.mutate(&tk)
			assert.Error(t, tk.Validate())
		})
	}
}

func TestFormatReceipt(t *testing.T) {
	receipt := NewSelection("", "").FormatReceipt()
	assert.Contains(t, receipt, "Bean:        None selected")
	assert.NotContains(t, receipt, "Toppings")
	assert.Contains(t, receipt, "Total:       $3.50")

	cat := mustCatalog(t)
	receipt = NewSelection("", "").ToggleTopping(mustTopping(t, cat, "vanilla")).FormatReceipt()
	assert.Contains(t, receipt, "=== Toppings ===")
	assert.Contains(t, receipt, "+$0.75")
	assert.Contains(t, receipt, "$4.25")
}
