package order

import (
	"fmt"

	"github.com/muurk/cupcraft/internal/catalog"
)

// BasePrice is the price of a coffee before toppings, in dollars.
const BasePrice = 3.50

// Total returns BasePrice plus the price of every selected topping.
// The result keeps full precision; round only for display.
func Total(s Selection) float64 {
	total := BasePrice
	for _, t := range s.Toppings {
		total += t.Price
	}
	return total
}

// FormatPrice formats a dollar amount to two decimals ("$4.75").
func FormatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// ToppingPriceLabel returns "+$0.50" for priced toppings and "" for free ones.
func ToppingPriceLabel(t catalog.Topping) string {
	if t.Price <= 0 {
		return ""
	}
	return "+" + FormatPrice(t.Price)
}
