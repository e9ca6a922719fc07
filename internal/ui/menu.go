package ui

import (
	"fmt"
	"strings"

	"github.com/muurk/cupcraft/internal/catalog"
	"github.com/muurk/cupcraft/internal/order"
)

// StrengthMeter renders a bean strength as filled and empty dots out of 5.
func StrengthMeter(strength int) string {
	if strength < 0 {
		strength = 0
	}
	if strength > 5 {
		strength = 5
	}
	return strings.Repeat("●", strength) + strings.Repeat("○", 5-strength)
}

// RenderMenu renders the whole catalog for the menu command.
func RenderMenu(cat *catalog.Catalog, width int) string {
	width = clampWidth(width)
	var b strings.Builder

	section := func(title string) {
		b.WriteString(SectionTitleStyle.Render(title))
		b.WriteString("\n")
		b.WriteString(RenderHorizontalDivider(width-2, "─"))
		b.WriteString("\n")
	}

	section("Beans")
	for _, bean := range cat.Beans() {
		fmt.Fprintf(&b, "  %s  %s  %s\n",
			ItemNameStyle.Render(bean.Name),
			ItemDetailStyle.Render(bean.Origin),
			PriceStyle.Render(StrengthMeter(bean.Strength)))
		fmt.Fprintf(&b, "    %s\n", ItemDetailStyle.Render(bean.Flavor))
	}

	section("Grinds")
	for _, g := range cat.Grinds() {
		fmt.Fprintf(&b, "  %s  %s\n", ItemNameStyle.Render(g.Name), ItemDetailStyle.Render(g.Description))
		if len(g.BrewMethods) > 0 {
			fmt.Fprintf(&b, "    %s\n", ItemDetailStyle.Render("Best for: "+strings.Join(g.BrewMethods, ", ")))
		}
	}

	section("Preparation")
	for _, p := range cat.Preparations() {
		fmt.Fprintf(&b, "  %s %s  %s\n", p.Icon, ItemNameStyle.Render(p.Name), PriceStyle.Render(p.Details()))
		fmt.Fprintf(&b, "    %s\n", ItemDetailStyle.Render(p.Description))
	}

	section("Toppings")
	for _, group := range cat.ToppingGroups() {
		fmt.Fprintf(&b, "  %s\n", HeaderParamKeyStyle.UnsetPaddingLeft().Render(group.Category.Title()))
		for _, t := range group.Toppings {
			line := fmt.Sprintf("    %s %s", t.Icon, ItemNameStyle.Render(t.Name))
			if label := order.ToppingPriceLabel(t); label != "" {
				line += "  " + PriceStyle.Render(label)
			}
			b.WriteString(line + "\n")
		}
	}

	fmt.Fprintf(&b, "\n%s\n", ItemDetailStyle.Render("Every coffee starts at "+order.FormatPrice(order.BasePrice)+"."))
	return b.String()
}

// QuoteDetails returns the receipt lines shown by the quote command.
func QuoteDetails(sel order.Selection) []Detail {
	details := []Detail{
		{Key: "Bean", Value: sel.BeanName()},
		{Key: "Grind", Value: sel.GrindName()},
		{Key: "Preparation", Value: sel.PreparationName()},
		{Key: "Serving", Value: fmt.Sprintf("%s, %s", sel.Size, sel.Temperature)},
	}
	for _, t := range sel.Toppings {
		value := t.Name
		if label := order.ToppingPriceLabel(t); label != "" {
			value += "  " + label
		}
		details = append(details, Detail{Key: "Topping", Value: value})
	}
	return append(details, Detail{Key: "Total", Value: order.FormatPrice(order.Total(sel))})
}
