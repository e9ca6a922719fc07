package order

import (
	"fmt"
	"strings"
)

// NoneSelected is shown in place of a field that has not been chosen yet.
const NoneSelected = "None selected"

// BeanName returns the chosen bean's name or NoneSelected.
func (s Selection) BeanName() string {
	if s.Bean == nil {
		return NoneSelected
	}
	return s.Bean.Name
}

// GrindName returns the chosen grind's name or NoneSelected.
func (s Selection) GrindName() string {
	if s.Grind == nil {
		return NoneSelected
	}
	return s.Grind.Name
}

// PreparationName returns the chosen method's name or NoneSelected.
func (s Selection) PreparationName() string {
	if s.Preparation == nil {
		return NoneSelected
	}
	return s.Preparation.Name
}

// FormatReceipt returns a plain-text receipt of the selection, suitable for
// terminals that are not running the wizard.
func (s Selection) FormatReceipt() string {
	var b strings.Builder

	b.WriteString("=== Your Coffee ===\n")
	b.WriteString(fmt.Sprintf("Bean:        %s\n", s.BeanName()))
	if s.Bean != nil {
		b.WriteString(fmt.Sprintf("             %s\n", s.Bean.Flavor))
	}
	b.WriteString(fmt.Sprintf("Grind:       %s\n", s.GrindName()))
	if s.Grind != nil {
		b.WriteString(fmt.Sprintf("             %s\n", s.Grind.Description))
	}
	b.WriteString(fmt.Sprintf("Preparation: %s\n", s.PreparationName()))
	if s.Preparation != nil {
		b.WriteString(fmt.Sprintf("             %s\n", s.Preparation.Details()))
	}
	b.WriteString(fmt.Sprintf("Serving:     %s, %s\n", s.Size, s.Temperature))

	if len(s.Toppings) > 0 {
		b.WriteString("\n=== Toppings ===\n")
		for _, t := range s.Toppings {
			b.WriteString(fmt.Sprintf("%-24s %s\n", t.Icon+" "+t.Name, ToppingPriceLabel(t)))
		}
	}

	b.WriteString(fmt.Sprintf("\nTotal:       %s\n", FormatPrice(Total(s))))

	return b.String()
}
