package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/cupcraft/internal/catalog"
	"github.com/muurk/cupcraft/internal/flow"
	"github.com/muurk/cupcraft/internal/handoff"
	"github.com/muurk/cupcraft/internal/order"
	"github.com/muurk/cupcraft/internal/ui"
)

// reviewStatus is the order hand-off state shown on the review step.
type reviewStatus struct {
	placing     bool
	spinner     string
	destination string
	result      *handoff.Result
}

func (s reviewStatus) accepted() bool {
	return s.result != nil && s.result.Accepted()
}

// renderStep builds the scrolling body for step and reports where the
// focused entry sits in it. It reads its inputs and nothing else.
func renderStep(step flow.Step, cat *catalog.Catalog, sel order.Selection, cursor int, status reviewStatus) (string, focusSpan) {
	var (
		body  string
		focus focusSpan
	)
	switch step {
	case flow.StepBean:
		body, focus = beanScreen(cat, sel, cursor)
	case flow.StepGrind:
		body, focus = grindScreen(cat, sel, cursor)
	case flow.StepPreparation:
		body, focus = preparationScreen(cat, sel, cursor)
	case flow.StepToppings:
		body, focus = toppingsScreen(cat, sel, cursor)
	case flow.StepReview:
		body = reviewScreen(sel, status)
	}
	return body + "\n\n" + renderActions(step, sel, status), focus
}

// focusSpan is the run of body lines holding the focused entry. Rows is
// zero when nothing is focused.
type focusSpan struct {
	top, rows int
}

// listBuilder stacks blocks line by line and records where the focused
// one lands.
type listBuilder struct {
	blocks []string
	lines  int
	focus  focusSpan
}

func (b *listBuilder) add(block string, focused bool) {
	rows := lipgloss.Height(block)
	if focused {
		b.focus = focusSpan{top: b.lines, rows: rows}
	}
	b.blocks = append(b.blocks, block)
	b.lines += rows
}

// gap adds a blank line unless the list is empty.
func (b *listBuilder) gap() {
	if len(b.blocks) > 0 {
		b.add("", false)
	}
}

func (b *listBuilder) String() string {
	return strings.Join(b.blocks, "\n")
}

// renderChoice draws one list entry: a name line followed by detail lines.
func renderChoice(name, aside string, details []string, chosen, focused bool) string {
	mark := "  "
	nameStyle := ItemStyle
	if focused {
		mark = FocusedItemStyle.Render("→ ")
		nameStyle = FocusedItemStyle
	}
	check := "  "
	if chosen {
		check = ChosenMarkStyle.Render("✓ ")
	}

	line := mark + check + nameStyle.Render(name)
	if aside != "" {
		line += "  " + aside
	}

	lines := []string{line}
	for _, d := range details {
		lines = append(lines, "      "+DetailStyle.Render(d))
	}
	return strings.Join(lines, "\n")
}

func beanScreen(cat *catalog.Catalog, sel order.Selection, cursor int) (string, focusSpan) {
	var list listBuilder
	for i, b := range cat.Beans() {
		chosen := sel.Bean != nil && sel.Bean.ID == b.ID
		list.gap()
		list.add(renderChoice(
			b.Name,
			DetailStyle.Render(b.Origin),
			[]string{b.Flavor, "Strength " + ui.StrengthMeter(b.Strength)},
			chosen, i == cursor,
		), i == cursor)
	}
	return list.String(), list.focus
}

func grindScreen(cat *catalog.Catalog, sel order.Selection, cursor int) (string, focusSpan) {
	var list listBuilder
	for i, g := range cat.Grinds() {
		chosen := sel.Grind != nil && sel.Grind.ID == g.ID
		details := []string{g.Description}
		if len(g.BrewMethods) > 0 {
			details = append(details, "Best for: "+strings.Join(g.BrewMethods, ", "))
		}
		list.gap()
		list.add(renderChoice(g.Name, "", details, chosen, i == cursor), i == cursor)
	}
	return list.String(), list.focus
}

func preparationScreen(cat *catalog.Catalog, sel order.Selection, cursor int) (string, focusSpan) {
	var list listBuilder
	for i, p := range cat.Preparations() {
		chosen := sel.Preparation != nil && sel.Preparation.ID == p.ID
		list.gap()
		list.add(renderChoice(
			p.Icon+" "+p.Name,
			PriceStyle.Render(p.Details()),
			[]string{p.Description},
			chosen, i == cursor,
		), i == cursor)
	}
	return list.String(), list.focus
}

// toppingsScreen groups toppings under category headings. The cursor
// indexes toppings in display order across all groups.
func toppingsScreen(cat *catalog.Catalog, sel order.Selection, cursor int) (string, focusSpan) {
	groups := cat.ToppingGroups()
	if len(groups) == 0 {
		return DetailStyle.Render("No toppings on this menu. Continue to review your order."), focusSpan{}
	}

	var list listBuilder
	i := 0
	for _, group := range groups {
		list.gap()
		list.add(CategoryStyle.Render(group.Category.Title()), false)
		for _, t := range group.Toppings {
			list.add(renderChoice(
				t.Icon+" "+t.Name,
				PriceStyle.Render(order.ToppingPriceLabel(t)),
				nil,
				sel.HasTopping(t.ID), i == cursor,
			), i == cursor)
			i++
		}
	}
	return list.String(), list.focus
}

func reviewScreen(sel order.Selection, status reviewStatus) string {
	row := func(label, value string) string {
		return LabelStyle.Render(label) + ItemStyle.Render(value)
	}

	prep := sel.PreparationName()
	if sel.Preparation != nil {
		prep += "  " + DetailStyle.Render(sel.Preparation.Details())
	}

	lines := []string{
		TitleStyle.Render("Your Coffee"),
		row("Bean", sel.BeanName()),
		row("Grind", sel.GrindName()),
		row("Preparation", prep),
		row("Size", string(sel.Size)) + "  " + DetailStyle.Render("(s to change)"),
		row("Temperature", string(sel.Temperature)) + "  " + DetailStyle.Render("(t to change)"),
	}

	if len(sel.Toppings) > 0 {
		lines = append(lines, "", TitleStyle.Render("Toppings"))
		for _, t := range sel.Toppings {
			lines = append(lines, "  "+ItemStyle.Render(t.Icon+" "+t.Name)+"  "+PriceStyle.Render(order.ToppingPriceLabel(t)))
		}
	}

	lines = append(lines, "", LabelStyle.Render("Total")+TotalStyle.Render(order.FormatPrice(order.Total(sel))))

	if s := renderOrderStatus(status); s != "" {
		lines = append(lines, "", s)
	}

	return strings.Join(lines, "\n")
}

func renderOrderStatus(status reviewStatus) string {
	if status.placing {
		return status.spinner + " " + ItemStyle.Render("Sending your order to "+status.destination+"...")
	}
	if status.result == nil {
		return ""
	}

	r := status.result
	switch r.Status {
	case handoff.StatusAccepted:
		text := fmt.Sprintf("✓ Order placed • #%s\n%s\nPress n to start a new order", order.ShortID(r.OrderID), r.Message)
		return SuccessBoxStyle.Render(text)
	case handoff.StatusRejected:
		return WarningBoxStyle.Render("✗ Order rejected: " + r.Message)
	default:
		return ErrorBoxStyle.Render("✗ Order failed: " + r.Message + "\nPress enter to try again")
	}
}

// renderActions shows Back and Continue only when they would be honored.
func renderActions(step flow.Step, sel order.Selection, status reviewStatus) string {
	var buttons []string
	if step.HasBack() && !status.accepted() {
		buttons = append(buttons, ButtonStyle.Render("← Back"))
	}

	switch {
	case step == flow.StepReview:
		if !status.accepted() {
			buttons = append(buttons, PrimaryButtonStyle.Render("Place Order"))
		}
	case flow.CanAdvance(step, sel):
		label := "Continue →"
		if step == flow.StepToppings {
			label = "Review Order →"
		}
		buttons = append(buttons, PrimaryButtonStyle.Render(label))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(buttons, "  ")...)
}

func joinWithGap(parts []string, gap string) []string {
	if len(parts) < 2 {
		return parts
	}
	out := make([]string, 0, len(parts)*2-1)
	for i, p := range parts {
		if i > 0 {
			out = append(out, gap)
		}
		out = append(out, p)
	}
	return out
}
