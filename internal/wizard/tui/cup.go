package tui

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/cupcraft/internal/catalog"
	"github.com/muurk/cupcraft/internal/order"
)

const (
	// DefaultCoffeeColor tints the cup before a bean is chosen.
	DefaultCoffeeColor = "#6B4423"

	wobblePeriod = 8 * time.Second
	cupRows      = 4
	cupInterior  = 6

	// Level the coffee rests at until a bean or method is chosen
	restLevel = 0.25
)

// coffeeColor returns the chosen bean's display color.
func coffeeColor(sel order.Selection) string {
	if sel.Bean != nil && sel.Bean.Color != "" {
		return sel.Bean.Color
	}
	return DefaultCoffeeColor
}

// creamColor returns the color of the first milk topping, if any.
func creamColor(sel order.Selection) (string, bool) {
	milk, ok := sel.FirstTopping(catalog.CategoryMilk)
	if !ok {
		return "", false
	}
	return milk.Color, true
}

func sprinkleColors(sel order.Selection) []string {
	var colors []string
	for _, t := range sel.Toppings {
		if t.Category == catalog.CategoryExtra {
			colors = append(colors, t.Color)
		}
	}
	return colors
}

// cup is the animated coffee cup in the header.
type cup struct {
	spring  harmonica.Spring
	level   float64
	vel     float64
	elapsed time.Duration
}

func newCup() cup {
	return cup{
		spring: harmonica.NewSpring(harmonica.FPS(frameRate), 4.0, 0.5),
		level:  restLevel,
	}
}

// Animate moves the cup forward by dt. The level springs up once a bean or
// preparation method is part of the selection.
func (c *cup) Animate(dt time.Duration, sel order.Selection) {
	c.elapsed += dt
	target := restLevel
	if sel.Bean != nil || sel.Preparation != nil {
		target = 1
	}
	c.level, c.vel = c.spring.Update(c.level, c.vel, target)
}

// wobble is the horizontal sway in columns, -1, 0 or 1.
func (c cup) wobble() int {
	phase := math.Sin(2 * math.Pi * c.elapsed.Seconds() / wobblePeriod.Seconds())
	switch {
	case phase > 0.5:
		return 1
	case phase < -0.5:
		return -1
	default:
		return 0
	}
}

func (c cup) filledRows() int {
	rows := int(math.Round(clamp01(c.level) * cupRows))
	if rows < 0 {
		return 0
	}
	return rows
}

func (c cup) View(sel order.Selection) string {
	coffee := lipgloss.NewStyle().Foreground(lipgloss.Color(coffeeColor(sel)))
	rim := lipgloss.NewStyle().Foreground(WheatColor)
	pad := strings.Repeat(" ", 1+c.wobble())

	steam := "  ~  ~ "
	if c.elapsed/(wobblePeriod/4)%2 == 1 {
		steam = "   ~  ~"
	}

	cream, hasCream := creamColor(sel)
	sprinkles := sprinkleColors(sel)
	filled := c.filledRows()

	lines := []string{
		pad + DetailStyle.Render(steam),
		pad + rim.Render(".------."),
	}
	for r := 0; r < cupRows; r++ {
		top := r == cupRows-filled
		var interior string
		switch {
		case r < cupRows-filled:
			interior = strings.Repeat(" ", cupInterior)
		case top && hasCream:
			interior = creamRow(cream, sprinkles)
		case top && len(sprinkles) > 0:
			interior = sprinkleRow(coffee, sprinkles)
		default:
			interior = coffee.Render(strings.Repeat("█", cupInterior))
		}

		handle := " "
		if r == 1 || r == 2 {
			handle = ")"
		}
		lines = append(lines, pad+rim.Render("|")+interior+rim.Render("|"+handle))
	}
	lines = append(lines, pad+rim.Render(`\______/`))

	return strings.Join(lines, "\n")
}

// Glyph is the one-line cup used by the collapsed header.
func (c cup) Glyph(sel order.Selection) string {
	coffee := lipgloss.NewStyle().Foreground(lipgloss.Color(coffeeColor(sel)))
	return DetailStyle.Render("c[") + coffee.Render("█") + DetailStyle.Render("]")
}

func creamRow(cream string, sprinkles []string) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(cream))
	var b strings.Builder
	for i := 0; i < cupInterior; i++ {
		if len(sprinkles) > 0 && i%2 == 1 {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(sprinkles[(i/2)%len(sprinkles)])).Render("*"))
			continue
		}
		b.WriteString(style.Render("≈"))
	}
	return b.String()
}

func sprinkleRow(coffee lipgloss.Style, sprinkles []string) string {
	var b strings.Builder
	for i := 0; i < cupInterior; i++ {
		if i%2 == 1 {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(sprinkles[(i/2)%len(sprinkles)])).Render("*"))
			continue
		}
		b.WriteString(coffee.Render("█"))
	}
	return b.String()
}
