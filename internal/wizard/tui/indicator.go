package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

// dotState is how one step dot is drawn.
type dotState int

const (
	dotInactive dotState = iota
	dotActive
	dotCurrent
)

// dotStates marks every step up to and including current as active, with
// the current step emphasised.
func dotStates(current, total int) []dotState {
	states := make([]dotState, total)
	for i := range states {
		switch {
		case i == current:
			states[i] = dotCurrent
		case i < current:
			states[i] = dotActive
		}
	}
	return states
}

// indicator draws the step progress track. The fill follows a spring
// toward the sequencer's progress so step changes glide instead of jump.
type indicator struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
	bar    progress.Model
}

func newIndicator() indicator {
	bar := progress.New(
		progress.WithGradient(string(MochaColor), string(CaramelColor)),
		progress.WithoutPercentage(),
	)
	return indicator{
		spring: harmonica.NewSpring(harmonica.FPS(frameRate), 6.0, 0.7),
		bar:    bar,
	}
}

// SetTarget sets the progress the fill moves toward, clamped to [0, 1].
func (i *indicator) SetTarget(p float64) {
	i.target = clamp01(p)
}

// Animate advances the spring by one frame.
func (i *indicator) Animate() {
	i.pos, i.vel = i.spring.Update(i.pos, i.vel, i.target)
}

// Position is the currently drawn fill, clamped to [0, 1].
func (i indicator) Position() float64 {
	return clamp01(i.pos)
}

func (i indicator) View(current, total, width int) string {
	dots := make([]string, 0, total)
	for _, state := range dotStates(current, total) {
		switch state {
		case dotCurrent:
			dots = append(dots, lipgloss.NewStyle().Foreground(CaramelColor).Bold(true).Render("◉"))
		case dotActive:
			dots = append(dots, lipgloss.NewStyle().Foreground(CaramelColor).Render("●"))
		default:
			dots = append(dots, lipgloss.NewStyle().Foreground(MochaColor).Render("○"))
		}
	}

	bar := i.bar
	bar.Width = width
	if bar.Width < 10 {
		bar.Width = 10
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(dots, "  "),
		bar.ViewAs(i.Position()),
	)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
