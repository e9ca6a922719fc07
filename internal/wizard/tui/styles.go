package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/cupcraft/internal/version"
)

// Application branding constants
const (
	AppName    = "CUPCRAFT"
	FooterText = "Crafting your perfect coffee experience"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants for responsive terminal width
const (
	DefaultWidth  = 80
	DefaultHeight = 24
	MinWidth      = 48
)

// Color palette
var (
	EspressoColor = lipgloss.Color("#2C1810") // Dark roast - emphasis backgrounds
	CaramelColor  = lipgloss.Color("#D4A574") // Primary - titles, borders, focus
	WheatColor    = lipgloss.Color("#F5DEB3") // Main text
	MochaColor    = lipgloss.Color("#8B7355") // Subtle text, inactive dots

	SuccessColor = lipgloss.Color("#43BF6D")
	WarningColor = lipgloss.Color("#FFA500")
	ErrorColor   = lipgloss.Color("#FF5555")
)

var (
	AppNameStyle = lipgloss.NewStyle().
			Foreground(WheatColor).
			Bold(true)

	TitleStyle = lipgloss.NewStyle().
			Foreground(CaramelColor).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(MochaColor).
			Italic(true)

	// Choice in the list under the cursor
	FocusedItemStyle = lipgloss.NewStyle().
				Foreground(CaramelColor).
				Bold(true)

	ItemStyle = lipgloss.NewStyle().
			Foreground(WheatColor)

	DetailStyle = lipgloss.NewStyle().
			Foreground(MochaColor)

	PriceStyle = lipgloss.NewStyle().
			Foreground(CaramelColor)

	ChosenMarkStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	CategoryStyle = lipgloss.NewStyle().
			Foreground(CaramelColor).
			Bold(true).
			Underline(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(MochaColor).
			Width(14)

	TotalStyle = lipgloss.NewStyle().
			Foreground(EspressoColor).
			Background(CaramelColor).
			Bold(true).
			Padding(0, 1)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(WheatColor).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(MochaColor).
			Padding(0, 2)

	PrimaryButtonStyle = lipgloss.NewStyle().
				Foreground(EspressoColor).
				Background(CaramelColor).
				Bold(true).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(CaramelColor).
				Padding(0, 2)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(CaramelColor)

	SuccessBoxStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SuccessColor).
			Padding(0, 1)

	WarningBoxStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(WarningColor).
			Padding(0, 1)

	ErrorBoxStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(MochaColor).
			Italic(true)
)

// RenderApplicationContainer wraps every frame of the wizard: header on top,
// scrolling content in the middle, footer pinned to the bottom, all inside
// a single bordered panel that fills the terminal.
func RenderApplicationContainer(header, content, footer string, terminalWidth, terminalHeight int) string {
	inner := terminalWidth - 4

	styledHeader := headerSectionStyle(inner).Render(header)
	styledFooter := footerSectionStyle(inner).Render(footer)
	styledContent := lipgloss.NewStyle().Width(inner).Render(content)

	innerContent := lipgloss.JoinVertical(
		lipgloss.Left,
		styledHeader,
		styledContent,
		styledFooter,
	)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(CaramelColor).
		Width(terminalWidth - 2).
		Height(terminalHeight - 2).
		AlignVertical(lipgloss.Top).
		Render(innerContent)

	return lipgloss.Place(
		terminalWidth,
		terminalHeight,
		lipgloss.Left,
		lipgloss.Top,
		bordered,
	)
}

func headerSectionStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(CaramelColor).
		Width(width).
		Padding(0, 1)
}

func footerSectionStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(CaramelColor).
		Width(width).
		Padding(0, 1)
}
