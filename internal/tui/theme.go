// Package tui implements the terminal chat interface.
package tui

import "github.com/charmbracelet/lipgloss"

// Theme names, persisted under the currentTheme key.
const (
	ThemeFuturistic = "futuristic"
	ThemeMinimal    = "minimal"
	ThemeClassic    = "classic"
)

var themeOrder = []string{ThemeFuturistic, ThemeMinimal, ThemeClassic}

// NextTheme cycles to the next theme name; unknown names restart the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// Palette holds the styles for one theme/darkness combination.
type Palette struct {
	Title     lipgloss.Style
	UserLabel lipgloss.Style
	BotLabel  lipgloss.Style
	Online    lipgloss.Style
	Offline   lipgloss.Style
	Toast     lipgloss.Style
	Muted     lipgloss.Style
	CharWarn  lipgloss.Style
	CharOver  lipgloss.Style
	InputBox  lipgloss.Style
}

type accents struct {
	primary   string
	secondary string
}

var themeAccents = map[string]accents{
	ThemeFuturistic: {primary: "93", secondary: "51"},  // purple / cyan
	ThemeMinimal:    {primary: "245", secondary: "250"}, // greys
	ThemeClassic:    {primary: "27", secondary: "34"},  // blue / green
}

// NewPalette builds the styles for a theme. darkMode only flips the muted
// text so it stays readable on both backgrounds.
func NewPalette(theme string, darkMode bool) Palette {
	acc, ok := themeAccents[theme]
	if !ok {
		acc = themeAccents[ThemeFuturistic]
	}

	muted := lipgloss.Color("240")
	if darkMode {
		muted = lipgloss.Color("246")
	}

	return Palette{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(acc.primary)),
		UserLabel: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(acc.secondary)),
		BotLabel:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(acc.primary)),
		Online:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Offline:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Toast:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Muted:     lipgloss.NewStyle().Foreground(muted),
		CharWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
		CharOver:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		InputBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(acc.primary)).
			Padding(0, 1),
	}
}
