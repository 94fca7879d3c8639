package ui

import "github.com/charmbracelet/lipgloss"

// Styles is the active lipgloss palette. Rebuilt when the theme flips.
type Styles struct {
	Night bool

	Logo      lipgloss.Style
	LogoBlue  lipgloss.Style
	Title     lipgloss.Style
	Text      lipgloss.Style
	Subtle    lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Tag       lipgloss.Style
	TagAlt    lipgloss.Style
	Card      lipgloss.Style
	CardFocus lipgloss.Style
	TabActive lipgloss.Style
	TabIdle   lipgloss.Style
	Badge     lipgloss.Style
	Button    lipgloss.Style
	Help      lipgloss.Style
}

// newStyles builds the day or night palette.
func newStyles(night bool) Styles {
	var (
		text   = lipgloss.Color("235")
		subtle = lipgloss.Color("245")
		accent = lipgloss.Color("63")
		border = lipgloss.Color("250")
	)
	if night {
		text = lipgloss.Color("252")
		subtle = lipgloss.Color("244")
		accent = lipgloss.Color("111")
		border = lipgloss.Color("238")
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)

	return Styles{
		Night:     night,
		Logo:      lipgloss.NewStyle().Bold(true).Foreground(text),
		LogoBlue:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		Title:     lipgloss.NewStyle().Bold(true).Foreground(text).MarginBottom(1),
		Text:      lipgloss.NewStyle().Foreground(text),
		Subtle:    lipgloss.NewStyle().Foreground(subtle),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("35")),
		Tag:       lipgloss.NewStyle().Background(accent).Foreground(lipgloss.Color("231")).Padding(0, 1),
		TagAlt:    lipgloss.NewStyle().Background(lipgloss.Color("153")).Foreground(lipgloss.Color("235")).Padding(0, 1),
		Card:      card,
		CardFocus: card.BorderForeground(accent),
		TabActive: lipgloss.NewStyle().Bold(true).Foreground(accent).Underline(true),
		TabIdle:   lipgloss.NewStyle().Foreground(subtle),
		Badge:     lipgloss.NewStyle().Background(lipgloss.Color("203")).Foreground(lipgloss.Color("231")).Padding(0, 1),
		Button:    lipgloss.NewStyle().Background(accent).Foreground(lipgloss.Color("231")).Padding(0, 2),
		Help:      lipgloss.NewStyle().Foreground(subtle).MarginTop(1),
	}
}

// logo renders the QuickSwap wordmark.
func (s Styles) logo() string {
	return s.Logo.Render("Quick") + s.LogoBlue.Render("Swap")
}

// joinHorizontal lays blocks side by side, top-aligned.
func joinHorizontal(blocks []string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}
