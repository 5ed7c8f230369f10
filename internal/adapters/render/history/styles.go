package history

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title       lipgloss.Style
	header      lipgloss.Style
	banner      lipgloss.Style
	row         lipgloss.Style
	selectedRow lipgloss.Style
	meta        lipgloss.Style
	empty       lipgloss.Style
	footer      lipgloss.Style
	currentPage lipgloss.Style
	otherPage   lipgloss.Style
	errLine     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:       lipgloss.NewStyle().Bold(true),
		header:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		banner:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		row:         lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		selectedRow: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		meta:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		empty:       lipgloss.NewStyle().Faint(true),
		footer:      lipgloss.NewStyle().MarginTop(1).Foreground(lipgloss.Color("250")),
		currentPage: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		otherPage:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		errLine:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}
