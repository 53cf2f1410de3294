package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the styles used by the billing form
type Styles struct {
	Title       lipgloss.Style
	Label       lipgloss.Style
	Header      lipgloss.Style
	Index       lipgloss.Style
	Total       lipgloss.Style
	GrandTotal  lipgloss.Style
	RowFocused  lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	HelpKey     lipgloss.Style
	HelpDesc    lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1),
		Label:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Header:      lipgloss.NewStyle().Bold(true),
		Index:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(4),
		Total:       lipgloss.NewStyle().Width(12).Align(lipgloss.Right),
		GrandTotal:  lipgloss.NewStyle().Bold(true).Width(12).Align(lipgloss.Right),
		RowFocused:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		HelpKey:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		HelpDesc:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
