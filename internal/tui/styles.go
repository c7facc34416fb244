package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent      = lipgloss.Color("#8BC34A")
	muted       = lipgloss.Color("#6b7785")
	destructive = lipgloss.Color("#e53935")
	info        = lipgloss.Color("#2196F3")
)

// Styles groups every style the model renders with.
type Styles struct {
	Title   lipgloss.Style
	Slot    lipgloss.Style
	Cursor  lipgloss.Style
	Current lipgloss.Style
	Status  lipgloss.Style
	Win     lipgloss.Style
	Loss    lipgloss.Style
	Error   lipgloss.Style
	Help    lipgloss.Style
	Spinner lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Slot:    lipgloss.NewStyle().Padding(0, 1),
		Cursor:  lipgloss.NewStyle().Padding(0, 1).Reverse(true),
		Current: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(accent),
		Status:  lipgloss.NewStyle().Foreground(info),
		Win:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Loss:    lipgloss.NewStyle().Bold(true).Foreground(destructive),
		Error:   lipgloss.NewStyle().Foreground(destructive),
		Help:    lipgloss.NewStyle().Foreground(muted).MarginTop(1),
		Spinner: lipgloss.NewStyle().Foreground(accent),
	}
}
