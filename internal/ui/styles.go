package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rwejlgaard/timesheet/internal/config"
)

// styleMap holds all the styles used in the UI
type styleMap struct {
	titleStyle    lipgloss.Style
	subtitleStyle lipgloss.Style
	cursorStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	categoryStyle lipgloss.Style
	hoursStyle    lipgloss.Style
	totalStyle    lipgloss.Style
	errorStyle    lipgloss.Style
	statusStyle   lipgloss.Style
	noteStyle     lipgloss.Style
	jobStyle      lipgloss.Style
	dialogStyle   lipgloss.Style
	ruleStyle     lipgloss.Style
}

// newStyleMapFromConfig creates a styleMap from configuration
func newStyleMapFromConfig(cfg *config.Config) styleMap {
	colors := cfg.Colors

	return styleMap{
		titleStyle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colors.Title)),
		subtitleStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colors.Selected)),
		cursorStyle:   lipgloss.NewStyle().Background(lipgloss.Color(colors.Cursor)),
		selectedStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colors.Selected)),
		categoryStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colors.Category)),
		hoursStyle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colors.Hours)),
		totalStyle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colors.Total)),
		errorStyle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colors.Error)),
		statusStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Status)).Italic(true),
		noteStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Note)).Italic(true),
		jobStyle:      lipgloss.NewStyle().Bold(true),
		dialogStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colors.Dialog)).
			Padding(1, 2).
			Width(cfg.UI.DialogWidth),
		ruleStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Status)),
	}
}
