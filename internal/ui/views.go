package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/rwejlgaard/timesheet/internal/model"
)

// dynamicKeyMap is a helper type for rendering keybindings with dynamic layout
type dynamicKeyMap struct {
	rows [][]key.Binding
}

// ShortHelp for dynamicKeyMap
func (d dynamicKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{}
}

// FullHelp for dynamicKeyMap
func (d dynamicKeyMap) FullHelp() [][]key.Binding {
	return d.rows
}

// renderFullHelp renders the help with width-aware layout
func (m uiModel) renderFullHelp() string {
	bindings := m.keys.getAllBindings()

	var columnsPerRow int
	if m.width < m.config.UI.MinTerminalWidth {
		columnsPerRow = 1 // Stack vertically on very narrow terminals
	} else if m.width < 80 {
		columnsPerRow = 2
	} else if m.width < 120 {
		columnsPerRow = 3
	} else {
		columnsPerRow = 4
	}

	var rows [][]key.Binding
	for i := 0; i < len(bindings); i += columnsPerRow {
		end := min(i+columnsPerRow, len(bindings))
		rows = append(rows, bindings[i:end])
	}

	h := help.New()
	h.Width = m.width
	h.ShowAll = true

	return h.View(dynamicKeyMap{rows: rows})
}

// formatHours renders hours the way they were typed: 4, 3.5, 0.25
func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

func pluralize(n float64, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func (m uiModel) View() string {
	switch m.mode {
	case modeWizard:
		return m.viewWizard()
	case modeSetDate:
		return m.viewSetDate()
	case modeSummary:
		return m.viewSummary()
	}

	footer := m.renderFooter(m.help.ShowAll)
	footerHeight := lipgloss.Height(footer)

	lines, cursorLine := m.formLines()

	availableHeight := m.height - footerHeight
	if availableHeight < 5 {
		availableHeight = 5 // Minimum height
	}

	// Keep the cursor in view without modifying m - View should be pure
	start := 0
	if cursorLine >= availableHeight {
		start = cursorLine - availableHeight + 1
	}
	end := min(start+availableHeight, len(lines))
	visible := lines[start:end]

	var result strings.Builder
	result.WriteString(strings.Join(visible, "\n"))
	if paddingNeeded := m.height - len(visible) - footerHeight; paddingNeeded > 0 {
		result.WriteString(strings.Repeat("\n", paddingNeeded))
	}
	result.WriteString("\n")
	result.WriteString(footer)

	return result.String()
}

// renderFooter builds the status line and help
func (m uiModel) renderFooter(fullHelp bool) string {
	var footer strings.Builder

	if status := m.statusLine(); status != "" {
		footer.WriteString(status)
		footer.WriteString("\n")
	}

	if fullHelp {
		footer.WriteString(m.renderFullHelp())
	} else {
		footer.WriteString(m.help.View(m.keys))
	}
	return footer.String()
}

// formLines renders the form screen line by line and reports which
// line the cursor is on
func (m uiModel) formLines() ([]string, int) {
	var lines []string
	cursorLine := 0
	rowIndex := 0

	mark := func(s string) string {
		if rowIndex == m.cursor {
			cursorLine = len(lines)
			s = m.styles.cursorStyle.Render(s)
		}
		rowIndex++
		return s
	}

	ledger := m.form.Ledger()

	lines = append(lines,
		m.styles.titleStyle.Render("Daily Timesheet")+" 🕒",
		m.styles.statusStyle.Render("Enter your hours for today"),
		"",
	)

	worker := m.form.Worker()
	if worker == "" {
		worker = m.styles.statusStyle.Render("Select")
	} else {
		worker = m.styles.selectedStyle.Render(worker)
	}
	lines = append(lines,
		fmt.Sprintf("Name *  ‹ %s ›    Date *  %s", worker, m.form.DateString()),
		"",
		m.styles.jobStyle.Render("Select jobs you worked on today:"),
	)

	for _, job := range m.form.Catalog().Jobs() {
		box := "[ ]"
		label := job
		if ledger.IsSelected(job) {
			box = "[✓]"
			label = m.styles.selectedStyle.Render(job)
		}
		lines = append(lines, mark(fmt.Sprintf("  %s %s", box, label)))
	}

	count := ledger.SelectedCount()
	lines = append(lines, m.styles.statusStyle.Render(
		fmt.Sprintf("Selected: %d %s", count, pluralize(float64(count), "job"))))

	selected := ledger.SelectedJobs()
	if len(selected) == 0 {
		lines = append(lines, "", "  👆 Select jobs above to get started")
		return lines, cursorLine
	}

	rule := m.styles.ruleStyle.Render(strings.Repeat("─", max(min(m.width, 48), 10)))
	lines = append(lines, rule)

	for _, job := range selected {
		header := "📋 " + m.styles.jobStyle.Render(job)
		if total := ledger.JobTotal(job); total > 0 {
			header += "  " + m.styles.hoursStyle.Render(fmt.Sprintf("%.1fh", total))
		}
		lines = append(lines, "", header)

		tasks := ledger.Tasks(job)
		if len(tasks) == 0 {
			lines = append(lines, m.styles.statusStyle.Render("    No tasks added yet"))
		}
		for _, task := range tasks {
			entry := fmt.Sprintf("    %s  %s  %s",
				m.styles.categoryStyle.Render(task.Category),
				task.Task,
				m.styles.hoursStyle.Render(fmt.Sprintf("%s %s", formatHours(task.Hours), pluralize(task.Hours, "hour"))))
			lines = append(lines, mark(entry))
			if task.Notes != "" {
				for _, note := range strings.Split(task.Notes, "\n") {
					lines = append(lines, m.styles.noteStyle.Render("      📝 "+note))
				}
			}
		}
		lines = append(lines, mark("    + Add Task"))
	}

	if grand := ledger.GrandTotal(); grand > 0 {
		lines = append(lines,
			"",
			rule,
			m.styles.jobStyle.Render("Total Hours  ")+m.styles.totalStyle.Render(fmt.Sprintf("%.1fh", grand)),
			m.styles.statusStyle.Render(fmt.Sprintf("Press %s to submit timesheet", m.keys.Submit.Help().Key)),
		)
	}

	return lines, cursorLine
}

func (m uiModel) viewSetDate() string {
	var content strings.Builder
	content.WriteString(m.styles.titleStyle.Render("Set Date"))
	content.WriteString("\n")
	content.WriteString(m.styles.statusStyle.Render("Current: " + m.form.DateString()))
	content.WriteString("\n\n")
	content.WriteString(m.dateInput.View())
	content.WriteString("\n\n")
	content.WriteString(m.styles.statusStyle.Render("Examples: 2025-12-31, -1 (yesterday)"))
	content.WriteString("\n")
	content.WriteString(m.styles.statusStyle.Render("Press Enter to save • ESC to cancel"))

	return m.placeDialog(m.withStatus(content.String()))
}

func (m uiModel) viewWizard() string {
	switch step := m.form.Wizard().Step().(type) {
	case model.CategoryStep:
		return m.viewCategoryStep(step)
	case model.TaskStep:
		return m.viewTaskStep(step)
	case model.HoursStep:
		return m.viewHoursStep(step)
	}
	return ""
}

func (m uiModel) viewCategoryStep(step model.CategoryStep) string {
	var content strings.Builder
	content.WriteString(m.styles.titleStyle.Render("Add Task"))
	content.WriteString("\n")
	content.WriteString(m.styles.subtitleStyle.Render("to " + step.Job))
	content.WriteString("\n")
	content.WriteString(m.styles.statusStyle.Render("Select work category:"))
	content.WriteString("\n\n")

	for i, cat := range m.form.Catalog().Categories() {
		line := fmt.Sprintf(" %s  %s ", cat.Icon, cat.Name)
		if i == m.wizardCursor {
			line = m.styles.cursorStyle.Render(line)
		}
		content.WriteString(line)
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(m.styles.statusStyle.Render("Enter to choose • ESC to cancel"))
	return m.placeDialog(m.withStatus(content.String()))
}

func (m uiModel) viewTaskStep(step model.TaskStep) string {
	var content strings.Builder
	content.WriteString(m.styles.statusStyle.Render(fmt.Sprintf("← Back to Categories (%s)", m.keys.Back.Help().Key)))
	content.WriteString("\n")
	content.WriteString(m.styles.titleStyle.Render(step.Category + " Tasks"))
	content.WriteString("\n")
	content.WriteString(m.styles.statusStyle.Render("Select specific task:"))
	content.WriteString("\n\n")

	for i, task := range m.form.Catalog().TasksFor(step.Category) {
		line := " " + task + " "
		if i == m.wizardCursor {
			line = m.styles.cursorStyle.Render(line)
		}
		content.WriteString(line)
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(m.styles.statusStyle.Render("Enter to choose • ESC to cancel"))
	return m.placeDialog(m.withStatus(content.String()))
}

func (m uiModel) viewHoursStep(step model.HoursStep) string {
	var content strings.Builder
	content.WriteString(m.styles.statusStyle.Render(fmt.Sprintf("← Back to Tasks (%s)", m.keys.WizardBack.Help().Key)))
	content.WriteString("\n")
	content.WriteString(m.styles.titleStyle.Render(step.Category + " - " + step.Task))
	content.WriteString("\n")
	content.WriteString(m.styles.subtitleStyle.Render("For: " + step.Job))
	content.WriteString("\n\n")

	content.WriteString(m.styles.jobStyle.Render("Hours worked *"))
	content.WriteString("\n")
	content.WriteString(m.hoursInput.View())
	content.WriteString("\n")
	content.WriteString(m.styles.statusStyle.Render("Enter hours (e.g., 3.5 or 7)"))
	content.WriteString("\n\n")

	content.WriteString(m.styles.jobStyle.Render("Note (optional)"))
	content.WriteString("\n")
	content.WriteString(m.notesInput.View())
	content.WriteString("\n\n")

	content.WriteString(m.styles.statusStyle.Render(fmt.Sprintf("Enter to add task • %s switch field • ESC to cancel",
		m.keys.NextField.Help().Key)))
	return m.placeDialog(m.withStatus(content.String()))
}

// statusLine renders the status message until it expires
func (m uiModel) statusLine() string {
	if !m.now().Before(m.statusExpiry) {
		return ""
	}
	if m.statusError {
		return m.styles.errorStyle.Render(m.statusMsg)
	}
	return m.styles.statusStyle.Render(m.statusMsg)
}

// withStatus appends a live status message, used for validation errors
// raised inside dialogs
func (m uiModel) withStatus(content string) string {
	if status := m.statusLine(); status != "" {
		return content + "\n\n" + status
	}
	return content
}

// placeDialog centers a bordered dialog horizontally and vertically
func (m uiModel) placeDialog(content string) string {
	dialog := m.styles.dialogStyle.Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}
