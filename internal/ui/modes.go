package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rwejlgaard/timesheet/internal/model"
)

type rowKind int

const (
	rowJob rowKind = iota
	rowEntry
	rowAddTask
)

// row is one cursor stop on the form screen
type row struct {
	kind  rowKind
	job   string
	index int
}

// submitResultMsg carries the sink's answer back into the update loop
type submitResultMsg struct {
	payload model.Payload
	err     error
}

// rows lists the cursor stops: the job grid in catalog order, then each
// selected job's entries followed by its add-task button
func (m uiModel) rows() []row {
	var rows []row
	for _, job := range m.form.Catalog().Jobs() {
		rows = append(rows, row{kind: rowJob, job: job})
	}
	ledger := m.form.Ledger()
	for _, job := range ledger.SelectedJobs() {
		for i := range ledger.Tasks(job) {
			rows = append(rows, row{kind: rowEntry, job: job, index: i})
		}
		rows = append(rows, row{kind: rowAddTask, job: job})
	}
	return rows
}

func (m uiModel) currentRow() (row, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return row{}, false
	}
	return rows[m.cursor], true
}

func (m *uiModel) clampCursor() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.notesInput.SetWidth(m.config.UI.DialogWidth - 8)
		return m, nil

	case submitResultMsg:
		return m.handleSubmitResult(msg)
	}

	// Handle special modes
	switch m.mode {
	case modeWizard:
		return m.updateWizard(msg)
	case modeSetDate:
		return m.updateSetDate(msg)
	case modeSummary:
		return m.updateSummary(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.ToggleJob):
		if r, ok := m.currentRow(); ok && r.kind == rowJob {
			m.toggleJob(r.job)
		}

	case key.Matches(keyMsg, m.keys.Select):
		if r, ok := m.currentRow(); ok {
			switch r.kind {
			case rowJob:
				m.toggleJob(r.job)
			case rowAddTask:
				m.openWizard(r.job)
			}
		}

	case key.Matches(keyMsg, m.keys.AddTask):
		if r, ok := m.currentRow(); ok {
			m.openWizard(r.job)
		}

	case key.Matches(keyMsg, m.keys.RemoveTask):
		if r, ok := m.currentRow(); ok && r.kind == rowEntry {
			if err := m.form.RemoveTask(r.job, r.index); err != nil {
				m.setError(err.Error())
			} else {
				m.clampCursor()
				m.setStatus("Task removed")
			}
		}

	case key.Matches(keyMsg, m.keys.NextWorker):
		m.form.CycleWorker(1)

	case key.Matches(keyMsg, m.keys.PrevWorker):
		m.form.CycleWorker(-1)

	case key.Matches(keyMsg, m.keys.SetDate):
		m.mode = modeSetDate
		m.dateInput.SetValue(m.form.DateString())
		m.dateInput.CursorEnd()
		m.dateInput.Focus()
		return m, textinput.Blink

	case key.Matches(keyMsg, m.keys.ToggleView):
		m.mode = modeSummary

	case key.Matches(keyMsg, m.keys.Submit):
		return m.submit()
	}

	return m, nil
}

func (m *uiModel) toggleJob(job string) {
	selected, err := m.form.ToggleJob(job)
	if err != nil {
		m.setError(err.Error())
		return
	}
	if !selected {
		m.clampCursor()
	}
}

func (m *uiModel) openWizard(job string) {
	if err := m.form.OpenWizard(job); err != nil {
		if errors.Is(err, model.ErrJobNotSelected) {
			m.setError(fmt.Sprintf("Select %s first", job))
		} else {
			m.setError(err.Error())
		}
		return
	}
	m.mode = modeWizard
	m.wizardCursor = 0
}

func (m uiModel) submit() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	payload, err := m.form.Payload()
	if err != nil {
		m.setError(err.Error())
		return m, nil
	}
	m.submitting = true
	ctx, s := m.ctx, m.sink
	return m, func() tea.Msg {
		return submitResultMsg{payload: payload, err: s.Submit(ctx, payload)}
	}
}

func (m uiModel) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	m.submitting = false
	if msg.err != nil {
		m.logger.Error("timesheet submission failed",
			"worker", msg.payload.WorkerName, "date", msg.payload.Date, "error", msg.err)
		m.setError(fmt.Sprintf("Submit failed: %v", msg.err))
		return m, nil
	}
	m.logger.Info("timesheet submitted",
		"worker", msg.payload.WorkerName,
		"date", msg.payload.Date,
		"entries", len(msg.payload.Entries),
		"total_hours", msg.payload.TotalHours())
	m.setStatus(fmt.Sprintf("Timesheet submitted for %s on %s! Total hours: %.1fh",
		msg.payload.WorkerName, msg.payload.Date, msg.payload.TotalHours()))
	return m, nil
}

func (m uiModel) updateSummary(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case keyMsg.Type == tea.KeyEsc, key.Matches(keyMsg, m.keys.ToggleView):
		m.mode = modeForm
	case key.Matches(keyMsg, m.keys.Submit):
		return m.submit()
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m uiModel) updateSetDate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			date, err := model.ParseDate(m.dateInput.Value(), m.now())
			if err != nil {
				m.setError(fmt.Sprintf("Invalid date: %v", err))
				return m, nil
			}
			m.form.SetDate(date)
			m.mode = modeForm
			m.dateInput.Blur()
			m.setStatus("Date set to " + m.form.DateString())
			return m, nil
		case tea.KeyEsc:
			m.mode = modeForm
			m.dateInput.Blur()
			m.setStatus("Cancelled")
			return m, nil
		}
	}

	m.dateInput, cmd = m.dateInput.Update(msg)
	return m, cmd
}

func (m uiModel) updateWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok && keyMsg.Type == tea.KeyEsc {
		m.closeWizard()
		m.setStatus("Cancelled")
		return m, nil
	}

	wizard := m.form.Wizard()
	switch step := wizard.Step().(type) {
	case model.CategoryStep:
		if !ok {
			return m, nil
		}
		categories := m.form.Catalog().Categories()
		switch {
		case key.Matches(keyMsg, m.keys.Up):
			if m.wizardCursor > 0 {
				m.wizardCursor--
			}
		case key.Matches(keyMsg, m.keys.Down):
			if m.wizardCursor < len(categories)-1 {
				m.wizardCursor++
			}
		case key.Matches(keyMsg, m.keys.Select):
			if err := wizard.ChooseCategory(categories[m.wizardCursor].Name); err != nil {
				m.setError(err.Error())
				return m, nil
			}
			m.wizardCursor = 0
		}

	case model.TaskStep:
		if !ok {
			return m, nil
		}
		tasks := m.form.Catalog().TasksFor(step.Category)
		switch {
		case key.Matches(keyMsg, m.keys.Up):
			if m.wizardCursor > 0 {
				m.wizardCursor--
			}
		case key.Matches(keyMsg, m.keys.Down):
			if m.wizardCursor < len(tasks)-1 {
				m.wizardCursor++
			}
		case key.Matches(keyMsg, m.keys.Back):
			wizard.Back()
			m.wizardCursor = max(m.form.Catalog().CategoryIndex(step.Category), 0)
		case key.Matches(keyMsg, m.keys.Select):
			if err := wizard.ChooseTask(tasks[m.wizardCursor]); err != nil {
				m.setError(err.Error())
				return m, nil
			}
			m.startHoursEntry()
			return m, textinput.Blink
		}

	case model.HoursStep:
		return m.updateHoursStep(msg, step)

	default:
		m.mode = modeForm
	}

	return m, nil
}

// startHoursEntry resets the inputs for a fresh hours step
func (m *uiModel) startHoursEntry() {
	m.hoursInput.SetValue("")
	m.notesInput.SetValue("")
	m.notesInput.Blur()
	m.notesFocused = false
	m.hoursInput.Focus()
}

func (m uiModel) updateHoursStep(msg tea.Msg, step model.HoursStep) (tea.Model, tea.Cmd) {
	wizard := m.form.Wizard()

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.CommitEntry):
			job, entry, err := m.form.CommitTask()
			if err != nil {
				// The wizard stays on the hours step with its input intact
				m.setError(err.Error())
				return m, nil
			}
			m.closeWizard()
			m.setStatus(fmt.Sprintf("Added %s - %s (%sh) to %s",
				entry.Category, entry.Task, formatHours(entry.Hours), job))
			return m, nil

		case key.Matches(keyMsg, m.keys.WizardBack):
			wizard.Back()
			m.hoursInput.Blur()
			m.notesInput.Blur()
			tasks := m.form.Catalog().TasksFor(step.Category)
			m.wizardCursor = 0
			for i, task := range tasks {
				if task == step.Task {
					m.wizardCursor = i
				}
			}
			return m, nil

		case key.Matches(keyMsg, m.keys.NextField):
			m.notesFocused = !m.notesFocused
			if m.notesFocused {
				m.hoursInput.Blur()
				m.notesInput.Focus()
				return m, textarea.Blink
			}
			m.notesInput.Blur()
			m.hoursInput.Focus()
			return m, textinput.Blink
		}
	}

	var cmd tea.Cmd
	var err error
	if m.notesFocused {
		m.notesInput, cmd = m.notesInput.Update(msg)
		err = wizard.SetNotes(m.notesInput.Value())
	} else {
		m.hoursInput, cmd = m.hoursInput.Update(msg)
		err = wizard.SetHours(strings.TrimSpace(m.hoursInput.Value()))
	}
	if err != nil {
		m.setError(err.Error())
	}
	return m, cmd
}

func (m *uiModel) closeWizard() {
	m.form.Wizard().Cancel()
	m.hoursInput.Blur()
	m.notesInput.Blur()
	m.notesFocused = false
	m.wizardCursor = 0
	m.mode = modeForm
}
