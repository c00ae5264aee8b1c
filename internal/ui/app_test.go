package ui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rwejlgaard/timesheet/internal/config"
	"github.com/rwejlgaard/timesheet/internal/model"
)

var fixedNow = time.Date(2026, 10, 15, 9, 41, 0, 0, time.UTC)

type recordingSink struct {
	got []model.Payload
	err error
}

func (r *recordingSink) Submit(_ context.Context, p model.Payload) error {
	if r.err != nil {
		return r.err
	}
	r.got = append(r.got, p)
	return nil
}

func newTestModel(t *testing.T, s model.Submitter) uiModel {
	t.Helper()
	cfg := config.DefaultConfig()
	catalog, err := cfg.BuildCatalog()
	if err != nil {
		t.Fatalf("BuildCatalog: %v", err)
	}
	m := initialModel(context.Background(), Options{
		Form:   model.NewForm(catalog, fixedNow),
		Sink:   s,
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:    func() time.Time { return fixedNow },
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(uiModel)
}

func keyPress(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+b":
		return tea.KeyMsg{Type: tea.KeyCtrlB}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press feeds keys to the model, running any submit command inline.
func press(t *testing.T, m uiModel, keys ...string) uiModel {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(keyPress(k))
		m = next.(uiModel)
		if cmd == nil {
			continue
		}
		if m.submitting {
			next, _ = m.Update(cmd())
			m = next.(uiModel)
		}
	}
	return m
}

// typeText sends each rune of s as its own key press.
func typeText(t *testing.T, m uiModel, s string) uiModel {
	t.Helper()
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(uiModel)
	}
	return m
}

// moveTo puts the cursor on the first row matching kind and job.
func moveTo(t *testing.T, m uiModel, kind rowKind, job string) uiModel {
	t.Helper()
	for i, r := range m.rows() {
		if r.kind == kind && r.job == job {
			m.cursor = i
			return m
		}
	}
	t.Fatalf("no row %v for %q", kind, job)
	return m
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

// addTask drives the wizard for job through category, task and hours.
func addTask(t *testing.T, m uiModel, job, category, task, hours string) uiModel {
	t.Helper()
	m = moveTo(t, m, rowAddTask, job)
	m = press(t, m, "enter")
	if m.mode != modeWizard {
		t.Fatalf("wizard did not open, mode %v", m.mode)
	}
	for i := 0; i < m.form.Catalog().CategoryIndex(category); i++ {
		m = press(t, m, "down")
	}
	m = press(t, m, "enter")
	for i := 0; i < indexOf(m.form.Catalog().TasksFor(category), task); i++ {
		m = press(t, m, "down")
	}
	m = press(t, m, "enter")
	m = typeText(t, m, hours)
	return press(t, m, "enter")
}

func TestUI_EndToEndSubmission(t *testing.T) {
	s := &recordingSink{}
	m := newTestModel(t, s)

	// Dan is fourth on the roster.
	m = press(t, m, "w", "w", "w", "w")
	if m.form.Worker() != "Dan" {
		t.Fatalf("worker = %q, want Dan", m.form.Worker())
	}

	m = moveTo(t, m, rowJob, "Oak Street Addition")
	m = press(t, m, "space")
	if !m.form.Ledger().IsSelected("Oak Street Addition") {
		t.Fatalf("job not selected")
	}

	m = addTask(t, m, "Oak Street Addition", "Framing", "Floor joists", "4")
	if m.mode != modeForm {
		t.Fatalf("wizard still open after commit: %v", m.form.Wizard().Step())
	}
	if got := m.form.Ledger().JobTotal("Oak Street Addition"); got != 4 {
		t.Fatalf("JobTotal = %v", got)
	}
	view := m.View()
	if !strings.Contains(view, "4.0h") || !strings.Contains(view, "Floor joists") {
		t.Fatalf("view missing totals or entry:\n%s", view)
	}

	m = press(t, m, "S")
	if len(s.got) != 1 {
		t.Fatalf("sink received %d payloads", len(s.got))
	}
	p := s.got[0]
	want := model.PayloadEntry{Job: "Oak Street Addition", Category: "Framing", Task: "Floor joists", Hours: 4, Notes: ""}
	if p.WorkerName != "Dan" || p.Date != "2026-10-15" || len(p.Entries) != 1 || p.Entries[0] != want {
		t.Fatalf("payload = %#v", p)
	}
	if !strings.Contains(m.statusMsg, "Timesheet submitted for Dan on 2026-10-15! Total hours: 4.0h") {
		t.Fatalf("status = %q", m.statusMsg)
	}
	if m.submitting {
		t.Fatalf("submitting flag not cleared")
	}
}

func TestUI_SubmitWithoutWorkerIsRejected(t *testing.T) {
	s := &recordingSink{}
	m := newTestModel(t, s)

	m = moveTo(t, m, rowJob, "Riverside Deck")
	m = press(t, m, "space")
	m = addTask(t, m, "Riverside Deck", "Demo", "Interior", "2")

	m = press(t, m, "S")
	if len(s.got) != 0 {
		t.Fatalf("payload emitted without a worker")
	}
	if !m.statusError || m.statusMsg != "Please select your name" {
		t.Fatalf("status = %q (error %v)", m.statusMsg, m.statusError)
	}
	if !strings.Contains(m.View(), "Please select your name") {
		t.Fatalf("message not rendered")
	}
}

func TestUI_SubmitWithoutTasksIsRejected(t *testing.T) {
	s := &recordingSink{}
	m := newTestModel(t, s)
	m = press(t, m, "w")
	m = press(t, m, "space") // cursor starts on the first job

	m = press(t, m, "S")
	if len(s.got) != 0 || m.statusMsg != "Please add at least one task" {
		t.Fatalf("status = %q, sink got %d", m.statusMsg, len(s.got))
	}
}

func TestUI_SinkFailureIsReported(t *testing.T) {
	s := &recordingSink{err: errors.New("disk full")}
	m := newTestModel(t, s)
	m = press(t, m, "w", "space")
	m = addTask(t, m, "Zevin Tingley", "Other", "Travel", "1")

	m = press(t, m, "S")
	if !m.statusError || !strings.Contains(m.statusMsg, "disk full") {
		t.Fatalf("status = %q", m.statusMsg)
	}
	if m.form.Ledger().GrandTotal() != 1 {
		t.Fatalf("failed submit changed the ledger")
	}
}

func TestUI_HoursValidationKeepsWizardOpen(t *testing.T) {
	m := newTestModel(t, &recordingSink{})
	m = press(t, m, "space")
	m = addTask(t, m, "Zevin Tingley", "Demo", "Roof", "0")

	if m.mode != modeWizard || m.form.Wizard().Step().Kind() != model.StepHours {
		t.Fatalf("wizard should stay on hours, mode %v step %v", m.mode, m.form.Wizard().Step())
	}
	if m.statusMsg != "Please enter hours" {
		t.Fatalf("status = %q", m.statusMsg)
	}
	if m.hoursInput.Value() != "0" {
		t.Fatalf("hours input lost: %q", m.hoursInput.Value())
	}
	if len(m.form.Ledger().Tasks("Zevin Tingley")) != 0 {
		t.Fatalf("rejected commit recorded an entry")
	}

	// Fix the input and commit again.
	m.hoursInput.SetValue("")
	m = typeText(t, m, "2.5")
	m = press(t, m, "enter")
	if m.mode != modeForm || m.form.Ledger().JobTotal("Zevin Tingley") != 2.5 {
		t.Fatalf("commit after fix failed: mode %v total %v", m.mode, m.form.Ledger().JobTotal("Zevin Tingley"))
	}
}

func TestUI_NotesAndBackNavigation(t *testing.T) {
	m := newTestModel(t, &recordingSink{})
	m = press(t, m, "space")
	m = moveTo(t, m, rowAddTask, "Zevin Tingley")
	m = press(t, m, "enter", "down", "enter") // Framing
	if step, ok := m.form.Wizard().Step().(model.TaskStep); !ok || step.Category != "Framing" {
		t.Fatalf("step = %#v", m.form.Wizard().Step())
	}

	// Back to categories keeps the cursor on Framing.
	m = press(t, m, "h")
	if m.form.Wizard().Step().Kind() != model.StepCategory || m.wizardCursor != 1 {
		t.Fatalf("after back: step %v cursor %d", m.form.Wizard().Step(), m.wizardCursor)
	}

	m = press(t, m, "enter", "down", "enter") // Framing / Interior walls
	m = typeText(t, m, "3")
	m = press(t, m, "tab")
	m = typeText(t, m, "north")
	if s := m.form.Wizard().Step().(model.HoursStep); s.Hours != "3" || s.Notes != "north" {
		t.Fatalf("inputs not synced: %#v", s)
	}

	m = press(t, m, "ctrl+b")
	if m.form.Wizard().Step().Kind() != model.StepTasks || m.wizardCursor != 1 {
		t.Fatalf("ctrl+b: step %v cursor %d", m.form.Wizard().Step(), m.wizardCursor)
	}

	// Re-entering the hours step starts with empty inputs.
	m = press(t, m, "enter")
	if s := m.form.Wizard().Step().(model.HoursStep); s.Hours != "" || s.Notes != "" {
		t.Fatalf("hours step not reset: %#v", s)
	}
	if m.hoursInput.Value() != "" || m.notesInput.Value() != "" {
		t.Fatalf("inputs not reset")
	}

	m = typeText(t, m, "1.5")
	m = press(t, m, "tab")
	m = typeText(t, m, "stairwell")
	m = press(t, m, "enter")
	tasks := m.form.Ledger().Tasks("Zevin Tingley")
	if len(tasks) != 1 || tasks[0].Notes != "stairwell" || tasks[0].Hours != 1.5 {
		t.Fatalf("tasks = %#v", tasks)
	}
	if !strings.Contains(m.View(), "stairwell") {
		t.Fatalf("notes not rendered")
	}
}

func TestUI_CancelLeavesLedgerAlone(t *testing.T) {
	m := newTestModel(t, &recordingSink{})
	m = press(t, m, "space")
	m = moveTo(t, m, rowAddTask, "Zevin Tingley")
	m = press(t, m, "enter", "enter", "enter")
	m = typeText(t, m, "8")
	m = press(t, m, "esc")

	if m.mode != modeForm || m.form.Wizard().IsOpen() {
		t.Fatalf("esc did not close the wizard")
	}
	if len(m.form.Ledger().Tasks("Zevin Tingley")) != 0 {
		t.Fatalf("cancel recorded a task")
	}
}

func TestUI_RemoveTaskAndDeselect(t *testing.T) {
	m := newTestModel(t, &recordingSink{})
	m = press(t, m, "space")
	m = addTask(t, m, "Zevin Tingley", "Demo", "Interior", "1")
	m = addTask(t, m, "Zevin Tingley", "Demo", "Exterior", "2")

	m = moveTo(t, m, rowEntry, "Zevin Tingley")
	m = press(t, m, "x")
	tasks := m.form.Ledger().Tasks("Zevin Tingley")
	if len(tasks) != 1 || tasks[0].Task != "Exterior" {
		t.Fatalf("tasks after remove = %#v", tasks)
	}

	m = moveTo(t, m, rowJob, "Zevin Tingley")
	m = press(t, m, "space")
	if m.form.Ledger().IsSelected("Zevin Tingley") || m.form.Ledger().GrandTotal() != 0 {
		t.Fatalf("deselect did not drop tasks")
	}
	if m.cursor >= len(m.rows()) {
		t.Fatalf("cursor %d out of range", m.cursor)
	}
	if !strings.Contains(m.View(), "Select jobs above to get started") {
		t.Fatalf("empty state not shown")
	}
}

func TestUI_AddTaskOnUnselectedJob(t *testing.T) {
	m := newTestModel(t, &recordingSink{})
	m = press(t, m, "a")
	if m.mode != modeForm || !m.statusError {
		t.Fatalf("add task on unselected job should be refused")
	}
}

func TestUI_SetDate(t *testing.T) {
	m := newTestModel(t, &recordingSink{})
	m = press(t, m, "d")
	if m.mode != modeSetDate {
		t.Fatalf("mode = %v", m.mode)
	}
	m.dateInput.SetValue("")
	m = typeText(t, m, "-1")
	m = press(t, m, "enter")
	if m.form.DateString() != "2026-10-14" || m.mode != modeForm {
		t.Fatalf("date = %s, mode %v", m.form.DateString(), m.mode)
	}

	m = press(t, m, "d")
	m.dateInput.SetValue("")
	m = typeText(t, m, "someday")
	m = press(t, m, "enter")
	if m.mode != modeSetDate || !m.statusError {
		t.Fatalf("invalid date should keep the dialog open with an error")
	}
	m = press(t, m, "esc")
	if m.form.DateString() != "2026-10-14" {
		t.Fatalf("cancel changed the date")
	}
}

func TestUI_SummaryView(t *testing.T) {
	m := newTestModel(t, &recordingSink{})
	m = press(t, m, "w", "space")
	m = addTask(t, m, "Zevin Tingley", "Cleanup", "Site cleanup", "3")

	m = press(t, m, "v")
	if m.mode != modeSummary {
		t.Fatalf("mode = %v", m.mode)
	}
	view := m.View()
	for _, want := range []string{"Timesheet Summary", "Zevin Tingley", "3.0h", "Site cleanup"} {
		if !strings.Contains(view, want) {
			t.Fatalf("summary missing %q:\n%s", want, view)
		}
	}
	m = press(t, m, "esc")
	if m.mode != modeForm {
		t.Fatalf("esc did not leave summary")
	}
}

func TestUI_SelectedCountLine(t *testing.T) {
	m := newTestModel(t, &recordingSink{})
	if !strings.Contains(m.View(), "Selected: 0 jobs") {
		t.Fatalf("missing zero count")
	}
	m = press(t, m, "space")
	if !strings.Contains(m.View(), "Selected: 1 job") {
		t.Fatalf("missing singular count")
	}
}

func TestFormatHours(t *testing.T) {
	tests := map[float64]string{4: "4", 3.5: "3.5", 0.25: "0.25"}
	for in, want := range tests {
		if got := formatHours(in); got != want {
			t.Errorf("formatHours(%v) = %q, want %q", in, got, want)
		}
	}
	if pluralize(1, "hour") != "hour" || pluralize(2, "hour") != "hours" {
		t.Fatalf("pluralize mismatch")
	}
}

func TestHoursStepReportsStaleWizard(t *testing.T) {
	m := newTestModel(t, &recordingSink{})
	step := model.HoursStep{Job: "Riverside Deck", Category: "Framing", Task: "Stairs"}

	// The wizard itself is closed, so syncing the typed hours must fail loudly.
	next, _ := m.updateHoursStep(keyPress("5"), step)
	m = next.(uiModel)
	if !m.statusError || !strings.Contains(m.statusMsg, model.ErrWrongStep.Error()) {
		t.Fatalf("status = %q (error=%v), want wrong-step error", m.statusMsg, m.statusError)
	}
	if m.form.Wizard().IsOpen() {
		t.Fatal("wizard should stay closed")
	}
}
