package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// StepKind identifies which screen of the add-task wizard is showing
type StepKind int

const (
	StepClosed StepKind = iota
	StepCategory
	StepTasks
	StepHours
)

func (k StepKind) String() string {
	switch k {
	case StepClosed:
		return "closed"
	case StepCategory:
		return "category"
	case StepTasks:
		return "tasks"
	case StepHours:
		return "hours"
	}
	return fmt.Sprintf("StepKind(%d)", int(k))
}

// Step is the wizard state. Each variant carries only the fields that
// are meaningful on its screen.
type Step interface {
	Kind() StepKind
}

// Closed is the neutral state: no task is being added
type Closed struct{}

// CategoryStep asks for a category. Previous is the category chosen
// before backing out of the task list, if any.
type CategoryStep struct {
	Job      string
	Previous string
}

// TaskStep asks for a task type within Category
type TaskStep struct {
	Job      string
	Category string
}

// HoursStep collects the raw hours and notes input
type HoursStep struct {
	Job      string
	Category string
	Task     string
	Hours    string
	Notes    string
}

func (Closed) Kind() StepKind       { return StepClosed }
func (CategoryStep) Kind() StepKind { return StepCategory }
func (TaskStep) Kind() StepKind     { return StepTasks }
func (HoursStep) Kind() StepKind    { return StepHours }

// Wizard drives the category → task → hours sequence that produces
// exactly one TaskEntry per completed run
type Wizard struct {
	catalog *Catalog
	step    Step
}

// NewWizard returns a closed wizard
func NewWizard(catalog *Catalog) *Wizard {
	return &Wizard{catalog: catalog, step: Closed{}}
}

// Step returns the current state
func (w *Wizard) Step() Step {
	return w.step
}

// IsOpen reports whether a wizard run is in progress
func (w *Wizard) IsOpen() bool {
	return w.step.Kind() != StepClosed
}

// Job returns the job the current run will record against
func (w *Wizard) Job() string {
	switch s := w.step.(type) {
	case CategoryStep:
		return s.Job
	case TaskStep:
		return s.Job
	case HoursStep:
		return s.Job
	}
	return ""
}

// Open starts a run for job at the category step
func (w *Wizard) Open(job string) error {
	if w.IsOpen() {
		return ErrWizardOpen
	}
	if !w.catalog.HasJob(job) {
		return fmt.Errorf("%w: %s", ErrUnknownJob, job)
	}
	w.step = CategoryStep{Job: job}
	return nil
}

// ChooseCategory records the category and moves to the task list
func (w *Wizard) ChooseCategory(name string) error {
	s, ok := w.step.(CategoryStep)
	if !ok {
		return fmt.Errorf("%w: choose category on %s", ErrWrongStep, w.step.Kind())
	}
	if w.catalog.CategoryIndex(name) < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, name)
	}
	w.step = TaskStep{Job: s.Job, Category: name}
	return nil
}

// ChooseTask records the task type and moves to hours entry
func (w *Wizard) ChooseTask(name string) error {
	s, ok := w.step.(TaskStep)
	if !ok {
		return fmt.Errorf("%w: choose task on %s", ErrWrongStep, w.step.Kind())
	}
	if !w.catalog.HasTask(s.Category, name) {
		return fmt.Errorf("%w: %s / %s", ErrUnknownTask, s.Category, name)
	}
	w.step = HoursStep{Job: s.Job, Category: s.Category, Task: name}
	return nil
}

// Back returns to the previous screen. From hours it drops the hours
// and notes input; from the task list it drops the task. It reports
// whether the step changed.
func (w *Wizard) Back() bool {
	switch s := w.step.(type) {
	case TaskStep:
		w.step = CategoryStep{Job: s.Job, Previous: s.Category}
		return true
	case HoursStep:
		w.step = TaskStep{Job: s.Job, Category: s.Category}
		return true
	}
	return false
}

// SetHours replaces the raw hours input
func (w *Wizard) SetHours(input string) error {
	s, ok := w.step.(HoursStep)
	if !ok {
		return fmt.Errorf("%w: set hours on %s", ErrWrongStep, w.step.Kind())
	}
	s.Hours = input
	w.step = s
	return nil
}

// SetNotes replaces the notes input
func (w *Wizard) SetNotes(input string) error {
	s, ok := w.step.(HoursStep)
	if !ok {
		return fmt.Errorf("%w: set notes on %s", ErrWrongStep, w.step.Kind())
	}
	s.Notes = input
	w.step = s
	return nil
}

// Commit finishes the run. Hours must parse as a number strictly
// greater than zero; otherwise ErrEnterHours is returned and the wizard
// stays on the hours step untouched. On success the wizard closes and
// the target job and new entry are returned for the caller to record.
func (w *Wizard) Commit() (string, TaskEntry, error) {
	s, ok := w.step.(HoursStep)
	if !ok {
		return "", TaskEntry{}, fmt.Errorf("%w: commit on %s", ErrWrongStep, w.step.Kind())
	}
	hours, err := ParseHours(s.Hours)
	if err != nil {
		return "", TaskEntry{}, err
	}
	entry := TaskEntry{
		Category: s.Category,
		Task:     s.Task,
		Hours:    hours,
		Notes:    s.Notes,
	}
	w.step = Closed{}
	return s.Job, entry, nil
}

// Cancel abandons the run from any step
func (w *Wizard) Cancel() {
	w.step = Closed{}
}

// ParseHours parses hours input, accepting only plain decimals > 0
func ParseHours(input string) (float64, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" || strings.IndexFunc(trimmed, notDecimalRune) >= 0 {
		return 0, ErrEnterHours
	}
	hours, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(hours) || math.IsInf(hours, 0) || hours <= 0 {
		return 0, ErrEnterHours
	}
	return hours, nil
}

// notDecimalRune rejects hex floats, exponents and digit separators
func notDecimalRune(r rune) bool {
	return (r < '0' || r > '9') && r != '.' && r != '+' && r != '-'
}
