package model

import (
	"context"
	"fmt"
	"time"
)

// Form is the whole timesheet screen: who, when, and what was worked on.
// While the wizard is open it is modal, so page-level edits are refused.
type Form struct {
	catalog *Catalog
	ledger  *Ledger
	wizard  *Wizard
	worker  string
	date    time.Time
}

// NewForm returns an empty form dated today
func NewForm(catalog *Catalog, today time.Time) *Form {
	return &Form{
		catalog: catalog,
		ledger:  NewLedger(catalog),
		wizard:  NewWizard(catalog),
		date:    Day(today),
	}
}

// Catalog returns the static configuration the form was built from
func (f *Form) Catalog() *Catalog { return f.catalog }

// Ledger returns the job selection and task ledger
func (f *Form) Ledger() *Ledger { return f.ledger }

// Wizard returns the add-task wizard
func (f *Form) Wizard() *Wizard { return f.wizard }

// Worker returns the selected worker, empty when none is selected
func (f *Form) Worker() string { return f.worker }

// SetWorker selects a worker from the roster; empty clears the choice
func (f *Form) SetWorker(name string) error {
	if name != "" && !f.catalog.HasWorker(name) {
		return fmt.Errorf("%w: %s", ErrUnknownWorker, name)
	}
	f.worker = name
	return nil
}

// CycleWorker steps through the roster like a select box, where the
// slot before the first worker is "no selection"
func (f *Form) CycleWorker(delta int) string {
	slots := len(f.catalog.workers) + 1
	current := f.catalog.WorkerIndex(f.worker) + 1
	next := ((current+delta)%slots + slots) % slots
	if next == 0 {
		f.worker = ""
	} else {
		f.worker = f.catalog.workers[next-1]
	}
	return f.worker
}

// Date returns the work date
func (f *Form) Date() time.Time { return f.date }

// DateString returns the work date as YYYY-MM-DD
func (f *Form) DateString() string { return f.date.Format(DateLayout) }

// SetDate changes the work date
func (f *Form) SetDate(date time.Time) {
	f.date = Day(date)
}

// ToggleJob selects or deselects job. Deselecting drops its tasks.
func (f *Form) ToggleJob(job string) (bool, error) {
	if f.wizard.IsOpen() {
		return f.ledger.IsSelected(job), ErrWizardOpen
	}
	return f.ledger.ToggleJob(job)
}

// RemoveTask deletes a recorded entry by position
func (f *Form) RemoveTask(job string, index int) error {
	if f.wizard.IsOpen() {
		return ErrWizardOpen
	}
	return f.ledger.RemoveTask(job, index)
}

// OpenWizard starts adding a task to a selected job
func (f *Form) OpenWizard(job string) error {
	if !f.ledger.IsSelected(job) {
		return fmt.Errorf("%w: %s", ErrJobNotSelected, job)
	}
	return f.wizard.Open(job)
}

// CommitTask completes the wizard run and records its entry
func (f *Form) CommitTask() (string, TaskEntry, error) {
	if job := f.wizard.Job(); job != "" && !f.ledger.IsSelected(job) {
		return "", TaskEntry{}, fmt.Errorf("%w: %s", ErrJobNotSelected, job)
	}
	job, entry, err := f.wizard.Commit()
	if err != nil {
		return "", TaskEntry{}, err
	}
	if err := f.ledger.Append(job, entry); err != nil {
		return "", TaskEntry{}, err
	}
	return job, entry, nil
}

// Validate applies the submission gate: a worker must be chosen and at
// least some hours must be logged. Nothing is submitted mid wizard run.
func (f *Form) Validate() error {
	if f.wizard.IsOpen() {
		return ErrWizardOpen
	}
	if f.worker == "" {
		return ErrSelectName
	}
	if f.ledger.GrandTotal() <= 0 {
		return ErrAddTask
	}
	return nil
}

// Payload builds the submission payload, entries ordered by catalog job
// order and then by the order they were recorded in
func (f *Form) Payload() (Payload, error) {
	if err := f.Validate(); err != nil {
		return Payload{}, err
	}
	return f.Draft(), nil
}

// Draft builds the payload without applying the submission gate
func (f *Form) Draft() Payload {
	p := Payload{
		WorkerName: f.worker,
		Date:       f.DateString(),
		Entries:    []PayloadEntry{},
	}
	for _, job := range f.ledger.SelectedJobs() {
		for _, e := range f.ledger.tasks[job] {
			p.Entries = append(p.Entries, PayloadEntry{
				Job:      job,
				Category: e.Category,
				Task:     e.Task,
				Hours:    e.Hours,
				Notes:    e.Notes,
			})
		}
	}
	return p
}

// Submit hands the payload to s. The form itself is left untouched.
func (f *Form) Submit(ctx context.Context, s Submitter) (Payload, error) {
	p, err := f.Payload()
	if err != nil {
		return Payload{}, err
	}
	if err := s.Submit(ctx, p); err != nil {
		return p, fmt.Errorf("submit timesheet: %w", err)
	}
	return p, nil
}
