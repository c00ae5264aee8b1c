package model

import "fmt"

// Ledger tracks which jobs are selected and the entries logged against
// each. A job is selected exactly when it has a key in tasks, so the
// ledger can never hold entries for a deselected job.
type Ledger struct {
	catalog *Catalog
	tasks   map[string][]TaskEntry
}

// NewLedger returns an empty ledger over the catalog's jobs
func NewLedger(catalog *Catalog) *Ledger {
	return &Ledger{
		catalog: catalog,
		tasks:   make(map[string][]TaskEntry),
	}
}

// ToggleJob selects an unselected job with an empty task list, or
// deselects a selected one, discarding everything logged against it.
// It reports whether the job is selected afterwards.
func (l *Ledger) ToggleJob(job string) (bool, error) {
	if !l.catalog.HasJob(job) {
		return false, fmt.Errorf("%w: %s", ErrUnknownJob, job)
	}
	if _, ok := l.tasks[job]; ok {
		delete(l.tasks, job)
		return false, nil
	}
	l.tasks[job] = []TaskEntry{}
	return true, nil
}

// IsSelected reports whether job is currently selected
func (l *Ledger) IsSelected(job string) bool {
	_, ok := l.tasks[job]
	return ok
}

// SelectedJobs returns the selected jobs in catalog order
func (l *Ledger) SelectedJobs() []string {
	var jobs []string
	for _, job := range l.catalog.jobs {
		if l.IsSelected(job) {
			jobs = append(jobs, job)
		}
	}
	return jobs
}

// SelectedCount returns how many jobs are selected
func (l *Ledger) SelectedCount() int {
	return len(l.tasks)
}

// Tasks returns a copy of the entries logged against job
func (l *Ledger) Tasks(job string) []TaskEntry {
	return append([]TaskEntry(nil), l.tasks[job]...)
}

// Append records entry at the end of job's list
func (l *Ledger) Append(job string, entry TaskEntry) error {
	list, ok := l.tasks[job]
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotSelected, job)
	}
	l.tasks[job] = append(list, entry)
	return nil
}

// RemoveTask deletes the entry at index, shifting later entries down
func (l *Ledger) RemoveTask(job string, index int) error {
	list, ok := l.tasks[job]
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotSelected, job)
	}
	if index < 0 || index >= len(list) {
		return fmt.Errorf("%w: %s #%d", ErrNoSuchTask, job, index)
	}
	updated := make([]TaskEntry, 0, len(list)-1)
	updated = append(updated, list[:index]...)
	updated = append(updated, list[index+1:]...)
	l.tasks[job] = updated
	return nil
}

// JobTotal sums the hours logged against job; 0 for unselected jobs
func (l *Ledger) JobTotal(job string) float64 {
	var total float64
	for _, entry := range l.tasks[job] {
		total += entry.Hours
	}
	return total
}

// GrandTotal sums JobTotal over every selected job
func (l *Ledger) GrandTotal() float64 {
	var total float64
	for _, job := range l.SelectedJobs() {
		total += l.JobTotal(job)
	}
	return total
}
