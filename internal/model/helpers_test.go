package model

import (
	"testing"
	"time"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(
		[]string{"Livia", "Will", "Dar", "Dan", "Mike"},
		[]string{"Zevin Tingley", "Harbor View Renovation", "Oak Street Addition", "Riverside Deck"},
		[]Category{
			{Name: "Demo", Icon: "🔨", Tasks: []string{"Interior", "Exterior", "Roof", "Concrete", "Other demo"}},
			{Name: "Framing", Icon: "🏗️", Tasks: []string{"Exterior walls", "Interior walls", "Roof framing", "Floor joists", "Stairs", "Other framing"}},
			{Name: "Electrical", Icon: "⚡", Tasks: []string{"Rough-in", "Panel work", "Fixtures", "Troubleshooting", "Other electrical"}},
			{Name: "Plumbing", Icon: "🚰", Tasks: []string{"Rough-in", "Fixtures", "Gas lines", "Water heater", "Other plumbing"}},
		},
	)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}

var testToday = time.Date(2026, 10, 15, 9, 41, 0, 0, time.UTC)

// addEntry runs the wizard end to end for job.
func addEntry(t *testing.T, f *Form, job, category, task, hours, notes string) {
	t.Helper()
	if err := f.OpenWizard(job); err != nil {
		t.Fatalf("OpenWizard(%q): %v", job, err)
	}
	if err := f.Wizard().ChooseCategory(category); err != nil {
		t.Fatalf("ChooseCategory(%q): %v", category, err)
	}
	if err := f.Wizard().ChooseTask(task); err != nil {
		t.Fatalf("ChooseTask(%q): %v", task, err)
	}
	if err := f.Wizard().SetHours(hours); err != nil {
		t.Fatalf("SetHours: %v", err)
	}
	if err := f.Wizard().SetNotes(notes); err != nil {
		t.Fatalf("SetNotes: %v", err)
	}
	if _, _, err := f.CommitTask(); err != nil {
		t.Fatalf("CommitTask: %v", err)
	}
}
