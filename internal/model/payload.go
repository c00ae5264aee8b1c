package model

import "context"

// Payload is what a successful submission hands to the sink
type Payload struct {
	WorkerName string         `json:"workerName" yaml:"workerName"`
	Date       string         `json:"date" yaml:"date"`
	Entries    []PayloadEntry `json:"entries" yaml:"entries"`
}

// PayloadEntry is one TaskEntry flattened with the job it belongs to
type PayloadEntry struct {
	Job      string  `json:"job" yaml:"job"`
	Category string  `json:"category" yaml:"category"`
	Task     string  `json:"task" yaml:"task"`
	Hours    float64 `json:"hours" yaml:"hours"`
	Notes    string  `json:"notes" yaml:"notes"`
}

// TotalHours sums the hours of every entry
func (p Payload) TotalHours() float64 {
	var total float64
	for _, e := range p.Entries {
		total += e.Hours
	}
	return total
}

// Submitter accepts a finished timesheet. It is the only boundary the
// form talks to; what happens to the payload afterwards is its business.
type Submitter interface {
	Submit(ctx context.Context, p Payload) error
}
