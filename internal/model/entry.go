package model

// TaskEntry is one logged unit of work against a job. Entries are
// values: once recorded they are only ever removed, never edited.
type TaskEntry struct {
	Category string
	Task     string
	Hours    float64
	Notes    string
}
