package model

import "errors"

// Validation failures shown to the user verbatim
var (
	ErrSelectName = errors.New("Please select your name")
	ErrAddTask    = errors.New("Please add at least one task")
	ErrEnterHours = errors.New("Please enter hours")
)

// Rejected transitions that the UI never offers but the API still guards
var (
	ErrUnknownWorker   = errors.New("unknown worker")
	ErrUnknownJob      = errors.New("unknown job")
	ErrJobNotSelected  = errors.New("job is not selected")
	ErrNoSuchTask      = errors.New("no task at that position")
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownTask     = errors.New("task does not belong to category")
	ErrWizardOpen      = errors.New("a task is already being added")
	ErrWrongStep       = errors.New("not available at this step")
)
