package core

import "strings"

const (
	MsgEmptyTask       = "Task cannot be empty"
	MsgNegativeSalary  = "Salary must be positive"
	MsgNegativeBreak   = "Break must be positive"
	MsgEndBeforeStart  = "End time must be after start time"
	MsgNegativePayment = "Paid amount must be positive"
)

// ValidationResult is the outcome of ValidateEntry.
type ValidationResult struct {
	Valid bool
	Error string
}

// Err returns nil for a valid result and a *ValidationError otherwise.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return NewValidationError(r.Error)
}

// ValidateEntry checks the field invariants of a work entry before it may be
// persisted. The first failing rule wins. PaidAmount is not compared with
// Salary: overpayment is allowed.
func ValidateEntry(e WorkEntry) ValidationResult {
	switch {
	case strings.TrimSpace(e.Task) == "":
		return invalid(MsgEmptyTask)
	case e.Salary < 0:
		return invalid(MsgNegativeSalary)
	case e.BreakMinutes < 0:
		return invalid(MsgNegativeBreak)
	case e.EndTime.Before(e.StartTime):
		return invalid(MsgEndBeforeStart)
	}
	return ValidationResult{Valid: true}
}

// Validate is a shorthand for ValidateEntry(e).Err().
func (e WorkEntry) Validate() error {
	return ValidateEntry(e).Err()
}

// Validate rejects notes with a blank title or content.
func (n Note) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return ErrEmptyNoteTitle
	}
	if strings.TrimSpace(n.Content) == "" {
		return ErrEmptyNoteContent
	}
	return nil
}

func invalid(msg string) ValidationResult {
	return ValidationResult{Valid: false, Error: msg}
}
