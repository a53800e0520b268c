package domain

import (
	"fmt"
	"time"
)

type Todo struct {
	ID          string
	Title       string
	Due         time.Time
	Recurrence  RecurrenceRule
	Priority    Priority
	Category    string
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsDone reports whether the todo has been completed.
func (t *Todo) IsDone() bool {
	return t.CompletedAt != nil
}

// MarkDone completes the todo. Completing twice keeps the first timestamp.
func (t *Todo) MarkDone(now time.Time) {
	if t.CompletedAt != nil {
		return
	}
	t.CompletedAt = &now
	t.UpdatedAt = now
}

func (t *Todo) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("todo title is required")
	}
	if t.Due.IsZero() {
		return fmt.Errorf("todo due date is required")
	}
	if t.Priority != "" && !ValidPriorities[string(t.Priority)] {
		return fmt.Errorf("priority %q must be high, medium or low", t.Priority)
	}
	return t.Recurrence.Validate()
}
