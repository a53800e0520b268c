package domain

import (
	"fmt"
	"time"
)

// Template is a reusable task definition the scheduler can place into free
// time. Default templates are seeded reference data and never scheduled.
type Template struct {
	ID          string
	Name        string
	DurationMin int
	Category    string
	Priority    Priority
	Color       string
	IsDefault   bool
	CreatedAt   time.Time
}

func (t *Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("template name is required")
	}
	if t.DurationMin <= 0 {
		return fmt.Errorf("template duration must be positive, got %d", t.DurationMin)
	}
	if !ValidPriorities[string(t.Priority)] {
		return fmt.Errorf("priority %q must be high, medium or low", t.Priority)
	}
	return nil
}
