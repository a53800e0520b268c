package domain

import (
	"fmt"
	"time"
)

// Event is a calendar entry. A recurring event is the anchor of its series;
// individual occurrences are derived from it on demand and never stored.
type Event struct {
	ID          string
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	AllDay      bool
	Recurrence  RecurrenceRule

	// ExcludedDates holds calendar days (local midnight) on which the series
	// does not occur because that occurrence was detached into its own event.
	ExcludedDates []time.Time

	Fixed                bool
	Category             string
	Priority             Priority
	Color                string
	NotificationsEnabled bool

	// SourceTemplateID is set on events generated by the scheduler.
	SourceTemplateID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Duration is End - Start, shared by every occurrence of the series.
func (e *Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Generated reports whether the scheduler produced this event.
func (e *Event) Generated() bool {
	return e.SourceTemplateID != nil
}

// IsExcluded reports whether day is one of the series' excluded dates.
func (e *Event) IsExcluded(day time.Time) bool {
	for _, ex := range e.ExcludedDates {
		if SameDay(ex, day) {
			return true
		}
	}
	return false
}

// Exclude adds day to ExcludedDates if it is not already there.
func (e *Event) Exclude(day time.Time) {
	if e.IsExcluded(day) {
		return
	}
	e.ExcludedDates = append(e.ExcludedDates, StartOfDay(day))
}

// Validate checks required fields before the event is written.
func (e *Event) Validate() error {
	if e.Title == "" {
		return fmt.Errorf("event title is required")
	}
	if e.Start.IsZero() {
		return fmt.Errorf("event start is required")
	}
	if e.End.Before(e.Start) {
		return fmt.Errorf("event end %s is before start %s",
			e.End.Format("2006-01-02 15:04"), e.Start.Format("2006-01-02 15:04"))
	}
	if e.Priority != "" && !ValidPriorities[string(e.Priority)] {
		return fmt.Errorf("priority %q must be high, medium or low", e.Priority)
	}
	return e.Recurrence.Validate()
}
