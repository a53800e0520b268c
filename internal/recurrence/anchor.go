// Package recurrence expands recurring events and todos into concrete
// occurrences. Every function here is pure: occurrences are derived from the
// anchor on demand and carry only a back-reference to it.
package recurrence

import (
	"time"

	"github.com/alexanderramin/dayweave/internal/domain"
)

// Anchor is the series definition occurrences are derived from.
type Anchor struct {
	ID            string
	Start         time.Time
	End           time.Time
	Rule          domain.RecurrenceRule
	ExcludedDates []time.Time
}

// EventAnchor builds an Anchor from a calendar event.
func EventAnchor(e *domain.Event) Anchor {
	return Anchor{
		ID:            e.ID,
		Start:         e.Start,
		End:           e.End,
		Rule:          e.Recurrence,
		ExcludedDates: e.ExcludedDates,
	}
}

// TodoAnchor builds an Anchor from a todo. A todo has no duration, so each
// occurrence starts and ends at its due time.
func TodoAnchor(t *domain.Todo) Anchor {
	return Anchor{
		ID:    t.ID,
		Start: t.Due,
		End:   t.Due,
		Rule:  t.Recurrence,
	}
}

func (a Anchor) excluded(day time.Time) bool {
	for _, ex := range a.ExcludedDates {
		if domain.SameDay(ex, day) {
			return true
		}
	}
	return false
}

// oneOff reports whether the anchor has no recurrence at all. Unknown rule
// types are not one-off: they go through the recurring path, where
// NextOccurrence refuses to advance them.
func (a Anchor) oneOff() bool {
	return a.Rule.Type == domain.RecurNone || a.Rule.Type == ""
}

// Resolve fills the defaults a rule leaves implicit, taken from the anchor
// date: weekly without days repeats on the anchor's weekday, monthly without
// a day repeats on the anchor's day of month.
func Resolve(rule domain.RecurrenceRule, anchor time.Time) domain.RecurrenceRule {
	switch rule.Type {
	case domain.RecurWeekly:
		if len(rule.WeeklyDays) == 0 {
			rule.WeeklyDays = []int{ISOWeekday(anchor.Weekday())}
		}
	case domain.RecurMonthly:
		if rule.MonthlyDay <= 0 || rule.MonthlyDay > 31 {
			rule.MonthlyDay = anchor.Day()
		}
	}
	return rule
}

// ISOWeekday converts time.Weekday (0=Sunday) to 1=Monday..7=Sunday.
func ISOWeekday(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}
