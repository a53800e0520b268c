package scheduler

import (
	"time"

	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/alexanderramin/dayweave/internal/recurrence"
)

// DayRequest is everything needed to plan one day.
type DayRequest struct {
	Date      time.Time
	Events    []domain.Event
	Templates []domain.Template
	Settings  domain.Settings
	Signals   LearningSignals
}

// DayPlan is the outcome of GenerateDaySchedule. Slots are the free windows
// after break insertion, before any placement.
type DayPlan struct {
	Date   time.Time
	Slots  []TimeSlot
	Placed []domain.Event
}

// Empty reports whether nothing could be placed.
func (p DayPlan) Empty() bool {
	return len(p.Placed) == 0
}

// FixedOccurrences expands events onto day. All-day events do not block
// time and are skipped.
func FixedOccurrences(day time.Time, events []domain.Event) []recurrence.Occurrence {
	var occs []recurrence.Occurrence
	for i := range events {
		if events[i].AllDay {
			continue
		}
		exp := recurrence.Expand(recurrence.EventAnchor(&events[i]), day, day)
		occs = append(occs, exp.Occurrences...)
	}
	return occs
}

// FreeTime is the free time of day after break insertion.
func FreeTime(day time.Time, events []domain.Event, settings domain.Settings) []TimeSlot {
	slots := ExtractFreeSlots(day, FixedOccurrences(day, events), settings.WakeTime, settings.SleepTime)
	return InsertBreaks(slots, settings.WorkSessionMin, settings.BreakMin)
}

// CandidatesFromTemplates turns schedulable templates into candidates in
// template order. Default templates are reference data and are skipped.
func CandidatesFromTemplates(templates []domain.Template) []TaskCandidate {
	var out []TaskCandidate
	for _, t := range templates {
		if t.IsDefault {
			continue
		}
		out = append(out, TaskCandidate{
			SourceID:    t.ID,
			Title:       t.Name,
			DurationMin: t.DurationMin,
			Priority:    t.Priority,
			Category:    t.Category,
			Color:       t.Color,
		})
	}
	return out
}

// GenerateDaySchedule fills the free time of req.Date with the request's
// templates. It does not persist anything.
func GenerateDaySchedule(req DayRequest) DayPlan {
	day := domain.StartOfDay(req.Date)
	slots := FreeTime(day, req.Events, req.Settings)
	placed := Allocate(slots, CandidatesFromTemplates(req.Templates), req.Settings, req.Signals)
	return DayPlan{Date: day, Slots: slots, Placed: placed}
}
