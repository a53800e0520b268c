// Package ics renders events as an iCalendar feed. Recurring anchors are
// written once with an RRULE equivalent to the in-process expansion rules,
// and detached dates become EXDATEs.
package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/alexanderramin/dayweave/internal/recurrence"
)

// ProductID identifies the exporter in PRODID.
const ProductID = "-//dayweave//dayweave calendar//EN"

const (
	floatingLayout = "20060102T150405"
	dateLayout     = "20060102"
)

// maxClampedMonthDay is the largest day-of-month every month has. Larger
// days need BYSETPOS to clamp to the end of short months.
const maxClampedMonthDay = 28

// Encode writes events to w as one VCALENDAR. now is used for DTSTAMP.
func Encode(w io.Writer, events []*domain.Event, now time.Time) error {
	cal := ical.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetMethod(ical.MethodPublish)

	for _, e := range events {
		addEvent(cal, e, now)
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

func addEvent(cal *ical.Calendar, e *domain.Event, now time.Time) {
	ve := cal.AddEvent(e.ID)
	ve.SetDtStampTime(now.UTC())
	if !e.CreatedAt.IsZero() {
		ve.SetCreatedTime(e.CreatedAt.UTC())
	}
	if !e.UpdatedAt.IsZero() {
		ve.SetModifiedAt(e.UpdatedAt.UTC())
	}

	if e.AllDay {
		ve.SetAllDayStartAt(e.Start)
		// DTEND is exclusive for date values.
		ve.SetAllDayEndAt(domain.StartOfDay(e.End).AddDate(0, 0, 1))
	} else {
		// Floating local times keep BYDAY and BYMONTHDAY on the user's
		// calendar days regardless of the reader's zone.
		ve.SetProperty(ical.ComponentPropertyDtStart, e.Start.Format(floatingLayout))
		ve.SetProperty(ical.ComponentPropertyDtEnd, e.End.Format(floatingLayout))
	}

	ve.SetSummary(e.Title)
	if e.Description != "" {
		ve.SetDescription(e.Description)
	}
	if e.Location != "" {
		ve.SetLocation(e.Location)
	}
	if e.Category != "" {
		ve.SetProperty(ical.ComponentPropertyCategories, e.Category)
	}
	if e.Color != "" {
		ve.SetProperty(ical.ComponentPropertyColor, e.Color)
	}

	rule, ok := RRule(e.Recurrence, e.Start)
	if !ok {
		return
	}
	ve.AddRrule(rule)
	for _, day := range e.ExcludedDates {
		ve.AddProperty(ical.ComponentPropertyExdate, exdateValue(e, day))
	}
}

func exdateValue(e *domain.Event, day time.Time) string {
	if e.AllDay {
		return day.Format(dateLayout)
	}
	d := domain.StartOfDay(day)
	return time.Date(d.Year(), d.Month(), d.Day(),
		e.Start.Hour(), e.Start.Minute(), e.Start.Second(), 0, e.Start.Location()).Format(floatingLayout)
}

// RRule returns the RRULE value for rule anchored at anchor, or false when
// the rule does not repeat. Defaults are filled from the anchor first, so
// the rule and the in-process expansion agree.
func RRule(rule domain.RecurrenceRule, anchor time.Time) (string, bool) {
	if !rule.IsRecurring() {
		return "", false
	}
	rule = recurrence.Resolve(rule, anchor)

	var opt rrule.ROption
	switch rule.Type {
	case domain.RecurDaily:
		opt.Freq = rrule.DAILY
	case domain.RecurWeekly:
		opt.Freq = rrule.WEEKLY
		for _, d := range rule.WeeklyDays {
			if wd, ok := isoWeekdays[d]; ok {
				opt.Byweekday = append(opt.Byweekday, wd)
			}
		}
	case domain.RecurMonthly:
		opt.Freq = rrule.MONTHLY
		if rule.MonthlyDay <= maxClampedMonthDay {
			opt.Bymonthday = []int{rule.MonthlyDay}
		} else {
			// Pick the last existing day of 28..d, which is d clamped to
			// the length of the month.
			for d := maxClampedMonthDay; d <= rule.MonthlyDay; d++ {
				opt.Bymonthday = append(opt.Bymonthday, d)
			}
			opt.Bysetpos = []int{-1}
		}
	default:
		return "", false
	}
	return strings.TrimPrefix(opt.RRuleString(), "RRULE:"), true
}

var isoWeekdays = map[int]rrule.Weekday{
	1: rrule.MO,
	2: rrule.TU,
	3: rrule.WE,
	4: rrule.TH,
	5: rrule.FR,
	6: rrule.SA,
	7: rrule.SU,
}
