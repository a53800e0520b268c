package recurrence

import (
	"sort"
	"time"

	"github.com/alexanderramin/dayweave/internal/domain"
)

const (
	// MaxWalkSteps bounds the forward walk in OccursOn.
	MaxWalkSteps = 1000
	// MaxOccurrences bounds the number of occurrences one Expand call yields.
	MaxOccurrences = 100
	// maxFastForwardSteps bounds the walk from the anchor to the range start.
	// Roughly 55 years of a daily series.
	maxFastForwardSteps = 20000
)

// Expansion is the result of expanding one anchor over a date range.
type Expansion struct {
	Occurrences []Occurrence
	// Truncated is set when a cap stopped the expansion before rangeEnd.
	Truncated bool
}

// NextOccurrence returns the date of the occurrence following current under
// rule. It returns false for rules that do not repeat, which ends any walk.
func NextOccurrence(current time.Time, rule domain.RecurrenceRule) (time.Time, bool) {
	switch rule.Type {
	case domain.RecurDaily:
		return current.AddDate(0, 0, 1), true
	case domain.RecurWeekly:
		if len(rule.WeeklyDays) == 0 {
			return current.AddDate(0, 0, 7), true
		}
		for i := 1; i <= 7; i++ {
			next := current.AddDate(0, 0, i)
			if rule.HasWeekday(ISOWeekday(next.Weekday())) {
				return next, true
			}
		}
		// Only out-of-range weekdays in the set.
		return current.AddDate(0, 0, 7), true
	case domain.RecurMonthly:
		day := rule.MonthlyDay
		if day <= 0 || day > 31 {
			day = current.Day()
		}
		return addMonthClamped(current, day), true
	default:
		return time.Time{}, false
	}
}

// addMonthClamped moves t to day of the following month, clamped to that
// month's last day. time.AddDate would overflow Jan 31 into March.
func addMonthClamped(t time.Time, day int) time.Time {
	first := time.Date(t.Year(), t.Month()+1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// OccursOn reports whether the anchor has an occurrence on date's calendar day.
func OccursOn(a Anchor, date time.Time) bool {
	day := domain.StartOfDay(date)
	cur := domain.StartOfDay(a.Start)
	if day.Before(cur) || a.excluded(day) {
		return false
	}
	if a.oneOff() {
		return domain.SameDay(cur, day)
	}

	rule := Resolve(a.Rule, a.Start)
	for i := 0; i < MaxWalkSteps; i++ {
		if domain.SameDay(cur, day) {
			return true
		}
		if cur.After(day) {
			return false
		}
		next, ok := NextOccurrence(cur, rule)
		if !ok {
			return false
		}
		cur = next
	}
	return false
}

// Expand lists the anchor's occurrences whose calendar day falls within
// [rangeStart, rangeEnd], both ends inclusive, in chronological order.
func Expand(a Anchor, rangeStart, rangeEnd time.Time) Expansion {
	from := domain.StartOfDay(rangeStart)
	to := domain.StartOfDay(rangeEnd)
	anchorDay := domain.StartOfDay(a.Start)
	if to.Before(from) {
		return Expansion{}
	}

	if a.oneOff() {
		if anchorDay.Before(from) || anchorDay.After(to) || a.excluded(anchorDay) {
			return Expansion{}
		}
		return Expansion{Occurrences: []Occurrence{occurrenceOn(a, anchorDay)}}
	}

	rule := Resolve(a.Rule, a.Start)
	cur := anchorDay
	for steps := 0; cur.Before(from); steps++ {
		if steps >= maxFastForwardSteps {
			return Expansion{Truncated: true}
		}
		next, ok := NextOccurrence(cur, rule)
		if !ok {
			return Expansion{}
		}
		cur = next
	}

	var exp Expansion
	for !cur.After(to) {
		if len(exp.Occurrences) >= MaxOccurrences {
			exp.Truncated = true
			break
		}
		if !a.excluded(cur) {
			exp.Occurrences = append(exp.Occurrences, occurrenceOn(a, cur))
		}
		next, ok := NextOccurrence(cur, rule)
		if !ok {
			break
		}
		cur = next
	}
	return exp
}

// ExpandAll expands every anchor over the range and merges the results in
// start order. It also returns the ids of anchors whose expansion was cut
// short by a cap.
func ExpandAll(anchors []Anchor, rangeStart, rangeEnd time.Time) ([]Occurrence, []string) {
	var (
		all       []Occurrence
		truncated []string
	)
	for _, a := range anchors {
		exp := Expand(a, rangeStart, rangeEnd)
		all = append(all, exp.Occurrences...)
		if exp.Truncated {
			truncated = append(truncated, a.ID)
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Start.Before(all[j].Start)
	})
	return all, truncated
}
