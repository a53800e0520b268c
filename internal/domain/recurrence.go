package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// RecurrenceRule describes how an event or todo repeats.
//
// WeeklyDays uses 1=Monday..7=Sunday and is only read for weekly rules.
// MonthlyDay is 1-31 (0 = unset) and is only read for monthly rules.
type RecurrenceRule struct {
	Type       RecurrenceType
	WeeklyDays []int
	MonthlyDay int
}

// NoRecurrence is the rule carried by one-off events.
var NoRecurrence = RecurrenceRule{Type: RecurNone}

// IsRecurring reports whether the rule produces more than one occurrence.
func (r RecurrenceRule) IsRecurring() bool {
	switch r.Type {
	case RecurDaily, RecurWeekly, RecurMonthly:
		return true
	default:
		return false
	}
}

// HasWeekday reports whether d (1=Monday..7=Sunday) is in WeeklyDays.
func (r RecurrenceRule) HasWeekday(d int) bool {
	for _, wd := range r.WeeklyDays {
		if wd == d {
			return true
		}
	}
	return false
}

// Validate checks the rule at input boundaries. The recurrence engine itself
// tolerates malformed rules; this is for rejecting bad user input early.
func (r RecurrenceRule) Validate() error {
	if r.Type == "" {
		return nil
	}
	if !ValidRecurrenceTypes[string(r.Type)] {
		return fmt.Errorf("recurrence type %q must be one of none, daily, weekly, monthly", r.Type)
	}
	for _, d := range r.WeeklyDays {
		if d < 1 || d > 7 {
			return fmt.Errorf("weekday %d out of range (1=Monday..7=Sunday)", d)
		}
	}
	if r.MonthlyDay < 0 || r.MonthlyDay > 31 {
		return fmt.Errorf("day of month %d out of range (1-31)", r.MonthlyDay)
	}
	return nil
}

// EncodeWeekdays renders WeeklyDays as a sorted comma list ("1,3,5") for storage.
func EncodeWeekdays(days []int) string {
	if len(days) == 0 {
		return ""
	}
	sorted := append([]int(nil), days...)
	sort.Ints(sorted)
	parts := make([]string, 0, len(sorted))
	for _, d := range sorted {
		parts = append(parts, strconv.Itoa(d))
	}
	return strings.Join(parts, ",")
}

// ParseWeekdays parses a comma list of weekday numbers or names
// ("1,3,5", "mon,wed,fri"). Empty input yields nil.
func ParseWeekdays(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var days []int
	seen := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		d, ok := weekdayNames[part]
		if !ok {
			n, err := strconv.Atoi(part)
			if err != nil || n < 1 || n > 7 {
				return nil, fmt.Errorf("invalid weekday %q (use 1-7 or mon..sun)", part)
			}
			d = n
		}
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	sort.Ints(days)
	return days, nil
}

var weekdayNames = map[string]int{
	"mon": 1, "monday": 1,
	"tue": 2, "tuesday": 2,
	"wed": 3, "wednesday": 3,
	"thu": 4, "thursday": 4,
	"fri": 5, "friday": 5,
	"sat": 6, "saturday": 6,
	"sun": 7, "sunday": 7,
}
