package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/alexanderramin/dayweave/internal/recurrence"
	"github.com/spf13/pflag"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// parseDay parses YYYY-MM-DD in local time. "today", "tomorrow" and
// "yesterday" are relative to now.
func parseDay(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return domain.StartOfDay(now), nil
	case "tomorrow":
		return domain.StartOfDay(now).AddDate(0, 0, 1), nil
	case "yesterday":
		return domain.StartOfDay(now).AddDate(0, 0, -1), nil
	}
	d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	return d, nil
}

// dayArg parses an optional positional date, defaulting to today.
func dayArg(args []string, now time.Time) (time.Time, error) {
	if len(args) == 0 {
		return domain.StartOfDay(now), nil
	}
	return parseDay(args[0], now)
}

// parseDateTime accepts "YYYY-MM-DD HH:MM", or "YYYY-MM-DD" as midnight.
func parseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(dateTimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q: use YYYY-MM-DD HH:MM", s)
}

func parsePriority(s string) (domain.Priority, error) {
	p := domain.Priority(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return domain.PriorityMedium, nil
	}
	if !domain.ValidPriorities[string(p)] {
		return "", fmt.Errorf("priority %q must be high, medium or low", s)
	}
	return p, nil
}

var weekdayByName = map[string]int{
	"mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6, "sun": 7,
}

// parseDays accepts ISO numbers (1=Mon..7=Sun) or three-letter names,
// comma separated.
func parseDays(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if d, ok := weekdayByName[part]; ok {
			days = append(days, d)
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil || d < 1 || d > 7 {
			return nil, fmt.Errorf("invalid weekday %q: use 1-7 or mon..sun", part)
		}
		days = append(days, d)
	}
	return days, nil
}

// recurrenceFlags are shared by event and todo commands.
type recurrenceFlags struct {
	repeat string
	days   string
	day    int
}

func (f *recurrenceFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.repeat, "repeat", "none", "recurrence: none, daily, weekly or monthly")
	fs.StringVar(&f.days, "days", "", "weekly days, e.g. mon,wed,fri or 1,3,5")
	fs.IntVar(&f.day, "day", 0, "monthly day of month (1-31)")
}

func (f *recurrenceFlags) rule() (domain.RecurrenceRule, error) {
	typ := domain.RecurrenceType(strings.ToLower(f.repeat))
	if typ == "" {
		typ = domain.RecurNone
	}
	if !domain.ValidRecurrenceTypes[string(typ)] {
		return domain.RecurrenceRule{}, fmt.Errorf("repeat %q must be none, daily, weekly or monthly", f.repeat)
	}
	rule := domain.RecurrenceRule{Type: typ}
	if typ == domain.RecurWeekly {
		days, err := parseDays(f.days)
		if err != nil {
			return rule, err
		}
		rule.WeeklyDays = days
	}
	if typ == domain.RecurMonthly {
		rule.MonthlyDay = f.day
	}
	return rule, rule.Validate()
}

func parseScope(s string) (recurrence.EditScope, error) {
	switch recurrence.EditScope(strings.ToLower(s)) {
	case recurrence.ScopeThis:
		return recurrence.ScopeThis, nil
	case recurrence.ScopeSeries:
		return recurrence.ScopeSeries, nil
	default:
		return "", fmt.Errorf("scope %q must be this or series", s)
	}
}

// shiftTo moves e to start at clock on its own day, keeping its duration.
func shiftTo(e *domain.Event, clock domain.WallClock) {
	dur := e.Duration()
	e.Start = clock.On(e.Start)
	e.End = e.Start.Add(dur)
}

// priorityValue is a pflag.Value that validates priorities at parse time.
type priorityValue struct {
	p *domain.Priority
}

func newPriorityValue(p *domain.Priority, def domain.Priority) *priorityValue {
	*p = def
	return &priorityValue{p: p}
}

func (v *priorityValue) String() string { return string(*v.p) }

func (v *priorityValue) Set(s string) error {
	p, err := parsePriority(s)
	if err != nil {
		return err
	}
	*v.p = p
	return nil
}

func (v *priorityValue) Type() string { return "priority" }
