package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dayweave/internal/domain"
)

const (
	// wallLayout stores local wall-clock instants without a zone; the
	// calendar is single-timezone.
	wallLayout = "2006-01-02T15:04:05"
	dayLayout  = "2006-01-02"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func formatWall(t time.Time) string {
	return t.In(time.Local).Format(wallLayout)
}

func parseWall(s string) (time.Time, error) {
	t, err := time.ParseInLocation(wallLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing time %q: %w", s, err)
	}
	return t, nil
}

func formatDay(t time.Time) string {
	return t.Format(dayLayout)
}

func parseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dayLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// parseNullableTime parses an RFC3339 column. NULL, empty or unparseable
// values yield nil.
func parseNullableTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}

func nullableTimeToString(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func formatStamp(t time.Time) string {
	if t.IsZero() {
		return nowUTC()
	}
	return t.UTC().Format(time.RFC3339)
}

func parseStamp(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

// encodeRule flattens a recurrence rule into its three columns.
func encodeRule(r domain.RecurrenceRule) (string, string, int) {
	typ := r.Type
	if typ == "" {
		typ = domain.RecurNone
	}
	return string(typ), domain.EncodeWeekdays(r.WeeklyDays), r.MonthlyDay
}

func decodeRule(typ, weekly string, monthly int) (domain.RecurrenceRule, error) {
	days, err := domain.ParseWeekdays(weekly)
	if err != nil {
		return domain.RecurrenceRule{}, err
	}
	return domain.RecurrenceRule{Type: domain.RecurrenceType(typ), WeeklyDays: days, MonthlyDay: monthly}, nil
}

func priorityOrDefault(p domain.Priority) string {
	if p == "" {
		return string(domain.PriorityMedium)
	}
	return string(p)
}

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
