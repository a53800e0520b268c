package ics

import (
	"bytes"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"

	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/alexanderramin/dayweave/internal/recurrence"
	"github.com/alexanderramin/dayweave/internal/testutil"
)

func encodeAndParse(t *testing.T, events ...*domain.Event) []*ical.VEvent {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, events, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)))

	cal, err := ical.ParseCalendar(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	return cal.Events()
}

func propValue(ve *ical.VEvent, p ical.ComponentProperty) string {
	prop := ve.GetProperty(p)
	if prop == nil {
		return ""
	}
	return prop.Value
}

func TestEncode_OneOffEvent(t *testing.T) {
	e := testutil.NewTestEvent("Dentist", testutil.At(2025, 3, 14, 9, 30), 45*time.Minute,
		testutil.WithCategory("health"))
	e.Description = "annual checkup"
	e.Location = "Main St 4"

	got := encodeAndParse(t, e)
	require.Len(t, got, 1)
	ve := got[0]

	assert.Equal(t, e.ID, ve.Id())
	assert.Equal(t, "Dentist", propValue(ve, ical.ComponentPropertySummary))
	assert.Equal(t, "annual checkup", propValue(ve, ical.ComponentPropertyDescription))
	assert.Equal(t, "Main St 4", propValue(ve, ical.ComponentPropertyLocation))
	assert.Equal(t, "health", propValue(ve, ical.ComponentPropertyCategories))
	assert.Equal(t, "#458588", propValue(ve, ical.ComponentPropertyColor))
	assert.Equal(t, "20250314T093000", propValue(ve, ical.ComponentPropertyDtStart))
	assert.Equal(t, "20250314T101500", propValue(ve, ical.ComponentPropertyDtEnd))
	assert.Nil(t, ve.GetProperty(ical.ComponentPropertyRrule))
}

func TestEncode_RecurringEventWithExclusions(t *testing.T) {
	e := testutil.NewTestEvent("Standup", testutil.At(2025, 3, 3, 9, 0), 15*time.Minute,
		testutil.WithRecurrence(domain.RecurrenceRule{Type: domain.RecurWeekly, WeeklyDays: []int{1, 3, 5}}),
		testutil.WithExcludedDates(testutil.Day(2025, 3, 5)))

	got := encodeAndParse(t, e)
	require.Len(t, got, 1)

	rule := propValue(got[0], ical.ComponentPropertyRrule)
	opt, err := rrule.StrToROption(rule)
	require.NoError(t, err)
	assert.Equal(t, rrule.WEEKLY, opt.Freq)
	assert.Equal(t, []rrule.Weekday{rrule.MO, rrule.WE, rrule.FR}, opt.Byweekday)

	exdates := got[0].GetProperties(ical.ComponentPropertyExdate)
	require.Len(t, exdates, 1)
	assert.Equal(t, "20250305T090000", exdates[0].Value)
}

func TestEncode_AllDayEvent(t *testing.T) {
	e := testutil.NewTestEvent("Holiday", testutil.Day(2025, 5, 1), 0, testutil.WithAllDay())

	got := encodeAndParse(t, e)
	require.Len(t, got, 1)
	assert.Equal(t, "20250501", propValue(got[0], ical.ComponentPropertyDtStart))
	assert.Equal(t, "20250502", propValue(got[0], ical.ComponentPropertyDtEnd))
}

func TestEncode_EmptyCalendar(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, nil, time.Now()))
	assert.Contains(t, buf.String(), "BEGIN:VCALENDAR")
	assert.Contains(t, buf.String(), ProductID)
	assert.NotContains(t, buf.String(), "BEGIN:VEVENT")
}

func TestRRule(t *testing.T) {
	anchor := testutil.At(2025, 1, 31, 8, 0) // Friday

	tests := []struct {
		name       string
		rule       domain.RecurrenceRule
		freq       rrule.Frequency
		byweekday  []rrule.Weekday
		bymonthday []int
		bysetpos   []int
	}{
		{"daily", domain.RecurrenceRule{Type: domain.RecurDaily}, rrule.DAILY, nil, nil, nil},
		{"weekly days", domain.RecurrenceRule{Type: domain.RecurWeekly, WeeklyDays: []int{2, 7}}, rrule.WEEKLY, []rrule.Weekday{rrule.TU, rrule.SU}, nil, nil},
		{"weekly default", domain.RecurrenceRule{Type: domain.RecurWeekly}, rrule.WEEKLY, []rrule.Weekday{rrule.FR}, nil, nil},
		{"monthly low day", domain.RecurrenceRule{Type: domain.RecurMonthly, MonthlyDay: 15}, rrule.MONTHLY, nil, []int{15}, nil},
		{"monthly day 28", domain.RecurrenceRule{Type: domain.RecurMonthly, MonthlyDay: 28}, rrule.MONTHLY, nil, []int{28}, nil},
		{"monthly day 31", domain.RecurrenceRule{Type: domain.RecurMonthly, MonthlyDay: 31}, rrule.MONTHLY, nil, []int{28, 29, 30, 31}, []int{-1}},
		{"monthly default", domain.RecurrenceRule{Type: domain.RecurMonthly}, rrule.MONTHLY, nil, []int{28, 29, 30, 31}, []int{-1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := RRule(tt.rule, anchor)
			require.True(t, ok)
			opt, err := rrule.StrToROption(s)
			require.NoError(t, err)
			assert.Equal(t, tt.freq, opt.Freq)
			assert.Equal(t, tt.byweekday, opt.Byweekday)
			assert.Equal(t, tt.bymonthday, opt.Bymonthday)
			assert.Equal(t, tt.bysetpos, opt.Bysetpos)
		})
	}
}

func TestRRule_NonRecurring(t *testing.T) {
	_, ok := RRule(domain.NoRecurrence, testutil.At(2025, 1, 1, 8, 0))
	assert.False(t, ok)

	_, ok = RRule(domain.RecurrenceRule{Type: "yearly"}, testutil.At(2025, 1, 1, 8, 0))
	assert.False(t, ok)
}

// Exported rules must yield the same instants a calendar client would see
// as the in-process expansion does.
func TestRRule_AgreesWithExpand(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		rule   domain.RecurrenceRule
		exdays []time.Time
	}{
		{"daily", testutil.At(2024, 2, 20, 7, 0), domain.RecurrenceRule{Type: domain.RecurDaily}, nil},
		{"weekly", testutil.At(2024, 1, 1, 18, 0), domain.RecurrenceRule{Type: domain.RecurWeekly, WeeklyDays: []int{1, 4, 6}}, nil},
		{"monthly 31", testutil.At(2024, 1, 31, 10, 0), domain.RecurrenceRule{Type: domain.RecurMonthly, MonthlyDay: 31}, nil},
		{"monthly 30", testutil.At(2024, 1, 30, 10, 0), domain.RecurrenceRule{Type: domain.RecurMonthly, MonthlyDay: 30}, nil},
		{"monthly 12", testutil.At(2024, 1, 12, 10, 0), domain.RecurrenceRule{Type: domain.RecurMonthly, MonthlyDay: 12}, nil},
		{"weekly with exclusion", testutil.At(2024, 1, 2, 9, 0), domain.RecurrenceRule{Type: domain.RecurWeekly, WeeklyDays: []int{2}},
			[]time.Time{testutil.Day(2024, 1, 16)}},
	}
	from := testutil.Day(2024, 1, 1)
	to := testutil.Day(2024, 3, 31)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testutil.NewTestEvent("x", tt.start, time.Hour,
				testutil.WithRecurrence(tt.rule), testutil.WithExcludedDates(tt.exdays...))

			s, ok := RRule(e.Recurrence, e.Start)
			require.True(t, ok)
			r, err := rrule.StrToRRule(s)
			require.NoError(t, err)
			r.DTStart(e.Start)

			var set rrule.Set
			set.RRule(r)
			for _, d := range tt.exdays {
				set.ExDate(time.Date(d.Year(), d.Month(), d.Day(), e.Start.Hour(), e.Start.Minute(), 0, 0, e.Start.Location()))
			}
			want := set.Between(from, to.AddDate(0, 0, 1), true)

			exp := recurrence.Expand(recurrence.EventAnchor(e), from, to)
			require.False(t, exp.Truncated)
			require.Len(t, exp.Occurrences, len(want))
			for i, occ := range exp.Occurrences {
				assert.True(t, want[i].Equal(occ.Start), "occurrence %d: rrule %s, expand %s", i, want[i], occ.Start)
			}
		})
	}
}
