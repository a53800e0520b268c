package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/alexanderramin/dayweave/internal/recurrence"
	"github.com/alexanderramin/dayweave/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mwf = domain.RecurrenceRule{Type: domain.RecurWeekly, WeeklyDays: []int{1, 3, 5}}

// standup repeats Mon/Wed/Fri at 09:00 from Monday 2025-03-03.
func seedStandup(t *testing.T, r *testRepos) *domain.Event {
	t.Helper()
	e := testutil.NewTestEvent("Standup", testutil.At(2025, 3, 3, 9, 0), 15*time.Minute,
		testutil.WithRecurrence(mwf))
	require.NoError(t, r.events.Create(context.Background(), e))
	return e
}

func TestEventService_CreateFillsDefaults(t *testing.T) {
	r := newTestRepos(t)
	svc := NewEventService(r.events, r.uow)
	ctx := context.Background()

	e := &domain.Event{Title: "Lunch", Start: testutil.At(2025, 3, 14, 12, 0), End: testutil.At(2025, 3, 14, 13, 0)}
	require.NoError(t, svc.Create(ctx, e))

	assert.NotEmpty(t, e.ID)
	got, err := svc.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, got.Priority)
	assert.Equal(t, domain.RecurNone, got.Recurrence.Type)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestEventService_CreateRejectsInvalid(t *testing.T) {
	r := newTestRepos(t)
	svc := NewEventService(r.events, r.uow)

	err := svc.Create(context.Background(), &domain.Event{Title: "Backwards",
		Start: testutil.At(2025, 3, 14, 12, 0), End: testutil.At(2025, 3, 14, 11, 0)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before start")

	events, err := r.events.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEventService_OccurrencesBetween(t *testing.T) {
	r := newTestRepos(t)
	svc := NewEventService(r.events, r.uow)
	ctx := context.Background()

	standup := seedStandup(t, r)
	review := testutil.NewTestEvent("Review", testutil.At(2025, 3, 12, 8, 0), time.Hour)
	require.NoError(t, r.events.Create(ctx, review))

	occs, err := svc.OccurrencesBetween(ctx, testutil.Day(2025, 3, 10), testutil.Day(2025, 3, 14))
	require.NoError(t, err)
	require.Len(t, occs, 4)

	assert.Equal(t, standup.ID, occs[0].Event.ID)
	assert.True(t, testutil.At(2025, 3, 10, 9, 0).Equal(occs[0].Occurrence.Start))
	assert.Equal(t, "Review", occs[1].Event.Title, "08:00 review sorts before the 09:00 standup")
	assert.True(t, testutil.At(2025, 3, 12, 9, 0).Equal(occs[2].Occurrence.Start))
	assert.True(t, testutil.At(2025, 3, 14, 9, 0).Equal(occs[3].Occurrence.Start))
	assert.Equal(t, recurrence.KindDerived, occs[3].Occurrence.Kind)
}

func TestEventService_OccursOnAndExpand(t *testing.T) {
	r := newTestRepos(t)
	svc := NewEventService(r.events, r.uow)
	ctx := context.Background()
	standup := seedStandup(t, r)

	ok, err := svc.OccursOn(ctx, standup.ID, testutil.Day(2025, 3, 5))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.OccursOn(ctx, standup.ID, testutil.Day(2025, 3, 4))
	require.NoError(t, err)
	assert.False(t, ok)

	exp, err := svc.Expand(ctx, standup.ID, testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 16))
	require.NoError(t, err)
	assert.Len(t, exp.Occurrences, 6)
	assert.False(t, exp.Truncated)

	_, err = svc.OccursOn(ctx, "missing", testutil.Day(2025, 3, 5))
	require.Error(t, err)
}

func TestEventService_DetachOccurrence(t *testing.T) {
	r := newTestRepos(t)
	obs := &recordingObserver{}
	svc := NewEventService(r.events, r.uow, obs)
	ctx := context.Background()
	standup := seedStandup(t, r)

	wed := testutil.Day(2025, 3, 5)
	detached, err := svc.DetachOccurrence(ctx, standup.ID, wed, func(e *domain.Event) {
		e.Title = "Standup (moved)"
		e.Start = testutil.At(2025, 3, 5, 10, 0)
		e.End = testutil.At(2025, 3, 5, 10, 15)
	})
	require.NoError(t, err)
	assert.NotEqual(t, standup.ID, detached.ID)
	assert.False(t, detached.Recurrence.IsRecurring())

	stored, err := r.events.GetByID(ctx, detached.ID)
	require.NoError(t, err)
	assert.Equal(t, "Standup (moved)", stored.Title)
	assert.Equal(t, standup.Color, stored.Color)

	anchor, err := r.events.GetByID(ctx, standup.ID)
	require.NoError(t, err)
	assert.True(t, anchor.IsExcluded(wed))

	occs, err := svc.OccurrencesBetween(ctx, testutil.Day(2025, 3, 3), testutil.Day(2025, 3, 7))
	require.NoError(t, err)
	require.Len(t, occs, 3)
	assert.Equal(t, standup.ID, occs[0].Event.ID)
	assert.Equal(t, detached.ID, occs[1].Event.ID)
	assert.True(t, testutil.At(2025, 3, 5, 10, 0).Equal(occs[1].Occurrence.Start))
	assert.Equal(t, standup.ID, occs[2].Event.ID)

	ev := obs.last()
	assert.Equal(t, "event.detach_occurrence", ev.Name)
	assert.True(t, ev.Success)
}

func TestEventService_DetachOccurrence_Errors(t *testing.T) {
	r := newTestRepos(t)
	svc := NewEventService(r.events, r.uow)
	ctx := context.Background()
	standup := seedStandup(t, r)

	oneOff := testutil.NewTestEvent("Dentist", testutil.At(2025, 3, 4, 15, 0), time.Hour)
	require.NoError(t, r.events.Create(ctx, oneOff))

	_, err := svc.DetachOccurrence(ctx, oneOff.ID, testutil.Day(2025, 3, 4), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not repeat")

	_, err = svc.DetachOccurrence(ctx, standup.ID, testutil.Day(2025, 3, 4), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not occur")

	_, err = svc.DetachOccurrence(ctx, standup.ID, testutil.Day(2025, 3, 5), func(e *domain.Event) { e.Title = "" })
	require.Error(t, err)

	events, err := r.events.List(ctx)
	require.NoError(t, err)
	assert.Len(t, events, 2, "failed detaches leave no events behind")
}

func TestEventService_DetachOccurrence_RollbackOnExclusionFailure(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	standup := seedStandup(t, r)

	// ExecContext #1 = events.Create (detached copy), #2 = AddExclusion.
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     r.db,
		FailOn: 2,
		Err:    fmt.Errorf("injected exclusion failure"),
	}
	svc := NewEventService(r.events, failUoW)

	_, err := svc.DetachOccurrence(ctx, standup.ID, testutil.Day(2025, 3, 5), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected exclusion failure")

	events, err := r.events.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1, "detached copy must be rolled back")
	assert.Empty(t, events[0].ExcludedDates)
}

func TestEventService_DetachOccurrence_RollbackOnAnchorUpdateFailure(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	standup := seedStandup(t, r)

	failUoW := &testutil.FailOnNthExecUoW{
		DB:     r.db,
		FailOn: 3,
		Err:    fmt.Errorf("injected update failure"),
	}
	svc := NewEventService(r.events, failUoW)

	_, err := svc.DetachOccurrence(ctx, standup.ID, testutil.Day(2025, 3, 5), nil)
	require.Error(t, err)

	anchor, err := r.events.GetByID(ctx, standup.ID)
	require.NoError(t, err)
	assert.False(t, anchor.IsExcluded(testutil.Day(2025, 3, 5)))
}

func TestEventService_EditOccurrence_SeriesUpdatesAnchor(t *testing.T) {
	r := newTestRepos(t)
	svc := NewEventService(r.events, r.uow)
	ctx := context.Background()
	standup := seedStandup(t, r)

	got, err := svc.EditOccurrence(ctx, standup.ID, testutil.Day(2025, 3, 12), recurrence.ScopeSeries,
		func(e *domain.Event) { e.Title = "Team sync" })
	require.NoError(t, err)
	assert.Equal(t, standup.ID, got.ID)

	events, err := r.events.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Team sync", events[0].Title)
	assert.Empty(t, events[0].ExcludedDates)
}

func TestEventService_EditOccurrence_ThisDetaches(t *testing.T) {
	r := newTestRepos(t)
	svc := NewEventService(r.events, r.uow)
	ctx := context.Background()
	standup := seedStandup(t, r)

	got, err := svc.EditOccurrence(ctx, standup.ID, testutil.Day(2025, 3, 12), recurrence.ScopeThis,
		func(e *domain.Event) { e.Title = "Standup with guests" })
	require.NoError(t, err)
	assert.NotEqual(t, standup.ID, got.ID)
	assert.True(t, testutil.At(2025, 3, 12, 9, 0).Equal(got.Start))

	anchor, err := r.events.GetByID(ctx, standup.ID)
	require.NoError(t, err)
	assert.Equal(t, "Standup", anchor.Title)
	assert.True(t, anchor.IsExcluded(testutil.Day(2025, 3, 12)))
}

func TestEventService_EditOccurrence_ThisOnOneOffEditsInPlace(t *testing.T) {
	r := newTestRepos(t)
	svc := NewEventService(r.events, r.uow)
	ctx := context.Background()

	e := testutil.NewTestEvent("Dentist", testutil.At(2025, 3, 4, 15, 0), time.Hour)
	require.NoError(t, r.events.Create(ctx, e))

	got, err := svc.EditOccurrence(ctx, e.ID, testutil.Day(2025, 3, 4), recurrence.ScopeThis,
		func(e *domain.Event) { e.Location = "Clinic" })
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)

	stored, err := r.events.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Clinic", stored.Location)
}
