package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/alexanderramin/dayweave/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodoService_CreateValidates(t *testing.T) {
	r := newTestRepos(t)
	svc := NewTodoService(r.todos)

	err := svc.Create(context.Background(), &domain.Todo{Title: "No due"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "due date is required")

	td := &domain.Todo{Title: "Taxes", Due: testutil.Day(2025, 4, 15)}
	require.NoError(t, svc.Create(context.Background(), td))
	assert.NotEmpty(t, td.ID)
	assert.Equal(t, domain.PriorityMedium, td.Priority)
}

func TestTodoService_MarkDoneOneOff(t *testing.T) {
	r := newTestRepos(t)
	svc := NewTodoService(r.todos)
	ctx := context.Background()

	td := testutil.NewTestTodo("Buy milk", testutil.At(2025, 3, 14, 18, 0))
	require.NoError(t, r.todos.Create(ctx, td))

	done, err := svc.MarkDone(ctx, td.ID)
	require.NoError(t, err)
	assert.True(t, done.IsDone())

	open, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, open)

	all, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestTodoService_MarkDoneRecurringAdvancesDue(t *testing.T) {
	r := newTestRepos(t)
	svc := NewTodoService(r.todos)
	ctx := context.Background()

	td := testutil.NewTestTodo("Water plants", testutil.At(2025, 3, 14, 8, 0),
		testutil.WithTodoRecurrence(domain.RecurrenceRule{Type: domain.RecurWeekly}))
	require.NoError(t, r.todos.Create(ctx, td))

	got, err := svc.MarkDone(ctx, td.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDone())
	assert.True(t, testutil.At(2025, 3, 21, 8, 0).Equal(got.Due))

	stored, err := r.todos.GetByID(ctx, td.ID)
	require.NoError(t, err)
	assert.True(t, testutil.At(2025, 3, 21, 8, 0).Equal(stored.Due))
}

func TestTodoService_DueBetween(t *testing.T) {
	r := newTestRepos(t)
	svc := NewTodoService(r.todos)
	ctx := context.Background()

	daily := testutil.NewTestTodo("Journal", testutil.At(2025, 3, 10, 21, 0),
		testutil.WithTodoRecurrence(domain.RecurrenceRule{Type: domain.RecurDaily}))
	report := testutil.NewTestTodo("Report", testutil.At(2025, 3, 13, 9, 0),
		testutil.WithTodoPriority(domain.PriorityHigh))
	later := testutil.NewTestTodo("Later", testutil.At(2025, 4, 1, 9, 0))
	for _, td := range []*domain.Todo{daily, report, later} {
		require.NoError(t, r.todos.Create(ctx, td))
	}

	due, err := svc.DueBetween(ctx, testutil.Day(2025, 3, 12), testutil.Day(2025, 3, 14))
	require.NoError(t, err)
	require.Len(t, due, 4)

	assert.Equal(t, "Journal", due[0].Todo.Title)
	assert.True(t, testutil.At(2025, 3, 12, 21, 0).Equal(due[0].Due))
	assert.Equal(t, "Report", due[1].Todo.Title)
	assert.Equal(t, "Journal", due[2].Todo.Title)
	assert.Equal(t, "Journal", due[3].Todo.Title)
	assert.True(t, testutil.At(2025, 3, 14, 21, 0).Equal(due[3].Due))
}

func TestTodoService_MarkDoneMissing(t *testing.T) {
	r := newTestRepos(t)
	_, err := NewTodoService(r.todos).MarkDone(context.Background(), "nope")
	require.Error(t, err)
}
