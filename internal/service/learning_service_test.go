package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/alexanderramin/dayweave/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const learningYAML = `
concentration:
  - {hour: 9, score: 0.82}
  - {hour: 14, score: 1.4}
durations:
  - {task_name: "会議", average_duration: 90, sample_size: 10, accuracy: 0.9}
  - task_name: Email
    average_duration: 20
    sample_size: 4
    accuracy: 0.5
`

func TestLearningService_ImportYAML(t *testing.T) {
	r := newTestRepos(t)
	svc := NewLearningService(r.learning, r.uow)
	ctx := context.Background()

	res, err := svc.Import(ctx, strings.NewReader(learningYAML))
	require.NoError(t, err)
	assert.Equal(t, 2, res.ConcentrationCount)
	assert.Equal(t, 2, res.DurationCount)

	signals, err := svc.Signals(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.ConcentrationScore{{Hour: 9, Score: 0.82}, {Hour: 14, Score: 1}}, signals.Concentration,
		"scores above 1 are clamped")
	require.Len(t, signals.Durations, 2)
	assert.Equal(t, "Email", signals.Durations[0].TaskName)
	assert.Equal(t, "会議", signals.Durations[1].TaskName)
	assert.InDelta(t, 90.0, signals.Durations[1].AverageDuration, 1e-9)
}

func TestLearningService_ImportJSON(t *testing.T) {
	r := newTestRepos(t)
	svc := NewLearningService(r.learning, r.uow)

	res, err := svc.Import(context.Background(), strings.NewReader(
		`{"concentration": [{"hour": 0, "score": 0.3}], "durations": []}`))
	require.NoError(t, err)
	assert.Equal(t, 1, res.ConcentrationCount)
	assert.Zero(t, res.DurationCount)
}

func TestLearningService_ImportReplacesPrevious(t *testing.T) {
	r := newTestRepos(t)
	svc := NewLearningService(r.learning, r.uow)
	ctx := context.Background()

	_, err := svc.Import(ctx, strings.NewReader(learningYAML))
	require.NoError(t, err)
	_, err = svc.Import(ctx, strings.NewReader("concentration:\n  - {hour: 20, score: 0.6}\n"))
	require.NoError(t, err)

	signals, err := svc.Signals(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.ConcentrationScore{{Hour: 20, Score: 0.6}}, signals.Concentration)
	assert.Empty(t, signals.Durations)
}

func TestLearningService_ImportRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"hour out of range", "concentration:\n  - {hour: 24, score: 0.5}\n", "between 0 and 23"},
		{"negative hour", "concentration:\n  - {hour: -1, score: 0.5}\n", "between 0 and 23"},
		{"missing hour", "concentration:\n  - {score: 0.5}\n", "hour is required"},
		{"duplicate hour", "concentration:\n  - {hour: 3, score: 0.5}\n  - {hour: 3, score: 0.1}\n", "duplicate hour"},
		{"missing task name", "durations:\n  - {average_duration: 10}\n", "task_name is required"},
		{"malformed", "concentration: [", "parsing learning file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRepos(t)
			svc := NewLearningService(r.learning, r.uow)
			ctx := context.Background()
			_, err := svc.Import(ctx, strings.NewReader(learningYAML))
			require.NoError(t, err)

			_, err = svc.Import(ctx, strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			signals, err := svc.Signals(ctx)
			require.NoError(t, err)
			assert.Len(t, signals.Concentration, 2, "rejected import leaves stored signals alone")
		})
	}
}

func TestLearningService_Import_RollbackOnWriteFailure(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	_, err := NewLearningService(r.learning, r.uow).Import(ctx, strings.NewReader(learningYAML))
	require.NoError(t, err)

	// ExecContext #1 clears concentration, #2 inserts hour 20, #3 clears durations.
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     r.db,
		FailOn: 3,
		Err:    fmt.Errorf("injected clear failure"),
	}
	_, err = NewLearningService(r.learning, failUoW).Import(ctx,
		strings.NewReader("concentration:\n  - {hour: 20, score: 0.6}\n"))
	require.Error(t, err)

	signals, err := NewLearningService(r.learning, r.uow).Signals(ctx)
	require.NoError(t, err)
	assert.Len(t, signals.Concentration, 2)
	assert.Len(t, signals.Durations, 2)
}
