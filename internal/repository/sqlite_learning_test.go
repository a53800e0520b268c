package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/alexanderramin/dayweave/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLearningRepo_Replace(t *testing.T) {
	repo := NewSQLiteLearningRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.ReplaceConcentration(ctx, []domain.ConcentrationScore{{Hour: 14, Score: 0.4}, {Hour: 9, Score: 0.9}}))
	require.NoError(t, repo.ReplaceDurations(ctx, []domain.TaskDurationLearning{
		{TaskName: "会議", AverageDuration: 90, SampleSize: 10, Accuracy: 0.9},
	}))

	scores, err := repo.ListConcentration(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.ConcentrationScore{{Hour: 9, Score: 0.9}, {Hour: 14, Score: 0.4}}, scores)

	require.NoError(t, repo.ReplaceConcentration(ctx, []domain.ConcentrationScore{{Hour: 20, Score: 0.7}}))
	scores, err = repo.ListConcentration(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.ConcentrationScore{{Hour: 20, Score: 0.7}}, scores, "replace drops old rows")

	ds, err := repo.ListDurations(ctx)
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "会議", ds[0].TaskName)
	assert.Equal(t, 10, ds[0].SampleSize)
}

func TestLearningRepo_RejectsOutOfRangeScore(t *testing.T) {
	repo := NewSQLiteLearningRepo(testutil.NewTestDB(t))

	err := repo.ReplaceConcentration(context.Background(), []domain.ConcentrationScore{{Hour: 9, Score: 1.5}})
	assert.Error(t, err)
}
