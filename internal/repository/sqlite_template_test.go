package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/alexanderramin/dayweave/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRepo_SeededDefaults(t *testing.T) {
	repo := NewSQLiteTemplateRepo(testutil.NewTestDB(t))

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, tpl := range list {
		assert.True(t, tpl.IsDefault, "%s should be a default template", tpl.Name)
	}
}

func TestTemplateRepo_CreateListDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTemplateRepo(db)
	ctx := context.Background()

	first := testutil.NewTestTemplate("Deep work", 90, testutil.WithTemplatePriority(domain.PriorityHigh))
	second := testutil.NewTestTemplate("Inbox", 20)
	second.CreatedAt = first.CreatedAt
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 5)
	assert.Equal(t, "Deep work", list[3].Name, "same timestamp falls back to insertion order")
	assert.Equal(t, "Inbox", list[4].Name)

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, got.DurationMin)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	assert.False(t, got.IsDefault)

	require.NoError(t, repo.Delete(ctx, first.ID))
	_, err = repo.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), ErrNotFound)
}

func TestTemplateRepo_RejectsNonPositiveDuration(t *testing.T) {
	repo := NewSQLiteTemplateRepo(testutil.NewTestDB(t))

	err := repo.Create(context.Background(), testutil.NewTestTemplate("Broken", 0))
	assert.Error(t, err)
}
