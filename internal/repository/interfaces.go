package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/dayweave/internal/domain"
)

type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	// ListForRange returns every event that can have an occurrence on a day
	// in [from, to]: one-off events starting in the range and recurring
	// anchors starting on or before to.
	ListForRange(ctx context.Context, from, to time.Time) ([]*domain.Event, error)
	// ListGeneratedOn returns scheduler-generated events starting on day.
	ListGeneratedOn(ctx context.Context, day time.Time) ([]*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id string) error
	DeleteGeneratedOn(ctx context.Context, day time.Time) (int, error)
	AddExclusion(ctx context.Context, eventID string, day time.Time) error
}

type TodoRepo interface {
	Create(ctx context.Context, t *domain.Todo) error
	GetByID(ctx context.Context, id string) (*domain.Todo, error)
	List(ctx context.Context, includeDone bool) ([]*domain.Todo, error)
	Update(ctx context.Context, t *domain.Todo) error
	Delete(ctx context.Context, id string) error
}

type TemplateRepo interface {
	Create(ctx context.Context, t *domain.Template) error
	GetByID(ctx context.Context, id string) (*domain.Template, error)
	List(ctx context.Context) ([]*domain.Template, error)
	Delete(ctx context.Context, id string) error
}

type SettingsRepo interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Upsert(ctx context.Context, s *domain.Settings) error
}

type LearningRepo interface {
	ListConcentration(ctx context.Context) ([]domain.ConcentrationScore, error)
	ListDurations(ctx context.Context) ([]domain.TaskDurationLearning, error)
	ReplaceConcentration(ctx context.Context, scores []domain.ConcentrationScore) error
	ReplaceDurations(ctx context.Context, ls []domain.TaskDurationLearning) error
}
