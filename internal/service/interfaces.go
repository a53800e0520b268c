package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/alexanderramin/dayweave/internal/recurrence"
	"github.com/alexanderramin/dayweave/internal/scheduler"
)

// EventOccurrence pairs an occurrence with the anchor it was derived from,
// so callers can render titles and colors without another lookup.
type EventOccurrence struct {
	Event      *domain.Event
	Occurrence recurrence.Occurrence
}

// TodoOccurrence is one due date of a (possibly recurring) todo.
type TodoOccurrence struct {
	Todo *domain.Todo
	Due  time.Time
}

// EventEdit mutates an event in place. It is applied to the anchor or to a
// detached copy depending on the edit scope.
type EventEdit func(e *domain.Event)

type EventService interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id string) error
	OccursOn(ctx context.Context, id string, day time.Time) (bool, error)
	Expand(ctx context.Context, id string, from, to time.Time) (recurrence.Expansion, error)
	OccurrencesBetween(ctx context.Context, from, to time.Time) ([]EventOccurrence, error)
	// EditOccurrence applies edit to the occurrence of anchorID on day,
	// either to the whole series or to that occurrence alone.
	EditOccurrence(ctx context.Context, anchorID string, day time.Time, scope recurrence.EditScope, edit EventEdit) (*domain.Event, error)
	// DetachOccurrence splits the occurrence on day into a standalone event
	// and excludes day from the series, atomically.
	DetachOccurrence(ctx context.Context, anchorID string, day time.Time, edit EventEdit) (*domain.Event, error)
}

type TodoService interface {
	Create(ctx context.Context, t *domain.Todo) error
	GetByID(ctx context.Context, id string) (*domain.Todo, error)
	List(ctx context.Context, includeDone bool) ([]*domain.Todo, error)
	// MarkDone completes a one-off todo; a recurring todo advances to its
	// next due date instead.
	MarkDone(ctx context.Context, id string) (*domain.Todo, error)
	Delete(ctx context.Context, id string) error
	DueBetween(ctx context.Context, from, to time.Time) ([]TodoOccurrence, error)
}

type TemplateService interface {
	Create(ctx context.Context, t *domain.Template) error
	List(ctx context.Context) ([]*domain.Template, error)
	Delete(ctx context.Context, id string) error
}

type SettingsService interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, s *domain.Settings) error
}

// LearningImportResult summarizes an imported analytics file.
type LearningImportResult struct {
	ConcentrationCount int
	DurationCount      int
}

type LearningService interface {
	Import(ctx context.Context, r io.Reader) (*LearningImportResult, error)
	Signals(ctx context.Context) (scheduler.LearningSignals, error)
}

// PlanResult is a persisted day plan.
type PlanResult struct {
	Plan scheduler.DayPlan
	// Replaced counts generated events from an earlier plan of the same day
	// that were removed before planning.
	Replaced int
}

type ScheduleService interface {
	FreeSlots(ctx context.Context, day time.Time) ([]scheduler.TimeSlot, error)
	// Preview computes the plan for day without writing anything.
	Preview(ctx context.Context, day time.Time) (*scheduler.DayPlan, error)
	// Plan replaces any earlier generated events for day with a fresh plan,
	// in a single transaction.
	Plan(ctx context.Context, day time.Time) (*PlanResult, error)
	HasPlan(ctx context.Context, day time.Time) (bool, error)
}

type ExportService interface {
	ExportICS(ctx context.Context, from, to time.Time, w io.Writer) (int, error)
}
