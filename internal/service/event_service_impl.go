package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/dayweave/internal/db"
	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/alexanderramin/dayweave/internal/recurrence"
	"github.com/alexanderramin/dayweave/internal/repository"
)

type eventService struct {
	events   repository.EventRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewEventService(events repository.EventRepo, uow db.UnitOfWork, observers ...UseCaseObserver) EventService {
	return &eventService{
		events:   events,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *eventService) Create(ctx context.Context, e *domain.Event) error {
	if e.ID == "" {
		e.ID = newID()
	}
	if e.Priority == "" {
		e.Priority = domain.PriorityMedium
	}
	if e.Recurrence.Type == "" {
		e.Recurrence = domain.NoRecurrence
	}
	if err := e.Validate(); err != nil {
		return err
	}
	now := nowUTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	return s.events.Create(ctx, e)
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return s.events.GetByID(ctx, id)
}

func (s *eventService) List(ctx context.Context) ([]*domain.Event, error) {
	return s.events.List(ctx)
}

func (s *eventService) Update(ctx context.Context, e *domain.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.UpdatedAt = nowUTC()
	return s.events.Update(ctx, e)
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	return s.events.Delete(ctx, id)
}

func (s *eventService) OccursOn(ctx context.Context, id string, day time.Time) (bool, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return recurrence.OccursOn(recurrence.EventAnchor(e), day), nil
}

func (s *eventService) Expand(ctx context.Context, id string, from, to time.Time) (recurrence.Expansion, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return recurrence.Expansion{}, err
	}
	exp := recurrence.Expand(recurrence.EventAnchor(e), from, to)
	if exp.Truncated {
		slog.WarnContext(ctx, "occurrence expansion truncated",
			"event_id", e.ID,
			"title", e.Title,
			"cap", recurrence.MaxOccurrences,
		)
	}
	return exp, nil
}

func (s *eventService) OccurrencesBetween(ctx context.Context, from, to time.Time) ([]EventOccurrence, error) {
	events, err := s.events.ListForRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return expandEvents(ctx, events, from, to), nil
}

func (s *eventService) EditOccurrence(ctx context.Context, anchorID string, day time.Time, scope recurrence.EditScope, edit EventEdit) (*domain.Event, error) {
	anchor, err := s.events.GetByID(ctx, anchorID)
	if err != nil {
		return nil, err
	}
	occ, err := occurrenceOf(anchor, day)
	if err != nil {
		return nil, err
	}

	target := recurrence.RouteEdit(occ, scope)
	switch target.Action {
	case recurrence.DetachOccurrence:
		return s.DetachOccurrence(ctx, target.AnchorID, target.Date, edit)
	default:
		if edit != nil {
			edit(anchor)
		}
		if err := s.Update(ctx, anchor); err != nil {
			return nil, err
		}
		return anchor, nil
	}
}

func (s *eventService) DetachOccurrence(ctx context.Context, anchorID string, day time.Time, edit EventEdit) (detached *domain.Event, err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "event.detach_occurrence", startedAt, map[string]any{
			"event_id": anchorID,
			"date":     day.Format("2006-01-02"),
		}, &err)
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEvents := repository.NewSQLiteEventRepo(tx)

		anchor, err := txEvents.GetByID(ctx, anchorID)
		if err != nil {
			return err
		}
		if !anchor.Recurrence.IsRecurring() {
			return fmt.Errorf("event %s does not repeat; edit it directly", anchorID)
		}
		occ, err := occurrenceOf(anchor, day)
		if err != nil {
			return err
		}

		now := nowUTC()
		copyEvent := *anchor
		copyEvent.ID = newID()
		copyEvent.Start = occ.Start
		copyEvent.End = occ.End
		copyEvent.Recurrence = domain.NoRecurrence
		copyEvent.ExcludedDates = nil
		copyEvent.CreatedAt = now
		copyEvent.UpdatedAt = now
		if anchor.SourceTemplateID != nil {
			src := *anchor.SourceTemplateID
			copyEvent.SourceTemplateID = &src
		}
		if edit != nil {
			edit(&copyEvent)
			copyEvent.Recurrence = domain.NoRecurrence
		}
		if err := copyEvent.Validate(); err != nil {
			return err
		}

		if err := txEvents.Create(ctx, &copyEvent); err != nil {
			return err
		}
		if err := txEvents.AddExclusion(ctx, anchor.ID, occ.Date()); err != nil {
			return err
		}
		anchor.UpdatedAt = now
		if err := txEvents.Update(ctx, anchor); err != nil {
			return err
		}
		detached = &copyEvent
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detached, nil
}

// occurrenceOf returns the occurrence of e on day, or an error when the
// event does not occur that day.
func occurrenceOf(e *domain.Event, day time.Time) (recurrence.Occurrence, error) {
	exp := recurrence.Expand(recurrence.EventAnchor(e), day, day)
	if len(exp.Occurrences) == 0 {
		return recurrence.Occurrence{}, fmt.Errorf("event %s does not occur on %s", e.ID, day.Format("2006-01-02"))
	}
	return exp.Occurrences[0], nil
}
