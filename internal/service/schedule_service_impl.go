package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/dayweave/internal/db"
	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/alexanderramin/dayweave/internal/repository"
	"github.com/alexanderramin/dayweave/internal/scheduler"
)

type scheduleService struct {
	events    repository.EventRepo
	templates repository.TemplateRepo
	settings  repository.SettingsRepo
	learning  repository.LearningRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewScheduleService(
	events repository.EventRepo,
	templates repository.TemplateRepo,
	settings repository.SettingsRepo,
	learning repository.LearningRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ScheduleService {
	return &scheduleService{
		events:    events,
		templates: templates,
		settings:  settings,
		learning:  learning,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// planInputs groups the repositories a day request is read from, so the
// same loader serves plain reads and transactional planning.
type planInputs struct {
	events    repository.EventRepo
	templates repository.TemplateRepo
	settings  repository.SettingsRepo
	learning  repository.LearningRepo
}

func (s *scheduleService) inputs() planInputs {
	return planInputs{events: s.events, templates: s.templates, settings: s.settings, learning: s.learning}
}

func txInputs(tx db.DBTX) planInputs {
	return planInputs{
		events:    repository.NewSQLiteEventRepo(tx),
		templates: repository.NewSQLiteTemplateRepo(tx),
		settings:  repository.NewSQLiteSettingsRepo(tx),
		learning:  repository.NewSQLiteLearningRepo(tx),
	}
}

func (in planInputs) dayRequest(ctx context.Context, day time.Time) (scheduler.DayRequest, error) {
	day = domain.StartOfDay(day)
	req := scheduler.DayRequest{Date: day}

	settings, err := in.settings.Get(ctx)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		req.Settings = domain.DefaultSettings()
	case err != nil:
		return req, err
	default:
		req.Settings = *settings
	}

	events, err := in.events.ListForRange(ctx, day, day)
	if err != nil {
		return req, err
	}
	req.Events = eventValues(events)

	templates, err := in.templates.List(ctx)
	if err != nil {
		return req, err
	}
	req.Templates = templateValues(templates)

	if req.Signals.Concentration, err = in.learning.ListConcentration(ctx); err != nil {
		return req, err
	}
	if req.Signals.Durations, err = in.learning.ListDurations(ctx); err != nil {
		return req, err
	}
	return req, nil
}

func (s *scheduleService) FreeSlots(ctx context.Context, day time.Time) ([]scheduler.TimeSlot, error) {
	req, err := s.inputs().dayRequest(ctx, day)
	if err != nil {
		return nil, err
	}
	return scheduler.FreeTime(req.Date, req.Events, req.Settings), nil
}

func (s *scheduleService) Preview(ctx context.Context, day time.Time) (*scheduler.DayPlan, error) {
	req, err := s.inputs().dayRequest(ctx, day)
	if err != nil {
		return nil, err
	}
	// Plan replaces the day's generated events, so the preview must not
	// treat them as blocking.
	req.Events = withoutGenerated(req.Events, req.Date)
	plan := scheduler.GenerateDaySchedule(req)
	return &plan, nil
}

func (s *scheduleService) Plan(ctx context.Context, day time.Time) (result *PlanResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"date": day.Format("2006-01-02")}
	defer func() {
		observe(ctx, s.observer, "schedule.plan", startedAt, fields, &err)
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		in := txInputs(tx)

		replaced, err := in.events.DeleteGeneratedOn(ctx, day)
		if err != nil {
			return err
		}
		req, err := in.dayRequest(ctx, day)
		if err != nil {
			return err
		}
		plan := scheduler.GenerateDaySchedule(req)

		now := nowUTC()
		for i := range plan.Placed {
			plan.Placed[i].CreatedAt = now
			plan.Placed[i].UpdatedAt = now
			if err := in.events.Create(ctx, &plan.Placed[i]); err != nil {
				return err
			}
		}
		result = &PlanResult{Plan: plan, Replaced: replaced}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["placed"] = len(result.Plan.Placed)
	fields["replaced"] = result.Replaced
	return result, nil
}

func (s *scheduleService) HasPlan(ctx context.Context, day time.Time) (bool, error) {
	generated, err := s.events.ListGeneratedOn(ctx, day)
	if err != nil {
		return false, err
	}
	return len(generated) > 0, nil
}

func withoutGenerated(events []domain.Event, day time.Time) []domain.Event {
	out := events[:0:0]
	for _, e := range events {
		if e.Generated() && domain.SameDay(e.Start, day) {
			continue
		}
		out = append(out, e)
	}
	return out
}
