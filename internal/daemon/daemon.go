// Package daemon runs unattended planning and reminders on a cron schedule.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/alexanderramin/dayweave/internal/notify"
	"github.com/alexanderramin/dayweave/internal/service"
	"github.com/robfig/cron/v3"
)

// DefaultReminderRefresh reloads reminders often enough to pick up events
// added while the daemon runs.
const DefaultReminderRefresh = "*/15 * * * *"

type Options struct {
	// AutoPlanSpec is a standard five-field cron expression.
	AutoPlanSpec string
	// ReminderRefreshSpec defaults to DefaultReminderRefresh.
	ReminderRefreshSpec string
	Logger              *slog.Logger
	// Now is overridable in tests.
	Now func() time.Time
}

type Daemon struct {
	schedule  service.ScheduleService
	events    service.EventService
	reminders *notify.Registry

	planSpec    string
	refreshSpec string
	logger      *slog.Logger
	now         func() time.Time
}

// New validates the cron expressions up front so a bad config fails before
// the daemon starts.
func New(schedule service.ScheduleService, events service.EventService, reminders *notify.Registry, opts Options) (*Daemon, error) {
	if opts.ReminderRefreshSpec == "" {
		opts.ReminderRefreshSpec = DefaultReminderRefresh
	}
	for _, spec := range []string{opts.AutoPlanSpec, opts.ReminderRefreshSpec} {
		if _, err := cron.ParseStandard(spec); err != nil {
			return nil, fmt.Errorf("invalid cron expression %q: %w", spec, err)
		}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Daemon{
		schedule:    schedule,
		events:      events,
		reminders:   reminders,
		planSpec:    opts.AutoPlanSpec,
		refreshSpec: opts.ReminderRefreshSpec,
		logger:      opts.Logger,
		now:         opts.Now,
	}, nil
}

// AutoPlan plans today unless a plan already exists, then reloads
// reminders so newly placed events are covered.
func (d *Daemon) AutoPlan(ctx context.Context) error {
	today := domain.StartOfDay(d.now())

	has, err := d.schedule.HasPlan(ctx, today)
	if err != nil {
		return fmt.Errorf("checking plan for %s: %w", today.Format("2006-01-02"), err)
	}
	if has {
		d.logger.InfoContext(ctx, "autoplan skipped", "date", today.Format("2006-01-02"), "reason", "already planned")
	} else {
		result, err := d.schedule.Plan(ctx, today)
		if err != nil {
			return fmt.Errorf("planning %s: %w", today.Format("2006-01-02"), err)
		}
		d.logger.InfoContext(ctx, "autoplan done", "date", today.Format("2006-01-02"), "placed", len(result.Plan.Placed))
	}

	_, err = d.ReloadReminders(ctx)
	return err
}

// ReloadReminders registers reminders for the rest of today.
func (d *Daemon) ReloadReminders(ctx context.Context) (int, error) {
	now := d.now()
	today := domain.StartOfDay(now)
	occs, err := d.events.OccurrencesBetween(ctx, today, today)
	if err != nil {
		return 0, fmt.Errorf("loading today's events: %w", err)
	}
	n := d.reminders.Load(ctx, anchorsOf(occs), now)
	d.logger.DebugContext(ctx, "reminders loaded", "count", n)
	return n, nil
}

// Run blocks until ctx is done. Jobs that fail are logged and retried on
// their next tick.
func (d *Daemon) Run(ctx context.Context) error {
	c := cron.New(cron.WithChain(
		cron.Recover(cronLogger{d.logger}),
		cron.SkipIfStillRunning(cronLogger{d.logger}),
	))

	if _, err := c.AddFunc(d.planSpec, func() {
		if err := d.AutoPlan(ctx); err != nil {
			d.logger.ErrorContext(ctx, "autoplan failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("registering autoplan job: %w", err)
	}
	if _, err := c.AddFunc(d.refreshSpec, func() {
		if _, err := d.ReloadReminders(ctx); err != nil {
			d.logger.ErrorContext(ctx, "reminder reload failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("registering reminder job: %w", err)
	}

	if _, err := d.ReloadReminders(ctx); err != nil {
		d.logger.ErrorContext(ctx, "reminder reload failed", "error", err)
	}

	c.Start()
	d.logger.InfoContext(ctx, "daemon started", "autoplan", d.planSpec, "reminders", d.refreshSpec)

	<-ctx.Done()
	<-c.Stop().Done()
	d.reminders.Clear()
	d.logger.Info("daemon stopped")
	return nil
}

func anchorsOf(occs []service.EventOccurrence) []*domain.Event {
	seen := make(map[string]bool, len(occs))
	var out []*domain.Event
	for _, o := range occs {
		if seen[o.Event.ID] {
			continue
		}
		seen[o.Event.ID] = true
		out = append(out, o.Event)
	}
	return out
}

// cronLogger adapts slog to the cron.Logger interface.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append([]any{"error", err}, keysAndValues...)...)
}
