// Package notify schedules in-process reminders for today's events.
package notify

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/alexanderramin/dayweave/internal/recurrence"
)

// Reminder is one pending notification for an occurrence.
type Reminder struct {
	Key     string
	EventID string
	Title   string
	Start   time.Time
	FireAt  time.Time
}

// Notifier delivers a reminder when it fires.
type Notifier interface {
	Notify(ctx context.Context, r Reminder)
}

// LogNotifier writes reminders to a logger.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(ctx context.Context, r Reminder) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "reminder",
		"event_id", r.EventID,
		"title", r.Title,
		"start", r.Start.Format("15:04"),
		"in_min", int(time.Until(r.Start).Round(time.Minute).Minutes()),
	)
}

type entry struct {
	reminder Reminder
	timer    *time.Timer
}

// Registry holds one timer per upcoming occurrence. It is safe for
// concurrent use.
type Registry struct {
	notifier Notifier
	lead     time.Duration

	mu      sync.Mutex
	pending map[string]*entry
	// fired maps an instance key to the FireAt it was delivered for.
	fired map[string]time.Time
}

// NewRegistry returns a registry that fires lead before each occurrence.
func NewRegistry(notifier Notifier, lead time.Duration) *Registry {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	if lead < 0 {
		lead = 0
	}
	return &Registry{
		notifier: notifier,
		lead:     lead,
		pending:  make(map[string]*entry),
		fired:    make(map[string]time.Time),
	}
}

// Load replaces all pending reminders with one per occurrence of events on
// now's day that has notifications enabled and has not started yet. A
// reminder whose fire time already passed fires immediately, unless it was
// already delivered for the same fire time by an earlier load. It returns
// the number of reminders registered.
func (r *Registry) Load(ctx context.Context, events []*domain.Event, now time.Time) int {
	r.Clear()

	day := domain.StartOfDay(now)
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, at := range r.fired {
		if !domain.SameDay(at.Add(r.lead), day) {
			delete(r.fired, key)
		}
	}
	for _, e := range events {
		if !e.NotificationsEnabled || e.AllDay {
			continue
		}
		for _, occ := range recurrence.Expand(recurrence.EventAnchor(e), day, day).Occurrences {
			if !occ.Start.After(now) {
				continue
			}
			rem := Reminder{
				Key:     occ.InstanceKey(),
				EventID: e.ID,
				Title:   e.Title,
				Start:   occ.Start,
				FireAt:  occ.Start.Add(-r.lead),
			}
			if at, ok := r.fired[rem.Key]; ok && at.Equal(rem.FireAt) {
				continue
			}
			delay := rem.FireAt.Sub(now)
			if delay < 0 {
				delay = 0
			}
			r.schedule(ctx, rem, delay)
		}
	}
	return len(r.pending)
}

// schedule must be called with mu held.
func (r *Registry) schedule(ctx context.Context, rem Reminder, delay time.Duration) {
	if old, ok := r.pending[rem.Key]; ok {
		old.timer.Stop()
	}
	e := &entry{reminder: rem}
	e.timer = time.AfterFunc(delay, func() {
		r.mu.Lock()
		current, ok := r.pending[rem.Key]
		if ok && current == e {
			delete(r.pending, rem.Key)
			r.fired[rem.Key] = rem.FireAt
		}
		r.mu.Unlock()
		if ok && current == e {
			r.notifier.Notify(ctx, rem)
		}
	})
	r.pending[rem.Key] = e
}

// Clear stops every pending timer. Delivered reminders stay recorded.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, e := range r.pending {
		e.timer.Stop()
		delete(r.pending, key)
	}
}

// Pending returns the reminders that have not fired, soonest first.
func (r *Registry) Pending() []Reminder {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Reminder, 0, len(r.pending))
	for _, e := range r.pending {
		out = append(out, e.reminder)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].FireAt.Equal(out[j].FireAt) {
			return out[i].FireAt.Before(out[j].FireAt)
		}
		return out[i].Key < out[j].Key
	})
	return out
}
