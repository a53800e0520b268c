package testutil

import (
	"time"

	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/google/uuid"
)

// At builds a local wall-clock time, the zone events are stored in.
func At(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.Local)
}

// Day is local midnight of the given date.
func Day(y int, m time.Month, d int) time.Time {
	return At(y, m, d, 0, 0)
}

func stamp() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// Event options
type EventOption func(*domain.Event)

func WithRecurrence(r domain.RecurrenceRule) EventOption {
	return func(e *domain.Event) {
		e.Recurrence = r
	}
}

func WithEventPriority(p domain.Priority) EventOption {
	return func(e *domain.Event) {
		e.Priority = p
	}
}

func WithAllDay() EventOption {
	return func(e *domain.Event) {
		e.AllDay = true
	}
}

func WithNotifications() EventOption {
	return func(e *domain.Event) {
		e.NotificationsEnabled = true
	}
}

func WithSourceTemplate(id string) EventOption {
	return func(e *domain.Event) {
		e.SourceTemplateID = &id
	}
}

func WithCategory(c string) EventOption {
	return func(e *domain.Event) {
		e.Category = c
	}
}

func WithExcludedDates(days ...time.Time) EventOption {
	return func(e *domain.Event) {
		e.ExcludedDates = append(e.ExcludedDates, days...)
	}
}

func NewTestEvent(title string, start time.Time, dur time.Duration, opts ...EventOption) *domain.Event {
	now := stamp()
	e := &domain.Event{
		ID:         uuid.New().String(),
		Title:      title,
		Start:      start,
		End:        start.Add(dur),
		Recurrence: domain.NoRecurrence,
		Fixed:      true,
		Priority:   domain.PriorityMedium,
		Color:      "#458588",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Todo options
type TodoOption func(*domain.Todo)

func WithTodoRecurrence(r domain.RecurrenceRule) TodoOption {
	return func(t *domain.Todo) {
		t.Recurrence = r
	}
}

func WithTodoPriority(p domain.Priority) TodoOption {
	return func(t *domain.Todo) {
		t.Priority = p
	}
}

func NewTestTodo(title string, due time.Time, opts ...TodoOption) *domain.Todo {
	now := stamp()
	t := &domain.Todo{
		ID:         uuid.New().String(),
		Title:      title,
		Due:        due,
		Recurrence: domain.NoRecurrence,
		Priority:   domain.PriorityMedium,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Template options
type TemplateOption func(*domain.Template)

func WithTemplatePriority(p domain.Priority) TemplateOption {
	return func(t *domain.Template) {
		t.Priority = p
	}
}

func AsDefaultTemplate() TemplateOption {
	return func(t *domain.Template) {
		t.IsDefault = true
	}
}

func NewTestTemplate(name string, durationMin int, opts ...TemplateOption) *domain.Template {
	t := &domain.Template{
		ID:          uuid.New().String(),
		Name:        name,
		DurationMin: durationMin,
		Category:    "work",
		Priority:    domain.PriorityMedium,
		Color:       "#b16286",
		CreatedAt:   stamp(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
