package service

import (
	"context"
	"sort"
	"time"

	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/alexanderramin/dayweave/internal/recurrence"
	"github.com/alexanderramin/dayweave/internal/repository"
)

type todoService struct {
	todos    repository.TodoRepo
	observer UseCaseObserver
}

func NewTodoService(todos repository.TodoRepo, observers ...UseCaseObserver) TodoService {
	return &todoService{
		todos:    todos,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *todoService) Create(ctx context.Context, t *domain.Todo) error {
	if t.ID == "" {
		t.ID = newID()
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if t.Recurrence.Type == "" {
		t.Recurrence = domain.NoRecurrence
	}
	if err := t.Validate(); err != nil {
		return err
	}
	now := nowUTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.todos.Create(ctx, t)
}

func (s *todoService) GetByID(ctx context.Context, id string) (*domain.Todo, error) {
	return s.todos.GetByID(ctx, id)
}

func (s *todoService) List(ctx context.Context, includeDone bool) ([]*domain.Todo, error) {
	return s.todos.List(ctx, includeDone)
}

func (s *todoService) MarkDone(ctx context.Context, id string) (t *domain.Todo, err error) {
	startedAt := time.Now()
	fields := map[string]any{"todo_id": id}
	defer func() {
		observe(ctx, s.observer, "todo.mark_done", startedAt, fields, &err)
	}()

	t, err = s.todos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.IsDone() {
		return t, nil
	}

	now := nowUTC()
	if t.Recurrence.IsRecurring() {
		next, ok := recurrence.NextOccurrence(t.Due, recurrence.Resolve(t.Recurrence, t.Due))
		if ok {
			t.Due = next
			t.UpdatedAt = now
			fields["next_due"] = next.Format("2006-01-02")
			if err := s.todos.Update(ctx, t); err != nil {
				return nil, err
			}
			return t, nil
		}
	}

	t.MarkDone(now)
	if err := s.todos.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *todoService) Delete(ctx context.Context, id string) error {
	return s.todos.Delete(ctx, id)
}

func (s *todoService) DueBetween(ctx context.Context, from, to time.Time) ([]TodoOccurrence, error) {
	todos, err := s.todos.List(ctx, false)
	if err != nil {
		return nil, err
	}

	var out []TodoOccurrence
	for _, t := range todos {
		for _, occ := range recurrence.Expand(recurrence.TodoAnchor(t), from, to).Occurrences {
			out = append(out, TodoOccurrence{Todo: t, Due: occ.Start})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Due.Equal(out[j].Due) {
			return out[i].Due.Before(out[j].Due)
		}
		return out[i].Todo.Priority.Rank() < out[j].Todo.Priority.Rank()
	})
	return out, nil
}
