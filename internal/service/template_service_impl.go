package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/alexanderramin/dayweave/internal/repository"
)

type templateService struct {
	templates repository.TemplateRepo
	observer  UseCaseObserver
}

func NewTemplateService(templates repository.TemplateRepo, observers ...UseCaseObserver) TemplateService {
	return &templateService{
		templates: templates,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *templateService) Create(ctx context.Context, t *domain.Template) error {
	if t.ID == "" {
		t.ID = newID()
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if err := t.Validate(); err != nil {
		return err
	}
	t.IsDefault = false
	t.CreatedAt = nowUTC()
	return s.templates.Create(ctx, t)
}

func (s *templateService) List(ctx context.Context) ([]*domain.Template, error) {
	return s.templates.List(ctx)
}

// Delete removes a user template. Seeded default templates cannot be removed.
func (s *templateService) Delete(ctx context.Context, id string) error {
	t, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t.IsDefault {
		return fmt.Errorf("template %q is a default template and cannot be deleted", t.Name)
	}
	return s.templates.Delete(ctx, id)
}
