package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/dayweave/internal/ics"
	"github.com/alexanderramin/dayweave/internal/repository"
)

type exportService struct {
	events   repository.EventRepo
	observer UseCaseObserver
}

func NewExportService(events repository.EventRepo, observers ...UseCaseObserver) ExportService {
	return &exportService{
		events:   events,
		observer: useCaseObserverOrNoop(observers),
	}
}

// ExportICS writes every event that can occur in [from, to] as a calendar
// feed. Recurring anchors are exported once with their rule.
func (s *exportService) ExportICS(ctx context.Context, from, to time.Time, w io.Writer) (n int, err error) {
	startedAt := time.Now()
	fields := map[string]any{
		"from": from.Format("2006-01-02"),
		"to":   to.Format("2006-01-02"),
	}
	defer func() {
		fields["events"] = n
		observe(ctx, s.observer, "export.ics", startedAt, fields, &err)
	}()

	events, err := s.events.ListForRange(ctx, from, to)
	if err != nil {
		return 0, err
	}
	if err := ics.Encode(w, events, time.Now()); err != nil {
		return 0, err
	}
	return len(events), nil
}
