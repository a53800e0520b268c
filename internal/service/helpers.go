package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/alexanderramin/dayweave/internal/recurrence"
	"github.com/google/uuid"
)

func newID() string {
	return uuid.New().String()
}

func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// expandEvents expands each event over [from, to] and pairs every
// occurrence with its anchor, in start order. Expansions cut short by the
// occurrence cap are logged, not reported as errors.
func expandEvents(ctx context.Context, events []*domain.Event, from, to time.Time) []EventOccurrence {
	byID := make(map[string]*domain.Event, len(events))
	anchors := make([]recurrence.Anchor, 0, len(events))
	for _, e := range events {
		byID[e.ID] = e
		anchors = append(anchors, recurrence.EventAnchor(e))
	}

	occs, truncated := recurrence.ExpandAll(anchors, from, to)
	for _, id := range truncated {
		slog.WarnContext(ctx, "occurrence expansion truncated",
			"event_id", id,
			"title", byID[id].Title,
			"cap", recurrence.MaxOccurrences,
		)
	}

	out := make([]EventOccurrence, 0, len(occs))
	for _, occ := range occs {
		out = append(out, EventOccurrence{Event: byID[occ.AnchorID], Occurrence: occ})
	}
	return out
}

func eventValues(events []*domain.Event) []domain.Event {
	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		out = append(out, *e)
	}
	return out
}

func templateValues(templates []*domain.Template) []domain.Template {
	out := make([]domain.Template, 0, len(templates))
	for _, t := range templates {
		out = append(out, *t)
	}
	return out
}
