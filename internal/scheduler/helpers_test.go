package scheduler

import (
	"time"

	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/alexanderramin/dayweave/internal/recurrence"
)

var testDay = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

func clock(h, m int) time.Time {
	return time.Date(2025, 3, 14, h, m, 0, 0, time.UTC)
}

func slot(fromH, fromM, toH, toM int) TimeSlot {
	return NewTimeSlot(clock(fromH, fromM), clock(toH, toM), SlotFree)
}

func fixed(fromH, fromM, toH, toM int) recurrence.Occurrence {
	return recurrence.Occurrence{AnchorID: "fixed", Kind: recurrence.KindAnchor, Start: clock(fromH, fromM), End: clock(toH, toM)}
}

func candidate(title string, min int, p domain.Priority) TaskCandidate {
	return TaskCandidate{SourceID: "tpl-" + title, Title: title, DurationMin: min, Priority: p, Category: "work", Color: "#458588"}
}

func morning() domain.Settings {
	return domain.DefaultSettings()
}

func evening() domain.Settings {
	s := domain.DefaultSettings()
	s.Chronotype = domain.ChronotypeEvening
	return s
}
