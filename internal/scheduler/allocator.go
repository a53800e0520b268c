package scheduler

import (
	"time"

	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/google/uuid"
)

// TaskCandidate is a task the allocator may place into free time.
type TaskCandidate struct {
	SourceID    string
	Title       string
	DurationMin int
	Priority    domain.Priority
	Category    string
	Color       string
}

// LearningSignals is the optional analytics input. Either field may be empty.
type LearningSignals struct {
	Concentration []domain.ConcentrationScore
	Durations     []domain.TaskDurationLearning
}

// Allocate greedily places candidates into slots, highest priority first.
// Each candidate goes to the fitting slot with the best focus score plus
// priority bonus; ties keep the earliest slot. Candidates that fit nowhere
// are left out of the result. slots is not modified.
func Allocate(slots []TimeSlot, candidates []TaskCandidate, settings domain.Settings, signals LearningSignals) []domain.Event {
	free := make([]TimeSlot, len(slots))
	copy(free, slots)

	learnedFocus := concentrationByHour(signals.Concentration)
	learnedDur := durationsByName(signals.Durations)

	var placed []domain.Event
	for _, c := range SortCandidates(candidates) {
		dur := EffectiveDuration(c.Title, c.DurationMin, learnedDur)
		if dur <= 0 {
			continue
		}

		best := -1
		var bestScore float64
		for i, s := range free {
			if s.DurationMin() < dur {
				continue
			}
			score := FocusScore(s.Start.Hour(), settings.Chronotype, learnedFocus) + PriorityBonus(c.Priority)
			if best < 0 || score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			continue
		}

		slot := free[best]
		end := slot.Start.Add(minutes(dur))
		placed = append(placed, placedEvent(c, slot.Start, end))

		if slot.End.Sub(end) >= minutes(MinSlotMin) {
			free[best] = NewTimeSlot(end, slot.End, slot.Kind)
		} else {
			free = append(free[:best], free[best+1:]...)
		}
	}
	return placed
}

func placedEvent(c TaskCandidate, start, end time.Time) domain.Event {
	sourceID := c.SourceID
	return domain.Event{
		ID:               uuid.NewString(),
		Title:            c.Title,
		Start:            start,
		End:              end,
		Recurrence:       domain.NoRecurrence,
		Category:         c.Category,
		Priority:         c.Priority,
		Color:            c.Color,
		SourceTemplateID: &sourceID,
	}
}
