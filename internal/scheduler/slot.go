// Package scheduler turns a day's fixed commitments into free time and fills
// it with task candidates. Nothing in this package performs I/O.
package scheduler

import (
	"fmt"
	"time"
)

// MinSlotMin is the shortest free window worth keeping, in minutes.
const MinSlotMin = 15

type SlotKind string

const (
	SlotFree      SlotKind = "free"
	SlotWork      SlotKind = "work"
	SlotBreak     SlotKind = "break"
	SlotRemainder SlotKind = "remainder"
)

// TimeSlot is the half-open interval [Start, End).
type TimeSlot struct {
	Start time.Time
	End   time.Time
	Kind  SlotKind
}

// NewTimeSlot builds a slot. An end before start is a caller bug and panics.
func NewTimeSlot(start, end time.Time, kind SlotKind) TimeSlot {
	if end.Before(start) {
		panic(fmt.Sprintf("scheduler: slot end %s before start %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339)))
	}
	return TimeSlot{Start: start, End: end, Kind: kind}
}

// DurationMin is End - Start in whole minutes.
func (s TimeSlot) DurationMin() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}

// overlaps reports whether the two half-open intervals share any instant.
func (s TimeSlot) overlaps(start, end time.Time) bool {
	return s.Start.Before(end) && start.Before(s.End)
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
