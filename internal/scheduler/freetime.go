package scheduler

import (
	"sort"
	"time"

	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/alexanderramin/dayweave/internal/recurrence"
)

// ExtractFreeSlots returns the gaps of at least MinSlotMin minutes between
// wake and sleep on day that no fixed occurrence covers.
//
// A sleep time at or before the wake time yields no slots; windows crossing
// midnight are not supported.
func ExtractFreeSlots(day time.Time, fixed []recurrence.Occurrence, wake, sleep domain.WallClock) []TimeSlot {
	dayStart := wake.On(day)
	dayEnd := sleep.On(day)
	if !dayEnd.After(dayStart) {
		return nil
	}

	occs := make([]recurrence.Occurrence, len(fixed))
	copy(occs, fixed)
	sort.SliceStable(occs, func(i, j int) bool {
		return occs[i].Start.Before(occs[j].Start)
	})

	var slots []TimeSlot
	cursor := dayStart
	for _, occ := range occs {
		gapEnd := occ.Start
		if gapEnd.After(dayEnd) {
			gapEnd = dayEnd
		}
		if gapEnd.Sub(cursor) >= minutes(MinSlotMin) {
			slots = append(slots, NewTimeSlot(cursor, gapEnd, SlotFree))
		}
		// Never move backward: contained occurrences must not reopen time.
		if occ.End.After(cursor) {
			cursor = occ.End
		}
	}
	if dayEnd.Sub(cursor) >= minutes(MinSlotMin) {
		slots = append(slots, NewTimeSlot(cursor, dayEnd, SlotFree))
	}
	return slots
}
