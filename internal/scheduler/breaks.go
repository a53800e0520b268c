package scheduler

// InsertBreaks splits every slot longer than one work session plus one break
// into work, break and remainder segments. Only one split is made per slot.
// A remainder shorter than MinSlotMin is dropped.
func InsertBreaks(slots []TimeSlot, workSessionMin, breakMin int) []TimeSlot {
	threshold := workSessionMin + breakMin
	out := make([]TimeSlot, 0, len(slots)+2)
	for _, s := range slots {
		if s.DurationMin() <= threshold {
			out = append(out, s)
			continue
		}
		workEnd := s.Start.Add(minutes(workSessionMin))
		breakEnd := workEnd.Add(minutes(breakMin))
		out = append(out,
			NewTimeSlot(s.Start, workEnd, SlotWork),
			NewTimeSlot(workEnd, breakEnd, SlotBreak),
		)
		if rest := NewTimeSlot(breakEnd, s.End, SlotRemainder); rest.DurationMin() >= MinSlotMin {
			out = append(out, rest)
		}
	}
	return out
}
