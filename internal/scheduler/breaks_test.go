package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertBreaks_SplitsLongSlot(t *testing.T) {
	out := InsertBreaks([]TimeSlot{slot(7, 0, 9, 0), slot(10, 0, 23, 0)}, 50, 10)

	require.Len(t, out, 6)
	assert.Equal(t, NewTimeSlot(clock(7, 0), clock(7, 50), SlotWork), out[0])
	assert.Equal(t, 60, out[2].DurationMin())
	assert.Equal(t, NewTimeSlot(clock(10, 0), clock(10, 50), SlotWork), out[3])
	assert.Equal(t, NewTimeSlot(clock(10, 50), clock(11, 0), SlotBreak), out[4])
	assert.Equal(t, NewTimeSlot(clock(11, 0), clock(23, 0), SlotRemainder), out[5])
	assert.Equal(t, 720, out[5].DurationMin())
}

func TestInsertBreaks_SessionPlusBreakPlusTwenty(t *testing.T) {
	const work, brk = 50, 10
	in := NewTimeSlot(clock(9, 0), clock(9, 0).Add(minutes(work+brk+20)), SlotFree)

	out := InsertBreaks([]TimeSlot{in}, work, brk)

	require.Len(t, out, 3)
	total := 0
	for _, s := range out {
		total += s.DurationMin()
	}
	assert.LessOrEqual(t, total, in.DurationMin())
	assert.Equal(t, brk, out[1].DurationMin())
	assert.Equal(t, 20, out[2].DurationMin())
}

func TestInsertBreaks_DropsShortRemainder(t *testing.T) {
	in := NewTimeSlot(clock(9, 0), clock(9, 0).Add(minutes(50+10+14)), SlotFree)

	out := InsertBreaks([]TimeSlot{in}, 50, 10)

	require.Len(t, out, 2)
	assert.Equal(t, SlotWork, out[0].Kind)
	assert.Equal(t, SlotBreak, out[1].Kind)
}

func TestInsertBreaks_ThresholdPassesThrough(t *testing.T) {
	in := []TimeSlot{slot(9, 0, 10, 0), slot(12, 0, 12, 30)}

	out := InsertBreaks(in, 50, 10)

	assert.Equal(t, in, out)
}

func TestInsertBreaks_SplitsOnlyOnce(t *testing.T) {
	out := InsertBreaks([]TimeSlot{slot(8, 0, 13, 0)}, 50, 10)

	require.Len(t, out, 3)
	assert.Equal(t, 240, out[2].DurationMin(), "remainder is not split again")
}
