package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocate_HighPriorityTakesOnlySlot(t *testing.T) {
	slots := []TimeSlot{slot(9, 0, 10, 0)}
	cands := []TaskCandidate{
		candidate("review", 60, domain.PriorityMedium),
		candidate("deploy", 60, domain.PriorityHigh),
	}

	placed := Allocate(slots, cands, morning(), LearningSignals{})

	require.Len(t, placed, 1)
	assert.Equal(t, "deploy", placed[0].Title)
	assert.Equal(t, clock(9, 0), placed[0].Start)
	assert.Equal(t, clock(10, 0), placed[0].End)
}

func TestAllocate_LearnedDurationBlend(t *testing.T) {
	signals := LearningSignals{Durations: []domain.TaskDurationLearning{
		{TaskName: "会議", AverageDuration: 90, SampleSize: 10, Accuracy: 0.9},
	}}

	placed := Allocate([]TimeSlot{slot(7, 0, 10, 0)}, []TaskCandidate{candidate("会議", 60, domain.PriorityMedium)}, morning(), signals)

	require.Len(t, placed, 1)
	assert.Equal(t, 87*time.Minute, placed[0].Duration())
}

func TestAllocate_PlacedEventShape(t *testing.T) {
	c := candidate("write", 30, domain.PriorityLow)

	placed := Allocate([]TimeSlot{slot(9, 0, 10, 0)}, []TaskCandidate{c, c}, morning(), LearningSignals{})

	require.Len(t, placed, 2)
	for _, ev := range placed {
		assert.NotEmpty(t, ev.ID)
		assert.Equal(t, "work", ev.Category)
		assert.Equal(t, domain.PriorityLow, ev.Priority)
		assert.Equal(t, "#458588", ev.Color)
		assert.False(t, ev.Fixed)
		assert.False(t, ev.NotificationsEnabled)
		assert.False(t, ev.Recurrence.IsRecurring())
		require.NotNil(t, ev.SourceTemplateID)
		assert.Equal(t, "tpl-write", *ev.SourceTemplateID)
	}
	assert.NotEqual(t, placed[0].ID, placed[1].ID)
	assert.Equal(t, clock(9, 30), placed[1].Start, "second copy goes into the shrunk slot")
}

func TestAllocate_ChronotypePicksSlot(t *testing.T) {
	slots := []TimeSlot{slot(8, 0, 9, 0), slot(20, 0, 21, 0)}
	cands := []TaskCandidate{candidate("focus", 60, domain.PriorityLow)}

	assert.Equal(t, clock(8, 0), Allocate(slots, cands, morning(), LearningSignals{})[0].Start)
	assert.Equal(t, clock(20, 0), Allocate(slots, cands, evening(), LearningSignals{})[0].Start)
}

func TestAllocate_LearnedConcentrationOverridesCurve(t *testing.T) {
	slots := []TimeSlot{slot(8, 0, 9, 0), slot(20, 0, 21, 0)}
	cands := []TaskCandidate{candidate("focus", 60, domain.PriorityLow)}
	signals := LearningSignals{Concentration: []domain.ConcentrationScore{{Hour: 8, Score: 0.2}}}

	placed := Allocate(slots, cands, morning(), signals)

	require.Len(t, placed, 1)
	assert.Equal(t, clock(20, 0), placed[0].Start, "learned 0.2 at 08h loses to curve 0.4 at 20h")
}

func TestAllocate_TieKeepsEarliestSlot(t *testing.T) {
	slots := []TimeSlot{slot(7, 0, 8, 0), slot(8, 0, 9, 0)}

	placed := Allocate(slots, []TaskCandidate{candidate("a", 60, domain.PriorityHigh)}, morning(), LearningSignals{})

	require.Len(t, placed, 1)
	assert.Equal(t, clock(7, 0), placed[0].Start)
}

func TestAllocate_ShortRemainderRemovesSlot(t *testing.T) {
	slots := []TimeSlot{slot(9, 0, 10, 10)}
	cands := []TaskCandidate{
		candidate("long", 60, domain.PriorityHigh),
		candidate("tiny", 10, domain.PriorityLow),
	}

	placed := Allocate(slots, cands, morning(), LearningSignals{})

	require.Len(t, placed, 1)
	assert.Equal(t, "long", placed[0].Title)
}

func TestAllocate_DoesNotMutateInput(t *testing.T) {
	slots := []TimeSlot{slot(9, 0, 10, 0), slot(11, 0, 11, 20)}
	orig := append([]TimeSlot(nil), slots...)
	cands := []TaskCandidate{candidate("b", 20, domain.PriorityLow), candidate("a", 60, domain.PriorityHigh)}
	origCands := append([]TaskCandidate(nil), cands...)

	Allocate(slots, cands, morning(), LearningSignals{})

	assert.Equal(t, orig, slots)
	assert.Equal(t, origCands, cands)
}

func TestAllocate_DropsUnplaceableSilently(t *testing.T) {
	placed := Allocate([]TimeSlot{slot(9, 0, 9, 30)}, []TaskCandidate{candidate("big", 45, domain.PriorityHigh)}, morning(), LearningSignals{})
	assert.Empty(t, placed)

	assert.Empty(t, Allocate(nil, []TaskCandidate{candidate("x", 15, domain.PriorityLow)}, morning(), LearningSignals{}))
}

func TestAllocate_ShortTaskMayBeBelowMinimumSlot(t *testing.T) {
	placed := Allocate([]TimeSlot{slot(9, 0, 10, 0)}, []TaskCandidate{candidate("stretch", 5, domain.PriorityLow)}, morning(), LearningSignals{})

	require.Len(t, placed, 1)
	assert.Equal(t, 5*time.Minute, placed[0].Duration())
}

func TestEffectiveDuration(t *testing.T) {
	learned := map[string]domain.TaskDurationLearning{
		"会議":    {TaskName: "会議", AverageDuration: 90, SampleSize: 10, Accuracy: 0.9},
		"few":   {TaskName: "few", AverageDuration: 200, SampleSize: 2, Accuracy: 1},
		"small": {TaskName: "small", AverageDuration: 100, SampleSize: 3, Accuracy: 0.9},
		"over":  {TaskName: "over", AverageDuration: 40, SampleSize: 50, Accuracy: 3},
	}
	tests := []struct {
		title   string
		nominal int
		want    int
	}{
		{"会議", 60, 87},
		{"few", 60, 60},
		{"small", 60, 72}, // w = min(0.9, 0.3) = 0.3
		{"over", 60, 40},  // weight capped at 1
		{"unknown", 25, 25},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveDuration(tt.title, tt.nominal, learned))
		})
	}
}

func TestEffectiveDuration_IgnoresSurroundingWhitespace(t *testing.T) {
	learned := durationsByName([]domain.TaskDurationLearning{
		{TaskName: " Reading ", AverageDuration: 30, SampleSize: 10, Accuracy: 1},
	})

	assert.Equal(t, 30, EffectiveDuration("Reading", 45, learned))
	assert.Equal(t, 30, EffectiveDuration("  Reading\t", 45, learned))

	placed := Allocate([]TimeSlot{slot(9, 0, 12, 0)}, []TaskCandidate{candidate("Reading ", 45, domain.PriorityMedium)},
		morning(), LearningSignals{Durations: []domain.TaskDurationLearning{{TaskName: "Reading", AverageDuration: 30, SampleSize: 10, Accuracy: 1}}})
	require.Len(t, placed, 1)
	assert.Equal(t, 30*time.Minute, placed[0].Duration())
}

func TestClampUnit(t *testing.T) {
	assert.Equal(t, 0.0, ClampUnit(-0.2))
	assert.Equal(t, 0.4, ClampUnit(0.4))
	assert.Equal(t, 1.0, ClampUnit(1.5))
}

func TestChronotypeScore_Curves(t *testing.T) {
	morningWant := map[int]float64{0: 0.3, 5: 0.3, 6: 1.0, 9: 1.0, 10: 0.8, 12: 0.8, 13: 0.6, 15: 0.6, 16: 0.5, 18: 0.5, 19: 0.4, 21: 0.4, 22: 0.3, 23: 0.3}
	eveningWant := map[int]float64{0: 0.4, 5: 0.4, 6: 0.5, 12: 0.5, 13: 0.6, 15: 0.6, 16: 0.8, 17: 0.8, 18: 1.0, 21: 1.0, 22: 0.8, 23: 0.8}

	for h, want := range morningWant {
		assert.Equal(t, want, ChronotypeScore(domain.ChronotypeMorning, h), "morning hour %d", h)
	}
	for h, want := range eveningWant {
		assert.Equal(t, want, ChronotypeScore(domain.ChronotypeEvening, h), "evening hour %d", h)
	}
}

func TestFocusScore_ClampsLearnedScores(t *testing.T) {
	learned := concentrationByHour([]domain.ConcentrationScore{{Hour: 9, Score: 1.7}, {Hour: 10, Score: -1}, {Hour: 30, Score: 0.5}})

	assert.Equal(t, 1.0, FocusScore(9, domain.ChronotypeMorning, learned))
	assert.Equal(t, 0.0, FocusScore(10, domain.ChronotypeMorning, learned))
	assert.Len(t, learned, 2)
}

func TestSortCandidates_StableWithinTier(t *testing.T) {
	in := []TaskCandidate{
		candidate("l1", 10, domain.PriorityLow),
		candidate("h1", 10, domain.PriorityHigh),
		candidate("m1", 10, domain.PriorityMedium),
		candidate("h2", 10, domain.PriorityHigh),
		candidate("l2", 10, domain.PriorityLow),
	}

	out := SortCandidates(in)

	var titles []string
	for _, c := range out {
		titles = append(titles, c.Title)
	}
	assert.Equal(t, []string{"h1", "h2", "m1", "l1", "l2"}, titles)
	assert.Equal(t, "l1", in[0].Title)
}
