package scheduler

import (
	"math"
	"strings"

	"github.com/alexanderramin/dayweave/internal/domain"
)

// MinLearningSamples is the sample size below which learned durations are
// ignored.
const MinLearningSamples = 3

// EffectiveDuration blends the nominal duration with the learned average for
// task title, ignoring surrounding whitespace:
//
//	w = min(accuracy, sampleSize/10)
//	effective = round(average*w + nominal*(1-w))
//
// Without a usable learning entry the nominal duration is returned.
func EffectiveDuration(title string, nominalMin int, learned map[string]domain.TaskDurationLearning) int {
	l, ok := learned[strings.TrimSpace(title)]
	if !ok || l.SampleSize < MinLearningSamples {
		return nominalMin
	}
	w := ClampUnit(math.Min(l.Accuracy, float64(l.SampleSize)/10))
	effective := int(math.Round(l.AverageDuration*w + float64(nominalMin)*(1-w)))
	if effective <= 0 {
		return nominalMin
	}
	return effective
}

func durationsByName(ls []domain.TaskDurationLearning) map[string]domain.TaskDurationLearning {
	byName := make(map[string]domain.TaskDurationLearning, len(ls))
	for _, l := range ls {
		byName[strings.TrimSpace(l.TaskName)] = l
	}
	return byName
}
