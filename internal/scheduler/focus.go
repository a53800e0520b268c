package scheduler

import "github.com/alexanderramin/dayweave/internal/domain"

// ChronotypeScore is the static focus curve used when no learned score
// exists for an hour.
func ChronotypeScore(c domain.Chronotype, hour int) float64 {
	if c == domain.ChronotypeEvening {
		switch {
		case hour >= 18 && hour <= 21:
			return 1.0
		case hour >= 16:
			return 0.8
		case hour >= 13:
			return 0.6
		case hour >= 6:
			return 0.5
		default:
			return 0.4
		}
	}
	switch {
	case hour >= 6 && hour <= 9:
		return 1.0
	case hour >= 10 && hour <= 12:
		return 0.8
	case hour >= 13 && hour <= 15:
		return 0.6
	case hour >= 16 && hour <= 18:
		return 0.5
	case hour >= 19 && hour <= 21:
		return 0.4
	default:
		return 0.3
	}
}

// FocusScore prefers a learned concentration score for the hour and falls
// back to the chronotype curve.
func FocusScore(hour int, c domain.Chronotype, learned map[int]float64) float64 {
	if score, ok := learned[hour]; ok {
		return score
	}
	return ChronotypeScore(c, hour)
}

// PriorityBonus is added to the focus score so higher-priority tasks claim
// the better hours.
func PriorityBonus(p domain.Priority) float64 {
	switch p {
	case domain.PriorityHigh:
		return 0.3
	case domain.PriorityMedium:
		return 0.1
	default:
		return 0
	}
}

func concentrationByHour(scores []domain.ConcentrationScore) map[int]float64 {
	byHour := make(map[int]float64, len(scores))
	for _, s := range scores {
		if s.Hour < 0 || s.Hour > 23 {
			continue
		}
		byHour[s.Hour] = ClampUnit(s.Score)
	}
	return byHour
}

// ClampUnit limits v to [0, 1].
func ClampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
