package domain

import "fmt"

// Settings holds the user's scheduling preferences.
type Settings struct {
	Chronotype     Chronotype
	WorkSessionMin int
	BreakMin       int
	WakeTime       WallClock
	SleepTime      WallClock
}

// DefaultSettings mirrors the seeded settings row.
func DefaultSettings() Settings {
	return Settings{
		Chronotype:     ChronotypeMorning,
		WorkSessionMin: 50,
		BreakMin:       10,
		WakeTime:       WallClock{Hour: 7},
		SleepTime:      WallClock{Hour: 23},
	}
}

func (s *Settings) Validate() error {
	if s.Chronotype != ChronotypeMorning && s.Chronotype != ChronotypeEvening {
		return fmt.Errorf("chronotype %q must be morning or evening", s.Chronotype)
	}
	if s.WorkSessionMin <= 0 {
		return fmt.Errorf("work session must be positive, got %d", s.WorkSessionMin)
	}
	if s.BreakMin < 0 {
		return fmt.Errorf("break must not be negative, got %d", s.BreakMin)
	}
	if s.WakeTime.Hour < 0 || s.WakeTime.Hour > 23 || s.SleepTime.Hour < 0 || s.SleepTime.Hour > 23 {
		return fmt.Errorf("wake and sleep times must be within the day")
	}
	return nil
}
