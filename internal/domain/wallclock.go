package domain

import (
	"fmt"
	"time"
)

// WallClock is a local time of day with minute precision, written "HH:MM".
type WallClock struct {
	Hour   int
	Minute int
}

// ParseWallClock parses "HH:MM" (24-hour).
func ParseWallClock(s string) (WallClock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return WallClock{}, fmt.Errorf("invalid time %q (expected HH:MM): %w", s, err)
	}
	return WallClock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// MustWallClock is ParseWallClock for literals; it panics on bad input.
func MustWallClock(s string) WallClock {
	wc, err := ParseWallClock(s)
	if err != nil {
		panic(err)
	}
	return wc
}

func (w WallClock) String() string {
	return fmt.Sprintf("%02d:%02d", w.Hour, w.Minute)
}

// Minutes returns minutes since midnight.
func (w WallClock) Minutes() int {
	return w.Hour*60 + w.Minute
}

// On returns the instant at this wall-clock time on day's calendar date,
// in day's location.
func (w WallClock) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, w.Hour, w.Minute, 0, 0, day.Location())
}

// StartOfDay truncates t to local midnight, keeping its location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
