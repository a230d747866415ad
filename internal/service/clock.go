package service

import (
	"time"

	"rentomobile/internal/calendar"
)

// Clock supplies "now" and the zone the current calendar date is read in.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{Now: time.Now, Location: loc}
}

// FixedClock always reports t. Used by tests and replays.
func FixedClock(t time.Time) Clock {
	return Clock{Now: func() time.Time { return t }, Location: t.Location()}
}

func (c Clock) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Today is the calendar date of now in the clock's zone.
func (c Clock) Today() calendar.Date {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return calendar.DateOf(c.now().In(loc))
}
