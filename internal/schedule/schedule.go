package schedule

import (
	"fmt"
	"time"
)

// Minutes encodes a clock time as hour*100+minute (e.g. 1330 for 1:30pm).
// It is NOT minutes-since-midnight: comparisons work because every value
// has a valid HHMM shape, so ordering matches chronological ordering.
type Minutes int

// Hour and Minute split the HHMM encoding back into its components.
func (m Minutes) Hour() int   { return int(m) / 100 }
func (m Minutes) Minute() int { return int(m) % 100 }

// Clock formats the value as a 12-hour clock string, e.g. "1:30pm".
func (m Minutes) Clock() string {
	h, min := m.Hour(), m.Minute()
	suffix := "am"
	if h >= 12 {
		suffix = "pm"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	if min == 0 {
		return fmt.Sprintf("%d%s", h12, suffix)
	}
	return fmt.Sprintf("%d:%02d%s", h12, min, suffix)
}

// FromTime converts a wall-clock time into the HHMM encoding.
func FromTime(t time.Time) Minutes {
	return Minutes(t.Hour()*100 + t.Minute())
}

// Weekday is one of the seven canonical day tokens used by the schedule
// source ("M", "Tu", "W", "Th", "F", "Sa", "Su").
type Weekday string

const (
	Monday    Weekday = "M"
	Tuesday   Weekday = "Tu"
	Wednesday Weekday = "W"
	Thursday  Weekday = "Th"
	Friday    Weekday = "F"
	Saturday  Weekday = "Sa"
	Sunday    Weekday = "Su"
)

var weekdayFromGo = map[time.Weekday]Weekday{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// WeekdayOf maps a wall-clock time onto its schedule day token.
func WeekdayOf(t time.Time) Weekday {
	return weekdayFromGo[t.Weekday()]
}

// Valid reports whether d is one of the seven canonical tokens.
func (d Weekday) Valid() bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}

// Booking is one normalized occupancy interval for a room.
type Booking struct {
	Location string
	Day      Weekday
	Start    Minutes
	End      Minutes
}

// TBA reports whether the booking carries the "to be announced" sentinel.
// TBA bookings occupy no time and must be ignored by occupancy checks.
func (b Booking) TBA() bool {
	return b.Start == 0 && b.End == 0
}

// ParseError describes a malformed field in a raw section record. A single
// bad record is skippable: callers log it and continue with the rest of
// the scrape.
type ParseError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %s", e.Field, e.Value, e.Reason)
}
