package calendar

import (
	"strings"

	"classroom-status-backend/internal/schedule"
)

// Availability describes one currently-free room. When AllDay is set the
// room has no later booking today and FreeUntil is meaningless.
type Availability struct {
	Location  string
	FreeUntil schedule.Minutes
	AllDay    bool
}

// NextOccupied formats when the room is next booked, for display.
func (a Availability) NextOccupied() string {
	if a.AllDay {
		return "free for remainder of day"
	}
	return "free until " + a.FreeUntil.Clock()
}

// Result is the answer to one availability query. Open lists every free
// room in calendar insertion order; Best names the rooms free the longest.
type Result struct {
	Open []Availability
	Best []string
}

// Query reports which rooms are free at the given day and time. The filter,
// when non-empty, restricts results to locations containing it as a
// case-insensitive substring.
//
// A room is occupied when any non-TBA booking on the day contains the
// query time, endpoints included: a class ending exactly now still holds
// the room. Rooms free for the rest of the day outrank any numeric
// free-until time in the Best set; numeric ties all win together.
func (c *Calendar) Query(day schedule.Weekday, now schedule.Minutes, filter string) Result {
	c.mu.RLock()
	defer c.mu.RUnlock()

	filter = strings.ToLower(filter)

	var result Result
	for _, room := range c.rooms {
		if filter != "" && !strings.Contains(strings.ToLower(room.Location), filter) {
			continue
		}
		if occupiedAt(room, day, now) {
			continue
		}
		result.Open = append(result.Open, freeUntil(room, day, now))
	}

	result.Best = bestOf(result.Open)
	return result
}

func occupiedAt(room *Room, day schedule.Weekday, now schedule.Minutes) bool {
	for _, b := range room.Bookings {
		if b.TBA() || b.Day != day {
			continue
		}
		if b.Start <= now && now <= b.End {
			return true
		}
	}
	return false
}

func freeUntil(room *Room, day schedule.Weekday, now schedule.Minutes) Availability {
	avail := Availability{Location: room.Location, AllDay: true}
	for _, b := range room.Bookings {
		if b.TBA() || b.Day != day || b.Start <= now {
			continue
		}
		if avail.AllDay || b.Start < avail.FreeUntil {
			avail.FreeUntil = b.Start
			avail.AllDay = false
		}
	}
	return avail
}

func bestOf(open []Availability) []string {
	var best []string

	// All-day-free rooms beat any finite free-until time.
	for _, a := range open {
		if a.AllDay {
			best = append(best, a.Location)
		}
	}
	if len(best) > 0 {
		return best
	}

	var latest schedule.Minutes
	for _, a := range open {
		if a.FreeUntil > latest {
			latest = a.FreeUntil
		}
	}
	for _, a := range open {
		if a.FreeUntil == latest {
			best = append(best, a.Location)
		}
	}
	return best
}
