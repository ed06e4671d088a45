// Package calendar holds the per-room weekly booking calendar built from
// scraped section records, and answers "which rooms are free right now".
package calendar

import (
	"sync"

	"classroom-status-backend/internal/schedule"
)

// Room is one physical location and every booking scraped for it.
type Room struct {
	Location string
	Bookings []schedule.Booking
}

// Calendar aggregates bookings per location. Population is a single pass
// over scraped records; once built it is only read. The mutex covers the
// periodic rebuild, which swaps the whole calendar under writers' lock
// while API handlers and the availability watcher keep reading.
type Calendar struct {
	mu    sync.RWMutex
	rooms []*Room
	index map[string]*Room
}

func New() *Calendar {
	return &Calendar{index: make(map[string]*Room)}
}

// Upsert appends the booking to its room, creating the room on first
// sight. Locations match exactly, case-sensitive, as scraped.
func (c *Calendar) Upsert(b schedule.Booking) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, ok := c.index[b.Location]
	if !ok {
		room = &Room{Location: b.Location}
		c.rooms = append(c.rooms, room)
		c.index[b.Location] = room
	}
	room.Bookings = append(room.Bookings, b)
}

// Rooms returns a copy of every room in insertion order.
func (c *Calendar) Rooms() []Room {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Room, len(c.rooms))
	for i, r := range c.rooms {
		out[i] = Room{
			Location: r.Location,
			Bookings: append([]schedule.Booking(nil), r.Bookings...),
		}
	}
	return out
}

// Len returns the number of distinct locations.
func (c *Calendar) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rooms)
}

// Restore replaces the entire calendar with the given rooms. It never
// merges: a fresh scrape or a loaded snapshot fully supersedes whatever
// was in memory.
func (c *Calendar) Restore(rooms []Room) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rooms = c.rooms[:0]
	c.index = make(map[string]*Room, len(rooms))
	for _, r := range rooms {
		room := &Room{
			Location: r.Location,
			Bookings: append([]schedule.Booking(nil), r.Bookings...),
		}
		c.rooms = append(c.rooms, room)
		c.index[room.Location] = room
	}
}
