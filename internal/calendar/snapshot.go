package calendar

import (
	"encoding/json"
	"fmt"
	"os"

	"classroom-status-backend/internal/schedule"
)

// The snapshot file is a flat JSON array of rooms and must keep this
// exact shape so existing room data files stay loadable:
//
//	[{"location": "HC-100", "booked_times": [["M", [900, 1000]], ...]}]

// SnapshotError means the snapshot file could not be read or decoded.
// Callers must treat it as "no usable snapshot" and fall back to a full
// re-scrape rather than proceed with partial data.
type SnapshotError struct {
	Path string
	Err  error
}

func (e *SnapshotError) Error() string {
	return fmt.Sprintf("snapshot %s: %v", e.Path, e.Err)
}

func (e *SnapshotError) Unwrap() error { return e.Err }

type roomSnapshot struct {
	Location    string       `json:"location"`
	BookedTimes []bookedTime `json:"booked_times"`
}

// bookedTime serializes as the two-element array ["M", [900, 1000]].
type bookedTime struct {
	Day   schedule.Weekday
	Start schedule.Minutes
	End   schedule.Minutes
}

func (bt bookedTime) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{bt.Day, [2]schedule.Minutes{bt.Start, bt.End}})
}

func (bt *bookedTime) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("booked_times entry has %d elements, want 2", len(pair))
	}
	if err := json.Unmarshal(pair[0], &bt.Day); err != nil {
		return err
	}
	var span [2]schedule.Minutes
	if err := json.Unmarshal(pair[1], &span); err != nil {
		return err
	}
	bt.Start, bt.End = span[0], span[1]
	return nil
}

// Save writes the rooms to path in the snapshot wire format.
func Save(path string, rooms []Room) error {
	snaps := make([]roomSnapshot, len(rooms))
	for i, room := range rooms {
		times := make([]bookedTime, len(room.Bookings))
		for j, b := range room.Bookings {
			times[j] = bookedTime{Day: b.Day, Start: b.Start, End: b.End}
		}
		snaps[i] = roomSnapshot{Location: room.Location, BookedTimes: times}
	}

	data, err := json.Marshal(snaps)
	if err != nil {
		return &SnapshotError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &SnapshotError{Path: path, Err: err}
	}
	return nil
}

// Load reads a snapshot file back into rooms. Any read or decode failure
// is a SnapshotError.
func Load(path string) ([]Room, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SnapshotError{Path: path, Err: err}
	}

	var snaps []roomSnapshot
	if err := json.Unmarshal(data, &snaps); err != nil {
		return nil, &SnapshotError{Path: path, Err: err}
	}

	rooms := make([]Room, len(snaps))
	for i, snap := range snaps {
		bookings := make([]schedule.Booking, len(snap.BookedTimes))
		for j, bt := range snap.BookedTimes {
			bookings[j] = schedule.Booking{
				Location: snap.Location,
				Day:      bt.Day,
				Start:    bt.Start,
				End:      bt.End,
			}
		}
		rooms[i] = Room{Location: snap.Location, Bookings: bookings}
	}
	return rooms, nil
}
