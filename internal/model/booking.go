package model

import "time"

// Booking is one weekly occupancy interval for a room. Start and end use
// the HHMM encoding the schedule source uses (1330 = 1:30pm). A (0,0)
// pair is the TBA sentinel: the section exists but has no fixed time.
// Cross-listed courses can produce identical rows; they are kept as-is.
type Booking struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	RoomID    int64  `gorm:"index;not null"`
	Day       string `gorm:"size:2;not null"`
	StartHHMM int    `gorm:"not null"`
	EndHHMM   int    `gorm:"not null"`
	CreatedAt time.Time

	// Associations
	Room Room `gorm:"constraint:OnDelete:CASCADE"`
}
