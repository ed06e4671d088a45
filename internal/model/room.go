package model

import "time"

// Room represents one physical classroom seen in the schedule.
type Room struct {
	ID        int64     `gorm:"primaryKey"`
	Location  string    `gorm:"uniqueIndex;size:128;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	// Associations
	Bookings []Booking `gorm:"foreignKey:RoomID"`
}
