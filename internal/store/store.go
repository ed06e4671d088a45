package store

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"classroom-status-backend/internal/calendar"
	"classroom-status-backend/internal/model"
)

// Store defines the interface for all database operations the scrape
// cycle needs.
type Store interface {
	// ReplaceSchedule mirrors a freshly built calendar into the relational
	// tables. Scrapes never merge: the previous schedule is fully replaced.
	ReplaceSchedule(ctx context.Context, rooms []calendar.Room) error
	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying connection for handlers and workers.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// ReplaceSchedule upserts rooms by location (keeping IDs stable so push
// subscriptions survive re-scrapes), drops every booking row, and inserts
// the new bookings. Rooms that vanished from the schedule are removed.
func (s *gormStore) ReplaceSchedule(ctx context.Context, rooms []calendar.Room) error {
	if len(rooms) == 0 {
		// An empty scrape result would wipe the schedule; treat it as a
		// failed scrape instead.
		return fmt.Errorf("refusing to replace schedule with zero rooms")
	}

	roomRows := make([]model.Room, len(rooms))
	locations := make([]string, len(rooms))
	for i, r := range rooms {
		roomRows[i] = model.Room{Location: r.Location}
		locations[i] = r.Location
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "location"}},
			DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
		}).Create(&roomRows).Error; err != nil {
			return fmt.Errorf("batch upsert rooms failed: %w", err)
		}

		if err := tx.Where("location NOT IN ?", locations).Delete(&model.Room{}).Error; err != nil {
			return fmt.Errorf("failed to prune vanished rooms: %w", err)
		}

		idByLocation, err := fetchRoomIDs(tx)
		if err != nil {
			return err
		}

		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&model.Booking{}).Error; err != nil {
			return fmt.Errorf("failed to clear bookings: %w", err)
		}

		var bookingRows []model.Booking
		for _, r := range rooms {
			roomID, ok := idByLocation[r.Location]
			if !ok {
				log.Printf("Error: room %q missing after upsert. Skipping its bookings.", r.Location)
				continue
			}
			for _, b := range r.Bookings {
				bookingRows = append(bookingRows, model.Booking{
					RoomID:    roomID,
					Day:       string(b.Day),
					StartHHMM: int(b.Start),
					EndHHMM:   int(b.End),
				})
			}
		}

		if len(bookingRows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&bookingRows, 500).Error; err != nil {
			return fmt.Errorf("batch insert bookings failed: %w", err)
		}
		return nil
	})
}

func fetchRoomIDs(tx *gorm.DB) (map[string]int64, error) {
	var allRooms []model.Room
	if err := tx.Find(&allRooms).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve rooms after upsert: %w", err)
	}
	idByLocation := make(map[string]int64, len(allRooms))
	for _, r := range allRooms {
		idByLocation[r.Location] = r.ID
	}
	return idByLocation, nil
}
