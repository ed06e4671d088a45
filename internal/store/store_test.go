package store

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"classroom-status-backend/internal/calendar"
	"classroom-status-backend/internal/model"
	"classroom-status-backend/internal/schedule"
)

// newTestDB opens an in-memory SQLite database with the schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Room{}, &model.Booking{}, &model.PushSubscription{}))
	return db
}

func scheduleFixture() []calendar.Room {
	return []calendar.Room{
		{
			Location: "HC-100",
			Bookings: []schedule.Booking{
				{Location: "HC-100", Day: schedule.Monday, Start: 1000, End: 1100},
				{Location: "HC-100", Day: schedule.Wednesday, Start: 1000, End: 1100},
			},
		},
		{
			Location: "LA-200",
			Bookings: []schedule.Booking{
				{Location: "LA-200", Day: schedule.Tuesday, Start: 0, End: 0},
			},
		},
	}
}

func TestReplaceSchedule(t *testing.T) {
	db := newTestDB(t)
	s := NewGormStore(db)
	ctx := context.Background()

	require.NoError(t, s.ReplaceSchedule(ctx, scheduleFixture()))

	var roomCount, bookingCount int64
	db.Model(&model.Room{}).Count(&roomCount)
	db.Model(&model.Booking{}).Count(&bookingCount)
	assert.Equal(t, int64(2), roomCount)
	assert.Equal(t, int64(3), bookingCount)
}

func TestReplaceScheduleIsFullReplacement(t *testing.T) {
	db := newTestDB(t)
	s := NewGormStore(db)
	ctx := context.Background()

	require.NoError(t, s.ReplaceSchedule(ctx, scheduleFixture()))

	var hc model.Room
	require.NoError(t, db.First(&hc, "location = ?", "HC-100").Error)

	// Second scrape: HC-100 survives with fewer bookings, LA-200 vanished,
	// ET-300 is new.
	next := []calendar.Room{
		{
			Location: "HC-100",
			Bookings: []schedule.Booking{
				{Location: "HC-100", Day: schedule.Friday, Start: 900, End: 950},
			},
		},
		{Location: "ET-300", Bookings: nil},
	}
	require.NoError(t, s.ReplaceSchedule(ctx, next))

	var locations []string
	db.Model(&model.Room{}).Order("location").Pluck("location", &locations)
	assert.Equal(t, []string{"ET-300", "HC-100"}, locations)

	// HC-100 keeps its ID across scrapes so subscriptions stay attached.
	var hcAgain model.Room
	require.NoError(t, db.First(&hcAgain, "location = ?", "HC-100").Error)
	assert.Equal(t, hc.ID, hcAgain.ID)

	var bookings []model.Booking
	db.Find(&bookings)
	require.Len(t, bookings, 1)
	assert.Equal(t, "F", bookings[0].Day)
	assert.Equal(t, 900, bookings[0].StartHHMM)
}

func TestReplaceScheduleRejectsEmptyScrape(t *testing.T) {
	db := newTestDB(t)
	s := NewGormStore(db)

	require.NoError(t, s.ReplaceSchedule(context.Background(), scheduleFixture()))
	assert.Error(t, s.ReplaceSchedule(context.Background(), nil))

	var roomCount int64
	db.Model(&model.Room{}).Count(&roomCount)
	assert.Equal(t, int64(2), roomCount, "failed replace must not wipe existing data")
}

func TestReplaceScheduleRollsBackOnError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "rooms"`)).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	s := NewGormStore(gormDB)
	assert.Error(t, s.ReplaceSchedule(context.Background(), scheduleFixture()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
