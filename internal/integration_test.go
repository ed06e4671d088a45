package internal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"classroom-status-backend/config"
	"classroom-status-backend/internal/api"
	"classroom-status-backend/internal/calendar"
	"classroom-status-backend/internal/model"
	"classroom-status-backend/internal/scraper"
	"classroom-status-backend/internal/store"
)

const integIndexPage = `<html><body>
<div class="indexList"><a href="math.html">Mathematics</a></div>
</body></html>`

const integSubjectPage = `<html><body>
<div class="courseHeader"><h3>MATH 101</h3></div>
<table>
  <tr>
    <th scope="col">SEC.</th><th scope="col">DAYS</th>
    <th scope="col">TIME</th><th scope="col">LOCATION</th>
  </tr>
  <tr><td>01</td><td>MW</td><td>10-11am</td><td>HC-100</td></tr>
  <tr><td>02</td><td>M</td><td>1-2pm</td><td>HC-100</td></tr>
  <tr><td>03</td><td>TuTh</td><td>TBA</td><td>LA-200</td></tr>
</table>
</body></html>`

// TestScheduleLifecycle drives a full scrape against a mock schedule site
// and verifies the snapshot, the relational mirror and the HTTP answers.
func TestScheduleLifecycle(t *testing.T) {
	testDB, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()

	require.NoError(t, testDB.AutoMigrate(&model.Room{}, &model.Booking{}, &model.PushSubscription{}))

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(integIndexPage))
	})
	mux.HandleFunc("/math.html", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(integSubjectPage))
	})
	site := httptest.NewServer(mux)
	defer site.Close()

	snapshotPath := filepath.Join(t.TempDir(), "rooms_data.json")
	cfg := &config.Config{}
	cfg.Scraper.Enabled = true
	cfg.Scraper.BaseURL = site.URL + "/"
	cfg.Scraper.SnapshotPath = snapshotPath
	cfg.Server.RateLimitPerSec = 100
	cfg.Server.RateLimitBurst = 100
	cfg.Server.CacheTTLSeconds = 1

	appStore := store.NewGormStore(testDB)
	cal := calendar.New()
	scraperSvc := scraper.NewService(cfg, appStore, cal)

	require.NoError(t, scraperSvc.ScrapeOnce(context.Background()))

	t.Run("Relational mirror is populated", func(t *testing.T) {
		var roomCount, bookingCount int64
		testDB.Model(&model.Room{}).Count(&roomCount)
		testDB.Model(&model.Booking{}).Count(&bookingCount)
		assert.Equal(t, int64(2), roomCount)
		// MW + M fan out to three HC-100 rows; TBA TuTh adds two LA-200 rows.
		assert.Equal(t, int64(5), bookingCount)
	})

	t.Run("Snapshot restores an equivalent calendar", func(t *testing.T) {
		rooms, err := calendar.Load(snapshotPath)
		require.NoError(t, err)

		restored := calendar.New()
		restored.Restore(rooms)
		assert.Equal(t, cal.Rooms(), restored.Rooms())
	})

	router := api.NewRouter(cfg, appStore, cal, nil, time.UTC)

	t.Run("Open rooms over HTTP", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/rooms/open?day=M&at=1130", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Open []struct {
				Location     string `json:"location"`
				FreeUntil    *int   `json:"freeUntil"`
				AllDay       bool   `json:"allDay"`
				NextOccupied string `json:"nextOccupied"`
			} `json:"open"`
			Best []string `json:"best"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		// At 11:30 Monday HC-100 is between classes; LA-200 only has TBA
		// sections, which never occupy the room.
		require.Len(t, resp.Open, 2)
		assert.Equal(t, "HC-100", resp.Open[0].Location)
		require.NotNil(t, resp.Open[0].FreeUntil)
		assert.Equal(t, 1300, *resp.Open[0].FreeUntil)
		assert.Equal(t, "LA-200", resp.Open[1].Location)
		assert.True(t, resp.Open[1].AllDay)
		assert.Equal(t, []string{"LA-200"}, resp.Best)
	})

	t.Run("Room inventory over HTTP", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/rooms", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var rooms []api.RoomResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rooms))
		require.Len(t, rooms, 2)
	})
}
