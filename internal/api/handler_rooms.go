package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"classroom-status-backend/internal/model"
	"classroom-status-backend/internal/schedule"
)

// RoomResponse represents the API response for a single room.
type RoomResponse struct {
	ID            int64  `json:"id"`
	Location      string `json:"location"`
	TotalBookings int64  `json:"totalBookings"`
}

// GetRooms handles the GET /api/rooms request.
func (h *Handler) GetRooms(c *gin.Context) {
	db := h.store.DB()

	var rooms []model.Room
	if err := db.Find(&rooms).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rooms"})
		return
	}

	type aggRow struct {
		RoomID        int64
		TotalBookings int64
	}
	var aggs []aggRow
	if err := db.
		Model(&model.Booking{}).
		Select("room_id as room_id, COUNT(*) as total_bookings").
		Group("room_id").
		Scan(&aggs).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate bookings"})
		return
	}

	aggMap := make(map[int64]aggRow, len(aggs))
	for _, a := range aggs {
		aggMap[a.RoomID] = a
	}

	responses := make([]RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		responses = append(responses, RoomResponse{
			ID:            room.ID,
			Location:      room.Location,
			TotalBookings: aggMap[room.ID].TotalBookings,
		})
	}
	c.JSON(http.StatusOK, responses)
}

// openRoomResponse is one currently-free room in the availability answer.
type openRoomResponse struct {
	Location     string `json:"location"`
	FreeUntil    *int   `json:"freeUntil,omitempty"`
	AllDay       bool   `json:"allDay"`
	NextOccupied string `json:"nextOccupied"`
}

type openRoomsResponse struct {
	Day  schedule.Weekday   `json:"day"`
	At   int                `json:"at"`
	Open []openRoomResponse `json:"open"`
	Best []string           `json:"best"`
}

// GetOpenRooms handles the GET /api/rooms/open request. Day and time
// default to "now" in the configured timezone; both can be pinned with
// the day (weekday token) and at (HHMM integer) query parameters.
func (h *Handler) GetOpenRooms(c *gin.Context) {
	now := time.Now().In(h.tz)
	day := schedule.WeekdayOf(now)
	at := schedule.FromTime(now)

	if dayParam := c.Query("day"); dayParam != "" {
		day = schedule.Weekday(dayParam)
		if !day.Valid() {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid day token. Use one of M, Tu, W, Th, F, Sa, Su."})
			return
		}
	}

	if atParam := c.Query("at"); atParam != "" {
		v, err := strconv.Atoi(atParam)
		if err != nil || v < 0 || v > 2359 || v%100 > 59 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid 'at' time. Use HHMM, e.g. 1330."})
			return
		}
		at = schedule.Minutes(v)
	}

	result := h.cal.Query(day, at, c.Query("filter"))

	open := make([]openRoomResponse, 0, len(result.Open))
	for _, a := range result.Open {
		resp := openRoomResponse{
			Location:     a.Location,
			AllDay:       a.AllDay,
			NextOccupied: a.NextOccupied(),
		}
		if !a.AllDay {
			freeUntil := int(a.FreeUntil)
			resp.FreeUntil = &freeUntil
		}
		open = append(open, resp)
	}

	best := result.Best
	if best == nil {
		best = []string{}
	}

	c.JSON(http.StatusOK, openRoomsResponse{
		Day:  day,
		At:   int(at),
		Open: open,
		Best: best,
	})
}
