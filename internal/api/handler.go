package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"classroom-status-backend/internal/calendar"
	"classroom-status-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	cal     *calendar.Calendar
	webpush *webpush.Options
	tz      *time.Location
}

// NewHandler creates a new API handler. A nil timezone means local time.
func NewHandler(s store.Store, cal *calendar.Calendar, webpushOptions *webpush.Options, tz *time.Location) *Handler {
	if tz == nil {
		tz = time.Local
	}
	return &Handler{
		store:   s,
		cal:     cal,
		webpush: webpushOptions,
		tz:      tz,
	}
}
