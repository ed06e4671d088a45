package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"classroom-status-backend/config"
	"classroom-status-backend/internal/calendar"
	"classroom-status-backend/internal/mw"
	"classroom-status-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, cal *calendar.Calendar, webpushOptions *webpush.Options, tz *time.Location) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, cal, webpushOptions, tz)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// GET /api/rooms lists the room inventory with booking counts
		api.GET("/rooms", caching, handler.GetRooms)

		// GET /api/rooms/open is the availability query (filter, day, at).
		// Answers change minute to minute, so it is never cached.
		api.GET("/rooms/open", handler.GetOpenRooms)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
