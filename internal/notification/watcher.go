package notification

import (
	"context"
	"log"
	"time"

	"classroom-status-backend/internal/calendar"
	"classroom-status-backend/internal/schedule"
)

// Watcher periodically queries the calendar and dispatches a notification
// job for every room that transitioned from occupied to free since the
// previous tick.
type Watcher struct {
	cal      *calendar.Calendar
	pool     *WorkerPool
	tz       *time.Location
	interval time.Duration

	prevOpen map[string]bool
	primed   bool
}

// NewWatcher creates a watcher over the given calendar. A nil timezone
// means local time.
func NewWatcher(cal *calendar.Calendar, pool *WorkerPool, tz *time.Location) *Watcher {
	if tz == nil {
		tz = time.Local
	}
	return &Watcher{
		cal:      cal,
		pool:     pool,
		tz:       tz,
		interval: time.Minute,
		prevOpen: make(map[string]bool),
	}
}

// Run ticks until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	log.Println("Availability watcher started")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Availability watcher shutting down")
			return
		case <-ticker.C:
			for _, location := range w.tick(time.Now().In(w.tz)) {
				w.pool.Dispatch(location)
			}
		}
	}
}

// tick computes the rooms that just became free. The first tick only
// primes the baseline so a restart does not blast out notifications for
// every room that happens to be open.
func (w *Watcher) tick(now time.Time) []string {
	result := w.cal.Query(schedule.WeekdayOf(now), schedule.FromTime(now), "")

	open := make(map[string]bool, len(result.Open))
	for _, a := range result.Open {
		open[a.Location] = true
	}

	var freed []string
	if w.primed {
		for location := range open {
			if !w.prevOpen[location] {
				freed = append(freed, location)
			}
		}
	}

	w.prevOpen = open
	w.primed = true
	return freed
}
