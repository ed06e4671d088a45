package scraper

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"classroom-status-backend/config"
	"classroom-status-backend/internal/calendar"
	"classroom-status-backend/internal/schedule"
	"classroom-status-backend/internal/store"
)

// Service orchestrates the schedule scraping process: fetch the subject
// index, walk every subject page, normalize sections into bookings, and
// publish the resulting calendar to memory, the snapshot file and the
// relational store.
type Service struct {
	cfg    *config.Config
	store  store.Store
	cal    *calendar.Calendar
	client *http.Client
}

// NewService creates and initializes a new scraper service.
func NewService(cfg *config.Config, st store.Store, cal *calendar.Calendar) *Service {
	var transport http.RoundTripper = &http.Transport{}
	if cfg.Scraper.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.Scraper.HTTPProxy)
		if err != nil {
			log.Printf("Warning: Invalid proxy URL %q: %v. Scraper will not use a proxy.", cfg.Scraper.HTTPProxy, err)
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	return &Service{
		cfg:   cfg,
		store: st,
		cal:   cal,
		client: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
		},
	}
}

// Run starts the scraping process in a loop. On startup an existing
// snapshot is loaded verbatim instead of re-scraping; a missing or corrupt
// snapshot falls back to a full scrape. Each interval tick re-scrapes and
// fully replaces the calendar.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Scraper.Enabled {
		log.Println("Scraper is disabled. Not starting.")
		return
	}
	log.Println("Starting scraper service...")

	rooms, err := calendar.Load(s.cfg.Scraper.SnapshotPath)
	if err != nil {
		log.Printf("No usable snapshot (%v); scraping schedule...", err)
		if err := s.ScrapeOnce(ctx); err != nil {
			log.Printf("Error during initial scrape: %v", err)
		}
	} else {
		log.Printf("Loaded %d rooms from snapshot %s", len(rooms), s.cfg.Scraper.SnapshotPath)
		s.cal.Restore(rooms)
		if err := s.store.ReplaceSchedule(ctx, rooms); err != nil {
			log.Printf("Error mirroring snapshot to store: %v", err)
		}
	}

	timer := time.NewTimer(s.cfg.Scraper.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Scraper service shutting down.")
			return
		case <-timer.C:
			if err := s.ScrapeOnce(ctx); err != nil {
				log.Printf("Error during scrape cycle: %v", err)
			}
			timer.Reset(s.cfg.Scraper.Interval)
		}
	}
}

// ScrapeOnce performs a single scrape of the whole class schedule. The
// previous calendar stays in place unless the scrape produced usable data.
func (s *Service) ScrapeOnce(ctx context.Context) error {
	log.Println("Executing scrape cycle...")

	base, err := url.Parse(s.cfg.Scraper.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", s.cfg.Scraper.BaseURL, err)
	}

	indexDoc, err := s.fetchDocument(ctx, base.String())
	if err != nil {
		return fmt.Errorf("failed to fetch subject index: %w", err)
	}

	subjects := subjectLinks(indexDoc)
	if len(subjects) == 0 {
		return fmt.Errorf("subject index at %s contained no subject links", base)
	}

	fresh := calendar.New()
	var skipped int
	for _, subject := range subjects {
		ref, err := base.Parse(subject)
		if err != nil {
			log.Printf("Warning: skipping unparseable subject link %q: %v", subject, err)
			continue
		}

		doc, err := s.fetchDocument(ctx, ref.String())
		if err != nil {
			log.Printf("Error fetching subject page %s: %v", ref, err)
			continue
		}

		for _, section := range sectionsFromCoursePage(doc) {
			bookings, err := schedule.BuildBookings(section.Location, section.Days, section.Time)
			if err != nil {
				// One bad record never aborts the scrape.
				log.Printf("Skipping section at %s: %v", ref, err)
				skipped++
				continue
			}
			for _, b := range bookings {
				fresh.Upsert(b)
			}
		}
	}

	if fresh.Len() == 0 {
		return fmt.Errorf("scrape produced no rooms; keeping previous calendar")
	}

	rooms := fresh.Rooms()
	s.cal.Restore(rooms)
	log.Printf("Scrape cycle finished: %d rooms, %d sections skipped.", len(rooms), skipped)

	if err := calendar.Save(s.cfg.Scraper.SnapshotPath, rooms); err != nil {
		log.Printf("Error writing snapshot: %v", err)
	}
	if err := s.store.ReplaceSchedule(ctx, rooms); err != nil {
		log.Printf("Error replacing schedule in store: %v", err)
	}
	return nil
}

// fetchDocument fetches one page and parses it into a goquery document.
func (s *Service) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	return doc, nil
}
