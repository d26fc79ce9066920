// Package scheduler refreshes cached reports for the configured
// locations on a fixed interval (serve mode only).
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/i474232898/weather-cli/internal/store"
	"github.com/i474232898/weather-cli/internal/weather"
)

// Scheduler periodically fetches fresh reports into the cache.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	cache     *store.ReportCache
	locations []weather.Location
	interval  time.Duration
	log       *zap.SugaredLogger
}

// New creates a Scheduler.
func New(locations []weather.Location, interval time.Duration, service *weather.Service, cache *store.ReportCache, log *zap.SugaredLogger) *Scheduler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		cache:     cache,
		locations: locations,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the refresh job and starts the underlying scheduler.
// An immediate first run warms the cache before the first request.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		s.log.Info("no locations configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().StartImmediately().Do(s.refreshAll)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// refreshAll fetches each location in sequence; the report pipeline is
// strictly sequential, so the job is too. A failed location is logged
// and skipped, keeping its last good cache entry.
func (s *Scheduler) refreshAll() {
	s.log.Infow("running report refresh job", "locations", len(s.locations))

	for _, loc := range s.locations {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

		bundle, err := s.service.Report(ctx, loc.City, loc.Country)
		cancel()
		if err != nil {
			s.log.Warnw("refresh failed", "location", loc.Key(), "error", err)
			continue
		}

		s.cache.Put(loc, bundle)
	}
}
