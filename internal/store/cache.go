// Package store provides the serve-mode in-memory report cache. Nothing
// here persists beyond the process.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/weather-cli/internal/weather"
)

// ErrNotFound is returned when no fresh report is cached for a location.
var ErrNotFound = errors.New("no weather report for location")

// CachedReport is a weather bundle together with the time it was fetched.
type CachedReport struct {
	Bundle    weather.WeatherBundle `json:"bundle"`
	FetchedAt time.Time             `json:"fetchedAt"` // always UTC
}

// ReportCache is a concurrency-safe in-memory cache holding the latest
// report per location. Entries older than maxAge are treated as absent.
type ReportCache struct {
	mu sync.RWMutex

	// key: location key, value: latest report
	data map[string]CachedReport

	maxAge time.Duration // 0 = never expires
}

// NewReportCache creates a ReportCache with an optional max entry age.
func NewReportCache(maxAge time.Duration) *ReportCache {
	return &ReportCache{
		data:   make(map[string]CachedReport),
		maxAge: maxAge,
	}
}

// Put stores the latest report for a location, replacing any prior one.
func (c *ReportCache) Put(loc weather.Location, bundle weather.WeatherBundle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[loc.Key()] = CachedReport{
		Bundle:    bundle,
		FetchedAt: time.Now().UTC(),
	}
}

// Latest returns the cached report for a location, or ErrNotFound when
// nothing is cached or the entry has aged out.
func (c *ReportCache) Latest(loc weather.Location) (CachedReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	report, ok := c.data[loc.Key()]
	if !ok {
		return CachedReport{}, ErrNotFound
	}
	if c.maxAge > 0 && time.Since(report.FetchedAt) > c.maxAge {
		return CachedReport{}, ErrNotFound
	}
	return report, nil
}
