package store

import (
	"errors"
	"testing"
	"time"

	"github.com/i474232898/weather-cli/internal/weather"
)

func TestPutAndLatest(t *testing.T) {
	cache := NewReportCache(time.Hour)
	loc := weather.Location{City: "Puchong", Country: "MY"}

	if _, err := cache.Latest(loc); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty cache, got %v", err)
	}

	bundle := weather.WeatherBundle{City: "Puchong", Country: "MY"}
	cache.Put(loc, bundle)

	report, err := cache.Latest(loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Bundle.City != "Puchong" {
		t.Fatalf("unexpected cached bundle: %+v", report.Bundle)
	}
	if report.FetchedAt.IsZero() {
		t.Fatalf("expected fetch time to be recorded")
	}
}

func TestLatestReplacesPrior(t *testing.T) {
	cache := NewReportCache(0)
	loc := weather.Location{City: "London", Country: "GB"}

	first := weather.WeatherBundle{City: "London", Country: "GB"}
	cache.Put(loc, first)

	temp := 12.5
	second := first
	second.Current.TempC = &temp
	cache.Put(loc, second)

	report, err := cache.Latest(loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Bundle.Current.TempC == nil || *report.Bundle.Current.TempC != 12.5 {
		t.Fatalf("expected latest bundle to win, got %+v", report.Bundle.Current)
	}
}

func TestLatestExpiresOldEntries(t *testing.T) {
	cache := NewReportCache(time.Nanosecond)
	loc := weather.Location{City: "Puchong", Country: "MY"}

	cache.Put(loc, weather.WeatherBundle{City: "Puchong"})
	time.Sleep(time.Millisecond)

	if _, err := cache.Latest(loc); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected aged-out entry to report ErrNotFound, got %v", err)
	}
}

func TestLocationsAreIndependent(t *testing.T) {
	cache := NewReportCache(time.Hour)

	cache.Put(weather.Location{City: "Puchong", Country: "MY"}, weather.WeatherBundle{City: "Puchong"})

	if _, err := cache.Latest(weather.Location{City: "Puchong", Country: "ID"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected different country to miss, got %v", err)
	}
}
