package weather

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New()

// locationInput carries the validated request parameters.
type locationInput struct {
	City    string `validate:"required"`
	Country string `validate:"required,iso3166_1_alpha2"`
}

// Service orchestrates the report pipeline: geocode, fetch current
// weather and forecast, normalize, bundle. Every step blocks and runs
// strictly in sequence; the first failure aborts the invocation.
type Service struct {
	provider     Provider
	forecastDays int
	log          *zap.SugaredLogger
}

// NewService creates a Service. forecastDays bounds how many daily
// records the bundle carries; values <= 0 fall back to 3.
func NewService(provider Provider, forecastDays int, log *zap.SugaredLogger) *Service {
	if forecastDays <= 0 {
		forecastDays = 3
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{
		provider:     provider,
		forecastDays: forecastDays,
		log:          log,
	}
}

// Report produces the complete weather bundle for a city/country pair.
func (s *Service) Report(ctx context.Context, city, country string) (WeatherBundle, error) {
	in := locationInput{City: city, Country: country}
	if err := validate.Struct(in); err != nil {
		return WeatherBundle{}, Wrap(KindGeoCoding, err, "invalid location %q, %q", city, country)
	}

	coord, err := s.provider.Geocode(ctx, city, country)
	if err != nil {
		return WeatherBundle{}, err
	}
	s.log.Debugw("geocoded location", "city", city, "country", country, "lat", coord.Lat, "lon", coord.Lon)

	current, err := s.provider.CurrentWeather(ctx, coord)
	if err != nil {
		return WeatherBundle{}, err
	}

	entries, err := s.provider.Forecast(ctx, coord)
	if err != nil {
		return WeatherBundle{}, err
	}

	daily := DailySummaries(entries, time.Now())
	if len(daily) > s.forecastDays {
		daily = daily[:s.forecastDays]
	}

	return WeatherBundle{
		City:        city,
		Country:     country,
		Coordinates: coord,
		Current:     current,
		Daily:       daily,
	}, nil
}
