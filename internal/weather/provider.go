package weather

import "context"

// Provider abstracts the external weather data source. The production
// implementation lives in internal/weather/providers; tests substitute
// their own.
type Provider interface {
	// Geocode resolves a city/country pair to coordinates.
	Geocode(ctx context.Context, city, country string) (Coordinates, error)
	// CurrentWeather fetches current conditions for coordinates.
	CurrentWeather(ctx context.Context, coord Coordinates) (CurrentConditions, error)
	// Forecast fetches the raw multi-timestamp forecast feed for coordinates.
	Forecast(ctx context.Context, coord Coordinates) ([]ForecastEntry, error)
}
