package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/weather-cli/internal/weather"
)

// AppConfig carries everything the application needs, resolved once at
// startup. Components receive it explicitly instead of reading the
// environment themselves.
type AppConfig struct {
	// APIKey authenticates both the geocoding and weather endpoints.
	APIKey string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// ForecastDays is how many daily records the report carries.
	ForecastDays int

	// Endpoint overrides; empty values mean the public OpenWeather URLs.
	GeocodingURL string
	WeatherURL   string
	ForecastURL  string
	OneCallURL   string
	UseOneCall   bool

	// Serve-mode settings.
	Locations       []weather.Location
	RefreshInterval time.Duration
	CacheMaxAge     time.Duration
	Port            string
}

// Load reads configuration from the environment with sensible defaults.
// It fails fast with a configuration error if the API key is absent or
// empty: that is a local setup problem, not a network one.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.APIKey = strings.TrimSpace(os.Getenv("OPENWEATHER_API_KEY"))
	if cfg.APIKey == "" {
		return nil, weather.E(weather.KindConfiguration,
			"OPENWEATHER_API_KEY environment variable is not set")
	}

	timeout, err := getenvDuration("HTTP_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	cfg.ForecastDays = getenvInt("FORECAST_DAYS", 3)

	cfg.GeocodingURL = os.Getenv("OPENWEATHER_GEOCODING_URL")
	cfg.WeatherURL = os.Getenv("OPENWEATHER_WEATHER_URL")
	cfg.ForecastURL = os.Getenv("OPENWEATHER_FORECAST_URL")
	cfg.OneCallURL = os.Getenv("OPENWEATHER_ONECALL_URL")
	cfg.UseOneCall = getenvBool("OPENWEATHER_USE_ONECALL", false)

	refresh, err := getenvDuration("REFRESH_INTERVAL", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.RefreshInterval = refresh

	maxAge, err := getenvDuration("CACHE_MAX_AGE", time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.CacheMaxAge = maxAge

	cfg.Port = getenvDefault("PORT", "8080")

	locs, err := loadLocations()
	if err != nil {
		return nil, err
	}
	cfg.Locations = locs

	return cfg, nil
}

// loadLocations parses the serve-mode location lists. Both variables
// hold comma-separated values and must line up pairwise.
func loadLocations() ([]weather.Location, error) {
	city := os.Getenv("WEATHER_LOCATION_CITY")
	country := os.Getenv("WEATHER_LOCATION_COUNTRY")
	if city == "" && country == "" {
		return nil, nil
	}

	cities := strings.Split(city, ",")
	countries := strings.Split(country, ",")
	if len(cities) != len(countries) {
		return nil, weather.E(weather.KindConfiguration,
			"number of cities and countries must be the same")
	}

	var locs []weather.Location
	for i := range cities {
		locs = append(locs, weather.Location{
			City:    strings.TrimSpace(cities[i]),
			Country: strings.TrimSpace(countries[i]),
		})
	}
	return locs, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, weather.Wrap(weather.KindConfiguration, err, "invalid %s", key)
	}
	return d, nil
}
