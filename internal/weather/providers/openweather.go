package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-cli/internal/weather"
)

const (
	defaultGeocodingURL = "http://api.openweathermap.org/geo/1.0/direct"
	defaultWeatherURL   = "https://api.openweathermap.org/data/2.5/weather"
	defaultForecastURL  = "https://api.openweathermap.org/data/2.5/forecast"
	defaultOneCallURL   = "https://api.openweathermap.org/data/3.0/onecall"

	// Data sections the One Call endpoint is asked to omit; only the
	// current block is consumed.
	oneCallExclude = "minutely,hourly,alerts"
)

// Options configures the OpenWeather client. Zero-value URLs fall back
// to the public endpoints; tests point them at local fixtures.
type Options struct {
	APIKey       string
	Client       *http.Client
	GeocodingURL string
	WeatherURL   string
	ForecastURL  string
	OneCallURL   string

	// UseOneCall sources current conditions from the One Call endpoint
	// (with its section exclusion list) instead of /data/2.5/weather.
	UseOneCall bool
}

// OpenWeatherClient implements the weather.Provider interface against
// the OpenWeatherMap geocoding and weather APIs.
type OpenWeatherClient struct {
	opts    Options
	circuit *gobreaker.CircuitBreaker
}

// NewOpenWeatherClient creates a client for the OpenWeatherMap APIs.
func NewOpenWeatherClient(opts Options) *OpenWeatherClient {
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if opts.GeocodingURL == "" {
		opts.GeocodingURL = defaultGeocodingURL
	}
	if opts.WeatherURL == "" {
		opts.WeatherURL = defaultWeatherURL
	}
	if opts.ForecastURL == "" {
		opts.ForecastURL = defaultForecastURL
	}
	if opts.OneCallURL == "" {
		opts.OneCallURL = defaultOneCallURL
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenWeatherClient{opts: opts, circuit: cb}
}

// Geocode resolves "<city>,<country>" to coordinates using the direct
// geocoding endpoint with limit=1. Non-network failures are surfaced as
// KindGeoCoding; an empty result set is a lookup failure.
func (c *OpenWeatherClient) Geocode(ctx context.Context, city, country string) (weather.Coordinates, error) {
	values := url.Values{}
	values.Set("q", fmt.Sprintf("%s,%s", city, country))
	values.Set("limit", "1")
	values.Set("appid", c.opts.APIKey)

	var results []struct {
		Name string  `json:"name"`
		Lat  float64 `json:"lat"`
		Lon  float64 `json:"lon"`
	}

	if err := getJSON(ctx, c.opts.Client, c.circuit, c.opts.GeocodingURL, values, &results); err != nil {
		if weather.IsKind(err, weather.KindNetwork) {
			return weather.Coordinates{}, err
		}
		return weather.Coordinates{}, weather.Wrap(weather.KindGeoCoding, err, "geocoding failed")
	}

	if len(results) == 0 {
		return weather.Coordinates{}, weather.E(weather.KindGeoCoding,
			"city %q in country %q not found", city, country)
	}

	return weather.Coordinates{Lat: results[0].Lat, Lon: results[0].Lon}, nil
}

// CurrentWeather fetches current conditions for coordinates in metric
// units, from either /weather or the One Call endpoint.
func (c *OpenWeatherClient) CurrentWeather(ctx context.Context, coord weather.Coordinates) (weather.CurrentConditions, error) {
	if c.opts.UseOneCall {
		return c.oneCallCurrent(ctx, coord)
	}

	var payload struct {
		Main struct {
			Temp      *float64 `json:"temp"`
			FeelsLike *float64 `json:"feels_like"`
			Humidity  *float64 `json:"humidity"`
			Pressure  *float64 `json:"pressure"`
		} `json:"main"`
		Wind struct {
			Speed *float64 `json:"speed"`
		} `json:"wind"`
		Visibility *float64 `json:"visibility"`
		Weather    []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
	}

	if err := getJSON(ctx, c.opts.Client, c.circuit, c.opts.WeatherURL, c.coordValues(coord), &payload); err != nil {
		return weather.CurrentConditions{}, err
	}

	current := weather.CurrentConditions{
		TempC:       payload.Main.Temp,
		FeelsLikeC:  payload.Main.FeelsLike,
		HumidityPct: payload.Main.Humidity,
		PressureHpa: payload.Main.Pressure,
		WindSpeedMS: payload.Wind.Speed,
		VisibilityM: payload.Visibility,
	}
	if len(payload.Weather) > 0 {
		current.Condition = payload.Weather[0].Main
		current.Description = payload.Weather[0].Description
	}
	return current, nil
}

// Forecast fetches the 5-day/3-hour forecast feed for coordinates and
// returns the raw entry list, untouched beyond decoding.
func (c *OpenWeatherClient) Forecast(ctx context.Context, coord weather.Coordinates) ([]weather.ForecastEntry, error) {
	var payload struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				TempMin float64 `json:"temp_min"`
				TempMax float64 `json:"temp_max"`
			} `json:"main"`
			Weather []struct {
				Main        string `json:"main"`
				Description string `json:"description"`
			} `json:"weather"`
		} `json:"list"`
	}

	if err := getJSON(ctx, c.opts.Client, c.circuit, c.opts.ForecastURL, c.coordValues(coord), &payload); err != nil {
		return nil, err
	}

	entries := make([]weather.ForecastEntry, 0, len(payload.List))
	for _, item := range payload.List {
		entry := weather.ForecastEntry{
			Timestamp: item.Dt,
			TempMinC:  item.Main.TempMin,
			TempMaxC:  item.Main.TempMax,
		}
		if len(item.Weather) > 0 {
			entry.Condition = item.Weather[0].Main
			entry.Description = item.Weather[0].Description
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (c *OpenWeatherClient) oneCallCurrent(ctx context.Context, coord weather.Coordinates) (weather.CurrentConditions, error) {
	values := c.coordValues(coord)
	values.Set("exclude", oneCallExclude)

	var payload struct {
		Current struct {
			Temp       *float64 `json:"temp"`
			FeelsLike  *float64 `json:"feels_like"`
			Humidity   *float64 `json:"humidity"`
			Pressure   *float64 `json:"pressure"`
			WindSpeed  *float64 `json:"wind_speed"`
			Visibility *float64 `json:"visibility"`
			Weather    []struct {
				Main        string `json:"main"`
				Description string `json:"description"`
			} `json:"weather"`
		} `json:"current"`
	}

	if err := getJSON(ctx, c.opts.Client, c.circuit, c.opts.OneCallURL, values, &payload); err != nil {
		return weather.CurrentConditions{}, err
	}

	current := weather.CurrentConditions{
		TempC:       payload.Current.Temp,
		FeelsLikeC:  payload.Current.FeelsLike,
		HumidityPct: payload.Current.Humidity,
		PressureHpa: payload.Current.Pressure,
		WindSpeedMS: payload.Current.WindSpeed,
		VisibilityM: payload.Current.Visibility,
	}
	if len(payload.Current.Weather) > 0 {
		current.Condition = payload.Current.Weather[0].Main
		current.Description = payload.Current.Weather[0].Description
	}
	return current, nil
}

func (c *OpenWeatherClient) coordValues(coord weather.Coordinates) url.Values {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%f", coord.Lat))
	values.Set("lon", fmt.Sprintf("%f", coord.Lon))
	values.Set("units", "metric")
	values.Set("appid", c.opts.APIKey)
	return values
}
