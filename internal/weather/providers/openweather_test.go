package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/i474232898/weather-cli/internal/weather"
)

func testClient(opts Options) *OpenWeatherClient {
	if opts.APIKey == "" {
		opts.APIKey = "test-key"
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 2 * time.Second}
	}
	return NewOpenWeatherClient(opts)
}

func TestGeocodeSuccess(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"name":"Puchong","lat":3.0,"lon":101.0,"country":"MY"}]`))
	}))
	defer srv.Close()

	client := testClient(Options{GeocodingURL: srv.URL})

	coord, err := client.Geocode(context.Background(), "Puchong", "MY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coord.Lat != 3.0 || coord.Lon != 101.0 {
		t.Fatalf("unexpected coordinates: %+v", coord)
	}

	if !strings.Contains(gotQuery, "q=Puchong%2CMY") {
		t.Fatalf("expected q=Puchong,MY in query, got %q", gotQuery)
	}
	if !strings.Contains(gotQuery, "limit=1") {
		t.Fatalf("expected limit=1 in query, got %q", gotQuery)
	}
	if !strings.Contains(gotQuery, "appid=test-key") {
		t.Fatalf("expected appid in query, got %q", gotQuery)
	}
}

func TestGeocodeEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := testClient(Options{GeocodingURL: srv.URL})

	_, err := client.Geocode(context.Background(), "UnknownCity", "XX")
	if !weather.IsKind(err, weather.KindGeoCoding) {
		t.Fatalf("expected geocoding error, got %v", err)
	}
	if !strings.Contains(err.Error(), "UnknownCity") {
		t.Fatalf("expected message to name the city, got %q", err.Error())
	}
}

func TestGeocodeAPIFailureWrappedAsGeoCoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := testClient(Options{GeocodingURL: srv.URL})

	_, err := client.Geocode(context.Background(), "Puchong", "MY")
	if !weather.IsKind(err, weather.KindGeoCoding) {
		t.Fatalf("expected API failures during geocoding to surface as geocoding errors, got %v", err)
	}
}

func TestGeocodeConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := testClient(Options{GeocodingURL: url})

	_, err := client.Geocode(context.Background(), "Puchong", "MY")
	if !weather.IsKind(err, weather.KindNetwork) {
		t.Fatalf("expected network error for refused connection, got %v", err)
	}
}

func TestCurrentWeatherInvalidKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := testClient(Options{WeatherURL: srv.URL})

	_, err := client.CurrentWeather(context.Background(), weather.Coordinates{Lat: 3, Lon: 101})
	if !weather.IsKind(err, weather.KindWeatherAPI) {
		t.Fatalf("expected weather API error for 401, got %v", err)
	}
	if !strings.Contains(err.Error(), "invalid API key") {
		t.Fatalf("expected invalid-key message, got %q", err.Error())
	}
}

func TestCurrentWeatherRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := testClient(Options{WeatherURL: srv.URL})

	_, err := client.CurrentWeather(context.Background(), weather.Coordinates{Lat: 3, Lon: 101})
	if !weather.IsKind(err, weather.KindWeatherAPI) {
		t.Fatalf("expected weather API error for 429, got %v", err)
	}
	if !strings.Contains(err.Error(), "rate limit") {
		t.Fatalf("expected rate-limit message, got %q", err.Error())
	}
	if strings.Contains(err.Error(), "invalid API key") {
		t.Fatalf("429 must be distinguishable from 401, got %q", err.Error())
	}
}

func TestCurrentWeatherDecodesOptionalFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// No wind or visibility sections at all.
		w.Write([]byte(`{"main":{"temp":28.5,"feels_like":30.1,"humidity":70,"pressure":1009},
			"weather":[{"main":"Clear","description":"clear sky"}]}`))
	}))
	defer srv.Close()

	client := testClient(Options{WeatherURL: srv.URL})

	current, err := client.CurrentWeather(context.Background(), weather.Coordinates{Lat: 3, Lon: 101})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if current.TempC == nil || *current.TempC != 28.5 {
		t.Fatalf("unexpected temp: %+v", current.TempC)
	}
	if current.WindSpeedMS != nil || current.VisibilityM != nil {
		t.Fatalf("absent fields must stay nil, got wind=%v visibility=%v", current.WindSpeedMS, current.VisibilityM)
	}
	if current.Condition != "Clear" || current.Description != "clear sky" {
		t.Fatalf("unexpected condition: %s/%s", current.Condition, current.Description)
	}
}

func TestForecastDecodesEntries(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"list":[
			{"dt":1672531200,"main":{"temp_min":25.0,"temp_max":30.0},"weather":[{"main":"Clear","description":"clear sky"}]},
			{"dt":1672617600,"main":{"temp_min":24.0,"temp_max":29.0},"weather":[{"main":"Rain","description":"light rain"}]}
		]}`))
	}))
	defer srv.Close()

	client := testClient(Options{ForecastURL: srv.URL})

	entries, err := client.Forecast(context.Background(), weather.Coordinates{Lat: 3, Lon: 101})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].TempMinC != 25.0 || entries[0].TempMaxC != 30.0 {
		t.Fatalf("unexpected first entry temps: %+v", entries[0])
	}
	if entries[1].Condition != "Rain" {
		t.Fatalf("unexpected second entry condition: %q", entries[1].Condition)
	}

	if !strings.Contains(gotQuery, "units=metric") {
		t.Fatalf("expected units=metric in query, got %q", gotQuery)
	}
}

func TestOneCallSendsExcludeList(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"current":{"temp":28.5,"feels_like":30.1,"humidity":70,"pressure":1009,
			"wind_speed":3.6,"visibility":10000,
			"weather":[{"main":"Clear","description":"clear sky"}]}}`))
	}))
	defer srv.Close()

	client := testClient(Options{OneCallURL: srv.URL, UseOneCall: true})

	current, err := client.CurrentWeather(context.Background(), weather.Coordinates{Lat: 3, Lon: 101})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if current.TempC == nil || *current.TempC != 28.5 {
		t.Fatalf("unexpected temp: %+v", current.TempC)
	}

	if !strings.Contains(gotQuery, "exclude=minutely%2Chourly%2Calerts") {
		t.Fatalf("expected exclude list in query, got %q", gotQuery)
	}
}
