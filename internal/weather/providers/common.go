package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-cli/internal/weather"
)

// getJSON issues a single GET request through the circuit breaker and
// decodes the JSON response into out. There are no retries and no
// backoff: a failed call fails the invocation.
//
// Error mapping: transport failures (refused, timeout, DNS) become
// KindNetwork; 401, 429 and other non-2xx statuses become KindWeatherAPI
// with distinct messages. Callers that need a different kind (the
// geocoder) re-wrap.
func getJSON(ctx context.Context, client *http.Client, cb *gobreaker.CircuitBreaker, baseURL string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", baseURL, query.Encode()), nil)
	if err != nil {
		return weather.Wrap(weather.KindWeatherAPI, err, "building request failed")
	}

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			return nil, weather.Wrap(weather.KindNetwork, execErr, "network error")
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			resp.Body.Close()
			return nil, weather.E(weather.KindWeatherAPI, "invalid API key, check OPENWEATHER_API_KEY")
		case resp.StatusCode == http.StatusTooManyRequests:
			resp.Body.Close()
			return nil, weather.E(weather.KindWeatherAPI, "API rate limit exceeded, try again later")
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			resp.Body.Close()
			return nil, weather.E(weather.KindWeatherAPI, "unexpected status code %d", resp.StatusCode)
		}

		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return weather.Wrap(weather.KindNetwork, err, "provider temporarily unavailable")
		}
		return err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return weather.E(weather.KindWeatherAPI, "unexpected result type from circuit breaker")
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return weather.Wrap(weather.KindWeatherAPI, err, "decoding provider response failed")
	}
	return nil
}
