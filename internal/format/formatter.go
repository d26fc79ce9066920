// Package format renders a weather bundle as decorated human-readable
// text. It is pure: no network access, no mutation of the bundle.
package format

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/i474232898/weather-cli/internal/weather"
)

// placeholder is rendered for numeric fields the provider omitted.
const placeholder = "N/A"

// conditionEmojis maps provider condition groups to their decoration.
var conditionEmojis = map[string]string{
	"Clear":        "☀️",
	"Clouds":       "☁️",
	"Rain":         "🌧️",
	"Drizzle":      "🌦️",
	"Thunderstorm": "⛈️",
	"Snow":         "❄️",
	"Mist":         "🌫️",
	"Fog":          "🌫️",
	"Smoke":        "💨",
	"Haze":         "🌫️",
}

// Render formats the bundle into a multi-line report: current
// conditions, additional details, and the daily forecast.
func Render(bundle weather.WeatherBundle) string {
	var out []string

	out = append(out, fmt.Sprintf("🌍 Weather for %s, %s", bundle.City, bundle.Country))
	out = append(out, strings.Repeat("─", 50))

	current := bundle.Current
	emoji, ok := conditionEmojis[current.Condition]
	if !ok {
		emoji = "🌈"
	}

	out = append(out, fmt.Sprintf("🌡️  Temperature: %s°C (Feels like %s°C)",
		formatTenth(current.TempC), formatTenth(current.FeelsLikeC)))
	out = append(out, fmt.Sprintf("🌈 Conditions: %s %s", emoji, describe(current.Description)))
	out = append(out, "")

	out = append(out, "📊 Additional Details:")
	out = append(out, fmt.Sprintf("   💧 Humidity: %s%%", formatWhole(current.HumidityPct)))
	out = append(out, fmt.Sprintf("   📊 Pressure: %s hPa", formatWhole(current.PressureHpa)))
	out = append(out, fmt.Sprintf("   💨 Wind Speed: %s m/s", formatTenth(current.WindSpeedMS)))
	if current.VisibilityM != nil {
		out = append(out, fmt.Sprintf("   👁️  Visibility: %.1f km", *current.VisibilityM/1000))
	} else {
		out = append(out, fmt.Sprintf("   👁️  Visibility: %s", placeholder))
	}

	if len(bundle.Daily) > 0 {
		out = append(out, "")
		out = append(out, fmt.Sprintf("📅 %d-Day Forecast:", len(bundle.Daily)))
		out = append(out, strings.Repeat("─", 50))

		for _, day := range bundle.Daily {
			out = append(out, fmt.Sprintf("%s: %s", day.Date, describe(day.Description)))
			out = append(out, fmt.Sprintf("   Max: %.1f°C, Min: %.1f°C", day.TempMaxC, day.TempMinC))
		}
	}

	return strings.Join(out, "\n")
}

func describe(description string) string {
	if description == "" {
		return placeholder
	}
	// A cases.Caser carries transform state and is not safe to share.
	return cases.Title(language.English).String(description)
}

// formatTenth renders a value to one decimal place, or the placeholder.
func formatTenth(v *float64) string {
	if v == nil {
		return placeholder
	}
	return fmt.Sprintf("%.1f", *v)
}

func formatWhole(v *float64) string {
	if v == nil {
		return placeholder
	}
	return fmt.Sprintf("%.0f", *v)
}
