// Package httpapi exposes the report pipeline over HTTP in serve mode.
package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-cli/internal/store"
	"github.com/i474232898/weather-cli/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, cache *store.ReportCache) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		q, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc := q.toLocation()

		// Cache first; fall back to a live fetch on miss or staleness.
		if cached, err := cache.Latest(loc); err == nil {
			return c.JSON(fiber.Map{
				"location":  loc,
				"fetchedAt": cached.FetchedAt,
				"report":    cached.Bundle,
			})
		} else if !errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read report cache")
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), 30*time.Second)
		defer cancel()

		bundle, err := service.Report(ctx, loc.City, loc.Country)
		if err != nil {
			return fiber.NewError(statusForError(err), err.Error())
		}
		cache.Put(loc, bundle)

		return c.JSON(fiber.Map{
			"location":  loc,
			"fetchedAt": time.Now().UTC(),
			"report":    bundle,
		})
	})
}

// statusForError maps application error kinds to HTTP statuses.
func statusForError(err error) int {
	switch {
	case weather.IsKind(err, weather.KindGeoCoding):
		return fiber.StatusNotFound
	case weather.IsKind(err, weather.KindWeatherAPI):
		return fiber.StatusBadGateway
	case weather.IsKind(err, weather.KindNetwork):
		return fiber.StatusBadGateway
	case weather.IsKind(err, weather.KindConfiguration):
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}

// locationQuery holds query parameters for identifying a location.
type locationQuery struct {
	City    string `validate:"required"`
	Country string `validate:"required,iso3166_1_alpha2"`
}

func (l locationQuery) toLocation() weather.Location {
	return weather.Location{
		City:    l.City,
		Country: l.Country,
	}
}

func parseLocationQuery(c *fiber.Ctx) (locationQuery, error) {
	var q locationQuery

	q.City = c.Query("city")
	q.Country = c.Query("country")

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}
