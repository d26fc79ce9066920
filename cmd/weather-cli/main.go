package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	httpapi "github.com/i474232898/weather-cli/internal/api/http"
	"github.com/i474232898/weather-cli/internal/config"
	"github.com/i474232898/weather-cli/internal/format"
	"github.com/i474232898/weather-cli/internal/logging"
	"github.com/i474232898/weather-cli/internal/scheduler"
	"github.com/i474232898/weather-cli/internal/store"
	"github.com/i474232898/weather-cli/internal/weather"
	"github.com/i474232898/weather-cli/internal/weather/providers"
)

func main() {
	// Optional .env bootstrap; absence is not an error.
	_ = godotenv.Load()

	cityFlag := flag.String("city", "", `city name (e.g. "Puchong")`)
	countryFlag := flag.String("country", "", `two-letter country code (e.g. "MY")`)
	serveFlag := flag.Bool("serve", false, "run the HTTP report server instead of a one-shot report")
	flag.Usage = printUsage
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *serveFlag {
		if err := runServer(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *cityFlag == "" || *countryFlag == "" {
		fmt.Fprintln(os.Stderr, "Error: --city and --country are required")
		printUsage()
		os.Exit(1)
	}

	if err := runReport(ctx, *cityFlag, *countryFlag); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			fmt.Fprintln(os.Stderr, "Operation cancelled by user")
		case isAppError(err):
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		default:
			fmt.Fprintf(os.Stderr, "Unexpected error: %v\n", err)
		}
		os.Exit(1)
	}
}

// runReport drives the one-shot pipeline: config, geocode, fetch,
// normalize, format, print.
func runReport(ctx context.Context, city, country string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logging.New(zapcore.WarnLevel)
	defer func() { _ = log.Sync() }()

	service := newService(cfg, log)

	bundle, err := service.Report(ctx, city, country)
	if err != nil {
		return err
	}

	fmt.Println(format.Render(bundle))
	return nil
}

// runServer runs the serve-mode HTTP API with a scheduler-warmed cache.
func runServer(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logging.New(zapcore.InfoLevel)
	defer func() { _ = log.Sync() }()

	service := newService(cfg, log)
	cache := store.NewReportCache(cfg.CacheMaxAge)

	sched := scheduler.New(cfg.Locations, cfg.RefreshInterval, service, cache, log)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-cli",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-cli",
		})
	})

	httpapi.RegisterRoutes(app, service, cache)

	go func() {
		log.Infow("listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Errorw("server stopped", "error", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return app.ShutdownWithContext(shutdownCtx)
}

func newService(cfg *config.AppConfig, log *zap.SugaredLogger) *weather.Service {
	provider := providers.NewOpenWeatherClient(providers.Options{
		APIKey:       cfg.APIKey,
		Client:       &http.Client{Timeout: cfg.HTTPTimeout},
		GeocodingURL: cfg.GeocodingURL,
		WeatherURL:   cfg.WeatherURL,
		ForecastURL:  cfg.ForecastURL,
		OneCallURL:   cfg.OneCallURL,
		UseOneCall:   cfg.UseOneCall,
	})
	return weather.NewService(provider, cfg.ForecastDays, log)
}

func isAppError(err error) bool {
	var appErr *weather.Error
	return errors.As(err, &appErr)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "weather-cli - current weather and 3-day forecast for any city")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  weather-cli --city <name> --country <code>")
	fmt.Fprintln(os.Stderr, "  weather-cli --serve")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprintln(os.Stderr, "  --city <name>      city name (e.g. \"Puchong\")")
	fmt.Fprintln(os.Stderr, "  --country <code>   two-letter country code (e.g. \"MY\")")
	fmt.Fprintln(os.Stderr, "  --serve            run the HTTP report server")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Examples:")
	fmt.Fprintln(os.Stderr, "  weather-cli --city \"Puchong\" --country \"MY\"")
	fmt.Fprintln(os.Stderr, "  weather-cli --city \"London\" --country \"GB\"")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Environment:")
	fmt.Fprintln(os.Stderr, "  OPENWEATHER_API_KEY   API key for all provider endpoints (required)")
}
