package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/i474232898/country-weather-api/internal/country"
	"github.com/i474232898/country-weather-api/internal/metrics"
	"github.com/i474232898/country-weather-api/internal/scheduler"
)

const appName = "country-weather-api"

// StatusReporter exposes the latest upstream probe results.
type StatusReporter interface {
	Snapshot() []scheduler.ProbeResult
}

// Options carries the optional collaborators of the HTTP app.
type Options struct {
	Logger   logrus.FieldLogger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Status   StatusReporter
	Started  time.Time
}

// NewApp builds the Fiber app with middleware, ambient endpoints and API routes.
func NewApp(service *country.Service, opts Options) *fiber.App {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Started.IsZero() {
		opts.Started = time.Now()
	}

	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		UnescapePath:          true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          ErrorHandler,
	})

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(RequestLogger(opts.Logger, opts.Metrics))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": appName,
		})
	})

	app.Get("/status", func(c *fiber.Ctx) error {
		upstreams := []scheduler.ProbeResult{}
		if opts.Status != nil {
			upstreams = opts.Status.Snapshot()
		}
		return c.JSON(fiber.Map{
			"service":   appName,
			"uptime":    int(time.Since(opts.Started).Seconds()),
			"upstreams": upstreams,
		})
	})

	if opts.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	RegisterRoutes(app, service)
	return app
}
