package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	httpapi "github.com/i474232898/country-weather-api/internal/api/http"
	"github.com/i474232898/country-weather-api/internal/config"
	"github.com/i474232898/country-weather-api/internal/country"
	"github.com/i474232898/country-weather-api/internal/country/providers"
	"github.com/i474232898/country-weather-api/internal/metrics"
	"github.com/i474232898/country-weather-api/internal/scheduler"
	"github.com/i474232898/country-weather-api/internal/store"
)

func main() {
	started := time.Now()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// Shared HTTP client for outbound upstream calls.
	httpCfg := providers.HTTPClientConfig{
		Client:  &http.Client{Timeout: cfg.HTTPTimeout},
		Metrics: m,
		Logger:  logger,
	}

	directory := providers.NewRestCountriesProvider(httpCfg, cfg.CountriesBaseURL)
	weather := providers.NewOpenWeatherProvider(httpCfg, cfg.WeatherBaseURL, cfg.OpenWeatherAPIKey)
	charts := providers.NewQuickChartProvider(httpCfg, cfg.ChartBaseURL)

	service := country.NewService(directory, weather, charts, store.NewFavoritesStore(), logger)

	// Periodic upstream reachability probes for /status.
	sched := scheduler.New([]scheduler.Prober{directory, weather, charts}, cfg.StatusInterval, cfg.HTTPTimeout, logger)
	if err := sched.Start(); err != nil {
		logger.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := httpapi.NewApp(service, httpapi.Options{
		Logger:   logger,
		Metrics:  m,
		Gatherer: reg,
		Status:   sched,
		Started:  started,
	})

	go func() {
		logger.WithField("port", cfg.Port).Info("starting http server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Errorf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Errorf("error during shutdown: %v", err)
	}
}

func newLogger(cfg *config.AppConfig) *logrus.Logger {
	logger := logrus.New()
	if cfg.LogFormat == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
