// Command warmest-country finds the warmest country of a continent through a
// running country-weather-api, marks it as favorite and saves its forecast graph.
package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/i474232898/country-weather-api/internal/apiclient"
)

func main() {
	baseURL := pflag.String("api", "http://localhost:8080", "base URL of the country-weather-api")
	continent := pflag.String("continent", "South America", "continent to search")
	days := pflag.Int("days", 4, "number of forecast days to graph (1-5)")
	out := pflag.String("out", "forecast.png", "file to write the forecast graph to")
	pflag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client := apiclient.New(*baseURL, &http.Client{Timeout: 30 * time.Second})

	name, temp, err := client.Warmest(ctx, *continent, logger)
	if err != nil {
		logger.Fatalf("failed to find warmest country: %v", err)
	}
	logger.WithFields(logrus.Fields{"country": name, "temperature": temp}).Info("warmest country found")

	msg, err := client.Favorite(ctx, name)
	if err != nil {
		logger.Fatalf("failed to favorite %s: %v", name, err)
	}
	logger.Info(msg)

	img, err := client.Graph(ctx, name, *days)
	if err != nil {
		logger.Fatalf("failed to fetch graph for %s: %v", name, err)
	}
	if err := os.WriteFile(*out, img, 0o644); err != nil {
		logger.Fatalf("failed to write %s: %v", *out, err)
	}
	logger.WithField("file", *out).Info("forecast graph saved")
}
