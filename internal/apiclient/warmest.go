package apiclient

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// ErrNoTemperatures is returned when no country of a continent reported a temperature.
var ErrNoTemperatures = errors.New("no temperatures available")

// Warmest returns the country of continent with the highest current
// temperature. Countries whose temperature cannot be fetched are skipped.
func (c *Client) Warmest(ctx context.Context, continent string, logger logrus.FieldLogger) (string, float64, error) {
	names, err := c.Countries(ctx, continent)
	if err != nil {
		return "", 0, err
	}

	var (
		warmest string
		highest float64
		found   bool
	)
	for _, name := range names {
		temp, err := c.Temperature(ctx, name)
		if err != nil {
			logger.WithFields(logrus.Fields{"country": name, "error": err.Error()}).Warn("skipping country")
			continue
		}
		logger.WithFields(logrus.Fields{"country": name, "temperature": temp}).Info("current temperature")

		if !found || temp > highest {
			warmest, highest, found = name, temp, true
		}
	}

	if !found {
		return "", 0, ErrNoTemperatures
	}
	return warmest, highest, nil
}
