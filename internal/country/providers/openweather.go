package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/country-weather-api/internal/country"
)

const openWeatherName = "openweathermap"

const (
	minForecastSlots = country.MinForecastDays * country.SlotsPerDay
	maxForecastSlots = country.MaxForecastDays * country.SlotsPerDay
)

// OpenWeatherProvider implements country.WeatherProvider for OpenWeatherMap.
type OpenWeatherProvider struct {
	name         string
	apiKey       string
	baseURL      string
	httpCfg      HTTPClientConfig
	circuit      *gobreaker.CircuitBreaker
	// probeCircuit guards Probe only.
	probeCircuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(cfg HTTPClientConfig, baseURL, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:         openWeatherName,
		apiKey:       apiKey,
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpCfg:      cfg,
		circuit:      newBreaker(openWeatherName),
		probeCircuit: newBreaker(openWeatherName + "-probe"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// CurrentWeather returns the current temperature in Celsius at lat/lon.
func (p *OpenWeatherProvider) CurrentWeather(ctx context.Context, lat, lon float64) (float64, error) {
	if p.apiKey == "" {
		return 0, errors.New("openweather api key is not configured")
	}

	body, err := doRequest(ctx, p.httpCfg, p.circuit, p.name, p.buildRequest("weather", lat, lon, nil))
	if err != nil {
		return 0, err
	}

	var payload struct {
		Main *struct {
			Temp *float64 `json:"temp"`
		} `json:"main"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0, fmt.Errorf("%w: %v", country.ErrMalformedData, err)
	}
	if payload.Main == nil || payload.Main.Temp == nil {
		return 0, fmt.Errorf("%w: missing main.temp", country.ErrMalformedData)
	}

	return *payload.Main.Temp, nil
}

// ForecastWeather returns up to count 3-hour forecast slots at lat/lon.
// count is clamped to the range the forecast endpoint serves.
func (p *OpenWeatherProvider) ForecastWeather(ctx context.Context, lat, lon float64, count int) ([]country.ForecastSample, error) {
	if p.apiKey == "" {
		return nil, errors.New("openweather api key is not configured")
	}
	count = min(max(count, minForecastSlots), maxForecastSlots)

	extra := url.Values{}
	extra.Set("cnt", strconv.Itoa(count))

	body, err := doRequest(ctx, p.httpCfg, p.circuit, p.name, p.buildRequest("forecast", lat, lon, extra))
	if err != nil {
		return nil, err
	}

	var payload struct {
		List []struct {
			DtTxt *string `json:"dt_txt"`
			Main  *struct {
				Temp *float64 `json:"temp"`
			} `json:"main"`
		} `json:"list"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", country.ErrMalformedData, err)
	}
	if payload.List == nil {
		return nil, fmt.Errorf("%w: missing list", country.ErrMalformedData)
	}

	samples := make([]country.ForecastSample, 0, len(payload.List))
	for i, slot := range payload.List {
		if slot.DtTxt == nil || slot.Main == nil || slot.Main.Temp == nil {
			return nil, fmt.Errorf("%w: incomplete forecast slot %d", country.ErrMalformedData, i)
		}
		samples = append(samples, country.ForecastSample{
			Timestamp:   *slot.DtTxt,
			Temperature: *slot.Main.Temp,
		})
	}

	return samples, nil
}

// Probe checks that the weather service accepts our key.
func (p *OpenWeatherProvider) Probe(ctx context.Context) error {
	_, err := doRequest(ctx, p.httpCfg, p.probeCircuit, p.name, p.buildRequest("weather", 0, 0, nil))
	return err
}

func (p *OpenWeatherProvider) buildRequest(path string, lat, lon float64, extra url.Values) func(context.Context) (*http.Request, error) {
	return func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
		values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")
		for k, vs := range extra {
			for _, v := range vs {
				values.Add(k, v)
			}
		}

		u := fmt.Sprintf("%s/%s?%s", p.baseURL, path, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}
}
