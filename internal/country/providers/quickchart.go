package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/country-weather-api/internal/country"
)

const quickChartName = "quickchart"

// QuickChartProvider implements country.ChartRenderer for the QuickChart API.
type QuickChartProvider struct {
	name         string
	baseURL      string
	width        int
	height       int
	httpCfg      HTTPClientConfig
	circuit      *gobreaker.CircuitBreaker
	// probeCircuit guards Probe only.
	probeCircuit *gobreaker.CircuitBreaker
}

func NewQuickChartProvider(cfg HTTPClientConfig, baseURL string) *QuickChartProvider {
	return &QuickChartProvider{
		name:         quickChartName,
		baseURL:      strings.TrimRight(baseURL, "/"),
		width:        800,
		height:       400,
		httpCfg:      cfg,
		circuit:      newBreaker(quickChartName),
		probeCircuit: newBreaker(quickChartName + "-probe"),
	}
}

func (p *QuickChartProvider) Name() string {
	return p.name
}

type quickChartRequest struct {
	Chart           country.ChartRequest `json:"chart"`
	Format          string               `json:"format"`
	Width           int                  `json:"width"`
	Height          int                  `json:"height"`
	BackgroundColor string               `json:"backgroundColor"`
}

// RenderChart posts the chart description and returns the PNG bytes.
func (p *QuickChartProvider) RenderChart(ctx context.Context, chart country.ChartRequest) ([]byte, error) {
	payload, err := json.Marshal(quickChartRequest{
		Chart:           chart,
		Format:          "png",
		Width:           p.width,
		Height:          p.height,
		BackgroundColor: "white",
	})
	if err != nil {
		return nil, err
	}

	return doRequest(ctx, p.httpCfg, p.circuit, p.name, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chart", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
}

// Probe checks that the chart service is reachable.
func (p *QuickChartProvider) Probe(ctx context.Context) error {
	_, err := doRequest(ctx, p.httpCfg, p.probeCircuit, p.name, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/healthcheck", nil)
	})
	return err
}
