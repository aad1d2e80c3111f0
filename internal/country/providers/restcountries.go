package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/country-weather-api/internal/country"
)

const restCountriesName = "restcountries"

// RestCountriesProvider implements country.Directory for the REST Countries v3.1 API.
type RestCountriesProvider struct {
	name         string
	baseURL      string
	httpCfg      HTTPClientConfig
	circuit      *gobreaker.CircuitBreaker
	// probeCircuit guards Probe only.
	probeCircuit *gobreaker.CircuitBreaker
}

func NewRestCountriesProvider(cfg HTTPClientConfig, baseURL string) *RestCountriesProvider {
	return &RestCountriesProvider{
		name:         restCountriesName,
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpCfg:      cfg,
		circuit:      newBreaker(restCountriesName),
		probeCircuit: newBreaker(restCountriesName + "-probe"),
	}
}

func (p *RestCountriesProvider) Name() string {
	return p.name
}

// ListCountries returns the official names of all countries, or of the given
// region when continent is non-empty. Entries without an official name are skipped.
func (p *RestCountriesProvider) ListCountries(ctx context.Context, continent string) ([]string, error) {
	endpoint := p.baseURL + "/all"
	if continent != "" {
		endpoint = fmt.Sprintf("%s/region/%s", p.baseURL, url.PathEscape(continent))
	}

	body, err := doRequest(ctx, p.httpCfg, p.circuit, p.name, func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("fields", "name")
		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+values.Encode(), nil)
	})
	if err != nil {
		return nil, err
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", country.ErrMalformedData, err)
	}

	names := make([]string, 0, len(entries))
	for _, raw := range entries {
		var entry struct {
			Name *struct {
				Official *string `json:"official"`
			} `json:"name"`
		}
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		if entry.Name == nil || entry.Name.Official == nil {
			continue
		}
		names = append(names, *entry.Name.Official)
	}

	return names, nil
}

// ResolveCountry returns the first record whose name matches exactly.
func (p *RestCountriesProvider) ResolveCountry(ctx context.Context, name string) (country.CountryRecord, error) {
	body, err := doRequest(ctx, p.httpCfg, p.circuit, p.name, func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("fullText", "true")
		u := fmt.Sprintf("%s/name/%s?%s", p.baseURL, url.PathEscape(name), values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	})
	if err != nil {
		return country.CountryRecord{}, err
	}

	var records []country.CountryRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return country.CountryRecord{}, fmt.Errorf("%w: %v", country.ErrMalformedData, err)
	}
	if len(records) == 0 {
		return country.CountryRecord{}, fmt.Errorf("%w: %s", country.ErrNotFound, name)
	}

	return records[0], nil
}

// Probe checks that the directory answers at all.
func (p *RestCountriesProvider) Probe(ctx context.Context) error {
	_, err := doRequest(ctx, p.httpCfg, p.probeCircuit, p.name, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/alpha/bel?fields=cca3", nil)
	})
	return err
}
