// Package apiclient is a small client for the country-weather-api HTTP surface.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Client calls a running country-weather-api.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// Countries lists the official names of the countries in continent.
func (c *Client) Countries(ctx context.Context, continent string) ([]string, error) {
	q := url.Values{}
	if continent != "" {
		q.Set("continent", continent)
	}

	var out []struct {
		Name string `json:"name"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/countries", q, &out); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(out))
	for _, n := range out {
		names = append(names, n.Name)
	}
	return names, nil
}

// Temperature returns the current temperature of a country.
func (c *Client) Temperature(ctx context.Context, name string) (float64, error) {
	var out struct {
		Temperature float64 `json:"temperature"`
	}
	if err := c.doJSON(ctx, http.MethodGet, countryPath(name, "temperature"), nil, &out); err != nil {
		return 0, err
	}
	return out.Temperature, nil
}

// Favorite marks a country as favorite and returns the API's message.
func (c *Client) Favorite(ctx context.Context, name string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.doJSON(ctx, http.MethodPost, countryPath(name, "favorite"), nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Graph returns the PNG forecast chart of a country for the next days days.
func (c *Client) Graph(ctx context.Context, name string, days int) ([]byte, error) {
	q := url.Values{}
	q.Set("n", strconv.Itoa(days))

	resp, err := c.do(ctx, http.MethodGet, countryPath(name, "graph"), q)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func (c *Client) doJSON(ctx context.Context, method, path string, q url.Values, v any) error {
	resp, err := c.do(ctx, method, path, q)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(v)
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values) (*http.Response, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		var body struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return nil, &StatusError{Status: resp.StatusCode, Message: body.Message}
	}
	return resp, nil
}

func countryPath(name, action string) string {
	return "/country/" + url.PathEscape(name) + "/" + action
}
