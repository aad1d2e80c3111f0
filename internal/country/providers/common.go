package providers

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/i474232898/country-weather-api/internal/country"
	"github.com/i474232898/country-weather-api/internal/metrics"
)

// HTTPClientConfig bundles the HTTP client and instrumentation shared by providers.
type HTTPClientConfig struct {
	Client  *http.Client
	Metrics *metrics.Metrics
	Logger  logrus.FieldLogger
}

var errNoHTTPClient = errors.New("http client not configured")

const (
	outcomeSuccess  = "success"
	outcomeError    = "error"
	outcomeTimeout  = "timeout"
	outcomeRejected = "rejected"
)

// newBreaker returns a circuit breaker that only counts server-side failures.
// Client errors such as an unknown country are a normal answer from a healthy upstream.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     30 * time.Second,
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var upErr *country.UpstreamError
			return errors.As(err, &upErr) && !upErr.Timeout && upErr.Status < http.StatusInternalServerError
		},
	})
}

// doRequest performs a single attempt of the request built by buildRequest and
// returns the response body. Non-2xx statuses, transport failures and an open
// circuit are all reported as *country.UpstreamError.
func doRequest(
	ctx context.Context,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	service string,
	buildRequest func(ctx context.Context) (*http.Request, error),
) ([]byte, error) {
	if cfg.Client == nil {
		return nil, errNoHTTPClient
	}

	start := time.Now()
	result, err := cb.Execute(func() (interface{}, error) {
		req, err := buildRequest(ctx)
		if err != nil {
			return nil, err
		}

		resp, err := cfg.Client.Do(req)
		if err != nil {
			if isTimeout(err) {
				return nil, &country.UpstreamError{Service: service, Status: http.StatusGatewayTimeout, Timeout: true, Err: stripURL(err)}
			}
			return nil, &country.UpstreamError{Service: service, Status: http.StatusBadGateway, Err: stripURL(err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil, &country.UpstreamError{Service: service, Status: resp.StatusCode}
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			if isTimeout(err) {
				return nil, &country.UpstreamError{Service: service, Status: http.StatusGatewayTimeout, Timeout: true, Err: err}
			}
			return nil, &country.UpstreamError{Service: service, Status: http.StatusBadGateway, Err: err}
		}
		return body, nil
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = &country.UpstreamError{Service: service, Status: http.StatusServiceUnavailable, Err: err}
	}

	cfg.Metrics.ObserveUpstream(service, outcomeOf(err), time.Since(start))

	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.WithFields(logrus.Fields{
				"service": service,
				"error":   err.Error(),
			}).Warn("upstream request failed")
		}
		return nil, err
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, errors.New("unexpected result type from circuit breaker")
	}
	return body, nil
}

func outcomeOf(err error) string {
	if err == nil {
		return outcomeSuccess
	}
	var upErr *country.UpstreamError
	if errors.As(err, &upErr) {
		switch {
		case upErr.Timeout:
			return outcomeTimeout
		case upErr.Status == http.StatusServiceUnavailable && upErr.Err != nil &&
			(errors.Is(upErr.Err, gobreaker.ErrOpenState) || errors.Is(upErr.Err, gobreaker.ErrTooManyRequests)):
			return outcomeRejected
		}
	}
	return outcomeError
}

// stripURL drops the request URL from a transport error. Query strings may
// carry credentials such as the weather API key.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
