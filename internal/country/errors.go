package country

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound is returned when the directory has no record matching a name.
	ErrNotFound = errors.New("country not found")

	// ErrMalformedData is returned when an upstream response lacks a field we need.
	ErrMalformedData = errors.New("malformed upstream data")
)

// UpstreamError reports a non-success outcome from one of the upstream services.
type UpstreamError struct {
	Service string
	Status  int
	Timeout bool
	Err     error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("%s: request timed out", e.Service)
	case e.Err != nil:
		return fmt.Sprintf("%s: status %d: %v", e.Service, e.Status, e.Err)
	default:
		return fmt.Sprintf("%s: status %d %s", e.Service, e.Status, http.StatusText(e.Status))
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// InvalidArgumentReason distinguishes the ways a days parameter can be rejected.
type InvalidArgumentReason string

const (
	ReasonNotANumber InvalidArgumentReason = "not_a_number"
	ReasonOutOfRange InvalidArgumentReason = "out_of_range"
)

// InvalidArgumentError is returned for a bad user-supplied parameter.
type InvalidArgumentError struct {
	Param   string
	Reason  InvalidArgumentReason
	Message string
}

func (e *InvalidArgumentError) Error() string {
	return e.Message
}

// malformed wraps ErrMalformedData with the name of the missing field.
func malformed(field string) error {
	return fmt.Errorf("%w: missing %s", ErrMalformedData, field)
}
