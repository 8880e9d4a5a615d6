package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/adapters/mq/queue"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/adapters/repository"
	service "github.com/sankhaXjack/JOB-RECOMANDATION/internal/app"
	"github.com/sankhaXjack/JOB-RECOMANDATION/internal/domain/model"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrBackpressure = errors.New("backpressure")
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("unavailable")
)

// Error ties an operation to a sentinel kind and the underlying cause.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewKind returns an error of the given kind.
func NewKind(op string, kind error) error {
	return &Error{Op: op, Kind: kind}
}

// WrapKind attaches kind to err.
func WrapKind(op string, kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Wrap classifies an upstream error into an API kind.
func Wrap(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, queue.ErrFull):
		return WrapKind(op, ErrBackpressure, err)
	case errors.Is(err, repository.ErrNotFound):
		return WrapKind(op, ErrNotFound, err)
	case errors.Is(err, service.ErrNoSnapshot),
		errors.Is(err, service.ErrNotStarted),
		errors.Is(err, queue.ErrClosed):
		return WrapKind(op, ErrUnavailable, err)
	}
	return err
}

// status maps an error to its HTTP status and wire code. Every handler goes
// through here.
func status(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrBackpressure):
		return http.StatusTooManyRequests, "backpressure"
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	case errors.Is(err, model.ErrConfiguration):
		return http.StatusConflict, "configuration"
	case errors.Is(err, model.ErrEncoding):
		return http.StatusUnprocessableEntity, "encoding"
	case errors.Is(err, model.ErrNoEligibleCluster):
		return http.StatusUnprocessableEntity, "no_eligible_cluster"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	}
	return http.StatusInternalServerError, "internal_error"
}
