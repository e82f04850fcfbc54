// Package handlers holds the HTTP surface. Handlers bind JSON, delegate to
// the services and map the typed domain errors onto transport codes.
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"wknd-backend/internal/status"
	"wknd-backend/monitoring"
)

// apiError maps a domain error onto the matching transport error. Callers
// that need a custom body (the payment flow) handle their cases first.
func apiError(err error) error {
	var vErr *status.ValidationError
	if errors.As(err, &vErr) {
		return apis.NewBadRequestError(vErr.Msg, nil)
	}

	var nfErr *status.NotFoundError
	if errors.As(err, &nfErr) {
		return apis.NewNotFoundError(fmt.Sprintf("%s not found", nfErr.Resource), nil)
	}

	var gwErr *status.GatewayError
	if errors.As(err, &gwErr) {
		return apis.NewApiError(http.StatusBadGateway, "Payment gateway error", nil)
	}

	return apis.NewInternalServerError("Something went wrong", nil)
}

// WithMetrics wraps a handler with request counting and latency tracking.
func WithMetrics(method, endpoint string, next func(*core.RequestEvent) error) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		start := time.Now()
		err := next(e)

		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		monitoring.TrackHTTPRequest(method, endpoint, outcome, time.Since(start))

		return err
	}
}
