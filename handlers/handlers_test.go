package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/pocketbase/pocketbase/tools/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wknd-backend/internal/status"
)

func TestApiError_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", &status.ValidationError{Msg: "Email is required"}, http.StatusBadRequest},
		{"not found", &status.NotFoundError{Resource: "booking", Key: "ref-1"}, http.StatusNotFound},
		{"gateway", &status.GatewayError{Op: "verifyTransaction", Msg: "unreachable"}, http.StatusBadGateway},
		{"persistence", &status.PersistenceError{Op: "saveBooking", Err: errors.New("db down")}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var apiErr *router.ApiError
			require.ErrorAs(t, apiError(tc.err), &apiErr)
			assert.Equal(t, tc.code, apiErr.Status)
		})
	}
}

func TestApiError_ValidationMessageIsSurfaced(t *testing.T) {
	var apiErr *router.ApiError
	require.ErrorAs(t, apiError(&status.ValidationError{Msg: "Email is required"}), &apiErr)
	assert.Contains(t, apiErr.Message, "Email is required")
}
