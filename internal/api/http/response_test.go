package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwheels-backend/internal/apperr"
)

func TestRespondError_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"Validation", apperr.Validation("bad input"), http.StatusBadRequest},
		{"NotFound", apperr.NotFound("booking not found"), http.StatusNotFound},
		{"Conflict", apperr.Conflict("vehicle not available for selected time"), http.StatusConflict},
		{"Forbidden", apperr.Forbidden("admin access required"), http.StatusForbidden},
		{"Unauthorized", apperr.Unauthorized("invalid or expired token"), http.StatusUnauthorized},
		{"Internal", apperr.Internal(errors.New("pq: connection refused")), http.StatusInternalServerError},
		{"PlainError", errors.New("some bug"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body envelope
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestRespondError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, apperr.Internal(errors.New("pq: duplicate key value violates unique constraint")))

	var body envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "internal server error", body.Message)
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestRespond_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	respond(rec, http.StatusCreated, "", map[string]any{"id": 42})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var body envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Success)
}
