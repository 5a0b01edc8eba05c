package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusForCode(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeActorMismatch, http.StatusForbidden},
		{CodeMissingFields, http.StatusBadRequest},
		{CodeInvalidPayload, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeInternal, http.StatusInternalServerError},
		{Code("unknown"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusForCode(tt.code), string(tt.code))
	}
}

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("socket closed")
	err := Internal(cause, "store unavailable")

	assert.True(t, IsCode(err, CodeInternal))
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("handler: %w", err)
	assert.True(t, IsCode(wrapped, CodeInternal))
	assert.Equal(t, CodeInternal, GetCode(wrapped))
}

func TestGetCodeUnstructured(t *testing.T) {
	assert.Equal(t, CodeInternal, GetCode(errors.New("boom")))
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(rec, r, ActorMismatch("actor does not match authenticated user"))

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "actor_mismatch", body["code"])
	assert.Equal(t, "actor does not match authenticated user", body["error"])
}

func TestRespondErrorUnstructured(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	RespondError(rec, r, errors.New("pg: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal", body["code"])
	// Internal details are never leaked to the caller.
	assert.Equal(t, "internal error", body["error"])
}
