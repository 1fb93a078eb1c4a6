package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", NewInvalidInput("Missing fields", nil), http.StatusBadRequest},
		{"conflict", NewConflict("User already exists", "email taken"), http.StatusBadRequest},
		{"unauthorized", NewUnauthorized("Invalid credentials", "no such user", nil), http.StatusUnauthorized},
		{"not found", NewNotFound("Portfolio", "jane"), http.StatusNotFound},
		{"unavailable", NewUnavailable("uploader disabled"), http.StatusServiceUnavailable},
		{"storage", NewStorage("Failed to save portfolio", "upsert", errors.New("boom")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("outer: %w", NewNotFound("Portfolio", "x")), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToHTTPStatus(tt.err))
		})
	}
}

func TestAppError_ToJSONExposesOnlyMessage(t *testing.T) {
	err := NewStorage("Failed to save portfolio", "insert portfolio row", errors.New("connection reset"))

	body := err.ToJSON()

	assert.Equal(t, "Failed to save portfolio", body["error"])
	assert.Len(t, body, 1)
	assert.Contains(t, err.Error(), "connection reset")
	assert.ErrorIs(t, err, ErrInternal)
}
