package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/interview-coach/internal/store"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "user_id", Message: "failed 'required'"}
	assert.Equal(t, "validation error: user_id - failed 'required'", err.Error())
}

func TestErrUnavailable(t *testing.T) {
	assert.Equal(t, "review storage is not configured", (&ErrUnavailable{Feature: "review storage"}).Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", &ErrValidation{Field: "limit", Message: "bad"}, http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("decode: %w", &ErrValidation{}), http.StatusBadRequest},
		{"validator field errors", validator.ValidationErrors{}, http.StatusBadRequest},
		{"not found", fmt.Errorf("get: %w", store.ErrNotFound), http.StatusNotFound},
		{"unavailable", &ErrUnavailable{Feature: "x"}, http.StatusServiceUnavailable},
		{"too large", &http.MaxBytesError{Limit: 1}, http.StatusRequestEntityTooLarge},
		{"unknown", assert.AnError, http.StatusInternalServerError},
		{"nil", nil, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
