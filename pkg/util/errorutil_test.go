package util

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	conflict := NewConflict("taken", nil)
	assert.Same(t, conflict, ToDomainError(fmt.Errorf("wrapped: %w", conflict)))

	timeout := ToDomainError(fmt.Errorf("query: %w", context.DeadlineExceeded))
	assert.Equal(t, http.StatusGatewayTimeout, timeout.HTTPStatus)
	assert.Equal(t, "TIMEOUT", timeout.Code)

	internal := ToDomainError(errors.New("disk on fire"))
	assert.Equal(t, http.StatusInternalServerError, internal.HTTPStatus)
	assert.Equal(t, "internal server error", internal.Message)
	assert.ErrorContains(t, internal, "disk on fire")
}

func TestNotFoundCarriesResource(t *testing.T) {
	err := NewNotFound("user", map[string]any{"id": "42"})

	var domainErr *DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "user not found", domainErr.Message)
	assert.Equal(t, "42", domainErr.Details["id"])
}

func TestCodeForStatus(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", CodeForStatus(http.StatusNotFound))
	assert.Equal(t, "METHOD_NOT_ALLOWED", CodeForStatus(http.StatusMethodNotAllowed))
	assert.Equal(t, "INTERNAL_ERROR", CodeForStatus(http.StatusBadGateway))
	assert.Equal(t, "REQUEST_FAILED", CodeForStatus(http.StatusTeapot))
}
