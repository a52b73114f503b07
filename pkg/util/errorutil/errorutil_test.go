package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassesThroughDomainErrors(t *testing.T) {
	original := NewConflict("email already registered", nil)

	mapped := ToDomainError(original)
	require.NotNil(t, mapped)
	assert.Equal(t, "CONFLICT", mapped.Code)
	assert.Equal(t, http.StatusConflict, mapped.HTTPStatus)
}

func TestToDomainErrorUnwrapsWrappedDomainErrors(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewUnauthorized("token expired"))

	mapped := ToDomainError(wrapped)
	require.NotNil(t, mapped)
	assert.Equal(t, "UNAUTHORIZED", mapped.Code)
	assert.Equal(t, http.StatusUnauthorized, mapped.HTTPStatus)
}

func TestToDomainErrorMapsMissingRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	require.NotNil(t, mapped)
	assert.Equal(t, "NOT_FOUND", mapped.Code)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainErrorDefaultsToInternal(t *testing.T) {
	cause := errors.New("connection reset")

	mapped := ToDomainError(cause)
	require.NotNil(t, mapped)
	assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
	assert.ErrorIs(t, mapped, cause)
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestNewNotFoundMessage(t *testing.T) {
	err := NewNotFound("address", nil)

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "address not found", domainErr.Message)
}
