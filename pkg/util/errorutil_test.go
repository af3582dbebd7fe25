package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewNotFound("ticket")
	mapped := ToDomainError(original)
	require.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
	require.Equal(t, "NOT_FOUND", mapped.Code)
	require.Equal(t, "ticket not found", mapped.Message)
}

func TestToDomainErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("loading ticket: %w", NewValidationError("title required"))
	mapped := ToDomainError(wrapped)
	require.Equal(t, http.StatusBadRequest, mapped.HTTPStatus)
}

func TestToDomainErrorNoRows(t *testing.T) {
	mapped := ToDomainError(fmt.Errorf("query: %w", pgx.ErrNoRows))
	require.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainErrorUnknown(t *testing.T) {
	mapped := ToDomainError(errors.New("boom"))
	require.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
	require.Equal(t, "INTERNAL_ERROR", mapped.Code)
}

func TestIsValidation(t *testing.T) {
	require.True(t, IsValidation(NewValidationError("nope")))
	require.False(t, IsValidation(NewNotFound("ticket")))
	require.False(t, IsValidation(errors.New("other")))
}
