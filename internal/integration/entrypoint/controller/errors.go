// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	domainerror "github.com/dompet/ledger/internal/domain/error"
)

// statusForError maps a domain error kind to its HTTP status.
// Conflicts share 401 with authentication failures.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domainerror.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domainerror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainerror.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, domainerror.ErrUnauthenticated), errors.Is(err, domainerror.ErrConflict):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
