// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreatedResponse is returned by endpoints that create a resource.
type CreatedResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// BindingDetails turns a binding failure into a short, field-oriented message.
// Errors that are not validator failures (malformed JSON, wrong types) are returned as-is.
func BindingDetails(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			parts = append(parts, fmt.Sprintf("%s must be a valid email", fe.Field()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		case "min":
			parts = append(parts, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// TokenExpiredResponse tells clients to refresh rather than log in again.
type TokenExpiredResponse struct {
	Error        string `json:"error"`
	Code         string `json:"code"`
	TokenExpired bool   `json:"token_expired"`
}
