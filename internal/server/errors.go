// Package server provides the HTTP REST API for the hiring agent.
package server

import (
	"fmt"
	"net/http"
	"strings"
)

// ErrNoCampaign indicates no campaign has been created yet.
type ErrNoCampaign struct{}

func (e *ErrNoCampaign) Error() string {
	return "no active campaign"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrLLMUnavailable indicates JD generation was requested without a
// configured model.
type ErrLLMUnavailable struct{}

func (e *ErrLLMUnavailable) Error() string {
	return "JD generation requires a configured Gemini API key"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrNoCampaign:
		return http.StatusConflict
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrLLMUnavailable:
		return http.StatusServiceUnavailable
	default:
		// Domain layers report the missing campaign as a plain error.
		if err != nil && strings.Contains(err.Error(), "no active campaign") {
			return http.StatusConflict
		}
		return http.StatusInternalServerError
	}
}
