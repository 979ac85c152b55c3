package api

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	domainerrors "github.com/devflowhq/devflow-server/internal/errors"
)

// APIError is the single error shape every endpoint responds with. It
// implements huma.StatusError so huma serializes it as-is.
type APIError struct { //nolint:revive // the API prefix reads better at call sites
	status  int
	Code    string `json:"code" doc:"Machine-readable error code"`
	Message string `json:"message" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

func (e *APIError) Error() string { return e.Message }

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int { return e.status }

// ContentType overrides huma's default problem+json content type.
func (e *APIError) ContentType(_ string) string { return "application/json" }

// RegisterErrorHandler replaces huma.NewError so that domain errors
// surface with their own status and code rather than huma's defaults.
// Must run before any routes are registered.
func RegisterErrorHandler() {
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		for _, err := range errs {
			var de *domainerrors.Error
			if errors.As(err, &de) {
				return &APIError{
					status:  de.HTTPStatus(),
					Code:    string(de.Code),
					Message: de.Message,
					Details: de.Details,
				}
			}
		}

		return &APIError{status: status, Code: statusToCode(status), Message: message}
	}
}

// statusToCode translates plain HTTP statuses (huma validation
// failures, router 404s) into domain error codes.
func statusToCode(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return string(domainerrors.CodeValidation)
	case http.StatusUnauthorized:
		return string(domainerrors.CodeUnauthorized)
	case http.StatusForbidden:
		return string(domainerrors.CodeForbidden)
	case http.StatusNotFound:
		return string(domainerrors.CodeNotFound)
	case http.StatusConflict:
		return string(domainerrors.CodeConflict)
	default:
		return string(domainerrors.CodeInternal)
	}
}
