package httpserver

import (
	"errors"
	"net/http"

	"github.com/poketeam/pokedex-service/internal/domain"
)

// ErrorResponse is the JSON error body returned by every endpoint.
type ErrorResponse struct {
	// StatusCode mirrors the HTTP status of the response.
	StatusCode int `json:"status_code"`
	// Error is the canonical reason phrase for the status.
	Error string `json:"error"`
	// Details carries safe, client-facing specifics such as which field
	// failed validation.
	Details string `json:"details,omitempty"`
	// InternalError renders the full causal chain of the underlying error.
	// Populated in the development environment only.
	InternalError string `json:"internal_error,omitempty"`
}

// ErrorTranslator maps domain errors to HTTP error responses. In development
// mode it exposes the internal error chain; in production that detail is
// withheld.
type ErrorTranslator struct {
	development bool
}

// NewErrorTranslator creates an ErrorTranslator.
func NewErrorTranslator(development bool) *ErrorTranslator {
	return &ErrorTranslator{development: development}
}

// Translate maps err to a status code and response body.
func (t *ErrorTranslator) Translate(err error) ErrorResponse {
	resp := ErrorResponse{
		StatusCode: http.StatusInternalServerError,
		Error:      http.StatusText(http.StatusInternalServerError),
	}

	var verrs *domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		resp.StatusCode = http.StatusBadRequest
		resp.Error = http.StatusText(http.StatusBadRequest)
		resp.Details = verrs.Details()
	case errors.Is(err, domain.ErrInvalidInput):
		resp.StatusCode = http.StatusBadRequest
		resp.Error = http.StatusText(http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		resp.StatusCode = http.StatusNotFound
		resp.Error = http.StatusText(http.StatusNotFound)
		var nfe *domain.NotFoundError
		if errors.As(err, &nfe) {
			resp.Details = nfe.Error()
		}
	case errors.Is(err, domain.ErrConstraintViolation):
		resp.StatusCode = http.StatusBadRequest
		resp.Error = http.StatusText(http.StatusBadRequest)
		var cve *domain.ConstraintViolationError
		if errors.As(err, &cve) && cve.Constraint != "" {
			resp.Details = "constraint violated: " + cve.Constraint
		}
	case errors.Is(err, domain.ErrPoolExhausted):
		resp.StatusCode = http.StatusServiceUnavailable
		resp.Error = http.StatusText(http.StatusServiceUnavailable)
	case errors.Is(err, domain.ErrConnection):
		resp.StatusCode = http.StatusInternalServerError
		resp.Error = http.StatusText(http.StatusInternalServerError)
	}

	if t.development && err != nil {
		resp.InternalError = domain.ErrorChain(err)
	}

	return resp
}
