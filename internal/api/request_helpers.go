package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// Thin aliases over the shared helpers so handlers in this package stay
// uncluttered.

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	return shared.DecodeJSON(r, v)
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	shared.RespondWithJSON(w, r, status, data)
}

// RespondWithError writes a JSON error response with the given status code and message.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	shared.RespondWithError(w, r, status, message)
}

// RespondWithErrorAndLog writes a JSON error response and logs the redacted error.
func RespondWithErrorAndLog(w http.ResponseWriter, r *http.Request, status int, userMessage string, err error) {
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}

// currentUser extracts the authenticated user placed in the request context
// by the auth middleware.
func currentUser(r *http.Request) (*domain.User, bool) {
	return shared.CurrentUser(r.Context())
}

// getPathUUID extracts and parses a UUID path parameter from the request.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}
