package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/service/task"
	"github.com/phrazzld/tasks-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors: the resource exists, the caller does not own it
	case errors.Is(err, task.ErrTaskNotOwned):
		return http.StatusForbidden

	// Not found errors: the resource does not exist at all
	case errors.Is(err, task.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidQuery),
		errors.Is(err, store.ErrInvalidEntity),
		isDomainValidationError(err):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Not authorized"

	case errors.Is(err, task.ErrTaskNotOwned):
		return "Not authorized to access this task"

	case errors.Is(err, task.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, domain.ErrInvalidQuery):
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return "Invalid query parameter: " + ve.Field
		}
		return "Invalid query parameters"

	case isDomainValidationError(err):
		return err.Error()

	default:
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return "Invalid " + ve.Field
		}
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps err to a status and safe message, logs the full
// redacted error, and writes the response. An explicit userMessage overrides
// the derived one.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	statusCode := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	RespondWithErrorAndLog(w, r, statusCode, userMessage, err)
}

// isDomainValidationError reports whether err is one of the domain's
// entity-validation sentinels, whose messages are written for end users and
// therefore safe to echo.
func isDomainValidationError(err error) bool {
	for _, sentinel := range []error{
		domain.ErrEmptyTitle,
		domain.ErrTitleTooLong,
		domain.ErrDescriptionTooLong,
		domain.ErrInvalidPriority,
		domain.ErrEmptyName,
		domain.ErrNameTooShort,
		domain.ErrNameTooLong,
		domain.ErrEmptyEmail,
		domain.ErrInvalidEmail,
		domain.ErrEmptyPassword,
		domain.ErrPasswordTooShort,
		domain.ErrPasswordTooLong,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// SanitizeValidationError removes sensitive details from validator-produced
// errors and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example input: "Key: 'LoginRequest.Email' Error:Field validation for
	// 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
