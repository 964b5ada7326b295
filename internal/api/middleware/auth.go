package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
)

// AuthMiddleware resolves the calling identity for protected routes: it
// extracts the bearer token, verifies it as an access token, loads the
// corresponding user record, and attaches the user to the request context.
// Each step fails closed with 401; a malformed header is rejected before
// any token or store work happens.
type AuthMiddleware struct {
	jwtService auth.JWTService
	userStore  store.UserStore
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, userStore store.UserStore) *AuthMiddleware {
	if jwtService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("jwtService cannot be nil")
	}
	if userStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("userStore cannot be nil")
	}

	return &AuthMiddleware{
		jwtService: jwtService,
		userStore:  userStore,
	}
}

// Authenticate validates the bearer token from the Authorization header and
// adds the resolved user to the request context for authorized requests.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		// Exactly "Bearer <token>"; anything else is rejected without
		// touching the token service or the store.
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateAccessToken(r.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrWrongTokenType):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			case errors.Is(err, auth.ErrInvalidToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				logger.FromContext(r.Context()).Error("failed to validate token",
					"error", redact.Error(err))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		// A verified token whose subject no longer exists grants nothing:
		// tokens must not outlive their users.
		user, err := m.userStore.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if store.IsNotFoundError(err) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
				return
			}
			logger.FromContext(r.Context()).Error("failed to load user for token",
				"error", redact.Error(err),
				"user_id", claims.UserID)
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
			return
		}

		ctx := shared.WithCurrentUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
