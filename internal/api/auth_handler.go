package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/phrazzld/tasks-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	validator        *validator.Validate
	logger           *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordHasher auth.PasswordHasher,
	passwordVerifier auth.PasswordVerifier,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordHasher:   passwordHasher,
		passwordVerifier: passwordVerifier,
		validator:        validator.New(),
		logger:           logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles the POST /auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := domain.NewUser(req.Name, req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	// Hashing is an explicit step in the registration flow, and the
	// plaintext is cleared before the user can reach the store. The store
	// independently refuses users that still carry a plaintext password.
	hashed, err := h.passwordHasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password", "error", redact.Error(err))
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to create user", err)
		return
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			RespondWithError(w, r, http.StatusConflict, "Email already exists")
			return
		}
		log.Error("failed to create user", "error", redact.Error(err))
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to create user", err)
		return
	}

	resp, ok := h.tokenPair(w, r, user)
	if !ok {
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, resp)
}

// Login handles the POST /auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	// A missing user and a wrong password produce the same response, so
	// login cannot be used to probe which emails are registered.
	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Error("failed to get user by email", "error", redact.Error(err))
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to authenticate user", err)
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	resp, ok := h.tokenPair(w, r, user)
	if !ok {
		return
	}

	RespondWithJSON(w, r, http.StatusOK, resp)
}

// RefreshToken handles the POST /auth/refresh endpoint.
// It accepts a refresh token and, if it verifies and its subject still
// exists, issues a new access token only. Refresh tokens are not rotated.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RefreshTokenRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	// Same still-exists check as the auth middleware: a refresh token
	// surviving its subject's deletion must not mint new access tokens.
	user, err := h.userStore.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if store.IsNotFoundError(err) {
			RespondWithError(w, r, http.StatusUnauthorized, "Invalid refresh token")
			return
		}
		log.Error("failed to load user for refresh", "error", redact.Error(err))
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to refresh token", err)
		return
	}

	accessToken, err := h.jwtService.GenerateAccessToken(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to generate access token", "error", redact.Error(err), "user_id", user.ID)
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to refresh token", err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, RefreshTokenResponse{
		AccessToken: accessToken,
	})
}

// Me handles the GET /auth/me endpoint. The auth middleware has already
// resolved the identity; this just echoes the summary.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Not authenticated")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// tokenPair generates an access/refresh pair for the user and assembles the
// auth response. On failure it writes the 500 response itself and returns
// false so callers can bail out.
func (h *AuthHandler) tokenPair(w http.ResponseWriter, r *http.Request, user *domain.User) (*AuthResponse, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	accessToken, err := h.jwtService.GenerateAccessToken(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to generate access token", "error", redact.Error(err), "user_id", user.ID)
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to generate authentication token", err)
		return nil, false
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to generate refresh token", "error", redact.Error(err), "user_id", user.ID)
		RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to generate authentication token", err)
		return nil, false
	}

	return &AuthResponse{
		User:         userToResponse(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, true
}
