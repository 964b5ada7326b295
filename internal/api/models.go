package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// UserResponse is the outward-facing identity summary. It never carries
// password material in any form.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	User UserResponse `json:"user"`

	// AccessToken is the short-lived JWT used for API authorization
	AccessToken string `json:"access_token"`

	// RefreshToken is the long-lived JWT used to obtain new access tokens
	RefreshToken string `json:"refresh_token"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh
// endpoint. Only a new access token is issued; the refresh token is not
// rotated, so its lifetime is fixed at issuance.
type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// CreateTaskRequest defines the payload for task creation.
// The owner is never part of the payload; it comes from the authenticated
// identity.
type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"required,max=200"`
	Description string     `json:"description" validate:"omitempty,max=1000"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"    validate:"omitempty"`
}

// UpdateTaskRequest defines the payload for a partial task update. Absent
// fields (nil pointers) leave the current value untouched.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"       validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	Completed   *bool      `json:"completed"   validate:"omitempty"`
	Priority    *string    `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"    validate:"omitempty"`
}

// TaskListResponse is one page of tasks plus pagination metadata.
type TaskListResponse struct {
	Items []*domain.Task `json:"items"`
	Count int            `json:"count"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Pages int            `json:"pages"`
}

// userToResponse maps a domain user to its outward summary.
func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}
