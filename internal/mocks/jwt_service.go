package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing
type MockJWTService struct {
	GenerateAccessTokenFn  func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateAccessTokenFn  func(ctx context.Context, tokenString string) (*auth.Claims, error)
	GenerateRefreshTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateRefreshTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Default values used when functions aren't explicitly defined
	Token        string
	RefreshToken string
	Err          error
	ValidateErr  error
	Claims       *auth.Claims
}

// Ensure MockJWTService implements auth.JWTService
var _ auth.JWTService = (*MockJWTService)(nil)

// GenerateAccessToken implements the auth.JWTService interface
func (m *MockJWTService) GenerateAccessToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateAccessTokenFn != nil {
		return m.GenerateAccessTokenFn(ctx, userID)
	}
	return m.Token, m.Err
}

// ValidateAccessToken implements the auth.JWTService interface
func (m *MockJWTService) ValidateAccessToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateAccessTokenFn != nil {
		return m.ValidateAccessTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}

// GenerateRefreshToken implements the auth.JWTService interface
func (m *MockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateRefreshTokenFn != nil {
		return m.GenerateRefreshTokenFn(ctx, userID)
	}
	return m.RefreshToken, m.Err
}

// ValidateRefreshToken implements the auth.JWTService interface
func (m *MockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateRefreshTokenFn != nil {
		return m.ValidateRefreshTokenFn(ctx, tokenString)
	}
	return m.Claims, m.ValidateErr
}
