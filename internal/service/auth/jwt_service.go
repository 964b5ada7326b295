package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService defines operations for managing JWT authentication tokens.
//
// Access and refresh tokens form two disjoint classes: each is signed under
// its own secret and stamped with its own type claim, and each validation
// path rejects tokens of the other class. No issued token is recorded
// server-side; validity is entirely a function of signature and expiry.
type JWTService interface {
	// GenerateAccessToken creates a signed, short-lived JWT access token
	// for the given user. Returns the token string or an error if signing fails.
	GenerateAccessToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateAccessToken validates an access token string and extracts the
	// claims. Fails closed: malformed input, a bad signature, a lapsed
	// expiry, or a refresh token all yield an error and no claims.
	ValidateAccessToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken creates a signed, long-lived JWT refresh token
	// for the given user. Refresh tokens are used solely to obtain new
	// access tokens.
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateRefreshToken validates a refresh token string and extracts the
	// claims. Rejects access tokens with ErrWrongTokenType.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the verified contents of a token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// TokenType indicates the purpose of the token ("access" or "refresh").
	TokenType string `json:"type,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
