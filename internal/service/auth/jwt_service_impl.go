package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
)

// Token type claim values.
const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// hmacJWTService is an implementation of JWTService using HMAC-SHA signing
// with independent keys for the access and refresh token classes.
type hmacJWTService struct {
	accessKey       []byte
	refreshKey      []byte
	accessLifetime  time.Duration
	refreshLifetime time.Duration
	timeFunc        func() time.Time // Injectable for testing
	clockSkew       time.Duration    // Allowed drift when validating time claims
}

// jwtCustomClaims defines the structure of JWT claims we use
type jwtCustomClaims struct {
	UserID    uuid.UUID `json:"uid"`
	TokenType string    `json:"type"`
	jwt.RegisteredClaims
}

// Ensure hmacJWTService implements JWTService interface
var _ JWTService = (*hmacJWTService)(nil)

// NewJWTService creates a new JWT service using HMAC-SHA256 signing.
// The access and refresh secrets must each be at least 32 characters and
// must differ from one another; sharing a key would collapse the two token
// classes into one.
func NewJWTService(cfg config.AuthConfig) (JWTService, error) {
	if len(cfg.AccessTokenSecret) < 32 {
		return nil, fmt.Errorf("access token secret must be at least 32 characters")
	}
	if len(cfg.RefreshTokenSecret) < 32 {
		return nil, fmt.Errorf("refresh token secret must be at least 32 characters")
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return nil, fmt.Errorf("access and refresh token secrets must be distinct")
	}

	return &hmacJWTService{
		accessKey:       []byte(cfg.AccessTokenSecret),
		refreshKey:      []byte(cfg.RefreshTokenSecret),
		accessLifetime:  time.Duration(cfg.AccessTokenLifetimeMinutes) * time.Minute,
		refreshLifetime: time.Duration(cfg.RefreshTokenLifetimeMinutes) * time.Minute,
		timeFunc:        time.Now,
		clockSkew:       2 * time.Minute,
	}, nil
}

// GenerateAccessToken creates a signed JWT access token with user claims.
func (s *hmacJWTService) GenerateAccessToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.generate(ctx, userID, tokenTypeAccess, s.accessKey, s.accessLifetime)
}

// GenerateRefreshToken creates a signed JWT refresh token with user claims.
func (s *hmacJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.generate(ctx, userID, tokenTypeRefresh, s.refreshKey, s.refreshLifetime)
}

// ValidateAccessToken validates a JWT access token and returns the claims if
// valid. A well-formed refresh token fails here twice over: its signature
// does not verify under the access key, and its type claim is wrong.
func (s *hmacJWTService) ValidateAccessToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := s.validate(ctx, tokenString, tokenTypeAccess, s.accessKey)
	if err != nil {
		// Map to the access-class sentinel errors.
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, ErrWrongTokenType):
			return nil, ErrWrongTokenType
		default:
			return nil, ErrInvalidToken
		}
	}
	return claims, nil
}

// ValidateRefreshToken validates a JWT refresh token and returns the claims
// if valid. Access tokens are rejected symmetrically.
func (s *hmacJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := s.validate(ctx, tokenString, tokenTypeRefresh, s.refreshKey)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredRefreshToken
		case errors.Is(err, ErrWrongTokenType):
			return nil, ErrWrongTokenType
		default:
			return nil, ErrInvalidRefreshToken
		}
	}
	return claims, nil
}

// generate signs a token of the given class with a fresh issuance timestamp,
// an expiry computed from the class lifetime, and a unique token ID.
func (s *hmacJWTService) generate(
	ctx context.Context,
	userID uuid.UUID,
	tokenType string,
	key []byte,
	lifetime time.Duration,
) (string, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	claims := jwtCustomClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(key)
	if err != nil {
		log.Error("failed to sign JWT token",
			"error", err,
			"user_id", userID,
			"token_type", tokenType,
			"signing_method", jwt.SigningMethodHS256.Name)
		return "", fmt.Errorf("failed to sign %s token with HMAC-SHA256: %w", tokenType, err)
	}

	return signedToken, nil
}

// validate parses and verifies a token under the given class key, then
// enforces the type claim. Returns jwt parse errors or ErrWrongTokenType
// for the callers to map into their class-specific sentinels.
func (s *hmacJWTService) validate(
	ctx context.Context,
	tokenString string,
	tokenType string,
	key []byte,
) (*Claims, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time {
			return now
		}),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return key, nil
		},
		parserOpts...)
	if err != nil {
		log.Debug("token validation failed",
			"error", err,
			"token_type", tokenType)
		return nil, err
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		log.Debug("token validation failed: invalid claims",
			"token_type", tokenType)
		return nil, fmt.Errorf("invalid claims")
	}

	if claims.TokenType != tokenType {
		log.Debug("token validation failed: wrong token type",
			"expected", tokenType,
			"actual", claims.TokenType)
		return nil, ErrWrongTokenType
	}

	log.Debug("token validated successfully",
		"user_id", claims.UserID,
		"token_id", claims.ID,
		"token_type", tokenType)

	return &Claims{
		UserID:    claims.UserID,
		TokenType: claims.TokenType,
		Subject:   claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		ID:        claims.ID,
	}, nil
}
