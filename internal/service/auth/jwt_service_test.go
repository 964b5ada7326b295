package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasks-api/internal/config"
)

const (
	testAccessSecret  = "access-secret-that-is-long-enough-for-testing"
	testRefreshSecret = "refresh-secret-that-is-long-enough-for-testing"
)

func TestGenerateAccessToken(t *testing.T) {
	t.Parallel()

	// Setup
	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	accessLifetime := 15 * time.Minute
	userID := uuid.New()

	// Create service with fixed time function for predictable testing
	svc := NewTestJWTService(
		testAccessSecret, testRefreshSecret,
		accessLifetime, 24*time.Hour,
		func() time.Time { return fixedTime },
	)

	t.Run("generates valid access token", func(t *testing.T) {
		t.Parallel()
		token, err := svc.GenerateAccessToken(context.Background(), userID)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.ValidateAccessToken(context.Background(), token)
		require.NoError(t, err)

		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "access", claims.TokenType)
		assert.Equal(t, userID.String(), claims.Subject)
		// Compare Unix timestamps to avoid timezone issues
		assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
		assert.Equal(t, fixedTime.Add(accessLifetime).Unix(), claims.ExpiresAt.Unix())
		assert.NotEmpty(t, claims.ID)
	})
}

func TestGenerateRefreshToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	refreshLifetime := 7 * 24 * time.Hour
	userID := uuid.New()

	svc := NewTestJWTService(
		testAccessSecret, testRefreshSecret,
		15*time.Minute, refreshLifetime,
		func() time.Time { return fixedTime },
	)

	t.Run("generates valid refresh token", func(t *testing.T) {
		t.Parallel()
		token, err := svc.GenerateRefreshToken(context.Background(), userID)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.ValidateRefreshToken(context.Background(), token)
		require.NoError(t, err)

		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "refresh", claims.TokenType)
		assert.Equal(t, fixedTime.Add(refreshLifetime).Unix(), claims.ExpiresAt.Unix())
	})

	t.Run("access and refresh tokens differ", func(t *testing.T) {
		t.Parallel()
		accessToken, err := svc.GenerateAccessToken(context.Background(), userID)
		require.NoError(t, err)
		refreshToken, err := svc.GenerateRefreshToken(context.Background(), userID)
		require.NoError(t, err)
		assert.NotEqual(t, accessToken, refreshToken)
	})
}

func TestValidateAccessToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	accessLifetime := 15 * time.Minute
	userID := uuid.New()

	newService := func(at func() time.Time) JWTService {
		return NewTestJWTService(
			testAccessSecret, testRefreshSecret,
			accessLifetime, 24*time.Hour,
			at,
		)
	}

	tests := []struct {
		name      string
		setupFunc func() (JWTService, string)
		wantErr   error
	}{
		{
			name: "valid token",
			setupFunc: func() (JWTService, string) {
				svc := newService(func() time.Time { return fixedTime })
				token, _ := svc.GenerateAccessToken(context.Background(), userID)
				return svc, token
			},
			wantErr: nil,
		},
		{
			name: "expired token",
			setupFunc: func() (JWTService, string) {
				genSvc := newService(func() time.Time { return fixedTime })
				token, _ := genSvc.GenerateAccessToken(context.Background(), userID)

				// Validate after the lifetime has lapsed
				valSvc := newService(func() time.Time {
					return fixedTime.Add(accessLifetime + time.Hour)
				})
				return valSvc, token
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "refresh token rejected by signature",
			setupFunc: func() (JWTService, string) {
				svc := newService(func() time.Time { return fixedTime })
				token, _ := svc.GenerateRefreshToken(context.Background(), userID)
				return svc, token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "refresh token rejected by type claim even under a shared key",
			setupFunc: func() (JWTService, string) {
				// With identical keys the signature verifies, so only the
				// type claim stands between the two token classes.
				svc := NewTestJWTService(
					testAccessSecret, testAccessSecret,
					accessLifetime, 24*time.Hour,
					func() time.Time { return fixedTime },
				)
				token, _ := svc.GenerateRefreshToken(context.Background(), userID)
				return svc, token
			},
			wantErr: ErrWrongTokenType,
		},
		{
			name: "invalid signature",
			setupFunc: func() (JWTService, string) {
				genSvc := NewTestJWTService(
					"wrong-access-secret-that-is-long-enough",
					testRefreshSecret,
					accessLifetime, 24*time.Hour,
					func() time.Time { return fixedTime },
				)
				token, _ := genSvc.GenerateAccessToken(context.Background(), userID)

				valSvc := newService(func() time.Time { return fixedTime })
				return valSvc, token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "malformed token",
			setupFunc: func() (JWTService, string) {
				svc := newService(func() time.Time { return fixedTime })
				return svc, "this.is.not.a.valid.jwt.token"
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "empty token",
			setupFunc: func() (JWTService, string) {
				svc := newService(func() time.Time { return fixedTime })
				return svc, ""
			},
			wantErr: ErrInvalidToken,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, token := tc.setupFunc()

			claims, err := svc.ValidateAccessToken(context.Background(), token)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, claims)
			assert.Equal(t, userID, claims.UserID)
		})
	}
}

func TestValidateRefreshToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	refreshLifetime := 24 * time.Hour
	userID := uuid.New()

	newService := func(at func() time.Time) JWTService {
		return NewTestJWTService(
			testAccessSecret, testRefreshSecret,
			15*time.Minute, refreshLifetime,
			at,
		)
	}

	tests := []struct {
		name      string
		setupFunc func() (JWTService, string)
		wantErr   error
	}{
		{
			name: "valid token",
			setupFunc: func() (JWTService, string) {
				svc := newService(func() time.Time { return fixedTime })
				token, _ := svc.GenerateRefreshToken(context.Background(), userID)
				return svc, token
			},
			wantErr: nil,
		},
		{
			name: "expired token",
			setupFunc: func() (JWTService, string) {
				genSvc := newService(func() time.Time { return fixedTime })
				token, _ := genSvc.GenerateRefreshToken(context.Background(), userID)

				valSvc := newService(func() time.Time {
					return fixedTime.Add(refreshLifetime + time.Hour)
				})
				return valSvc, token
			},
			wantErr: ErrExpiredRefreshToken,
		},
		{
			name: "access token rejected by signature",
			setupFunc: func() (JWTService, string) {
				svc := newService(func() time.Time { return fixedTime })
				token, _ := svc.GenerateAccessToken(context.Background(), userID)
				return svc, token
			},
			wantErr: ErrInvalidRefreshToken,
		},
		{
			name: "access token rejected by type claim even under a shared key",
			setupFunc: func() (JWTService, string) {
				svc := NewTestJWTService(
					testRefreshSecret, testRefreshSecret,
					15*time.Minute, refreshLifetime,
					func() time.Time { return fixedTime },
				)
				token, _ := svc.GenerateAccessToken(context.Background(), userID)
				return svc, token
			},
			wantErr: ErrWrongTokenType,
		},
		{
			name: "malformed token",
			setupFunc: func() (JWTService, string) {
				svc := newService(func() time.Time { return fixedTime })
				return svc, "garbage"
			},
			wantErr: ErrInvalidRefreshToken,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, token := tc.setupFunc()

			claims, err := svc.ValidateRefreshToken(context.Background(), token)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, claims)
			assert.Equal(t, userID, claims.UserID)
		})
	}
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	validAccess := "access-secret-0123456789-0123456789-0123"
	validRefresh := "refresh-secret-0123456789-0123456789-012"

	tests := []struct {
		name    string
		cfg     config.AuthConfig
		wantErr bool
	}{
		{
			name: "valid configuration",
			cfg: config.AuthConfig{
				AccessTokenSecret:           validAccess,
				RefreshTokenSecret:          validRefresh,
				AccessTokenLifetimeMinutes:  15,
				RefreshTokenLifetimeMinutes: 10080,
			},
			wantErr: false,
		},
		{
			name: "access secret too short",
			cfg: config.AuthConfig{
				AccessTokenSecret:           "short",
				RefreshTokenSecret:          validRefresh,
				AccessTokenLifetimeMinutes:  15,
				RefreshTokenLifetimeMinutes: 10080,
			},
			wantErr: true,
		},
		{
			name: "refresh secret too short",
			cfg: config.AuthConfig{
				AccessTokenSecret:           validAccess,
				RefreshTokenSecret:          "short",
				AccessTokenLifetimeMinutes:  15,
				RefreshTokenLifetimeMinutes: 10080,
			},
			wantErr: true,
		},
		{
			name: "identical secrets",
			cfg: config.AuthConfig{
				AccessTokenSecret:           validAccess,
				RefreshTokenSecret:          validAccess,
				AccessTokenLifetimeMinutes:  15,
				RefreshTokenLifetimeMinutes: 10080,
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, err := NewJWTService(tc.cfg)
			if tc.wantErr {
				require.Error(t, err)
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, svc)
		})
	}
}
