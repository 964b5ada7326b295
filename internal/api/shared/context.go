package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
)

// ContextKey is the key type for context values set by this package.
type ContextKey string

// Context keys for various values
const (
	// CurrentUserContextKey is the context key under which the auth
	// middleware stores the resolved *domain.User. It is the only channel
	// through which handlers learn who is calling.
	CurrentUserContextKey ContextKey = "currentUser"

	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of bytes used to generate the trace ID
	TraceIDLength = 16 // 32 hex characters
)

// WithCurrentUser returns a copy of ctx carrying the authenticated user.
func WithCurrentUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, CurrentUserContextKey, user)
}

// CurrentUser retrieves the authenticated user from the context.
// Returns the user and a boolean indicating whether one was attached.
func CurrentUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(CurrentUserContextKey).(*domain.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// SetTraceID adds a trace ID to the context.
// This is useful for correlating logs and error responses.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// generateTraceID creates a random trace ID for request tracking.
// Returns a 32-character hex string. If crypto/rand fails it falls back to
// a time-based ID, which is weaker but never a static value.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	n, err := rand.Read(b)
	if err != nil || n != TraceIDLength {
		slog.Error("failed to generate secure random trace ID",
			"error", err,
			"bytes_read", n,
			"fallback", "time-based generation")
		return generateFallbackTraceID()
	}

	return hex.EncodeToString(b)
}

// generateFallbackTraceID derives a trace ID from timestamps when the
// crypto/rand source is unavailable.
func generateFallbackTraceID() string {
	fallbackID := make([]byte, TraceIDLength)
	binary.BigEndian.PutUint64(fallbackID[:8], uint64(time.Now().UnixNano()))
	binary.BigEndian.PutUint32(fallbackID[8:12], uint32(time.Now().Nanosecond()))
	binary.BigEndian.PutUint32(fallbackID[12:16], uint32(time.Now().Unix()))
	return hex.EncodeToString(fallbackID)
}
