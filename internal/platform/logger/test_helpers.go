package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// TestLogBuffer is a thread-safe buffer for capturing log output in tests.
type TestLogBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

// Write implements io.Writer for TestLogBuffer.
func (b *TestLogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns the buffer contents as a string.
func (b *TestLogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Reset clears the buffer contents.
func (b *TestLogBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// GetLogEntries parses the buffer contents as JSON log entries.
// Each line is assumed to be a separate JSON log entry.
func (b *TestLogBuffer) GetLogEntries() ([]map[string]interface{}, error) {
	b.mu.Lock()
	logs := b.buf.String()
	b.mu.Unlock()

	lines := strings.Split(logs, "\n")
	entries := make([]map[string]interface{}, 0, len(lines))

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// SetupTestLogger creates a JSON logger that writes into a TestLogBuffer and
// installs it as the process default. It returns the buffer, the logger, and
// a cleanup function that restores the previous default.
func SetupTestLogger(t *testing.T, opts *slog.HandlerOptions) (*TestLogBuffer, *slog.Logger, func()) {
	t.Helper()

	logBuf := &TestLogBuffer{}
	originalLogger := slog.Default()

	if opts == nil {
		opts = &slog.HandlerOptions{
			Level: slog.LevelDebug, // Capture all logs
		}
	}

	testLogger := slog.New(slog.NewJSONHandler(logBuf, opts))
	slog.SetDefault(testLogger)

	cleanup := func() {
		slog.SetDefault(originalLogger)
	}

	return logBuf, testLogger, cleanup
}
