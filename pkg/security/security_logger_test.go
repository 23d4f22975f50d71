package security_test

import (
	"context"
	"errors"
	"testing"

	"cyber-contact-backend/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*security.SecurityLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return security.NewSecurityLogger(zap.New(core), "cyber-contact-backend", "test"), logs
}

func TestLogContactSubmittedMasksEmail(t *testing.T) {
	sl, logs := newObserved()

	sl.LogContactSubmitted(context.Background(), "ana@example.com", "203.0.113.7", "req-1", "consultation")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	assert.Equal(t, "contact_submitted", entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, "a***@example.com", fields["subject_value"])
	assert.Equal(t, "203.0.113.7", fields["ip"])
	assert.Equal(t, "req-1", fields["request_id"])
}

func TestLogLevelsFollowSeverity(t *testing.T) {
	sl, logs := newObserved()
	ctx := context.Background()

	sl.LogRateLimitTriggered(ctx, "203.0.113.7", "curl/8", "req-2", "/api/contact", "contact")
	sl.LogDispatchFailed(ctx, "203.0.113.7", "req-3", errors.New("dial tcp: timeout"))

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[1].Level)
	assert.True(t, security.IsHighOrAbove(security.EventDispatchFailed))
	assert.Equal(t, security.SeverityMEDIUM, security.GetSeverity("unknown"))
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", security.MaskEmail("juan@example.com"))
	assert.Equal(t, "***@example.com", security.MaskEmail("j@example.com"))
	assert.Equal(t, "***", security.MaskEmail("ab"))
	assert.NotContains(t, security.MaskEmail("no-at-sign"), "no-at")
}

func TestDefaultLoggerIsSafeBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		security.DefaultLogger().LogValidationFailed(context.Background(), "ip", "ua", "id", 2)
	})
}
