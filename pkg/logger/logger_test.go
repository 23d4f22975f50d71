package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"cyber-contact-backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("verbose"))
}

func TestNewHandlerProductionIsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(logger.NewHandler(&buf, logger.Options{Level: "info", Production: true}))

	log.Debug("hidden")
	log.Info("contact_submission_succeeded", "ip", "203.0.113.7")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "contact_submission_succeeded", entry["msg"])
	assert.Equal(t, "203.0.113.7", entry["ip"])
}

func TestInitWritesToFile(t *testing.T) {
	prev := logger.Log
	t.Cleanup(func() {
		logger.Log = prev
		slog.SetDefault(prev)
	})

	path := filepath.Join(t.TempDir(), "app.log")
	closer, err := logger.Init(logger.Options{Level: "info", Production: true, File: path})
	require.NoError(t, err)

	logger.Log.Info("server_started", "port", 3001)
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"server_started"`)
}

func TestInitBadFile(t *testing.T) {
	_, err := logger.Init(logger.Options{File: filepath.Join(t.TempDir(), "missing", "app.log")})
	assert.Error(t, err)
}
