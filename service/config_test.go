package service

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("serve", nil, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Addr)
	assert.Equal(t, "data/blog.db", cfg.DBPath)
	assert.Equal(t, "data/sessions", cfg.SessionDir)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.SecureCookies)
}

func TestLoadConfigEnvAndFlags(t *testing.T) {
	t.Setenv("BLOG_ADDR", ":8080")
	t.Setenv("BLOG_SESSION_TTL", "2h")
	t.Setenv("BLOG_SECURE_COOKIES", "true")
	t.Setenv("BLOG_DEV", "not-a-bool")

	cfg, err := LoadConfig("serve", []string{"--addr", ":9090", "--log-level=debug"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.SecureCookies)
	assert.False(t, cfg.Dev)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig("serve", []string{"--nope"}, io.Discard)
	assert.Error(t, err)

	_, err = LoadConfig("serve", []string{"--db", ""}, io.Discard)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("warn", false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = NewLogger("debug", true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = NewLogger("loud", false)
	assert.Error(t, err)
}
