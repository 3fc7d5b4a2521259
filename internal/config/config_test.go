package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("RESTCONNECT_RECOGNIZER_BASE_URL", "https://gateway.example.com/v1")
	t.Setenv("RESTCONNECT_CITYDATA_BASE_URL", "https://gateway.example.com/v1")
	t.Setenv("RESTCONNECT_DATABASE_DSN", "postgres://localhost/restconnect")
	t.Setenv("RESTCONNECT_AUTH_JWT_SECRET", "test-secret")
}

func TestLoad_DefaultsApplied(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Recognizer.Timeout)
	assert.Equal(t, 15*time.Minute, cfg.CityData.CacheTTL)
	assert.Equal(t, 90, cfg.Retention.Days)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RESTCONNECT_SERVER_ADDR", ":9090")
	t.Setenv("RESTCONNECT_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingRecognizerURL(t *testing.T) {
	t.Setenv("RESTCONNECT_CITYDATA_BASE_URL", "https://gateway.example.com/v1")
	t.Setenv("RESTCONNECT_DATABASE_DSN", "postgres://localhost/restconnect")
	t.Setenv("RESTCONNECT_AUTH_JWT_SECRET", "test-secret")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recognizer.base_url")
}

func TestLoad_MissingConfigFile(t *testing.T) {
	setRequiredEnv(t)

	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}
