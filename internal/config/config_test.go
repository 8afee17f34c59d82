package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("FRONTEND_URL", "")
	t.Setenv("WORKDAY_FAIL_OPEN", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("TIMEZONE", "")

	cfg := Load()
	assert.True(t, cfg.WorkdayFailOpen)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "Local", cfg.TimeZone)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("WORKDAY_FAIL_OPEN", "false")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("ENV", " Production ")
	t.Setenv("TIMEZONE", "UTC")

	cfg := Load()
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.False(t, cfg.WorkdayFailOpen)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "UTC", cfg.Location().String())
}

func TestLocationFallsBack(t *testing.T) {
	cfg := &Config{TimeZone: "Not/AZone"}
	assert.Equal(t, time.Local, cfg.Location())
}

func TestGetEnvDurationRejectsGarbage(t *testing.T) {
	t.Setenv("STATS_CACHE_TTL", "soon")
	assert.Equal(t, time.Minute, getEnvDuration("STATS_CACHE_TTL", time.Minute))
}
