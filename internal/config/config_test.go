package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

var secret = strings.Repeat("s", 32)

func TestDefaults(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{"JWT_SECRET": secret}))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.Equal(t, "./data/zerowaste.db", cfg.DatabaseURL)
	assert.Equal(t, secret+"-refresh", cfg.JWTRefreshSecret)
	assert.Equal(t, 15, cfg.AccessTokenMinutes)
	assert.Equal(t, 7, cfg.RefreshTokenDays)
	assert.Equal(t, 30, cfg.RememberRefreshDays)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "Asia/Seoul", cfg.Timezone)
	assert.Equal(t, defaultOrigins, cfg.AllowedOrigins)
	assert.False(t, cfg.PushConfigured())
}

func TestOverrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"JWT_SECRET":           secret,
		"DB_DRIVER":            "postgres",
		"DATABASE_URL":         "postgres://localhost/zw",
		"ACCESS_TOKEN_MINUTES": "60",
		"REFRESH_TOKEN_DAYS":   "-4",
		"COOKIE_SECURE":        "false",
		"ALLOWED_ORIGINS":      " https://a.example , https://b.example ,",
		"DISABLE_REGISTRATION": "TRUE",
		"VAPID_PUBLIC_KEY":     "pub",
		"VAPID_PRIVATE_KEY":    "priv",
		"VAPID_SUBJECT":        "mailto:ops@example.com",
	}))
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 60, cfg.AccessTokenMinutes)
	assert.Equal(t, 7, cfg.RefreshTokenDays)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, "https://a.example,https://b.example", cfg.AllowedOrigins)
	assert.True(t, cfg.DisableRegistration)
	assert.True(t, cfg.PushConfigured())
}

func TestRejectsBadSettings(t *testing.T) {
	_, err := FromEnv(env(nil))
	assert.ErrorContains(t, err, "JWT_SECRET")

	_, err = FromEnv(env(map[string]string{"JWT_SECRET": "short"}))
	assert.ErrorContains(t, err, "at least 32")

	_, err = FromEnv(env(map[string]string{"JWT_SECRET": secret, "DB_DRIVER": "mysql"}))
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}
