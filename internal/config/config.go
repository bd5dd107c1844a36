// Package config reads server settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBDriver    string
	DatabaseURL string

	JWTSecret           string
	JWTRefreshSecret    string
	AccessTokenMinutes  int
	RefreshTokenDays    int
	RememberRefreshDays int
	CookieSecure        bool

	AllowedOrigins      string
	DisableRegistration bool
	RunMigrations       bool

	Timezone    string
	CatalogFile string

	VapidPublicKey  string
	VapidPrivateKey string
	VapidSubject    string

	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	SMTPFrom   string
	SMTPUseTLS bool
	AppURL     string
}

const defaultOrigins = "http://localhost:5173,http://127.0.0.1:5173,http://localhost:3000"

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Ignoring unreadable .env: %v", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so tests need not touch the
// process environment.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:                orDefault(getenv("PORT"), "3000"),
		DBDriver:            orDefault(getenv("DB_DRIVER"), "sqlite3"),
		DatabaseURL:         orDefault(getenv("DATABASE_URL"), "./data/zerowaste.db"),
		JWTSecret:           getenv("JWT_SECRET"),
		JWTRefreshSecret:    getenv("JWT_REFRESH_SECRET"),
		AccessTokenMinutes:  positiveInt(getenv("ACCESS_TOKEN_MINUTES"), 15),
		RefreshTokenDays:    positiveInt(getenv("REFRESH_TOKEN_DAYS"), 7),
		RememberRefreshDays: positiveInt(getenv("REMEMBER_REFRESH_DAYS"), 30),
		CookieSecure:        getenv("COOKIE_SECURE") != "false",
		AllowedOrigins:      normalizeOrigins(getenv("ALLOWED_ORIGINS")),
		DisableRegistration: strings.ToLower(getenv("DISABLE_REGISTRATION")) == "true",
		RunMigrations:       getenv("RUN_MIGRATIONS") == "true",
		Timezone:            orDefault(getenv("APP_TIMEZONE"), "Asia/Seoul"),
		CatalogFile:         getenv("CATALOG_FILE"),
		VapidPublicKey:      getenv("VAPID_PUBLIC_KEY"),
		VapidPrivateKey:     getenv("VAPID_PRIVATE_KEY"),
		VapidSubject:        getenv("VAPID_SUBJECT"),
		SMTPHost:            getenv("SMTP_HOST"),
		SMTPPort:            positiveInt(getenv("SMTP_PORT"), 587),
		SMTPUser:            getenv("SMTP_USER"),
		SMTPPass:            getenv("SMTP_PASS"),
		SMTPFrom:            orDefault(getenv("SMTP_FROM"), "noreply@zerowaste.app"),
		SMTPUseTLS:          strings.ToLower(getenv("SMTP_USE_TLS")) != "false",
		AppURL:              orDefault(getenv("APP_URL"), "http://localhost:5173"),
	}

	if cfg.JWTSecret == "" {
		return cfg, errors.New("JWT_SECRET environment variable is required")
	}
	if len(cfg.JWTSecret) < 32 {
		return cfg, errors.New("JWT_SECRET must be at least 32 characters long")
	}
	if cfg.JWTRefreshSecret == "" {
		cfg.JWTRefreshSecret = cfg.JWTSecret + "-refresh"
	}
	switch cfg.DBDriver {
	case "sqlite3", "postgres":
	default:
		return cfg, fmt.Errorf("unsupported DB_DRIVER %q (want sqlite3 or postgres)", cfg.DBDriver)
	}
	return cfg, nil
}

// PushConfigured reports whether all VAPID settings are present.
func (c Config) PushConfigured() bool {
	return c.VapidPublicKey != "" && c.VapidPrivateKey != "" && c.VapidSubject != ""
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func positiveInt(v string, def int) int {
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return n
	}
	return def
}

func normalizeOrigins(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		log.Println("WARNING: Using default ALLOWED_ORIGINS. Set ALLOWED_ORIGINS env var for production.")
		return defaultOrigins
	}
	if raw == "*" {
		return raw
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ",")
}
