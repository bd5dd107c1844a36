// Package auth issues and verifies the access and refresh JWTs and hashes
// passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"zerowaste/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID    int    `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type,omitempty"`
	jwt.RegisteredClaims
}

// Manager signs tokens with separate secrets for access and refresh tokens.
type Manager struct {
	accessSecret        []byte
	refreshSecret       []byte
	accessTTL           time.Duration
	refreshDays         int
	rememberRefreshDays int
	now                 func() time.Time
}

func NewManager(cfg config.Config) *Manager {
	refresh := cfg.JWTRefreshSecret
	if refresh == "" {
		refresh = cfg.JWTSecret + "-refresh"
	}
	return &Manager{
		accessSecret:        []byte(cfg.JWTSecret),
		refreshSecret:       []byte(refresh),
		accessTTL:           time.Duration(cfg.AccessTokenMinutes) * time.Minute,
		refreshDays:         cfg.RefreshTokenDays,
		rememberRefreshDays: cfg.RememberRefreshDays,
		now:                 time.Now,
	}
}

// GenerateToken creates a short-lived access token.
func (m *Manager) GenerateToken(userID int, email string) (string, error) {
	return m.sign(userID, email, TokenTypeAccess, m.accessTTL, m.accessSecret)
}

// GenerateRefreshToken creates a refresh token that expires after days;
// zero or less uses the default refresh lifetime. Every token carries a
// unique ID so two tokens minted in the same second still differ.
func (m *Manager) GenerateRefreshToken(userID int, email string, days int) (string, error) {
	if days <= 0 {
		days = m.refreshDays
	}
	return m.sign(userID, email, TokenTypeRefresh, time.Duration(days)*24*time.Hour, m.refreshSecret)
}

func (m *Manager) sign(userID int, email, typ string, ttl time.Duration, secret []byte) (string, error) {
	now := m.now()
	claims := Claims{
		UserID:    userID,
		Email:     email,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	return m.parse(tokenString, TokenTypeAccess, m.accessSecret)
}

func (m *Manager) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return m.parse(tokenString, TokenTypeRefresh, m.refreshSecret)
}

func (m *Manager) parse(tokenString, typ string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != typ {
		return nil, errors.New("invalid token type")
	}
	return claims, nil
}

// RefreshDays returns the refresh token lifetime for the remember flag.
func (m *Manager) RefreshDays(remember bool) int {
	if remember {
		return m.rememberRefreshDays
	}
	return m.refreshDays
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

func CheckPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
