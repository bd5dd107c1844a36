package api

import (
	"errors"
	"log"
	"strings"
	"time"

	"zerowaste/internal/auth"
	"zerowaste/internal/models"
	"zerowaste/internal/store"

	"github.com/gofiber/fiber/v2"
)

const refreshCookie = "refresh_token"

func RegisterHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.RegisterRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		req.Email = strings.TrimSpace(req.Email)
		req.Name = strings.TrimSpace(req.Name)
		if req.Email == "" || req.Password == "" || req.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email, password and name are required")
		}

		hashedPassword, err := auth.HashPassword(req.Password)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
		}

		user := models.User{Email: req.Email, Name: req.Name, PasswordHash: &hashedPassword}
		if err := s.store.CreateUser(c.UserContext(), &user); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return fiber.NewError(fiber.StatusConflict, "Email already registered")
			}
			return err
		}

		token, err := s.issueTokens(c, user, s.tokens.RefreshDays(req.Remember))
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(models.AuthResponse{Token: token, User: user})
	}
}

func LoginHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if err := bind(c, &req); err != nil {
			return err
		}

		user, err := s.store.GetUserByEmail(c.UserContext(), strings.TrimSpace(req.Email))
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
		}
		if err != nil {
			return err
		}
		// Accounts created through social login have no password.
		if user.PasswordHash == nil || auth.CheckPassword(*user.PasswordHash, req.Password) != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
		}

		token, err := s.issueTokens(c, user, s.tokens.RefreshDays(req.Remember))
		if err != nil {
			return err
		}
		return c.JSON(models.AuthResponse{Token: token, User: user})
	}
}

// issueTokens mints an access token and a refresh token that lives for days,
// persists the refresh token and sets its cookie.
func (s *Server) issueTokens(c *fiber.Ctx, user models.User, days int) (string, error) {
	accessToken, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Failed to generate token")
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID, user.Email, days)
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Failed to generate refresh token")
	}

	expiresAt := time.Now().Add(time.Duration(days) * 24 * time.Hour)
	if err := s.store.StoreRefreshToken(c.UserContext(), user.ID, refreshToken, expiresAt, days); err != nil {
		log.Printf("Failed to store refresh token: %v", err)
		return "", fiber.NewError(fiber.StatusInternalServerError, "Failed to store refresh token")
	}
	s.setRefreshCookie(c, refreshToken, expiresAt)
	return accessToken, nil
}

func (s *Server) setRefreshCookie(c *fiber.Ctx, value string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookie,
		Value:    value,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: "Lax",
		Path:     "/api/auth",
	})
}

// RefreshTokenHandler trades a valid refresh cookie for a new access token
// and rotates the refresh token.
func RefreshTokenHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		refreshToken := c.Cookies(refreshCookie)
		if refreshToken == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Refresh token not found")
		}

		claims, err := s.tokens.ValidateRefreshToken(refreshToken)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired refresh token")
		}

		dbUserID, ttlDays, err := s.store.ValidateRefreshToken(c.UserContext(), refreshToken)
		if err != nil {
			log.Printf("Refresh token DB validation failed: %v", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Refresh token not valid")
		}
		if dbUserID != claims.UserID {
			return fiber.NewError(fiber.StatusUnauthorized, "Token user mismatch")
		}

		user, err := s.store.GetUser(c.UserContext(), claims.UserID)
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "User no longer exists")
		}
		if err != nil {
			return err
		}

		token, err := s.issueTokens(c, user, ttlDays)
		if err != nil {
			return err
		}
		if err := s.store.RevokeRefreshToken(c.UserContext(), refreshToken); err != nil {
			log.Printf("Failed to revoke rotated refresh token: %v", err)
		}
		return c.JSON(fiber.Map{"token": token})
	}
}

// LogoutHandler revokes the refresh token and clears its cookie.
func LogoutHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if old := c.Cookies(refreshCookie); old != "" {
			_ = s.store.RevokeRefreshToken(c.UserContext(), old)
		}
		s.setRefreshCookie(c, "", time.Now().Add(-1*time.Hour))
		return c.JSON(fiber.Map{"message": "Logged out successfully"})
	}
}
