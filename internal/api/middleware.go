package api

import (
	"strconv"
	"strings"

	"zerowaste/internal/calendar"

	"github.com/gofiber/fiber/v2"
)

func AuthMiddleware(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing authorization header")
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid authorization header format")
		}

		claims, err := s.tokens.ValidateToken(parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("email", claims.Email)
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) int {
	return c.Locals("userID").(int)
}

// pathDate parses a YYYY-MM-DD route parameter.
func pathDate(c *fiber.Ctx, name string) (calendar.Date, error) {
	d, err := calendar.Parse(c.Params(name))
	if err != nil {
		return calendar.Date{}, fiber.NewError(fiber.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
	}
	return d, nil
}

// pathID reads an :id<int> parameter; the route constraint already rejected
// anything that is not a number.
func pathID(c *fiber.Ctx, name string) int {
	id, _ := strconv.Atoi(c.Params(name))
	return id
}

func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return nil
}
