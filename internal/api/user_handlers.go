package api

import (
	"errors"
	"strings"

	"zerowaste/internal/models"
	"zerowaste/internal/store"

	"github.com/gofiber/fiber/v2"
)

// GetMeHandler returns the caller's profile.
func GetMeHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := s.store.GetUser(c.UserContext(), currentUser(c))
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		if err != nil {
			return err
		}
		return c.JSON(user)
	}
}

// UpdateMeHandler changes the profile fields present in the body.
func UpdateMeHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := currentUser(c)

		var req models.UpdateUserRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name must not be empty")
			}
			req.Name = &name
		}

		err := s.store.UpdateUserProfile(c.UserContext(), userID, req)
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		if err != nil {
			return err
		}

		user, err := s.store.GetUser(c.UserContext(), userID)
		if err != nil {
			return err
		}
		return c.JSON(user)
	}
}
