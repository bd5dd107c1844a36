package api

import (
	"zerowaste/internal/models"

	"github.com/gofiber/fiber/v2"
)

// VapidPublicKeyHandler hands clients the key to subscribe with. It answers
// 503 when push is not configured so the client can skip subscribing.
func VapidPublicKeyHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := s.pusher.PublicKey()
		if key == "" {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Push notifications are not configured")
		}
		return c.JSON(fiber.Map{"publicKey": key})
	}
}

func SubscribePushHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sub models.PushSubscription
		if err := bind(c, &sub); err != nil {
			return err
		}
		if sub.Endpoint == "" || sub.P256dh == "" || sub.Auth == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Missing subscription fields")
		}
		sub.UserID = currentUser(c)

		if err := s.store.UpsertPushSubscription(c.UserContext(), sub); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

func UnsubscribePushHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Endpoint string `json:"endpoint"`
		}
		if err := bind(c, &body); err != nil {
			return err
		}

		if err := s.store.DeletePushSubscription(c.UserContext(), currentUser(c), body.Endpoint); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
