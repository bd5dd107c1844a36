package api

import (
	"zerowaste/internal/models"

	"github.com/gofiber/fiber/v2"
)

func ListGroupsHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := s.groups.List(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

// MyGroupsHandler lists the caller's groups. With a readable ?date= every
// group carries the caller's check state for that day.
func MyGroupsHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := s.groups.Mine(c.UserContext(), currentUser(c), c.Query("date"))
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

func RecommendedGroupsHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := s.groups.Recommended(c.UserContext(), currentUser(c))
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

func CreateGroupHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateGroupRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		v, err := s.groups.Create(c.UserContext(), currentUser(c), req)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(v)
	}
}

func GetGroupHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := s.groups.Get(c.UserContext(), pathID(c, "id"))
		if err != nil {
			return err
		}
		return c.JSON(v)
	}
}

func JoinGroupHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := s.groups.Join(c.UserContext(), currentUser(c), pathID(c, "id"))
		if err != nil {
			return err
		}
		return c.JSON(v)
	}
}

func LeaveGroupHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := s.groups.Leave(c.UserContext(), currentUser(c), pathID(c, "id")); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

func CheckGroupHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.GroupCheckRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		if err := s.groups.Check(c.UserContext(), currentUser(c), pathID(c, "id"), req); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "date": req.Date, "completed": req.Completed})
	}
}

func InviteHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.InviteRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		res, err := s.groups.Invite(c.UserContext(), currentUser(c), pathID(c, "id"), req.FriendIDs)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

func ReceivedInvitesHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := s.groups.Received(c.UserContext(), currentUser(c))
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

func AcceptInviteHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := s.groups.Accept(c.UserContext(), currentUser(c), pathID(c, "id"))
		if err != nil {
			return err
		}
		return c.JSON(v)
	}
}

func DeclineInviteHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := s.groups.Decline(c.UserContext(), currentUser(c), pathID(c, "id")); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

func ListFriendsHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := s.groups.Friends(c.UserContext(), currentUser(c))
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

func AddFriendHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.AddFriendRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		v, err := s.groups.AddFriend(c.UserContext(), currentUser(c), req.FriendID)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(v)
	}
}

func RemoveFriendHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := s.groups.RemoveFriend(c.UserContext(), currentUser(c), pathID(c, "id")); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

func PersonalRankingHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := s.ranking.Personal(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

func GroupRankingHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := s.ranking.Groups(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

func MyRankingHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mine, err := s.ranking.Mine(c.UserContext(), currentUser(c))
		if err != nil {
			return err
		}
		return c.JSON(mine)
	}
}
