package api

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes registers every endpoint. Authentication is attached per group
// so public and protected routes do not depend on registration order.
func SetupRoutes(app *fiber.App, s *Server) {
	api := app.Group("/api")
	authed := AuthMiddleware(s)

	api.Get("/config", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"disableRegistration": s.cfg.DisableRegistration,
		})
	})

	auth := api.Group("/auth")
	if !s.cfg.DisableRegistration {
		auth.Post("/register", RegisterHandler(s))
	}
	auth.Post("/login", LoginHandler(s))
	auth.Post("/refresh", RefreshTokenHandler(s))
	auth.Post("/logout", LogoutHandler(s))

	api.Get("/push/vapid-public-key", VapidPublicKeyHandler(s))
	api.Get("/missions/catalog", CatalogHandler(s))

	api.Get("/server/date", authed, func(c *fiber.Ctx) error {
		return c.JSON(s.clock.Today())
	})

	users := api.Group("/users", authed)
	users.Get("/me", GetMeHandler(s))
	users.Put("/me", UpdateMeHandler(s))

	// week-summary has one segment after /days and the day routes have
	// three, so neither pattern can match the other's paths.
	days := api.Group("/days", authed)
	days.Get("/week-summary", WeekSummaryHandler(s))
	days.Get("/:date/missions", DayMissionsHandler(s))
	days.Post("/:date/missions", AddDayMissionHandler(s))
	days.Patch("/:date/missions/:id<int>/complete", CompleteDayMissionHandler(s))
	days.Delete("/:date/missions/:id<int>", DeleteDayMissionHandler(s))

	routines := api.Group("/personal-routines", authed)
	routines.Post("/", CreateRoutineHandler(s))
	routines.Get("/", ListRoutinesHandler(s))
	routines.Get("/week/:date", WeekRoutinesHandler(s))
	routines.Delete("/:id<int>", DeleteRoutineHandler(s))

	groups := api.Group("/group-missions", authed)
	groups.Get("/", ListGroupsHandler(s))
	groups.Post("/", CreateGroupHandler(s))
	groups.Get("/my", MyGroupsHandler(s))
	groups.Get("/recommended", RecommendedGroupsHandler(s))
	groups.Get("/:id<int>", GetGroupHandler(s))
	groups.Post("/:id<int>/join", JoinGroupHandler(s))
	groups.Delete("/:id<int>/leave", LeaveGroupHandler(s))
	groups.Post("/:id<int>/check", CheckGroupHandler(s))
	groups.Post("/:id<int>/invite", InviteHandler(s))

	invites := api.Group("/invites", authed)
	invites.Get("/received", ReceivedInvitesHandler(s))
	invites.Post("/:id<int>/accept", AcceptInviteHandler(s))
	invites.Delete("/:id<int>/decline", DeclineInviteHandler(s))

	friends := api.Group("/friends", authed)
	friends.Get("/", ListFriendsHandler(s))
	friends.Post("/", AddFriendHandler(s))
	friends.Delete("/:id<int>", RemoveFriendHandler(s))

	ranking := api.Group("/ranking", authed)
	ranking.Get("/personal", PersonalRankingHandler(s))
	ranking.Get("/group", GroupRankingHandler(s))
	ranking.Get("/my", MyRankingHandler(s))

	push := api.Group("/push", authed)
	push.Post("/subscribe", SubscribePushHandler(s))
	push.Delete("/unsubscribe", UnsubscribePushHandler(s))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
