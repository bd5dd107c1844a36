package api

import (
	"errors"
	"log"

	"zerowaste/internal/apperr"
	"zerowaste/internal/auth"
	"zerowaste/internal/calendar"
	"zerowaste/internal/catalog"
	"zerowaste/internal/config"
	"zerowaste/internal/groups"
	"zerowaste/internal/missions"
	"zerowaste/internal/notify"
	"zerowaste/internal/ranking"
	"zerowaste/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Server holds everything the handlers need.
type Server struct {
	cfg      config.Config
	clock    calendar.Clock
	store    *store.Store
	tokens   *auth.Manager
	catalog  *catalog.Catalog
	missions *missions.Service
	groups   *groups.Service
	ranking  *ranking.Service
	pusher   *notify.Pusher
}

// NewServer wires the services. Invite notifications go out over push and
// email when those are configured.
func NewServer(cfg config.Config, s *store.Store, cat *catalog.Catalog, clock calendar.Clock) *Server {
	pusher := notify.NewPusher(s, cfg.VapidPublicKey, cfg.VapidPrivateKey, cfg.VapidSubject)
	mailer := notify.NewMailer(notify.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.SMTPFrom,
		UseTLS:   cfg.SMTPUseTLS,
	})
	return &Server{
		cfg:      cfg,
		clock:    clock,
		store:    s,
		tokens:   auth.NewManager(cfg),
		catalog:  cat,
		missions: missions.NewService(s, cat, clock),
		groups:   groups.NewService(s, clock, notify.New(pusher, mailer, cfg.AppURL)),
		ranking:  ranking.NewService(s, clock),
		pusher:   pusher,
	}
}

// NewApp builds the Fiber app with middleware and every route.
func NewApp(s *Server) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})

	app.Use(recover.New())
	app.Use(logger.New())

	origins := s.cfg.AllowedOrigins
	log.Printf("CORS allowed origins: %s", origins)
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		// Credentialed requests cannot be combined with a wildcard origin.
		AllowCredentials: origins != "*",
	}))

	SetupRoutes(app, s)
	return app
}

// ErrorHandler renders every failure as {"error": message}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}

	kind := apperr.KindOf(err)
	code := statusOf(kind)
	if kind == apperr.KindInternal {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(fiber.Map{"error": apperr.Message(err)})
}

func statusOf(k apperr.Kind) int {
	switch k {
	case apperr.KindValidation:
		return fiber.StatusBadRequest
	case apperr.KindConflict:
		return fiber.StatusConflict
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindForbidden:
		return fiber.StatusForbidden
	case apperr.KindUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}
