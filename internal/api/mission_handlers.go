package api

import (
	"zerowaste/internal/calendar"
	"zerowaste/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler lists the missions users can pick from.
func CatalogHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(s.catalog.Entries())
	}
}

// DayMissionsHandler returns the merged day view for :date.
func DayMissionsHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		day, err := pathDate(c, "date")
		if err != nil {
			return err
		}
		entries, err := s.missions.DayView(c.UserContext(), currentUser(c), day)
		if err != nil {
			return err
		}
		return c.JSON(entries)
	}
}

// AddDayMissionHandler adds a sub-mission to today, or with apply_to_week to
// every remaining day of the week.
func AddDayMissionHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		day, err := pathDate(c, "date")
		if err != nil {
			return err
		}
		var req models.AddMissionRequest
		if err := bind(c, &req); err != nil {
			return err
		}

		if req.ApplyToWeek {
			res, err := s.missions.AddBatch(c.UserContext(), currentUser(c), day, req)
			if err != nil {
				return err
			}
			return c.Status(fiber.StatusCreated).JSON(res)
		}

		entry, err := s.missions.Add(c.UserContext(), currentUser(c), day, req)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(entry)
	}
}

func CompleteDayMissionHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		day, err := pathDate(c, "date")
		if err != nil {
			return err
		}
		var req models.ToggleCompleteRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		entry, err := s.missions.SetCompleted(c.UserContext(), currentUser(c), day, pathID(c, "id"), req.Completed)
		if err != nil {
			return err
		}
		return c.JSON(entry)
	}
}

func DeleteDayMissionHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		day, err := pathDate(c, "date")
		if err != nil {
			return err
		}
		if err := s.missions.Delete(c.UserContext(), currentUser(c), day, pathID(c, "id")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// WeekSummaryHandler never rejects the date query: anything unreadable means
// the current week.
func WeekSummaryHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summary, err := s.missions.WeekSummary(c.UserContext(), currentUser(c), c.Query("date"))
		if err != nil {
			return err
		}
		return c.JSON(summary)
	}
}

func CreateRoutineHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateRoutineRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		r, created, err := s.missions.CreateRoutine(c.UserContext(), currentUser(c), req)
		if err != nil {
			return err
		}
		status := fiber.StatusOK
		if created {
			status = fiber.StatusCreated
		}
		return c.Status(status).JSON(r)
	}
}

// ListRoutinesHandler lists the routines of the week named by the
// week_start_date query, or the current week when it is absent.
func ListRoutinesHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var day calendar.Date
		if raw := c.Query("week_start_date"); raw != "" {
			d, err := calendar.Parse(raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid week_start_date, expected YYYY-MM-DD")
			}
			day = d
		}
		list, err := s.missions.ListRoutines(c.UserContext(), currentUser(c), day)
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

func WeekRoutinesHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		day, err := pathDate(c, "date")
		if err != nil {
			return err
		}
		list, err := s.missions.ListRoutines(c.UserContext(), currentUser(c), day)
		if err != nil {
			return err
		}
		return c.JSON(list)
	}
}

func DeleteRoutineHandler(s *Server) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := s.missions.DeleteRoutine(c.UserContext(), currentUser(c), pathID(c, "id")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
