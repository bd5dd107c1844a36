package missions

import (
	"context"
	"errors"
	"strings"

	"zerowaste/internal/apperr"
	"zerowaste/internal/calendar"
	"zerowaste/internal/models"
	"zerowaste/internal/store"
)

// CreateRoutine registers a routine for the week of req.Date, shown from
// req.Date on. created is false when the same routine already existed; it is
// then returned unchanged.
func (s *Service) CreateRoutine(ctx context.Context, userID int, req models.CreateRoutineRequest) (r models.WeeklyRoutine, created bool, err error) {
	const op = "missions.CreateRoutine"
	if req.Date.IsZero() {
		return r, false, apperr.Validation(op, "date is required")
	}
	weekStart := calendar.Monday(req.Date)
	if req.WeekStartDate != nil && !req.WeekStartDate.IsZero() {
		ws := *req.WeekStartDate
		if ws.Weekday() != 0 {
			return r, false, apperr.Validation(op, "week_start_date %s is not a Monday", ws)
		}
		if !req.Date.Between(ws, calendar.Sunday(ws)) {
			return r, false, apperr.Validation(op, "date %s is not in the week starting %s", req.Date, ws)
		}
		weekStart = ws
	}

	m, ok := s.catalog.Lookup(req.MissionID)
	if !ok {
		return r, false, apperr.NotFound(op, "mission %d does not exist", req.MissionID)
	}
	label := strings.TrimSpace(req.Submission)
	if label == "" {
		label = m.DisplayName()
	}
	if !m.Allows(label) {
		return r, false, apperr.Validation(op, "sub-mission %q is not part of mission %d", label, req.MissionID)
	}

	err = s.store.WithTx(ctx, func(q *store.Queries) error {
		if err := q.LockUser(ctx, userID); err != nil {
			return err
		}
		existing, err := q.FindRoutine(ctx, userID, weekStart, req.MissionID, label)
		if err == nil {
			r = existing
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		r = models.WeeklyRoutine{
			UserID:        userID,
			MissionID:     req.MissionID,
			SubMission:    label,
			WeekStartDate: weekStart,
			StartDate:     req.Date,
		}
		if err := q.InsertRoutine(ctx, &r); err != nil {
			return err
		}
		created = true
		return nil
	})
	if errors.Is(err, store.ErrDuplicate) {
		return r, false, apperr.Conflict(op, "routine already registered for this week")
	}
	if errors.Is(err, store.ErrNotFound) {
		return r, false, apperr.NotFound(op, "user not found")
	}
	if err != nil {
		return r, false, apperr.Internal(op, err)
	}
	return r, created, nil
}

// ListRoutines returns the routines of the week containing day. A zero day
// means the current week.
func (s *Service) ListRoutines(ctx context.Context, userID int, day calendar.Date) ([]models.WeeklyRoutine, error) {
	if day.IsZero() {
		day = s.clock.Today()
	}
	list, err := s.store.ListRoutines(ctx, userID, calendar.Monday(day))
	if err != nil {
		return nil, apperr.Internal("missions.ListRoutines", err)
	}
	return list, nil
}

func (s *Service) DeleteRoutine(ctx context.Context, userID, id int) error {
	const op = "missions.DeleteRoutine"
	err := s.store.DeleteRoutine(ctx, id, userID)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound(op, "routine %d not found", id)
	}
	if err != nil {
		return apperr.Internal(op, err)
	}
	return nil
}
