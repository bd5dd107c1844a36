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

// Catalog resolves mission ids.
type Catalog interface {
	Lookup(id int) (models.CatalogMission, bool)
}

type Service struct {
	store   *store.Store
	catalog Catalog
	clock   calendar.Clock
}

func NewService(s *store.Store, c Catalog, clock calendar.Clock) *Service {
	return &Service{store: s, catalog: c, clock: clock}
}

// Today is the current date in the service's timezone.
func (s *Service) Today() calendar.Date { return s.clock.Today() }

// describe fills in the catalog side of each entry.
func (s *Service) describe(entries []Entry) []Entry {
	for i := range entries {
		e := &entries[i]
		e.Mission = MissionRef{ID: e.MissionID, Name: e.SubMission}
		if m, ok := s.catalog.Lookup(e.MissionID); ok {
			e.Mission.Category = m.Category
			if e.Mission.Name == "" {
				e.Mission.Name = m.DisplayName()
			}
		}
	}
	return entries
}

func (s *Service) explicitEntry(m models.DayMission) Entry {
	return s.describe(MergeDay(m.Date, []models.DayMission{m}, nil))[0]
}

// DayView lists what userID sees on day.
func (s *Service) DayView(ctx context.Context, userID int, day calendar.Date) ([]Entry, error) {
	const op = "missions.DayView"
	explicit, err := s.store.ListDayMissions(ctx, userID, day)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	routines, err := s.store.ListRoutines(ctx, userID, calendar.Monday(day))
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	return s.describe(MergeDay(day, explicit, routines)), nil
}

// resolveSubmission runs the catalog checks shared by every write path and
// returns the trimmed label.
func (s *Service) resolveSubmission(op string, missionID int, submission string) (models.CatalogMission, string, error) {
	m, ok := s.catalog.Lookup(missionID)
	if !ok {
		return m, "", apperr.NotFound(op, "mission %d does not exist", missionID)
	}
	label := strings.TrimSpace(submission)
	if label == "" {
		return m, "", apperr.Validation(op, "sub-mission is required")
	}
	if !m.Allows(label) {
		return m, "", apperr.Validation(op, "sub-mission %q is not part of mission %d", label, missionID)
	}
	return m, label, nil
}

const (
	reasonDuplicate  = "duplicate"
	reasonDailyLimit = "daily_limit"
)

// admit applies the per-date checks and returns the reason day is refused,
// or "" when a record may be added.
func admit(ctx context.Context, q *store.Queries, userID int, day calendar.Date, label string) (string, error) {
	exists, err := q.DayMissionExists(ctx, userID, day, label)
	if err != nil {
		return "", err
	}
	if exists {
		return reasonDuplicate, nil
	}
	n, err := q.CountDayMissions(ctx, userID, day)
	if err != nil {
		return "", err
	}
	if n >= MaxPerDay {
		return reasonDailyLimit, nil
	}
	return "", nil
}

// Add records a sub-mission for today. Any other date is refused.
func (s *Service) Add(ctx context.Context, userID int, day calendar.Date, req models.AddMissionRequest) (Entry, error) {
	const op = "missions.Add"
	if !day.Equal(s.clock.Today()) {
		return Entry{}, apperr.Validation(op, "missions can only be added for today")
	}
	_, label, err := s.resolveSubmission(op, req.MissionID, req.Submission)
	if err != nil {
		return Entry{}, err
	}

	rec := models.DayMission{UserID: userID, MissionID: req.MissionID, Date: day, SubMission: label}
	err = s.store.WithTx(ctx, func(q *store.Queries) error {
		if err := q.LockUser(ctx, userID); err != nil {
			return err
		}
		reason, err := admit(ctx, q, userID, day, label)
		if err != nil {
			return err
		}
		switch reason {
		case reasonDuplicate:
			return apperr.Conflict(op, "sub-mission %q was already added on %s", label, day)
		case reasonDailyLimit:
			return apperr.Conflict(op, "at most %d missions can be added per day", MaxPerDay)
		}
		return q.InsertDayMission(ctx, &rec)
	})
	if err != nil {
		return Entry{}, writeError(op, err, label, day)
	}
	return s.explicitEntry(rec), nil
}

// Skip is one date a batch add left alone.
type Skip struct {
	Date   calendar.Date `json:"date"`
	Reason string        `json:"reason"`
}

type BatchResult struct {
	Created        []calendar.Date `json:"created"`
	Skipped        []calendar.Date `json:"skipped"`
	SkippedDetails []Skip          `json:"skipped_details"`
	Missions       []Entry         `json:"missions"`
}

// AddBatch records the sub-mission on every date from start to the end of its
// week. Dates holding the label already, or already full, are skipped; the
// rest commit together.
func (s *Service) AddBatch(ctx context.Context, userID int, start calendar.Date, req models.AddMissionRequest) (BatchResult, error) {
	const op = "missions.AddBatch"
	end := calendar.Sunday(start)
	if end.Before(s.clock.Today()) {
		return BatchResult{}, apperr.Validation(op, "the week of %s has already ended", start)
	}
	_, label, err := s.resolveSubmission(op, req.MissionID, req.Submission)
	if err != nil {
		return BatchResult{}, err
	}

	res := BatchResult{
		Created:        []calendar.Date{},
		Skipped:        []calendar.Date{},
		SkippedDetails: []Skip{},
		Missions:       []Entry{},
	}
	var created []models.DayMission
	err = s.store.WithTx(ctx, func(q *store.Queries) error {
		if err := q.LockUser(ctx, userID); err != nil {
			return err
		}
		for _, day := range calendar.Range(start, end) {
			reason, err := admit(ctx, q, userID, day, label)
			if err != nil {
				return err
			}
			if reason != "" {
				res.Skipped = append(res.Skipped, day)
				res.SkippedDetails = append(res.SkippedDetails, Skip{Date: day, Reason: reason})
				continue
			}
			rec := models.DayMission{UserID: userID, MissionID: req.MissionID, Date: day, SubMission: label}
			if err := q.InsertDayMission(ctx, &rec); err != nil {
				return err
			}
			res.Created = append(res.Created, day)
			created = append(created, rec)
		}
		return nil
	})
	if err != nil {
		return BatchResult{}, writeError(op, err, label, start)
	}
	for _, rec := range created {
		res.Missions = append(res.Missions, s.explicitEntry(rec))
	}
	return res, nil
}

// SetCompleted changes the completed flag of one of userID's records on day.
func (s *Service) SetCompleted(ctx context.Context, userID int, day calendar.Date, id int, completed bool) (Entry, error) {
	const op = "missions.SetCompleted"
	var rec models.DayMission
	err := s.store.WithTx(ctx, func(q *store.Queries) error {
		if err := q.SetDayMissionCompleted(ctx, id, userID, day, completed); err != nil {
			return err
		}
		var err error
		rec, err = q.GetDayMission(ctx, id, userID, day)
		return err
	})
	if errors.Is(err, store.ErrNotFound) {
		return Entry{}, apperr.NotFound(op, "mission record %d not found", id)
	}
	if err != nil {
		return Entry{}, apperr.Internal(op, err)
	}
	return s.explicitEntry(rec), nil
}

func (s *Service) Delete(ctx context.Context, userID int, day calendar.Date, id int) error {
	const op = "missions.Delete"
	err := s.store.DeleteDayMission(ctx, id, userID, day)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound(op, "mission record %d not found", id)
	}
	if err != nil {
		return apperr.Internal(op, err)
	}
	return nil
}

// WeekSummary summarizes the week containing raw. A missing or unreadable
// date means today.
func (s *Service) WeekSummary(ctx context.Context, userID int, raw string) ([]DaySummary, error) {
	const op = "missions.WeekSummary"
	ref, err := calendar.Parse(raw)
	if err != nil {
		ref = s.clock.Today()
	}
	start, end := calendar.Week(ref)

	records, err := s.store.ListDayMissionsBetween(ctx, userID, start, end)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	routines, err := s.store.ListRoutines(ctx, userID, start)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	return SummarizeWeek(ref, records, routines), nil
}

// writeError passes domain errors through and turns a unique violation that
// slipped past the pre-checks into a conflict.
func writeError(op string, err error, label string, day calendar.Date) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, store.ErrDuplicate) {
		return apperr.Conflict(op, "sub-mission %q was already added on %s", label, day)
	}
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound(op, "user not found")
	}
	return apperr.Internal(op, err)
}
