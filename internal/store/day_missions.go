package store

import (
	"context"

	"zerowaste/internal/calendar"
	"zerowaste/internal/models"

	sq "github.com/Masterminds/squirrel"
)

var dayMissionColumns = []string{"id", "user_id", "mission_id", "date", "sub_mission", "completed", "created_at"}

// ListDayMissions returns the user's explicit records for one date in store
// (insertion) order.
func (q *Queries) ListDayMissions(ctx context.Context, userID int, date calendar.Date) ([]models.DayMission, error) {
	out := []models.DayMission{}
	err := q.selectInto(ctx, &out, q.sb.Select(dayMissionColumns...).From("day_missions").
		Where(sq.Eq{"user_id": userID, "date": date}).OrderBy("id"))
	return out, err
}

// ListDayMissionsBetween returns the user's records for from..to inclusive.
func (q *Queries) ListDayMissionsBetween(ctx context.Context, userID int, from, to calendar.Date) ([]models.DayMission, error) {
	out := []models.DayMission{}
	err := q.selectInto(ctx, &out, q.sb.Select(dayMissionColumns...).From("day_missions").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.GtOrEq{"date": from}).
		Where(sq.LtOrEq{"date": to}).
		OrderBy("date", "id"))
	return out, err
}

func (q *Queries) GetDayMission(ctx context.Context, id, userID int, date calendar.Date) (models.DayMission, error) {
	var m models.DayMission
	err := q.get(ctx, &m, q.sb.Select(dayMissionColumns...).From("day_missions").
		Where(sq.Eq{"id": id, "user_id": userID, "date": date}))
	return m, err
}

func (q *Queries) CountDayMissions(ctx context.Context, userID int, date calendar.Date) (int, error) {
	return q.count(ctx, "day_missions", sq.Eq{"user_id": userID, "date": date})
}

func (q *Queries) DayMissionExists(ctx context.Context, userID int, date calendar.Date, subMission string) (bool, error) {
	n, err := q.count(ctx, "day_missions", sq.Eq{"user_id": userID, "date": date, "sub_mission": subMission})
	return n > 0, err
}

// InsertDayMission stores m and fills in its id. A second record for the same
// (user, date, sub_mission) fails with ErrDuplicate.
func (q *Queries) InsertDayMission(ctx context.Context, m *models.DayMission) error {
	id, err := q.insert(ctx, q.sb.Insert("day_missions").
		Columns("user_id", "mission_id", "date", "sub_mission", "completed").
		Values(m.UserID, m.MissionID, m.Date, m.SubMission, m.Completed))
	if err != nil {
		return err
	}
	m.ID = id
	return nil
}

func (q *Queries) SetDayMissionCompleted(ctx context.Context, id, userID int, date calendar.Date, completed bool) error {
	return q.execOne(ctx, q.sb.Update("day_missions").Set("completed", completed).
		Where(sq.Eq{"id": id, "user_id": userID, "date": date}))
}

func (q *Queries) DeleteDayMission(ctx context.Context, id, userID int, date calendar.Date) error {
	return q.execOne(ctx, q.sb.Delete("day_missions").
		Where(sq.Eq{"id": id, "user_id": userID, "date": date}))
}

// CompletedDay is the number of completed records a user has on one date.
type CompletedDay struct {
	UserID    int           `db:"user_id"`
	Date      calendar.Date `db:"date"`
	Completed int           `db:"completed_count"`
}

// ListCompletedDays aggregates completed records per (user, date) across all
// users.
func (q *Queries) ListCompletedDays(ctx context.Context) ([]CompletedDay, error) {
	out := []CompletedDay{}
	err := q.selectInto(ctx, &out, q.sb.Select("user_id", "date", "count(*) AS completed_count").
		From("day_missions").
		Where(sq.Eq{"completed": true}).
		GroupBy("user_id", "date").
		OrderBy("user_id", "date"))
	return out, err
}

// ActiveDays counts, per user, the distinct dates on or after since with at
// least one completed record.
func (q *Queries) ActiveDays(ctx context.Context, userIDs []int, since calendar.Date) (map[int]int, error) {
	out := map[int]int{}
	if len(userIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		UserID int `db:"user_id"`
		Days   int `db:"days"`
	}
	err := q.selectInto(ctx, &rows, q.sb.Select("user_id", "count(DISTINCT date) AS days").
		From("day_missions").
		Where(sq.Eq{"user_id": userIDs, "completed": true}).
		Where(sq.GtOrEq{"date": since}).
		GroupBy("user_id"))
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.UserID] = r.Days
	}
	return out, nil
}
