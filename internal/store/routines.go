package store

import (
	"context"

	"zerowaste/internal/calendar"
	"zerowaste/internal/models"

	sq "github.com/Masterminds/squirrel"
)

var routineColumns = []string{"id", "user_id", "mission_id", "sub_mission", "week_start_date", "start_date", "created_at"}

func (q *Queries) ListRoutines(ctx context.Context, userID int, weekStart calendar.Date) ([]models.WeeklyRoutine, error) {
	out := []models.WeeklyRoutine{}
	err := q.selectInto(ctx, &out, q.sb.Select(routineColumns...).From("weekly_personal_routines").
		Where(sq.Eq{"user_id": userID, "week_start_date": weekStart}).OrderBy("id"))
	return out, err
}

func (q *Queries) FindRoutine(ctx context.Context, userID int, weekStart calendar.Date, missionID int, subMission string) (models.WeeklyRoutine, error) {
	var r models.WeeklyRoutine
	err := q.get(ctx, &r, q.sb.Select(routineColumns...).From("weekly_personal_routines").
		Where(sq.Eq{
			"user_id":         userID,
			"week_start_date": weekStart,
			"mission_id":      missionID,
			"sub_mission":     subMission,
		}))
	return r, err
}

func (q *Queries) InsertRoutine(ctx context.Context, r *models.WeeklyRoutine) error {
	id, err := q.insert(ctx, q.sb.Insert("weekly_personal_routines").
		Columns("user_id", "mission_id", "sub_mission", "week_start_date", "start_date").
		Values(r.UserID, r.MissionID, r.SubMission, r.WeekStartDate, r.StartDate))
	if err != nil {
		return err
	}
	r.ID = id
	return nil
}

func (q *Queries) DeleteRoutine(ctx context.Context, id, userID int) error {
	return q.execOne(ctx, q.sb.Delete("weekly_personal_routines").Where(sq.Eq{"id": id, "user_id": userID}))
}
