package store

import (
	"context"

	"zerowaste/internal/calendar"
	"zerowaste/internal/models"

	sq "github.com/Masterminds/squirrel"
)

var groupColumns = []string{"id", "name", "color", "created_by", "created_at"}

func (q *Queries) ListGroups(ctx context.Context) ([]models.GroupMission, error) {
	out := []models.GroupMission{}
	err := q.selectInto(ctx, &out, q.sb.Select(groupColumns...).From("group_missions").OrderBy("id"))
	return out, err
}

func (q *Queries) ListGroupsByID(ctx context.Context, ids []int) ([]models.GroupMission, error) {
	out := []models.GroupMission{}
	if len(ids) == 0 {
		return out, nil
	}
	err := q.selectInto(ctx, &out, q.sb.Select(groupColumns...).From("group_missions").
		Where(sq.Eq{"id": ids}).OrderBy("id"))
	return out, err
}

func (q *Queries) GetGroup(ctx context.Context, id int) (models.GroupMission, error) {
	var g models.GroupMission
	err := q.get(ctx, &g, q.sb.Select(groupColumns...).From("group_missions").Where(sq.Eq{"id": id}))
	return g, err
}

// LockGroup reads a group and, on postgres, holds its row until the
// transaction ends so concurrent joiners see each other's member counts.
func (q *Queries) LockGroup(ctx context.Context, id int) (models.GroupMission, error) {
	b := q.sb.Select(groupColumns...).From("group_missions").Where(sq.Eq{"id": id})
	if q.postgres {
		b = b.Suffix("FOR UPDATE")
	}
	var g models.GroupMission
	err := q.get(ctx, &g, b)
	return g, err
}

func (q *Queries) InsertGroup(ctx context.Context, g *models.GroupMission) error {
	if g.Color == "" {
		g.Color = models.DefaultGroupColor
	}
	id, err := q.insert(ctx, q.sb.Insert("group_missions").
		Columns("name", "color", "created_by").
		Values(g.Name, g.Color, g.CreatedBy))
	if err != nil {
		return err
	}
	g.ID = id
	return nil
}

func (q *Queries) memberQuery() sq.SelectBuilder {
	return q.sb.Select("gm.id", "gm.group_mission_id", "gm.user_id", "u.name AS user_name", "gm.joined_at").
		From("group_members gm").
		Join("users u ON u.id = gm.user_id")
}

// ListMembers returns the rosters of the given groups, or of every group when
// no id is passed, ordered by group then join order.
func (q *Queries) ListMembers(ctx context.Context, groupIDs ...int) ([]models.GroupMember, error) {
	b := q.memberQuery().OrderBy("gm.group_mission_id", "gm.id")
	if len(groupIDs) > 0 {
		b = b.Where(sq.Eq{"gm.group_mission_id": groupIDs})
	}
	out := []models.GroupMember{}
	err := q.selectInto(ctx, &out, b)
	return out, err
}

// ListMemberships returns the groups userID belongs to.
func (q *Queries) ListMemberships(ctx context.Context, userID int) ([]models.GroupMember, error) {
	out := []models.GroupMember{}
	err := q.selectInto(ctx, &out, q.memberQuery().Where(sq.Eq{"gm.user_id": userID}).OrderBy("gm.id"))
	return out, err
}

func (q *Queries) CountMembers(ctx context.Context, groupID int) (int, error) {
	return q.count(ctx, "group_members", sq.Eq{"group_mission_id": groupID})
}

func (q *Queries) CountUserGroups(ctx context.Context, userID int) (int, error) {
	return q.count(ctx, "group_members", sq.Eq{"user_id": userID})
}

func (q *Queries) IsMember(ctx context.Context, groupID, userID int) (bool, error) {
	n, err := q.count(ctx, "group_members", sq.Eq{"group_mission_id": groupID, "user_id": userID})
	return n > 0, err
}

func (q *Queries) InsertMember(ctx context.Context, groupID, userID int) error {
	_, err := q.insert(ctx, q.sb.Insert("group_members").
		Columns("group_mission_id", "user_id").Values(groupID, userID))
	return err
}

func (q *Queries) DeleteMember(ctx context.Context, groupID, userID int) error {
	return q.execOne(ctx, q.sb.Delete("group_members").
		Where(sq.Eq{"group_mission_id": groupID, "user_id": userID}))
}

// UpsertCheck records userID's completion state for the group on date.
func (q *Queries) UpsertCheck(ctx context.Context, c models.GroupMissionCheck) error {
	_, err := q.exec(ctx, q.sb.Insert("group_mission_checks").
		Columns("group_mission_id", "user_id", "date", "completed").
		Values(c.GroupMissionID, c.UserID, c.Date, c.Completed).
		Suffix("ON CONFLICT (group_mission_id, user_id, date) DO UPDATE SET completed = excluded.completed"))
	return err
}

// CheckStates returns, for each of the groups, whether userID has a completed
// check on date.
func (q *Queries) CheckStates(ctx context.Context, userID int, date calendar.Date, groupIDs []int) (map[int]bool, error) {
	out := map[int]bool{}
	if len(groupIDs) == 0 {
		return out, nil
	}
	var checks []models.GroupMissionCheck
	err := q.selectInto(ctx, &checks, q.sb.Select("id", "group_mission_id", "user_id", "date", "completed").
		From("group_mission_checks").
		Where(sq.Eq{"user_id": userID, "date": date, "group_mission_id": groupIDs}))
	if err != nil {
		return nil, err
	}
	for _, c := range checks {
		out[c.GroupMissionID] = c.Completed
	}
	return out, nil
}

// ListCompletedChecks returns every completed group check.
func (q *Queries) ListCompletedChecks(ctx context.Context) ([]models.GroupMissionCheck, error) {
	out := []models.GroupMissionCheck{}
	err := q.selectInto(ctx, &out, q.sb.Select("id", "group_mission_id", "user_id", "date", "completed").
		From("group_mission_checks").
		Where(sq.Eq{"completed": true}).
		OrderBy("group_mission_id", "date", "user_id"))
	return out, err
}

// CompletedCheckCounts returns the number of completed checks per group.
func (q *Queries) CompletedCheckCounts(ctx context.Context, groupIDs []int) (map[int]int, error) {
	out := map[int]int{}
	if len(groupIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		GroupID int `db:"group_mission_id"`
		N       int `db:"n"`
	}
	err := q.selectInto(ctx, &rows, q.sb.Select("group_mission_id", "count(*) AS n").
		From("group_mission_checks").
		Where(sq.Eq{"group_mission_id": groupIDs, "completed": true}).
		GroupBy("group_mission_id"))
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.GroupID] = r.N
	}
	return out, nil
}
