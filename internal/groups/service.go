// Package groups manages shared group missions: membership, daily checks,
// invites and the friend graph invites are sent along.
package groups

import (
	"context"
	"errors"
	"strings"
	"time"

	"zerowaste/internal/apperr"
	"zerowaste/internal/calendar"
	"zerowaste/internal/models"
	"zerowaste/internal/store"
)

const (
	MaxMembersPerGroup = 3
	MaxGroupsPerUser   = 2

	// PointsPerCheck is what each completed check adds to a group's total.
	PointsPerCheck = 2
)

// InviteNotice describes an invite that was just created.
type InviteNotice struct {
	Invite models.Invite
	Group  models.GroupMission
	From   models.User
	To     models.User
}

// Notifier delivers invite notices. Delivery failures are the notifier's to
// log; they never fail the invite.
type Notifier interface {
	InviteCreated(ctx context.Context, n InviteNotice)
}

type Service struct {
	store    *store.Store
	clock    calendar.Clock
	notifier Notifier
}

func NewService(s *store.Store, clock calendar.Clock, n Notifier) *Service {
	return &Service{store: s, clock: clock, notifier: n}
}

// View is a group as clients see it.
type View struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Color        string   `json:"color"`
	Participants []string `json:"participants"`
	MemberCount  int      `json:"member_count"`
	TotalScore   int      `json:"total_score"`
	Checked      *bool    `json:"checked,omitempty"`
}

func (s *Service) views(ctx context.Context, q *store.Queries, groups []models.GroupMission) ([]View, error) {
	out := make([]View, 0, len(groups))
	if len(groups) == 0 {
		return out, nil
	}
	ids := make([]int, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
	}
	members, err := q.ListMembers(ctx, ids...)
	if err != nil {
		return nil, err
	}
	names := map[int][]string{}
	for _, m := range members {
		names[m.GroupMissionID] = append(names[m.GroupMissionID], m.UserName)
	}
	checks, err := q.CompletedCheckCounts(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		participants := names[g.ID]
		if participants == nil {
			participants = []string{}
		}
		out = append(out, View{
			ID:           g.ID,
			Name:         g.Name,
			Color:        g.Color,
			Participants: participants,
			MemberCount:  len(participants),
			TotalScore:   checks[g.ID] * PointsPerCheck,
		})
	}
	return out, nil
}

func (s *Service) view(ctx context.Context, q *store.Queries, g models.GroupMission) (View, error) {
	v, err := s.views(ctx, q, []models.GroupMission{g})
	if err != nil {
		return View{}, err
	}
	return v[0], nil
}

// List returns every group.
func (s *Service) List(ctx context.Context) ([]View, error) {
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		return nil, apperr.Internal("groups.List", err)
	}
	v, err := s.views(ctx, &s.store.Queries, groups)
	if err != nil {
		return nil, apperr.Internal("groups.List", err)
	}
	return v, nil
}

func (s *Service) memberGroups(ctx context.Context, userID int) ([]models.GroupMission, error) {
	memberships, err := s.store.ListMemberships(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(memberships))
	for i, m := range memberships {
		ids[i] = m.GroupMissionID
	}
	return s.store.ListGroupsByID(ctx, ids)
}

// Mine returns userID's groups. When rawDate parses, each view carries
// whether userID checked the group on that date; otherwise none does.
func (s *Service) Mine(ctx context.Context, userID int, rawDate string) ([]View, error) {
	const op = "groups.Mine"
	groups, err := s.memberGroups(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	views, err := s.views(ctx, &s.store.Queries, groups)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	day, perr := calendar.Parse(rawDate)
	if rawDate == "" || perr != nil {
		return views, nil
	}

	ids := make([]int, len(views))
	for i, v := range views {
		ids[i] = v.ID
	}
	states, err := s.store.CheckStates(ctx, userID, day, ids)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	for i := range views {
		checked := states[views[i].ID]
		views[i].Checked = &checked
	}
	return views, nil
}

// Recommended lists groups userID is not in that still have room.
func (s *Service) Recommended(ctx context.Context, userID int) ([]View, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	memberships, err := s.store.ListMemberships(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("groups.Recommended", err)
	}
	mine := map[int]bool{}
	for _, m := range memberships {
		mine[m.GroupMissionID] = true
	}
	out := []View{}
	for _, v := range all {
		if !mine[v.ID] && v.MemberCount < MaxMembersPerGroup {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, userID int, req models.CreateGroupRequest) (View, error) {
	const op = "groups.Create"
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return View{}, apperr.Validation(op, "group name is required")
	}
	g := models.GroupMission{Name: name, Color: strings.TrimSpace(req.Color), CreatedBy: userID}
	if err := s.store.InsertGroup(ctx, &g); err != nil {
		return View{}, apperr.Internal(op, err)
	}
	v, err := s.view(ctx, &s.store.Queries, g)
	if err != nil {
		return View{}, apperr.Internal(op, err)
	}
	return v, nil
}

func (s *Service) Get(ctx context.Context, id int) (View, error) {
	const op = "groups.Get"
	g, err := s.store.GetGroup(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return View{}, apperr.NotFound(op, "group %d not found", id)
	}
	if err != nil {
		return View{}, apperr.Internal(op, err)
	}
	v, err := s.view(ctx, &s.store.Queries, g)
	if err != nil {
		return View{}, apperr.Internal(op, err)
	}
	return v, nil
}

// admitMember checks the membership rules and adds userID to groupID.
func admitMember(ctx context.Context, q *store.Queries, op string, groupID, userID int) error {
	member, err := q.IsMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if member {
		return apperr.Conflict(op, "already a member of this group")
	}
	n, err := q.CountUserGroups(ctx, userID)
	if err != nil {
		return err
	}
	if n >= MaxGroupsPerUser {
		return apperr.Conflict(op, "a user can join at most %d groups", MaxGroupsPerUser)
	}
	n, err = q.CountMembers(ctx, groupID)
	if err != nil {
		return err
	}
	if n >= MaxMembersPerGroup {
		return apperr.Conflict(op, "group is full (at most %d members)", MaxMembersPerGroup)
	}
	return q.InsertMember(ctx, groupID, userID)
}

func (s *Service) Join(ctx context.Context, userID, groupID int) (View, error) {
	const op = "groups.Join"
	var v View
	err := s.store.WithTx(ctx, func(q *store.Queries) error {
		if err := q.LockUser(ctx, userID); err != nil {
			return err
		}
		g, err := q.LockGroup(ctx, groupID)
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound(op, "group %d not found", groupID)
		}
		if err != nil {
			return err
		}
		if err := admitMember(ctx, q, op, groupID, userID); err != nil {
			return err
		}
		v, err = s.view(ctx, q, g)
		return err
	})
	return v, wrap(op, err)
}

func (s *Service) Leave(ctx context.Context, userID, groupID int) error {
	const op = "groups.Leave"
	err := s.store.DeleteMember(ctx, groupID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound(op, "not a member of group %d", groupID)
	}
	if err != nil {
		return apperr.Internal(op, err)
	}
	return nil
}

// Check records userID's completion of the group mission on req.Date.
func (s *Service) Check(ctx context.Context, userID, groupID int, req models.GroupCheckRequest) error {
	const op = "groups.Check"
	if req.Date.IsZero() {
		return apperr.Validation(op, "date is required")
	}
	err := s.store.WithTx(ctx, func(q *store.Queries) error {
		if _, err := q.GetGroup(ctx, groupID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return apperr.NotFound(op, "group %d not found", groupID)
			}
			return err
		}
		member, err := q.IsMember(ctx, groupID, userID)
		if err != nil {
			return err
		}
		if !member {
			return apperr.Forbidden(op, "not a member of group %d", groupID)
		}
		return q.UpsertCheck(ctx, models.GroupMissionCheck{
			GroupMissionID: groupID,
			UserID:         userID,
			Date:           req.Date,
			Completed:      req.Completed,
		})
	})
	return wrap(op, err)
}

// wrap passes domain errors through and classifies the rest.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	switch {
	case errors.Is(err, store.ErrDuplicate):
		return apperr.Conflict(op, "already exists")
	case errors.Is(err, store.ErrNotFound):
		return apperr.NotFound(op, "not found")
	}
	return apperr.Internal(op, err)
}

// since returns the first day of the trailing window of n days ending today.
func (s *Service) since(n int) calendar.Date {
	return s.clock.Today().AddDays(-n)
}

// FriendView is how a friend is listed. Field names follow the client.
type FriendView struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	ActiveDays   int    `json:"activeDays"`
	ProfileColor string `json:"profileColor"`
}

type InviteView struct {
	ID           int        `json:"id"`
	GroupMission View       `json:"group_mission"`
	FromUser     FriendView `json:"from_user"`
	CreatedAt    time.Time  `json:"created_at"`
}
