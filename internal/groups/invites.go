package groups

import (
	"context"
	"errors"

	"zerowaste/internal/apperr"
	"zerowaste/internal/models"
	"zerowaste/internal/store"
)

type InviteResult struct {
	Invited []int `json:"invited"`
	Skipped []int `json:"skipped"`
}

// Invite sends userID's invites to groupID. Invitees that already hold a
// pending invite are skipped; the call fails only when all of them are.
func (s *Service) Invite(ctx context.Context, userID, groupID int, friendIDs []int) (InviteResult, error) {
	const op = "groups.Invite"
	ids := dedupe(friendIDs)
	if len(ids) == 0 {
		return InviteResult{}, apperr.Validation(op, "friend_ids is required")
	}
	for _, id := range ids {
		if id == userID {
			return InviteResult{}, apperr.Validation(op, "cannot invite yourself")
		}
	}

	res := InviteResult{Invited: []int{}, Skipped: []int{}}
	var notices []InviteNotice
	err := s.store.WithTx(ctx, func(q *store.Queries) error {
		g, err := q.GetGroup(ctx, groupID)
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound(op, "group %d not found", groupID)
		}
		if err != nil {
			return err
		}
		member, err := q.IsMember(ctx, groupID, userID)
		if err != nil {
			return err
		}
		if !member {
			return apperr.NotFound(op, "not a member of group %d", groupID)
		}
		n, err := q.CountMembers(ctx, groupID)
		if err != nil {
			return err
		}
		if n+len(ids) > MaxMembersPerGroup {
			return apperr.Conflict(op, "group would exceed %d members", MaxMembersPerGroup)
		}
		from, err := q.GetUser(ctx, userID)
		if err != nil {
			return err
		}

		for _, id := range ids {
			to, err := q.GetUser(ctx, id)
			if errors.Is(err, store.ErrNotFound) {
				return apperr.NotFound(op, "user %d not found", id)
			}
			if err != nil {
				return err
			}
			pending, err := q.PendingInviteExists(ctx, groupID, id)
			if err != nil {
				return err
			}
			if pending {
				res.Skipped = append(res.Skipped, id)
				continue
			}
			inv := models.Invite{GroupMissionID: groupID, FromUserID: userID, ToUserID: id}
			err = q.InsertInvite(ctx, &inv)
			if errors.Is(err, store.ErrDuplicate) {
				return apperr.Conflict(op, "user %d already has a pending invite to this group", id)
			}
			if err != nil {
				return err
			}
			res.Invited = append(res.Invited, id)
			notices = append(notices, InviteNotice{Invite: inv, Group: g, From: from, To: to})
		}
		if len(res.Invited) == 0 {
			return apperr.Conflict(op, "every invitee already has a pending invite")
		}
		return nil
	})
	if err != nil {
		return InviteResult{}, wrap(op, err)
	}

	if s.notifier != nil {
		for _, n := range notices {
			s.notifier.InviteCreated(ctx, n)
		}
	}
	return res, nil
}

func dedupe(ids []int) []int {
	seen := map[int]bool{}
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// Received lists the pending invites addressed to userID.
func (s *Service) Received(ctx context.Context, userID int) ([]InviteView, error) {
	const op = "groups.Received"
	invites, err := s.store.ListPendingInvites(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	out := make([]InviteView, 0, len(invites))
	if len(invites) == 0 {
		return out, nil
	}

	var groupIDs, senderIDs []int
	for _, inv := range invites {
		groupIDs = append(groupIDs, inv.GroupMissionID)
		senderIDs = append(senderIDs, inv.FromUserID)
	}
	groups, err := s.store.ListGroupsByID(ctx, dedupe(groupIDs))
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	views, err := s.views(ctx, &s.store.Queries, groups)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	byGroup := map[int]View{}
	for _, v := range views {
		byGroup[v.ID] = v
	}
	senders, err := s.store.ListUsersByID(ctx, dedupe(senderIDs))
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	bySender := map[int]models.User{}
	for _, u := range senders {
		bySender[u.ID] = u
	}

	for _, inv := range invites {
		from := bySender[inv.FromUserID]
		out = append(out, InviteView{
			ID:           inv.ID,
			GroupMission: byGroup[inv.GroupMissionID],
			FromUser:     FriendView{ID: from.ID, Name: from.Name, ProfileColor: from.ProfileColor},
			CreatedAt:    inv.CreatedAt,
		})
	}
	return out, nil
}

// Accept joins userID to the invite's group under the usual membership rules.
func (s *Service) Accept(ctx context.Context, userID, inviteID int) (View, error) {
	const op = "groups.Accept"
	var v View
	err := s.store.WithTx(ctx, func(q *store.Queries) error {
		if err := q.LockUser(ctx, userID); err != nil {
			return err
		}
		inv, err := q.GetPendingInvite(ctx, inviteID, userID)
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound(op, "invite %d not found", inviteID)
		}
		if err != nil {
			return err
		}
		g, err := q.LockGroup(ctx, inv.GroupMissionID)
		if err != nil {
			return err
		}
		if err := admitMember(ctx, q, op, inv.GroupMissionID, userID); err != nil {
			return err
		}
		if err := q.SetInviteStatus(ctx, inv.ID, models.InviteStatusAccepted); err != nil {
			return err
		}
		v, err = s.view(ctx, q, g)
		return err
	})
	return v, wrap(op, err)
}

func (s *Service) Decline(ctx context.Context, userID, inviteID int) error {
	const op = "groups.Decline"
	err := s.store.WithTx(ctx, func(q *store.Queries) error {
		inv, err := q.GetPendingInvite(ctx, inviteID, userID)
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound(op, "invite %d not found", inviteID)
		}
		if err != nil {
			return err
		}
		return q.SetInviteStatus(ctx, inv.ID, models.InviteStatusDeclined)
	})
	return wrap(op, err)
}
