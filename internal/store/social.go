package store

import (
	"context"

	"zerowaste/internal/models"

	sq "github.com/Masterminds/squirrel"
)

var inviteColumns = []string{"id", "group_mission_id", "from_user_id", "to_user_id", "status", "created_at"}

func (q *Queries) InsertInvite(ctx context.Context, inv *models.Invite) error {
	if inv.Status == "" {
		inv.Status = models.InviteStatusPending
	}
	id, err := q.insert(ctx, q.sb.Insert("invites").
		Columns("group_mission_id", "from_user_id", "to_user_id", "status").
		Values(inv.GroupMissionID, inv.FromUserID, inv.ToUserID, inv.Status))
	if err != nil {
		return err
	}
	inv.ID = id
	return nil
}

func (q *Queries) PendingInviteExists(ctx context.Context, groupID, toUserID int) (bool, error) {
	n, err := q.count(ctx, "invites", sq.Eq{
		"group_mission_id": groupID,
		"to_user_id":       toUserID,
		"status":           models.InviteStatusPending,
	})
	return n > 0, err
}

// GetPendingInvite finds a pending invite addressed to toUserID.
func (q *Queries) GetPendingInvite(ctx context.Context, id, toUserID int) (models.Invite, error) {
	var inv models.Invite
	err := q.get(ctx, &inv, q.sb.Select(inviteColumns...).From("invites").
		Where(sq.Eq{"id": id, "to_user_id": toUserID, "status": models.InviteStatusPending}))
	return inv, err
}

func (q *Queries) ListPendingInvites(ctx context.Context, toUserID int) ([]models.Invite, error) {
	out := []models.Invite{}
	err := q.selectInto(ctx, &out, q.sb.Select(inviteColumns...).From("invites").
		Where(sq.Eq{"to_user_id": toUserID, "status": models.InviteStatusPending}).OrderBy("id"))
	return out, err
}

func (q *Queries) SetInviteStatus(ctx context.Context, id int, status string) error {
	return q.execOne(ctx, q.sb.Update("invites").Set("status", status).Where(sq.Eq{"id": id}))
}

// ListFriendIDs returns the users linked to userID in either direction.
func (q *Queries) ListFriendIDs(ctx context.Context, userID int) ([]int, error) {
	var edges []models.Friend
	err := q.selectInto(ctx, &edges, q.sb.Select("id", "user_id", "friend_id", "created_at").From("friends").
		Where(sq.Or{sq.Eq{"user_id": userID}, sq.Eq{"friend_id": userID}}).OrderBy("id"))
	if err != nil {
		return nil, err
	}
	seen := map[int]bool{}
	ids := []int{}
	for _, e := range edges {
		other := e.FriendID
		if e.UserID != userID {
			other = e.UserID
		}
		if !seen[other] {
			seen[other] = true
			ids = append(ids, other)
		}
	}
	return ids, nil
}

func (q *Queries) FriendshipExists(ctx context.Context, a, b int) (bool, error) {
	n, err := q.count(ctx, "friends", sq.Or{
		sq.Eq{"user_id": a, "friend_id": b},
		sq.Eq{"user_id": b, "friend_id": a},
	})
	return n > 0, err
}

func (q *Queries) InsertFriend(ctx context.Context, userID, friendID int) error {
	_, err := q.insert(ctx, q.sb.Insert("friends").Columns("user_id", "friend_id").Values(userID, friendID))
	return err
}

// DeleteFriendship removes the edge in whichever direction it was stored.
func (q *Queries) DeleteFriendship(ctx context.Context, a, b int) error {
	return q.execOne(ctx, q.sb.Delete("friends").Where(sq.Or{
		sq.Eq{"user_id": a, "friend_id": b},
		sq.Eq{"user_id": b, "friend_id": a},
	}))
}

func (q *Queries) UpsertPushSubscription(ctx context.Context, sub models.PushSubscription) error {
	_, err := q.exec(ctx, q.sb.Insert("push_subscriptions").
		Columns("user_id", "endpoint", "p256dh", "auth").
		Values(sub.UserID, sub.Endpoint, sub.P256dh, sub.Auth).
		Suffix("ON CONFLICT (user_id, endpoint) DO UPDATE SET p256dh = excluded.p256dh, auth = excluded.auth"))
	return err
}

func (q *Queries) ListPushSubscriptions(ctx context.Context, userID int) ([]models.PushSubscription, error) {
	out := []models.PushSubscription{}
	err := q.selectInto(ctx, &out, q.sb.Select("id", "user_id", "endpoint", "p256dh", "auth").
		From("push_subscriptions").Where(sq.Eq{"user_id": userID}).OrderBy("id"))
	return out, err
}

func (q *Queries) DeletePushSubscription(ctx context.Context, userID int, endpoint string) error {
	_, err := q.exec(ctx, q.sb.Delete("push_subscriptions").Where(sq.Eq{"user_id": userID, "endpoint": endpoint}))
	return err
}

func (q *Queries) DeletePushEndpoint(ctx context.Context, endpoint string) error {
	_, err := q.exec(ctx, q.sb.Delete("push_subscriptions").Where(sq.Eq{"endpoint": endpoint}))
	return err
}
