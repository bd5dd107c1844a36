package groups

import (
	"context"
	"errors"

	"zerowaste/internal/apperr"
	"zerowaste/internal/store"
)

// ActiveWindowDays is how far back a friend's active days are counted.
const ActiveWindowDays = 30

// Friends lists userID's friends with their recent activity.
func (s *Service) Friends(ctx context.Context, userID int) ([]FriendView, error) {
	const op = "groups.Friends"
	ids, err := s.store.ListFriendIDs(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	users, err := s.store.ListUsersByID(ctx, ids)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	active, err := s.store.ActiveDays(ctx, ids, s.since(ActiveWindowDays))
	if err != nil {
		return nil, apperr.Internal(op, err)
	}

	out := make([]FriendView, 0, len(users))
	for _, u := range users {
		out = append(out, FriendView{
			ID:           u.ID,
			Name:         u.Name,
			ActiveDays:   active[u.ID],
			ProfileColor: u.ProfileColor,
		})
	}
	return out, nil
}

func (s *Service) AddFriend(ctx context.Context, userID, friendID int) (FriendView, error) {
	const op = "groups.AddFriend"
	if friendID == userID {
		return FriendView{}, apperr.Validation(op, "cannot add yourself as a friend")
	}
	var view FriendView
	err := s.store.WithTx(ctx, func(q *store.Queries) error {
		u, err := q.GetUser(ctx, friendID)
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound(op, "user %d not found", friendID)
		}
		if err != nil {
			return err
		}
		exists, err := q.FriendshipExists(ctx, userID, friendID)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflict(op, "already friends")
		}
		if err := q.InsertFriend(ctx, userID, friendID); err != nil {
			return err
		}
		view = FriendView{ID: u.ID, Name: u.Name, ProfileColor: u.ProfileColor}
		return nil
	})
	return view, wrap(op, err)
}

func (s *Service) RemoveFriend(ctx context.Context, userID, friendID int) error {
	const op = "groups.RemoveFriend"
	err := s.store.DeleteFriendship(ctx, userID, friendID)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound(op, "user %d is not a friend", friendID)
	}
	if err != nil {
		return apperr.Internal(op, err)
	}
	return nil
}
