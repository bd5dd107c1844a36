package ranking

import (
	"context"

	"zerowaste/internal/apperr"
	"zerowaste/internal/calendar"
	"zerowaste/internal/store"
)

// Service recomputes rankings from the store on every call.
type Service struct {
	store *store.Store
	clock calendar.Clock
}

func NewService(s *store.Store, clock calendar.Clock) *Service {
	return &Service{store: s, clock: clock}
}

// Load fetches the full scoring history.
func (s *Service) Load(ctx context.Context) (History, error) {
	var h History
	var err error
	if h.Users, err = s.store.ListUsers(ctx); err != nil {
		return h, err
	}
	if h.Groups, err = s.store.ListGroups(ctx); err != nil {
		return h, err
	}
	if h.Days, err = s.store.ListCompletedDays(ctx); err != nil {
		return h, err
	}
	if h.Members, err = s.store.ListMembers(ctx); err != nil {
		return h, err
	}
	if h.Checks, err = s.store.ListCompletedChecks(ctx); err != nil {
		return h, err
	}
	return h, nil
}

func (s *Service) Personal(ctx context.Context) ([]PersonalRank, error) {
	h, err := s.Load(ctx)
	if err != nil {
		return nil, apperr.Internal("ranking.Personal", err)
	}
	return Personal(h, Scores(h, s.clock.Today())), nil
}

func (s *Service) Groups(ctx context.Context) ([]GroupRank, error) {
	h, err := s.Load(ctx)
	if err != nil {
		return nil, apperr.Internal("ranking.Groups", err)
	}
	return Groups(h, Scores(h, s.clock.Today())), nil
}

func (s *Service) Mine(ctx context.Context, userID int) (MyRank, error) {
	h, err := s.Load(ctx)
	if err != nil {
		return MyRank{}, apperr.Internal("ranking.Mine", err)
	}
	return Mine(h, s.clock.Today(), userID), nil
}
