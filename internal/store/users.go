package store

import (
	"context"

	"zerowaste/internal/models"

	sq "github.com/Masterminds/squirrel"
)

var userColumns = []string{"id", "email", "password_hash", "name", "profile_color", "bio", "kakao_id", "created_at"}

func (q *Queries) CreateUser(ctx context.Context, u *models.User) error {
	if u.ProfileColor == "" {
		u.ProfileColor = models.DefaultProfileColor
	}
	if u.Bio == "" {
		u.Bio = models.DefaultBio
	}
	id, err := q.insert(ctx, q.sb.Insert("users").
		Columns("email", "password_hash", "name", "profile_color", "bio", "kakao_id").
		Values(u.Email, u.PasswordHash, u.Name, u.ProfileColor, u.Bio, u.KakaoID))
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func (q *Queries) GetUser(ctx context.Context, id int) (models.User, error) {
	var u models.User
	err := q.get(ctx, &u, q.sb.Select(userColumns...).From("users").Where(sq.Eq{"id": id}))
	return u, err
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := q.get(ctx, &u, q.sb.Select(userColumns...).From("users").Where(sq.Eq{"email": email}))
	return u, err
}

// ListUsers returns every user in id order.
func (q *Queries) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := q.selectInto(ctx, &users, q.sb.Select(userColumns...).From("users").OrderBy("id"))
	return users, err
}

func (q *Queries) ListUsersByID(ctx context.Context, ids []int) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	err := q.selectInto(ctx, &users, q.sb.Select(userColumns...).From("users").
		Where(sq.Eq{"id": ids}).OrderBy("id"))
	return users, err
}

// UpdateUserProfile changes the non-nil fields.
func (q *Queries) UpdateUserProfile(ctx context.Context, id int, req models.UpdateUserRequest) error {
	b := q.sb.Update("users").Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).Where(sq.Eq{"id": id})
	if req.Name != nil {
		b = b.Set("name", *req.Name)
	}
	if req.ProfileColor != nil {
		b = b.Set("profile_color", *req.ProfileColor)
	}
	if req.Bio != nil {
		b = b.Set("bio", *req.Bio)
	}
	return q.execOne(ctx, b)
}

// LockUser serializes concurrent writers for one user. Postgres takes a row
// lock; sqlite already serializes on its single connection.
func (q *Queries) LockUser(ctx context.Context, id int) error {
	b := q.sb.Select("id").From("users").Where(sq.Eq{"id": id})
	if q.postgres {
		b = b.Suffix("FOR UPDATE")
	}
	var got int
	return q.get(ctx, &got, b)
}
