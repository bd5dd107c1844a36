package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
)

var (
	ErrTokenRevoked = errors.New("refresh token revoked")
	ErrTokenExpired = errors.New("refresh token expired")
)

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

func parseExpiresAt(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		return parseExpiresAtString(t)
	case []byte:
		return parseExpiresAtString(string(t))
	default:
		return time.Time{}, false
	}
}

func parseExpiresAtString(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	// go-sqlite3 writes time.Time in the first layout; the rest cover rows
	// inserted by hand.
	layouts := []string{
		"2006-01-02 15:04:05.999999999Z07:00",
		"2006-01-02 15:04:05Z07:00",
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseRevoked(v any) (bool, bool) {
	switch t := v.(type) {
	case nil:
		return false, true
	case bool:
		return t, true
	case int64:
		return t != 0, true
	case int:
		return t != 0, true
	case string:
		s := strings.TrimSpace(strings.ToLower(t))
		switch s {
		case "":
			return false, false
		case "true":
			return true, true
		case "false":
			return false, true
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n != 0, true
		}
		return false, false
	case []byte:
		return parseRevoked(string(t))
	default:
		return false, false
	}
}

// StoreRefreshToken records the hash of token. Storing the same token again
// refreshes its expiry and clears any revocation.
func (q *Queries) StoreRefreshToken(ctx context.Context, userID int, token string, expiresAt time.Time, ttlDays int) error {
	_, err := q.exec(ctx, q.sb.Insert("refresh_tokens").
		Columns("user_id", "token_hash", "expires_at", "ttl_days").
		Values(userID, hashToken(token), expiresAt.UTC(), ttlDays).
		Suffix("ON CONFLICT (token_hash) DO UPDATE SET expires_at = excluded.expires_at, ttl_days = excluded.ttl_days, revoked = FALSE"))
	return err
}

// ValidateRefreshToken checks that token is known, live and not revoked, and
// returns its owner and TTL.
func (q *Queries) ValidateRefreshToken(ctx context.Context, token string) (userID, ttlDays int, err error) {
	query, args, err := q.sb.Select("user_id", "expires_at", "revoked", "ttl_days").
		From("refresh_tokens").Where(sq.Eq{"token_hash": hashToken(token)}).ToSql()
	if err != nil {
		return 0, 0, err
	}

	var expiresAt, revoked any
	row := q.ext.QueryRowxContext(ctx, query, args...)
	if err := row.Scan(&userID, &expiresAt, &revoked, &ttlDays); err != nil {
		return 0, 0, mapError(err)
	}

	r, ok := parseRevoked(revoked)
	if !ok {
		return 0, 0, fmt.Errorf("unexpected revoked type: %T", revoked)
	}
	if r {
		return 0, 0, ErrTokenRevoked
	}
	if t, ok := parseExpiresAt(expiresAt); ok && time.Now().After(t) {
		return 0, 0, ErrTokenExpired
	}
	return userID, ttlDays, nil
}

func (q *Queries) RevokeRefreshToken(ctx context.Context, token string) error {
	_, err := q.exec(ctx, q.sb.Update("refresh_tokens").Set("revoked", true).
		Where(sq.Eq{"token_hash": hashToken(token)}))
	return err
}
