// Package store is the relational data access layer. Every query is scoped by
// the owning user where the record is private.
package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// Queries runs statements against either the pool or an open transaction.
type Queries struct {
	ext      sqlx.ExtContext
	sb       sq.StatementBuilderType
	postgres bool
}

// Store owns the connection pool.
type Store struct {
	Queries
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	postgres := db.DriverName() == "postgres"
	var format sq.PlaceholderFormat = sq.Question
	if postgres {
		format = sq.Dollar
	}
	return &Store{
		Queries: Queries{
			ext:      db,
			sb:       sq.StatementBuilder.PlaceholderFormat(format),
			postgres: postgres,
		},
		db: db,
	}
}

// WithTx runs fn inside a transaction, committing when fn returns nil.
// Inside fn every statement must go through the supplied Queries: sqlite runs
// on a single connection and a statement on the pool would wait forever.
func (s *Store) WithTx(ctx context.Context, fn func(q *Queries) error) error {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelDefault})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	q := &Queries{ext: tx, sb: s.sb, postgres: s.postgres}
	if err := fn(q); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func (q *Queries) get(ctx context.Context, dest any, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	return mapError(sqlx.GetContext(ctx, q.ext, dest, query, args...))
}

func (q *Queries) selectInto(ctx context.Context, dest any, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	return mapError(sqlx.SelectContext(ctx, q.ext, dest, query, args...))
}

func (q *Queries) exec(ctx context.Context, b sq.Sqlizer) (sql.Result, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	res, err := q.ext.ExecContext(ctx, query, args...)
	return res, mapError(err)
}

// execOne runs b and reports ErrNotFound when it touched no row.
func (q *Queries) execOne(ctx context.Context, b sq.Sqlizer) error {
	res, err := q.exec(ctx, b)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// insert runs an INSERT and returns the new row id. Both sqlite and postgres
// support RETURNING.
func (q *Queries) insert(ctx context.Context, b sq.InsertBuilder) (int, error) {
	query, args, err := b.Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, err
	}
	var id int
	if err := q.ext.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapError(err)
	}
	return id, nil
}

func (q *Queries) count(ctx context.Context, table string, where sq.Sqlizer) (int, error) {
	var n int
	err := q.get(ctx, &n, q.sb.Select("count(*)").From(table).Where(where))
	return n, err
}
