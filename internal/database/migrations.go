package database

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
)

// columnExists checks if a column exists on a given table.
func columnExists(db *sqlx.DB, table, column string) (bool, error) {
	if db.DriverName() == DriverPostgres {
		var n int
		err := db.Get(&n,
			`SELECT count(*) FROM information_schema.columns WHERE table_name = $1 AND column_name = $2`,
			table, column)
		return n > 0, err
	}

	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	var (
		cid     int
		name    string
		ctype   string
		notnull int
		dflt    any
		pk      int
	)
	for rows.Next() {
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// MigrateAddKakaoID adds the social-login id column to databases created
// before it existed (idempotent).
func MigrateAddKakaoID(db *sqlx.DB) error {
	exists, err := columnExists(db, "users", "kakao_id")
	if err != nil || exists {
		return err
	}
	if _, err := db.Exec("ALTER TABLE users ADD COLUMN kakao_id TEXT"); err != nil {
		return err
	}
	_, err = db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS ix_users_kakao_id ON users(kakao_id)")
	return err
}

// MigrateBackfillSubMission gives every day mission a non-empty sub_mission so
// the (user, date, sub_mission) unique index can hold. Legacy rows take their
// catalog category, or "legacy-<mission_id>" when the catalog has no entry.
func MigrateBackfillSubMission(db *sqlx.DB) error {
	exists, err := columnExists(db, "day_missions", "sub_mission")
	if err != nil {
		return err
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if !exists {
		if _, err := tx.Exec("ALTER TABLE day_missions ADD COLUMN sub_mission TEXT NOT NULL DEFAULT ''"); err != nil {
			return err
		}
	}

	res, err := tx.Exec(`UPDATE day_missions
		SET sub_mission = COALESCE(
			(SELECT category FROM catalog_missions WHERE catalog_missions.id = day_missions.mission_id),
			'legacy-' || CAST(day_missions.mission_id AS TEXT))
		WHERE sub_mission IS NULL OR TRIM(sub_mission) = ''`)
	if err != nil {
		return err
	}

	if _, err := tx.Exec("CREATE UNIQUE INDEX IF NOT EXISTS uq_user_date_sub_mission ON day_missions (user_id, date, sub_mission)"); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Printf("Backfilled sub_mission on %d day missions", n)
	}
	return nil
}

// RunMigrations applies every migration in order.
func RunMigrations(db *sqlx.DB) error {
	steps := []struct {
		name string
		fn   func(*sqlx.DB) error
	}{
		{"add kakao_id", MigrateAddKakaoID},
		{"backfill sub_mission", MigrateBackfillSubMission},
	}
	for _, s := range steps {
		if err := s.fn(db); err != nil {
			return fmt.Errorf("migration %q: %w", s.name, err)
		}
	}
	return nil
}
