package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Open connects to the database, applies connection pragmas and creates any
// missing tables.
func Open(driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case DriverSQLite:
		return openSQLite(dsn)
	case DriverPostgres:
		return openPostgres(dsn)
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}

// Initialize opens a sqlite database at dbPath. ":memory:" gives a private
// in-memory database.
func Initialize(dbPath string) (*sqlx.DB, error) {
	return openSQLite(dbPath)
}

func openSQLite(dbPath string) (*sqlx.DB, error) {
	if dbPath != ":memory:" && !strings.HasPrefix(dbPath, "file:") {
		// Create data directory if it doesn't exist
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, err
		}
	}

	db, err := sqlx.Open(DriverSQLite, dbPath)
	if err != nil {
		return nil, err
	}

	// One connection serializes writers, which keeps the per-day capacity
	// checks and their inserts consistent. It is also what keeps an in-memory
	// database alive across queries.
	db.SetMaxOpenConns(1)

	if err := applyEncryptionKey(db, os.Getenv("DB_ENCRYPTION_KEY")); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, err
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// applyEncryptionKey keys the connection for SQLCipher builds. A plain sqlite
// build ignores the pragma, so the schema read below is what catches a wrong
// key.
func applyEncryptionKey(db *sqlx.DB, key string) error {
	if key == "" {
		return nil
	}
	esc := strings.ReplaceAll(key, "'", "''")
	if _, err := db.Exec(fmt.Sprintf("PRAGMA key = '%s'", esc)); err != nil {
		return fmt.Errorf("failed to set database encryption key: %w", err)
	}
	_, _ = db.Exec("PRAGMA cipher_compatibility = 4")

	var n int
	if err := db.Get(&n, "SELECT count(*) FROM sqlite_master"); err != nil {
		return fmt.Errorf("database inaccessible with provided encryption key: %w", err)
	}
	return nil
}

func openPostgres(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(DriverPostgres, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func createTables(db *sqlx.DB) error {
	schema := sqliteSchema
	if db.DriverName() == DriverPostgres {
		schema = postgresSchema
	}
	_, err := db.Exec(schema)
	return err
}
