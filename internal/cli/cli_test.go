package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"zerowaste/internal/database"
	"zerowaste/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CATALOG_FILE", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DATABASE_URL", "")

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCatalogList(t *testing.T) {
	out, err := run(t, "catalog", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "일회용품 줄이기")
	assert.Contains(t, out, "텀블러 사용하기, 장바구니 챙기기")

	_, err = run(t, "catalog", "list", "--file", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestMigrateIsRepeatable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zw.db")
	for i := 0; i < 2; i++ {
		out, err := run(t, "migrate", "--db", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Migrations applied")
	}
}

func TestCatalogSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zw.db")
	out, err := run(t, "catalog", "seed", "--db", path, "--prune")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 11 catalog missions")

	db, err := database.Open(database.DriverSQLite, path)
	require.NoError(t, err)
	defer db.Close()
	stored, err := store.New(db).ListCatalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 11)
}

func TestUnknownDriver(t *testing.T) {
	_, err := run(t, "migrate", "--driver", "mysql", "--db", "x")
	assert.Error(t, err)
}
