// Package cli holds the zerowaste command tree.
package cli

import (
	"fmt"
	"os"

	"zerowaste/internal/database"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. Running it without a subcommand
// starts the server.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "zerowaste",
		Short: "Zero-waste habit missions backend",
		Long: `Serves the zero-waste routine API: daily missions, weekly routines,
group missions, invites, friends and rankings.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// A missing .env is normal; the process environment still applies.
			_ = godotenv.Load()
		},
	}
	serve := newServeCmd()
	root.RunE = serve.RunE

	root.AddCommand(serve)
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newCatalogCmd())
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// dbFlags are the connection flags shared by the maintenance commands. Empty
// values fall back to DB_DRIVER and DATABASE_URL.
type dbFlags struct {
	driver string
	url    string
}

func (f *dbFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.driver, "driver", "", "Database driver: sqlite3 or postgres (default $DB_DRIVER or sqlite3)")
	cmd.Flags().StringVar(&f.url, "db", "", "Database path or URL (default $DATABASE_URL or ./data/zerowaste.db)")
}

func (f *dbFlags) open() (*sqlx.DB, error) {
	driver := firstNonEmpty(f.driver, os.Getenv("DB_DRIVER"), database.DriverSQLite)
	url := firstNonEmpty(f.url, os.Getenv("DATABASE_URL"), "./data/zerowaste.db")
	db, err := database.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
