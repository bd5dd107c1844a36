package cli

import (
	"fmt"

	"zerowaste/internal/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var flags dbFlags
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create missing tables and apply migrations",
		Long: `Creates any missing tables and applies the data migrations. Every step
checks the current schema first, so running it again is harmless.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := flags.open()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.RunMigrations(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
