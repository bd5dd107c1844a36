package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"zerowaste/internal/catalog"
	"zerowaste/internal/store"

	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and seed the mission catalog",
	}
	cmd.AddCommand(newCatalogListCmd())
	cmd.AddCommand(newCatalogSeedCmd())
	return cmd
}

// loadCatalog reads file, falling back to CATALOG_FILE and then the embedded
// catalog.
func loadCatalog(file string) (*catalog.Catalog, error) {
	return catalog.Load(firstNonEmpty(file, os.Getenv("CATALOG_FILE")))
}

func newCatalogListCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(file)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCATEGORY\tSUBMISSIONS")
			for _, e := range cat.Entries() {
				fmt.Fprintf(w, "%d\t%s\t%s\n", e.ID, e.Category, strings.Join(e.Submissions, ", "))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Catalog YAML file (default $CATALOG_FILE or the built-in catalog)")
	return cmd
}

func newCatalogSeedCmd() *cobra.Command {
	var (
		file  string
		prune bool
		flags dbFlags
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the catalog into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(file)
			if err != nil {
				return err
			}
			db, err := flags.open()
			if err != nil {
				return err
			}
			defer db.Close()

			s := store.New(db)
			if err := s.WithTx(cmd.Context(), func(q *store.Queries) error {
				return cat.Seed(cmd.Context(), q, prune)
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d catalog missions\n", len(cat.Entries()))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Catalog YAML file (default $CATALOG_FILE or the built-in catalog)")
	cmd.Flags().BoolVar(&prune, "prune", false, "Delete stored missions that are not in the catalog")
	flags.register(cmd)
	return cmd
}
