package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zerowaste/internal/api"
	"zerowaste/internal/calendar"
	"zerowaste/internal/catalog"
	"zerowaste/internal/config"
	"zerowaste/internal/database"
	"zerowaste/internal/store"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if cfg.RunMigrations {
		log.Println("Running database migrations...")
		if err := database.RunMigrations(db); err != nil {
			return err
		}
	} else {
		log.Println("Migrations skipped (set RUN_MIGRATIONS=true to enable)")
	}

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return err
	}
	s := store.New(db)
	if err := cat.Seed(ctx, s, false); err != nil {
		return err
	}

	clock := calendar.NewZoneClock(cfg.Timezone)
	app := api.NewApp(api.NewServer(cfg, s, cat, clock))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Printf("Server starting on port %s (today is %s in %s)", cfg.Port, clock.Today(), cfg.Timezone)
		errc <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		log.Println("Shutting down...")
		return app.ShutdownWithTimeout(10 * time.Second)
	}
}
