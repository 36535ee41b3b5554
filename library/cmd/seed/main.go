package main

import (
	"context"
	"fmt"
	stdLog "log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Astemirdum/smart-library/library/config"
	"github.com/Astemirdum/smart-library/library/internal/repository"
	"github.com/Astemirdum/smart-library/library/internal/repository/memory"
	"github.com/Astemirdum/smart-library/library/internal/seed"
	"github.com/Astemirdum/smart-library/library/migrations"
	"github.com/Astemirdum/smart-library/pkg/logger"
	"github.com/Astemirdum/smart-library/pkg/postgres"
)

func main() {
	var (
		store string
		opts  seed.Options
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty library with sample readers, books and loans",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := godotenv.Load(); err != nil {
				stdLog.Println("no .env file, using process environment")
			}
			cfg := config.NewConfig()
			log := logger.NewLogger(cfg.Log, "seed")
			defer log.Sync() //nolint:errcheck
			return run(cmd.Context(), cfg, store, opts, log)
		},
	}
	cmd.Flags().StringVar(&store, "store", "postgres", "target store: postgres or memory")
	cmd.Flags().StringVar(&opts.AdminEmail, "admin-email", "admin@library.local", "administrator email")
	cmd.Flags().StringVar(&opts.AdminPassword, "admin-password", "admin123", "administrator password")
	cmd.Flags().StringVar(&opts.Password, "password", "reader123", "password for every sample reader")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, store string, opts seed.Options, log *zap.Logger) error {
	var repo repository.Repository
	switch store {
	case "memory":
		repo = memory.New()
	case "postgres":
		db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
		if err != nil {
			return fmt.Errorf("db init: %w", err)
		}
		defer db.Close()
		pgRepo, err := repository.NewRepository(db, log)
		if err != nil {
			return err
		}
		repo = pgRepo
	default:
		return fmt.Errorf("unknown store %q", store)
	}

	svc, clock := seed.NewService(repo, cfg.Loan, log, time.Now())
	res, err := seed.Run(ctx, svc, clock, opts, log)
	if err != nil {
		return err
	}
	fmt.Printf("admin %s, %d readers, %d books, %d loans\n",
		res.Admin.Email, len(res.Readers), len(res.Books), res.Loans)
	return nil
}
