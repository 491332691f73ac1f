// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adoptyme/backend/internal/app"
	"github.com/adoptyme/backend/internal/config"
	"github.com/adoptyme/backend/internal/model"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	root := &cobra.Command{
		Use:   "adoptyme",
		Short: "Adoptyme pet adoption platform API",
	}
	root.AddCommand(serveCmd(), migrateCmd())

	if err := root.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
		cfg.Database.Password, cfg.Database.Name, cfg.Database.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
		Logger:  gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("acquiring sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.PoolSize)
	sqlDB.SetMaxIdleConns(cfg.Database.PoolSize / 2)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			db, err := openDB(cfg)
			if err != nil {
				return err
			}

			application, err := app.New(cmd.Context(), cfg, db)
			if err != nil {
				return fmt.Errorf("wiring application: %w", err)
			}

			server := &http.Server{
				Addr:         ":" + cfg.Server.Port,
				Handler:      application.Router(),
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			}

			errCh := make(chan error, 1)
			go func() {
				slog.Info("server starting", "port", cfg.Server.Port)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-stop:
				slog.Info("shutting down", "signal", sig.String())
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutting down server: %w", err)
			}

			slog.Info("server stopped")
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			db, err := openDB(cfg)
			if err != nil {
				return err
			}

			// citext backs case-insensitive account emails; pgcrypto
			// provides gen_random_uuid on older Postgres.
			for _, ext := range []string{"citext", "pgcrypto"} {
				if err := db.Exec("CREATE EXTENSION IF NOT EXISTS " + ext).Error; err != nil {
					return fmt.Errorf("creating extension %s: %w", ext, err)
				}
			}

			err = db.AutoMigrate(
				&model.Account{},
				&model.PersonalProfile{},
				&model.Organization{},
				&model.OrganizationalProfile{},
				&model.AdoptionAnimal{},
				&model.AdoptionApplication{},
				&model.Adoption{},
				&model.Pet{},
				&model.PetSight{},
				&model.DonationCampaign{},
				&model.IndividualDonation{},
				&model.MpTransaction{},
			)
			if err != nil {
				return fmt.Errorf("running migrations: %w", err)
			}

			slog.Info("migrations applied")
			return nil
		},
	}
}
