package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/Subby575/irctc/internal/app"
	"github.com/Subby575/irctc/internal/auth"
	"github.com/Subby575/irctc/internal/clock"
	"github.com/Subby575/irctc/internal/config"
	"github.com/Subby575/irctc/internal/storage/postgres"
	transporthttp "github.com/Subby575/irctc/internal/transport/http"
	"github.com/Subby575/irctc/migrations"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reservation API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.Default()
			config.LoadEnvFile(logger)

			cfg, err := config.FromEnv(logger)
			if err != nil {
				return err
			}

			startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect to db: %w", err)
			}
			defer pool.Close()

			if err := pool.Ping(startupCtx); err != nil {
				return fmt.Errorf("db ping: %w", err)
			}
			if migrateUp {
				if err := migrations.Apply(startupCtx, pool); err != nil {
					return fmt.Errorf("apply migrations: %w", err)
				}
			}

			clk := clock.NewSystem()
			tokens := auth.NewTokens(cfg.AuthHashKey, cfg.AuthBlockKey, cfg.TokenTTL)

			reservationSvc := app.NewReservationService(postgres.NewReservationRepository(pool), clk)
			trainSvc := app.NewTrainService(postgres.NewTrainRepository(pool), clk)
			bookingSvc := app.NewBookingService(postgres.NewBookingRepository(pool))
			authSvc := app.NewAuthService(postgres.NewUserRepository(pool), tokens, clk)

			router := transporthttp.NewRouter(transporthttp.RouterConfig{
				Reservations: reservationSvc,
				Trains:       trainSvc,
				Bookings:     bookingSvc,
				Auth:         authSvc,
				Tokens:       tokens,
				AdminKey:     cfg.AdminAPIKey,
			})
			handler := transporthttp.RequestLogger(transporthttp.CORS(cfg.CORSOrigins, router), logger)

			server := &http.Server{
				Addr:    ":" + cfg.Port,
				Handler: handler,
			}

			logger.Printf("api listening on :%s", cfg.Port)

			srvErr := make(chan error, 1)
			go func() {
				srvErr <- server.ListenAndServe()
			}()

			stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			select {
			case err := <-srvErr:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Printf("server error: %v", err)
				}
			case <-stopCtx.Done():
				logger.Printf("shutdown signal received, stopping server")
			}

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer shutdownCancel()
			if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Printf("server shutdown error: %v", err)
			}
			logger.Printf("server stopped")
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup")

	return cmd
}
