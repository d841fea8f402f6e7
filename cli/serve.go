// Package cli holds the cobra commands of the contactbook server binary.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kutbudev/contactbook/api"
	"github.com/kutbudev/contactbook/internal/logging"
	"github.com/kutbudev/contactbook/internal/metrics"
	"github.com/kutbudev/contactbook/internal/ratelimiter"
	"github.com/kutbudev/contactbook/internal/service"
	"github.com/kutbudev/contactbook/pkg/config"
	"github.com/kutbudev/contactbook/pkg/repository"
	"github.com/spf13/cobra"
)

const limiterIdleTTL = 10 * time.Minute

// NewServeCommand runs the HTTP API until SIGINT or SIGTERM.
func NewServeCommand() *cobra.Command {
	var (
		port        int
		autoMigrate bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the contacts and groups HTTP API",
		Long: `Starts the REST API backed by PostgreSQL.

Examples:
  contactbook serve
  contactbook serve --port 8080
  contactbook serve --auto-migrate`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("auto-migrate") {
				cfg.Database.AutoMigrate = autoMigrate
			}
			return runServer(cmd.Context(), cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "Port to listen on")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Create missing tables with the ORM on startup")

	return cmd
}

func runServer(ctx context.Context, cfg *config.Config) error {
	log := logging.New(cfg.Log.Level, cfg.Log.Format)
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := repository.NewDatabase(cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.WithError(err).Warn("closing database")
		}
	}()

	m := metrics.New()
	router := api.NewRouter(api.Deps{
		Contacts: service.NewContactService(db, m, log),
		Groups:   service.NewGroupService(db, m, log),
		Health:   db,
		Metrics:  m,
		Limiter:  ratelimiter.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst, limiterIdleTTL),
		Log:      log,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           api.NewHandler(router, cfg.CORS.AllowedOrigins),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		log.WithField("addr", srv.Addr).Info("api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
