package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/tracker/db"
	"github.com/monocle-dev/tracker/internal/auth"
	"github.com/monocle-dev/tracker/internal/mail"
	"github.com/monocle-dev/tracker/internal/policy"
	"github.com/monocle-dev/tracker/internal/realtime"
	"github.com/monocle-dev/tracker/internal/router"
	"github.com/monocle-dev/tracker/internal/services"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, app)
		},
	}
}

func serve(ctx context.Context, app *App) error {
	cfg := app.Config

	if err := db.MigrateDatabase(app.DB); err != nil {
		return err
	}

	enforcer, err := policy.NewEnforcer()
	if err != nil {
		return err
	}

	mailer, err := mail.New(cfg.Mail)
	if err != nil {
		return err
	}

	dispatcher, err := mail.NewDispatcher(mailer, cfg.Mail.Workers)
	if err != nil {
		return err
	}
	defer dispatcher.Close()

	hub := realtime.NewHub(cfg.AllowedOrigins)

	svc := services.New(services.Options{
		DB:         app.DB,
		Policy:     enforcer,
		Signer:     auth.NewLinkSigner(cfg.Auth.Secret, cfg.AppURL, cfg.Auth.VerificationTTL),
		Dispatcher: dispatcher,
		Notifier:   hub,
	})

	gin.SetMode(gin.ReleaseMode)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(svc, hub, cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("tracker listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
