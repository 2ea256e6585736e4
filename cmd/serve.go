package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"portal/internal/admission"
	"portal/internal/api"
	"portal/internal/config"
	"portal/internal/dashboard"
	"portal/pkg/logger"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, deps api.Deps) func(ctx context.Context) {
	server, err := api.NewServer(deps, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...")
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the admission portal API server",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			deps := api.Deps{
				Admission: admission.New(strg, admission.NewOptions(cfg)),
				Dashboard: dashboard.New(strg, nil),
				Storage:   strg,
			}

			stopWebserver := setupServer(ctx, cfg, deps)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}
