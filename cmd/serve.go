package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"smartnotes/config"
	handlers "smartnotes/handler"
	"smartnotes/internal/ai"
	"smartnotes/internal/note/repository"
	"smartnotes/internal/note/service"
	"smartnotes/pkg/logger"
	"smartnotes/router"
	"smartnotes/socket"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var addr, staticDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and frontend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Init("info")

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("static-dir") {
				cfg.StaticDir = staticDir
			}

			logger.Init(cfg.LogLevel)
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&staticDir, "static-dir", config.DefaultStaticDir, "directory holding index.html and favicon.svg")
	return cmd
}

// serve is the composition root: it owns the store, the feed hub and the
// HTTP server, and returns once ctx is cancelled and shutdown completes.
func serve(ctx context.Context, cfg *config.Config) error {
	hub := socket.NewHub()
	go hub.Run()
	defer hub.Stop()

	repo := repository.NewNoteRepository()
	dispatcher := ai.NewDispatcher(cfg.AI)
	svc := service.NewNoteService(repo, dispatcher, hub)
	static := handlers.NewStaticHandler(afero.NewOsFs(), cfg.StaticDir)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router.Setup(svc, hub, static, cfg.JWTSecret),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Sugar.Infof("Smart Notes listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Sugar.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
