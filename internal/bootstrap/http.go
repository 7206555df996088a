package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/gnwofoke/portfolio-api/config"
	httpx "github.com/gnwofoke/portfolio-api/internal/http"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

func buildHTTPHandler(cfg *HTTPServerConfig) http.Handler {
	services := httpx.RouterServices{
		Auth:           cfg.Services.Auth,
		Projects:       cfg.Services.Projects,
		Blog:           cfg.Services.Blog,
		Messages:       cfg.Services.Messages,
		Skills:         cfg.Services.Skills,
		Stats:          cfg.Services.Stats,
		Images:         cfg.Services.Images,
		MaxUploadBytes: cfg.Config.Storage.MaxUploadBytes,
		Logger:         cfg.Logger,
	}
	if cfg.Config.Storage.Mode == config.StorageModeLocal {
		services.LocalUploadDir = cfg.Config.Storage.LocalDir
	}
	return httpx.NewRouter(services)
}

// RunHTTPServer runs the HTTP server until the context is canceled or a
// termination signal arrives, then shuts it down gracefully.
func RunHTTPServer(ctx context.Context, cfg *HTTPServerConfig) error {
	if cfg == nil {
		return errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	server := &http.Server{
		Addr:         cfg.Config.HTTP.Addr,
		Handler:      buildHTTPHandler(cfg),
		ReadTimeout:  cfg.Config.HTTP.ReadTimeout,
		WriteTimeout: cfg.Config.HTTP.WriteTimeout,
		IdleTimeout:  2 * cfg.Config.HTTP.WriteTimeout,
	}

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(signalCtx)

	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Config.HTTP.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.Info("HTTP server stopped")
		return nil
	})

	return g.Wait()
}
