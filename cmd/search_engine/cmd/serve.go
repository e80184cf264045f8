package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gcbaptista/go-vector-search/api"
	"github.com/gcbaptista/go-vector-search/config"
	"github.com/gcbaptista/go-vector-search/internal/engine"
	"github.com/gcbaptista/go-vector-search/internal/logging"
	"github.com/gcbaptista/go-vector-search/internal/metrics"
)

func newServeCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server.

Serves the HTML search page on /, the JSON API under /api, /health and,
when metrics are enabled, /metrics.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to run the server on (overrides config)")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger := logging.New(cfg.Logging)
	log := logging.Component(logger, "server")

	opts := []engine.Option{engine.WithLogger(logging.Component(logger, "engine"))}
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		opts = append(opts, engine.WithMetrics(m))
	}

	eng, err := engine.NewEngine(cfg, opts...)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	defer eng.Close()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, eng, api.RouteOptions{
		Logger:          logging.Component(logger, "http"),
		Metrics:         m,
		MaxRequestBytes: cfg.Server.MaxRequestBytes,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithFields(logrus.Fields{
			"addr":      srv.Addr,
			"documents": eng.Stats().DocumentCount,
			"metrics":   m != nil,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Server stopped with error")
		return err
	}
	log.Info("Server stopped")
	return nil
}
