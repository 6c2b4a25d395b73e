package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	router "github.com/dkeye/Relay/internal/adapters/http"
	"github.com/dkeye/Relay/internal/app"
	"github.com/dkeye/Relay/internal/app/orch"
	"github.com/dkeye/Relay/internal/config"
	"github.com/dkeye/Relay/internal/logging"
	"github.com/dkeye/Relay/internal/metrics"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config loading can use it.
	logging.Init()

	loader := config.NewLoader(config.DefaultFile())
	cfg, err := loader.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logCloser := logging.Setup(cfg)
	defer logCloser.Close()
	loader.Watch(func(next *config.Config) {
		logging.SetLevel(next.LogLevel)
	})
	log.Info().
		Str("mode", cfg.Mode).
		Int("port", cfg.Port).
		Str("slow_consumer", cfg.SlowConsumer).
		Msg("config ready")

	relayMetrics := metrics.New()
	reg := app.NewRegistry()
	o := orch.New(reg, app.PolicyFor(cfg.SlowConsumer), relayMetrics)

	g, gctx := errgroup.WithContext(ctx)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router.SetupRouter(gctx, cfg, o, relayMetrics),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("Relay server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server error")
		logCloser.Close()
		os.Exit(1)
	}
	log.Info().Msg("Server exited gracefully")
}
