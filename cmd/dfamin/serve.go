package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geange/dfamin/internal/cache"
	"github.com/geange/dfamin/internal/config"
	"github.com/geange/dfamin/internal/httpapi"
	"github.com/geange/dfamin/internal/minimizer"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Starts dfamin in server mode, exposing POST /minimize, GET /healthz and GET /metrics.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
		}

		resultCache, closeCache, err := newCache(cmd.Context(), cfg.Cache, logger)
		if err != nil {
			return err
		}
		defer closeCache()

		svc := minimizer.New(
			minimizer.WithCache(resultCache),
			minimizer.WithLogger(logger),
			minimizer.WithLimits(cfg.Limits.MaxStates, cfg.Limits.MaxSymbols),
			minimizer.WithLenientReferences(cfg.Minimize.LenientReferences),
			minimizer.WithSeparator(cfg.Minimize.Separator),
		)

		var handler http.Handler = httpapi.NewHandler(svc, httpapi.Options{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			MaxBodyBytes:   cfg.Server.MaxBodyBytes,
			RatePerSecond:  cfg.Limits.RatePerSecond,
			Burst:          cfg.Limits.Burst,
			Logger:         logger,
		})
		if cfg.Server.RequestTimeout > 0 {
			handler = withTimeout(handler, cfg.Server.RequestTimeout)
		}

		srv := &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      handler,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting dfamin server", "addr", srv.Addr, "cache", cfg.Cache.Backend)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("start shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("graceful shutdown did not complete", "timeout", cfg.Server.ShutdownTimeout, "error", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "error", err)
				}
			}
			logger.Info("dfamin server stopped gracefully")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
}

// newCache builds the configured result cache and its release function.
func newCache(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (cache.Cache, func(), error) {
	switch cfg.Backend {
	case "memory":
		return cache.NewMemory(cfg.Size), func() {}, nil
	case "redis":
		r := cache.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			cache.WithPrefix(cfg.Redis.Prefix),
			cache.WithTTL(cfg.Redis.TTL),
		)
		if ctx == nil {
			ctx = context.Background()
		}
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := r.Ping(pingCtx); err != nil {
			_ = r.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		return r, func() {
			if err := r.Close(); err != nil {
				logger.Warn("failed to close redis", "error", err)
			}
		}, nil
	default:
		return cache.Nop{}, func() {}, nil
	}
}

// withTimeout gives every request a deadline; the minimizer answers 503 when it passes.
func withTimeout(next http.Handler, timeout time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
