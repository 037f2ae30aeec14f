package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/inventa-app/inventa/internal/classify"
	"github.com/inventa-app/inventa/internal/config"
	dbRedis "github.com/inventa-app/inventa/internal/db/redis"
	logpkg "github.com/inventa-app/inventa/internal/logger"
	"github.com/inventa-app/inventa/internal/metrics"
	itemrepo "github.com/inventa-app/inventa/internal/repository/item"
	noterepo "github.com/inventa-app/inventa/internal/repository/note"
	chiTransport "github.com/inventa-app/inventa/internal/transport/chi"
	openaiGen "github.com/inventa-app/inventa/internal/transport/openai"
	healthuc "github.com/inventa-app/inventa/internal/usecase/health"
	itemuc "github.com/inventa-app/inventa/internal/usecase/item"
	noteuc "github.com/inventa-app/inventa/internal/usecase/note"
	"github.com/inventa-app/inventa/internal/version"
)

func main() {
	// Local development convenience: .env is optional.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting inventa API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register classification metrics explicitly (no init())
	metrics.RegisterClassifyMetrics()

	// Build the classification chain — composition root.
	// Tier order matters: on-device first, remote second, and the
	// deterministic synthesizer inside the pipeline is the terminal tier.
	var generators []classify.Generator
	var tierCheckers []healthuc.TierChecker

	if cfg.Generation.OnDevice.Configured() {
		g := openaiGen.NewGenerator(&openaiGen.Config{
			APIKey:     cfg.Generation.OnDevice.APIKey,
			BaseURL:    cfg.Generation.OnDevice.BaseURL,
			Model:      cfg.Generation.OnDevice.Model,
			Name:       "ondevice",
			TimeoutSec: cfg.Generation.OnDevice.TimeoutSec,
			Logger:     logger,
		})
		generators = append(generators, g)
		tierCheckers = append(tierCheckers, g)
	}
	if cfg.Generation.Remote.Configured() {
		g := openaiGen.NewGenerator(&openaiGen.Config{
			APIKey:     cfg.Generation.Remote.APIKey,
			BaseURL:    cfg.Generation.Remote.BaseURL,
			Model:      cfg.Generation.Remote.Model,
			Name:       "remote",
			TimeoutSec: cfg.Generation.Remote.TimeoutSec,
			Logger:     logger,
		})
		generators = append(generators, g)
		tierCheckers = append(tierCheckers, g)
	}
	pipeline := classify.NewPipeline(logger, generators...)
	logger.Info("Classification pipeline created", zap.Int("generative_tiers", len(generators)))

	// Repositories
	itemRepo := itemrepo.New(store, cfg.Storage.KeyPrefix)
	noteRepo := noterepo.New(store, cfg.Storage.KeyPrefix)

	// Use case services
	itemSvc := itemuc.New(itemRepo, pipeline, noteRepo)
	noteSvc := noteuc.New(noteRepo, itemRepo)
	healthSvc := healthuc.New(store, tierCheckers...)

	server := chiTransport.NewServer(itemSvc, noteSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
