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
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kino-labs/cinerank/internal/catalog"
	"github.com/kino-labs/cinerank/internal/config"
	"github.com/kino-labs/cinerank/internal/db"
	dbRedis "github.com/kino-labs/cinerank/internal/db/redis"
	"github.com/kino-labs/cinerank/internal/domain/rank"
	logpkg "github.com/kino-labs/cinerank/internal/logger"
	"github.com/kino-labs/cinerank/internal/metrics"
	rankrepo "github.com/kino-labs/cinerank/internal/repository/rank"
	"github.com/kino-labs/cinerank/internal/repository/reccache"
	"github.com/kino-labs/cinerank/internal/text"
	"github.com/kino-labs/cinerank/internal/tfidf"
	chiTransport "github.com/kino-labs/cinerank/internal/transport/chi"
	healthuc "github.com/kino-labs/cinerank/internal/usecase/health"
	libraryuc "github.com/kino-labs/cinerank/internal/usecase/library"
	recommenduc "github.com/kino-labs/cinerank/internal/usecase/recommend"
	"github.com/kino-labs/cinerank/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()
	if env == "local" {
		_ = godotenv.Load()
	}

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting cinerank API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog_path", cfg.Catalog.Path),
	)

	// Load the catalog and build the ranking index. Both happen once:
	// the catalog is fixed for the process lifetime.
	store, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}

	normalizer, err := text.NewNormalizer(text.Analyzer(cfg.Catalog.Analyzer))
	if err != nil {
		logger.Fatal("Failed to create normalizer", zap.Error(err))
	}

	index, err := rankrepo.NewIndex(store, normalizer, tfidf.New(cfg.Catalog.MaxFeatures))
	if err != nil {
		logger.Fatal("Failed to build ranking index", zap.Error(err))
	}
	logger.Info("Ranking index built",
		zap.Int("titles", store.Len()),
		zap.Int("vocabulary", index.Dimensions()),
	)

	// Register pipeline metrics explicitly (no init())
	metrics.RegisterRecommendMetrics()

	// Optional Redis response cache. The service runs without it.
	ctx := context.Background()
	var kv db.Store
	if cfg.Cache.Enabled() {
		cacheStore, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}

		readiness := time.Duration(cfg.Cache.ReadinessTimeoutSec) * time.Second
		if err := cacheStore.WaitForReady(ctx, readiness); err != nil {
			logger.Warn("Cache not ready, continuing without it", zap.Error(err))
			cacheStore.Close()
		} else {
			logger.Info("Connected to cache")
			defer cacheStore.Close()
			kv = cacheStore
		}
	}

	// Create use case services
	recommendSvc := recommenduc.New(index)
	if kv != nil {
		ttl := time.Duration(cfg.Cache.TTLSec) * time.Second
		recommendSvc.WithCache(reccache.New(kv, store, ttl, metrics.RecommendCacheTotal, logger))
	}
	librarySvc := libraryuc.New(store)

	// Pass nil interface (not typed nil pointer!) if the cache is disabled.
	var cachePinger healthuc.CachePinger
	if kv != nil {
		cachePinger = kv
	}
	healthSvc := healthuc.New(store, cachePinger)

	// Create chi server
	limits := rank.Limits{
		DefaultTopK: cfg.Recommend.DefaultTopK,
		MaxTopK:     cfg.Recommend.MaxTopK,
	}
	server := chiTransport.NewServer(recommendSvc, librarySvc, healthSvc, limits, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
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
