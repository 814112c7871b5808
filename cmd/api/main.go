package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/mvdk-dev/playmix/internal/api/handler"
	"github.com/mvdk-dev/playmix/internal/api/middleware"
	"github.com/mvdk-dev/playmix/internal/auth"
	"github.com/mvdk-dev/playmix/internal/config"
	"github.com/mvdk-dev/playmix/internal/infrastructure/cache"
	"github.com/mvdk-dev/playmix/internal/infrastructure/movies"
	"github.com/mvdk-dev/playmix/internal/infrastructure/postgres"
	"github.com/mvdk-dev/playmix/internal/infrastructure/queue"
	"github.com/mvdk-dev/playmix/internal/infrastructure/storage"
	"github.com/mvdk-dev/playmix/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Initialize infrastructure clients
	pgClient, err := postgres.NewClient(ctx, postgres.DefaultClientConfig(cfg.Database.DSN()))
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pgClient.Close()
	logger.Info("connected to PostgreSQL")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logger.Info("connected to Redis")

	queueClient, err := queue.NewClient(ctx, queue.DefaultClientConfig(cfg.RabbitMQ.URL()))
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	defer queueClient.Close()
	logger.Info("connected to RabbitMQ")

	storageClient, err := storage.NewClient(ctx, storage.ClientConfig{
		Endpoint:       cfg.MinIO.Endpoint,
		PublicEndpoint: cfg.MinIO.PublicEndpoint,
		AccessKey:      cfg.MinIO.AccessKey,
		SecretKey:      cfg.MinIO.SecretKey,
		Bucket:         cfg.MinIO.Bucket,
		UseSSL:         cfg.MinIO.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to MinIO: %w", err)
	}
	logger.Info("connected to MinIO")

	moviesClient := movies.NewClient(movies.ClientConfig{
		BaseURL: cfg.Movies.NormalizedBaseURL(),
		Timeout: cfg.Movies.Timeout,
	})

	// Wire repositories and services
	playlistRepo := postgres.NewPlaylistRepository(pgClient.Pool())
	adRepo := postgres.NewAdRepository(pgClient.Pool())
	playlistCache := cache.NewRedisPlaylistCache(redisClient)

	playlistSvc := usecase.NewCachedPlaylistService(
		usecase.NewPlaylistService(playlistRepo, adRepo, moviesClient, queueClient),
		playlistCache,
		usecase.CachedPlaylistServiceConfig{CacheTTL: cfg.Cache.PlaylistTTL},
	)
	adSvc := usecase.NewAdService(adRepo, storageClient, usecase.DefaultAdServiceConfig())

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret)

	r := setupRouter(logger, verifier, playlistSvc, adSvc, map[string]handler.Pinger{
		"postgres": pgClient,
		"redis":    redisPinger{client: redisClient},
		"minio":    storageClient,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func setupRouter(
	logger *slog.Logger,
	verifier *auth.Verifier,
	playlistSvc usecase.PlaylistService,
	adSvc usecase.AdService,
	readinessDeps map[string]handler.Pinger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	r.Get("/health", handler.Health)
	r.Get("/health/ready", handler.Readiness(readinessDeps))
	r.Handle("/metrics", promhttp.Handler())

	playlistHandler := handler.NewPlaylistHandler(playlistSvc)
	adHandler := handler.NewAdHandler(adSvc)

	authenticate := middleware.Authenticate(verifier)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/playlists", func(r chi.Router) {
			r.Get("/", playlistHandler.List)
			r.Get("/{id}", playlistHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", playlistHandler.Create)
				r.Post("/{id}/movie", playlistHandler.AttachMovie)
				r.Post("/{id}/ads", playlistHandler.AppendAd)
				r.Put("/{id}/order", playlistHandler.Reorder)
			})

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Use(middleware.RequireAdmin)
				r.Delete("/{id}", playlistHandler.Delete)
			})
		})

		r.Route("/ads", func(r chi.Router) {
			r.Get("/", adHandler.List)
			r.Get("/{id}", adHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Use(middleware.RequireAdmin)
				r.Post("/", adHandler.Create)
				r.Delete("/{id}", adHandler.Delete)
			})
		})
	})

	return r
}

// redisPinger adapts go-redis to the readiness Pinger interface.
type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
