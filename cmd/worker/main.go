package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/mvdk-dev/playmix/internal/config"
	"github.com/mvdk-dev/playmix/internal/domain/repository"
	"github.com/mvdk-dev/playmix/internal/infrastructure/cache"
	"github.com/mvdk-dev/playmix/internal/infrastructure/queue"
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

	playlistCache := cache.NewRedisPlaylistCache(redisClient)

	// Setup signal handling for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// WaitGroup to track in-flight events
	var wg sync.WaitGroup

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting worker, consuming playlist events")
		err := queueClient.ConsumePlaylistEvents(ctx, func(event repository.PlaylistEvent) error {
			wg.Add(1)
			defer wg.Done()

			logger.Info("processing playlist event",
				slog.String("playlist_id", event.PlaylistID.String()),
				slog.String("kind", string(event.Kind)),
			)

			// Every event kind invalidates the cached aggregate. Deleted
			// playlists must drop out of the cache too, so no filtering
			// on kind happens here.
			if err := playlistCache.Delete(ctx, event.PlaylistID); err != nil {
				logger.Error("cache invalidation failed",
					slog.String("playlist_id", event.PlaylistID.String()),
					slog.String("error", err.Error()),
				)
				return err
			}

			return nil
		})
		if err != nil && ctx.Err() == nil {
			errCh <- fmt.Errorf("consumer error: %w", err)
		}
	}()

	// Wait for shutdown signal or error
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down worker", slog.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Worker.ShutdownTimeout)
	defer shutdownCancel()

	// Cancel the main context to stop consuming new messages
	cancel()

	// Wait for in-flight events to finish (or timeout)
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("all in-flight events processed")
	case <-shutdownCtx.Done():
		logger.Warn("shutdown timeout exceeded, some events may not have been processed")
	}

	logger.Info("worker stopped")
	return nil
}
