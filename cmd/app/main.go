package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mlarsden/PocketFarm_Go/internal/clock"
	"github.com/mlarsden/PocketFarm_Go/internal/config"
	"github.com/mlarsden/PocketFarm_Go/internal/database"
	"github.com/mlarsden/PocketFarm_Go/internal/database/postgres"
	"github.com/mlarsden/PocketFarm_Go/internal/event"
	"github.com/mlarsden/PocketFarm_Go/internal/game"
	"github.com/mlarsden/PocketFarm_Go/internal/metrics"
	"github.com/mlarsden/PocketFarm_Go/internal/reducer"
	"github.com/mlarsden/PocketFarm_Go/internal/repository"
	"github.com/mlarsden/PocketFarm_Go/internal/server"
)

const (
	dbMaxConns        = 10
	dbMaxIdleTime     = 30 * time.Minute
	dbMaxLifetime     = time.Hour
	snapshotCacheSize = 1024
	snapshotCacheTTL  = 10 * time.Minute
	shutdownTimeout   = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	dbPool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConns, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// Snapshot store: postgres behind a write-through LRU cache
	snapshots := repository.NewCachedSnapshots(
		postgres.NewSnapshotRepository(dbPool),
		snapshotCacheSize,
		snapshotCacheTTL,
	)

	// Event bus with metrics wired in
	bus := event.NewMemoryBus()
	if err := metrics.NewEventMetricsCollector().Register(bus); err != nil {
		slog.Error("Failed to register event metrics", "error", err)
		os.Exit(1)
	}

	engine := reducer.New(clock.RealClock{})
	gameService := game.NewService(snapshots, engine, bus, game.Options{
		SyncDebounce:  cfg.SyncDebounce,
		FlushInterval: cfg.FlushInterval,
		PullInterval:  cfg.PullInterval,
	})

	srv := server.NewServer(cfg.Port, dbPool, gameService)

	// Run the server until interrupted
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}

	// Stop sessions last so their final flushes still reach the database
	if err := gameService.Shutdown(ctx); err != nil {
		slog.Error("Game service shutdown failed", "error", err)
	}

	slog.Info("Shutdown complete")
}
