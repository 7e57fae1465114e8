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

	"github.com/joho/godotenv"

	"github.com/hongminglow/cost-manager/internal/config"
	"github.com/hongminglow/cost-manager/internal/events"
	"github.com/hongminglow/cost-manager/internal/logger"
	"github.com/hongminglow/cost-manager/internal/server"
	"github.com/hongminglow/cost-manager/internal/service"
	"github.com/hongminglow/cost-manager/internal/storage/backend"
	"github.com/hongminglow/cost-manager/internal/storage/snapcache"
)

func main() {
	envLoaded := loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	logger.Init(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if !envLoaded {
		slog.Info("no .env file found; relying on existing environment")
	}

	ctx := context.Background()
	store, err := backend.Open(ctx, cfg)
	if err != nil {
		slog.Error("init storage", "backend", cfg.DataBackend, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	publisher := newPublisher(cfg)
	defer publisher.Close()

	clock := service.SystemClock(cfg.Location)
	snapshots := snapcache.New(store, cfg.SnapshotCacheTTL)

	srv := server.New(cfg, server.Deps{
		Costs:   service.NewCostService(store, publisher, clock),
		Reports: service.NewReportService(store, store, snapshots, clock),
		Users:   service.NewUserService(store, store),
		Store:   store,
	})

	go func() {
		slog.Info("cost manager listening",
			"addr", cfg.HTTPAddress(),
			"backend", cfg.DataBackend,
			"timezone", cfg.Location.String())
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("shutting down", "signal", sig.String())

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		slog.Error("graceful shutdown error", "error", err)
	}
}

func loadLocalEnv() bool {
	return godotenv.Load() == nil
}

// newPublisher connects to the broker when AMQP_URL is set. A broker that is
// down at startup only disables events.
func newPublisher(cfg config.Config) events.Publisher {
	if cfg.AMQPURL == "" {
		return events.Noop{}
	}
	publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		slog.Warn("cost events disabled", "exchange", cfg.AMQPExchange, "error", err)
		return events.Noop{}
	}
	slog.Info("publishing cost events", "exchange", cfg.AMQPExchange)
	return publisher
}
