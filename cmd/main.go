package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/velisarios/loadguard/config"
	"github.com/velisarios/loadguard/internal/circuitbreaker"
	"github.com/velisarios/loadguard/internal/handler"
	"github.com/velisarios/loadguard/internal/httpserver"
	"github.com/velisarios/loadguard/internal/metrics"
	"github.com/velisarios/loadguard/internal/watcher"
	"github.com/velisarios/loadguard/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, true, cfg.Server.Environment)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	registry := buildRegistry(cfg, log)

	collector := metrics.NewCollector(cfg.MetricsBuffer, log)
	collector.Start(ctx)

	watchInterval, err := time.ParseDuration(cfg.WatchInterval)
	if err != nil {
		log.Error("Invalid watch interval",
			slog.String("interval", cfg.WatchInterval),
			slog.Any("err", err))
		os.Exit(1)
	}
	go watcher.Watch(ctx, registry, watchInterval, log)

	admission := handler.NewAdmissionHandler(log, registry, http.HandlerFunc(serviceHandler), collector)

	srv, err := httpserver.New(cfg.Server.Address, setupRouter(admission, collector))
	if err != nil {
		log.Error("Failed to create server", slog.Any("err", err))
		os.Exit(1)
	}

	srvErrCh := make(chan error, 1)

	go func() {
		srvErrCh <- srv.Start()
	}()

	log.Info("Admission guard listening",
		slog.String("address", cfg.Server.Address),
		slog.Int("breakers", len(registry.All())))

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("Error during shutdown", slog.Any("err", err))
		}
	case err := <-srvErrCh:
		if err != nil {
			log.Error("Error running server", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

// buildRegistry constructs every configured breaker variant. Breakers stay
// registered even when their config flag is off; a disabled breaker
// short-circuits without sampling. The section-level switch maps to the
// service-level Disable on each breaker.
func buildRegistry(cfg *config.Config, log *slog.Logger) *circuitbreaker.Registry {
	registry := circuitbreaker.NewRegistry()

	breakers := []circuitbreaker.CircuitBreaker{
		circuitbreaker.NewLoadAverage(cfg.CircuitBreakers.LoadAverage, log),
		circuitbreaker.NewCPU(cfg.CircuitBreakers.CPU, log),
		circuitbreaker.NewMemory(cfg.CircuitBreakers.Memory, log),
	}

	for _, cb := range breakers {
		if !cfg.CircuitBreakers.Enabled {
			cb.Disable()
		}
		registry.Register(cb)
	}

	return registry
}

// serviceHandler stands in for the protected application. Deployments embed
// the admission handler around their own handler instead.
func serviceHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}
