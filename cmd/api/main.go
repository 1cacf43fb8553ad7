package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jaekwang-park/reminder-api/internal/config"
	"github.com/jaekwang-park/reminder-api/internal/extract"
	reminderhttp "github.com/jaekwang-park/reminder-api/internal/http"
	"github.com/jaekwang-park/reminder-api/internal/http/handler"
	"github.com/jaekwang-park/reminder-api/internal/metrics"
	"github.com/jaekwang-park/reminder-api/internal/repository"
	"github.com/jaekwang-park/reminder-api/internal/service"
)

func main() {
	// Initial logger at info level; reconfigured after config load
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(context.Background()); err != nil {
		logger.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.ParseLogLevel(),
	}))
	slog.SetDefault(logger)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	logger.Info("config loaded",
		"env", cfg.AppEnv,
		"port", cfg.ServerPort,
		"store", cfg.StoreDriver,
		"timezone", loc.String(),
		"log_level", cfg.LogLevel,
	)

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	observer, err := metrics.NewPrometheusObserver("", reg)
	if err != nil {
		return err
	}

	// Store
	repo, pinger, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// Services
	extractor := extract.NewExtractor(extract.NewWhenMatcher())
	reminderSvc := service.NewReminderService(repository.Instrument(repo, observer), extractor, loc)

	// HTTP Server
	srv := reminderhttp.NewServer(cfg.ServerPort, logger, reminderhttp.Deps{
		Reminders: reminderSvc,
		Store:     pinger,
		Gatherer:  reg,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx, 10*time.Second)
}

// openStore connects the configured reminder store. The returned pinger is nil
// for the in-memory store, which has nothing to check.
func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (repository.ReminderRepository, handler.Pinger, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		db, err := repository.NewDB(cfg.DB.DSN())
		if err != nil {
			return nil, nil, nil, err
		}
		repo := repository.NewPostgresReminder(db)
		if err := repo.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		logger.Info("database connected", "host", cfg.DB.Host, "name", cfg.DB.Name)
		return repo, db, func() { db.Close() }, nil

	case config.StoreDriverSQLite:
		repo, err := repository.NewSQLiteReminder(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Info("sqlite store opened", "path", cfg.SQLitePath)
		return repo, repo, func() { repo.Close() }, nil

	case config.StoreDriverMemory:
		logger.Warn("using in-memory store; reminders are lost on restart")
		return repository.NewMemoryReminder(), nil, func() {}, nil

	default:
		return nil, nil, nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}
