package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/mcoot/teamdraft/internal/dependencies/clock"
	"github.com/mcoot/teamdraft/internal/dependencies/random"
	"github.com/mcoot/teamdraft/internal/services/scheduler"
	"github.com/mcoot/teamdraft/internal/services/session"
	"github.com/mcoot/teamdraft/internal/services/sound"
	"github.com/mcoot/teamdraft/internal/storage"
	"github.com/mcoot/teamdraft/internal/storage/memory"
	redisstorage "github.com/mcoot/teamdraft/internal/storage/redis"
	sqlstorage "github.com/mcoot/teamdraft/internal/storage/sql"
	"github.com/mcoot/teamdraft/internal/web/sse"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypeSQLite   = "sqlite"
	StorageTypePostgres = "postgres"
)

var _ session.Publisher = (*sse.Broadcaster)(nil)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Controller  *session.Controller
	Scheduler   *scheduler.Scheduler
	Sound       *sound.Service
	Events      *sse.Hub
	Sockets     *sse.Hub
	Broadcaster *sse.Broadcaster

	logger    *slog.Logger
	closeOnce sync.Once
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend: memory, redis, sqlite or postgres
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLitePath is the database file for "sqlite"; empty means in-memory
	SQLitePath string
	// PostgresDSN is the connection string for "postgres"
	PostgresDSN string
	// TickInterval is the engine tick period; zero uses scheduler.DefaultInterval
	TickInterval time.Duration
	// Seed makes every draw reproducible when set; empty uses crypto randomness
	Seed string
	// MeterProvider receives the session counters; nil uses the global provider
	MeterProvider metric.MeterProvider
}

// New creates a new application with all dependencies wired and the persisted session restored
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	var rnd random.Random = random.New()
	if cfg.Seed != "" {
		logger.Warn("engine seeded, draws are reproducible", slog.String("seed", cfg.Seed))
		rnd = random.NewSeeded(cfg.Seed)
	}

	app, err := newWithDependencies(store, clock.New(), rnd, cfg.TickInterval, cfg.MeterProvider, logger)
	if err != nil {
		closeStorage(store)
		return nil, err
	}
	return app, nil
}

func newStorage(cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		return redisStore, nil
	case StorageTypeSQLite:
		sqliteStore, err := sqlstorage.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return sqliteStore, nil
	case StorageTypePostgres:
		if cfg.PostgresDSN == "" {
			return nil, errors.New("PostgresDSN required when StorageType is postgres")
		}
		pgStore, err := sqlstorage.OpenPostgres(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return pgStore, nil
	}
	return nil, fmt.Errorf("invalid StorageType %q: must be memory, redis, sqlite or postgres", storageType)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	tick time.Duration,
	meters metric.MeterProvider,
	logger *slog.Logger,
) (*App, error) {
	controller, err := session.NewController(store, clk, rnd, logger, session.WithMeterProvider(meters))
	if err != nil {
		return nil, err
	}
	controller.Restore(context.Background())

	events := sse.NewHub("events", logger)
	sockets := sse.NewHub("sockets", logger)
	broadcaster := sse.NewBroadcaster(events, sockets, logger)
	controller.SetPublisher(broadcaster)

	return &App{
		Storage:     store,
		Clock:       clk,
		Random:      rnd,
		Controller:  controller,
		Scheduler:   scheduler.New(controller, clk, tick, logger),
		Sound:       sound.New(),
		Events:      events,
		Sockets:     sockets,
		Broadcaster: broadcaster,
		logger:      logger,
	}, nil
}

// Start runs the hubs and the engine tick
func (a *App) Start() {
	go a.Events.Run()
	go a.Sockets.Run()
	a.Scheduler.Start()
}

// Close stops the tick, disconnects clients and releases storage.
// Calls after the first are no-ops.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		a.Scheduler.Stop()
		a.Events.Close()
		a.Sockets.Close()
		if err := closeStorage(a.Storage); err != nil {
			a.logger.Warn("failed to close storage", slog.Any("error", err))
		}
	})
}

func closeStorage(s storage.Storage) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
