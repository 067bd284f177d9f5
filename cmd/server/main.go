package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mcoot/teamdraft/internal/api"
	"github.com/mcoot/teamdraft/internal/config"
	"github.com/mcoot/teamdraft/internal/factory"
	redisstorage "github.com/mcoot/teamdraft/internal/storage/redis"
	"github.com/mcoot/teamdraft/internal/telemetry"
	"github.com/mcoot/teamdraft/internal/web"
)

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	conf, err := config.Load(os.Getenv("TEAMDRAFT_CONFIG_DIR"))
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: conf.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Metrics export to stderr so they stay apart from the JSON logs
	metrics, err := telemetry.New(telemetry.Config{
		Enabled:     conf.Metrics.Enabled,
		ServiceName: "teamdraft",
		Interval:    conf.Metrics.Interval,
		Writer:      os.Stderr,
	})
	if err != nil {
		logger.Error("failed to set up metrics", slog.String("error", err.Error()))
		os.Exit(1)
	}
	metrics.Install()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metrics.Shutdown(ctx); err != nil {
			logger.Warn("failed to flush metrics", slog.String("error", err.Error()))
		}
	}()

	// Build factory config
	cfg := factory.Config{
		Logger:        logger,
		StorageType:   conf.Storage.Type,
		SQLitePath:    conf.Storage.SQLitePath,
		PostgresDSN:   conf.Storage.PostgresDSN,
		TickInterval:  conf.Engine.TickInterval,
		Seed:          conf.Engine.Seed,
		MeterProvider: metrics.MeterProvider(),
	}
	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = conf.Storage.RedisURL
		redisCfg.KeyPrefix = conf.Storage.RedisKeyPrefix
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	app.Start()

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:     logger,
		Controller: app.Controller,
		Sound:      app.Sound,
	})

	// Create web router
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:      logger,
		Controller:  app.Controller,
		Events:      app.Events,
		Sockets:     app.Sockets,
		Broadcaster: app.Broadcaster,
		StaticDir:   findStaticDir(),
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = conf.Server.Host
	serverConfig.Port = conf.Server.Port
	serverConfig.ShutdownTimeout = conf.Server.ShutdownTimeout
	// Event streams and sockets never finish on their own
	serverConfig.OnShutdown = app.Close
	server := api.NewServer(mux, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", conf.Storage.Type),
		slog.Bool("metrics", metrics.Enabled()),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			app.Close()
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
		}
		app.Close()
	}

	logger.Info("server stopped")
}

// findStaticDir looks for an optional static assets directory
func findStaticDir() string {
	candidates := []string{
		"internal/web/static",
		filepath.Join(os.Getenv("PWD"), "internal/web/static"),
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}
