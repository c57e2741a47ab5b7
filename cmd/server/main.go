package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/PauPin2013/Connect4/internal/api"
	"github.com/PauPin2013/Connect4/internal/config"
	"github.com/PauPin2013/Connect4/internal/factory"
	redisstorage "github.com/PauPin2013/Connect4/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	configPath := os.Getenv("C4_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Build factory config
	factoryCfg := factory.Config{
		Logger:        logger,
		StorageType:   cfg.Storage.Type,
		BotThinkDelay: cfg.Bot.ThinkDelay.Std(),
	}
	factoryCfg.AuthConfig.SessionDuration = cfg.Auth.SessionDuration.Std()

	if cfg.Storage.Type == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Storage.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Load the word bank: prefer the seeded copy in storage, fall back
	// to the file on disk
	ctx := context.Background()
	if err := app.VocabularyService.LoadFromStorage(ctx); err != nil {
		if err := app.VocabularyService.LoadFromFile(ctx, cfg.Vocabulary.Path); err != nil {
			logger.Warn("could not load vocabulary; games will run without questions",
				slog.String("path", cfg.Vocabulary.Path),
				slog.String("error", err.Error()),
			)
		}
	}
	logger.Info("vocabulary loaded", slog.Int("words", app.VocabularyService.WordCount()))

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		AuthService:       app.AuthService,
		GameController:    app.GameController,
		GameWatcher:       app.GameWatcher,
		OfflineController: app.OfflineController,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Server.Host
	serverConfig.Port = cfg.Server.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-runCtx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
