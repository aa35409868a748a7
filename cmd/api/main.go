package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"advanced-todo/pkg/translator"

	"go.uber.org/zap"

	dbadapter "advanced-todo/internal/adapter/db"
	httpadapter "advanced-todo/internal/adapter/http"
	"advanced-todo/internal/adapter/http/handlers"
	"advanced-todo/internal/app/service"
	"advanced-todo/internal/config"
)

const shutdownTimeout = 5 * time.Second

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageEs},
	})

	ctx := context.Background()
	store, err := dbadapter.ConnectDB(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close database connection", zap.Error(err))
		}
	}()

	migrateOnly := len(os.Args) > 1 && os.Args[1] == "migrate"
	if cfg.AutoMigrate || migrateOnly {
		if err := store.EnsureSchema(ctx); err != nil {
			logger.Fatal("failed to apply schema", zap.Error(err))
		}
	}
	if migrateOnly {
		return
	}

	taskRepository := dbadapter.NewTaskRepository(store.DB)
	taskService := service.NewTaskService(taskRepository)

	router, err := httpadapter.NewRouter(
		cfg,
		logger,
		handlers.NewHealthHandler(store.DB, cfg.AppName),
		handlers.NewTaskHandler(taskService),
	)
	if err != nil {
		logger.Fatal("failed to build router", zap.Error(err))
	}

	server := &http.Server{
		Addr:              net.JoinHostPort("", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", server.Addr), zap.String("env", cfg.AppEnv))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down server", zap.Error(err))
		return
	}
	logger.Info("server stopped")
}
