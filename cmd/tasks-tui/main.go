package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"advanced-todo/internal/client"
	"advanced-todo/internal/config"
	"advanced-todo/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML client config file")
	flag.Parse()

	cfg, err := config.LoadClientConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs only go to a file when one is configured.
	logger := zap.NewNop()
	if cfg.LogFile != "" {
		zapCfg := zap.NewProductionConfig()
		zapCfg.OutputPaths = []string{cfg.LogFile}
		zapCfg.ErrorOutputPaths = []string{cfg.LogFile}
		if logger, err = zapCfg.Build(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	zap.ReplaceGlobals(logger)
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := client.New(cfg.APIURL, client.WithLanguage(cfg.Language))
	if err := api.Health(ctx); err != nil {
		logger.Warn("api health check failed", zap.String("api_url", cfg.APIURL), zap.Error(err))
	}

	logger.Info("starting terminal client", zap.String("api_url", api.BaseURL()))
	if err := tui.Run(ctx, api, api.BaseURL()); err != nil {
		logger.Error("terminal client stopped", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
