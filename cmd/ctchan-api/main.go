package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ctchan-dev/ctchan/internal/config"
	"github.com/ctchan-dev/ctchan/internal/logger"
	"github.com/ctchan-dev/ctchan/internal/router"
	"github.com/ctchan-dev/ctchan/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("failed to set up dependencies", "error", err.Error())
		os.Exit(1)
	}
	defer deps.Storage.Cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps.Sessions.StartBackgroundSweep(ctx, time.Hour)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Public.HttpPort),
		Handler: router.New(deps),
	}

	go func() {
		logger.Log.Info("server started", "port", cfg.Public.HttpPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("server stopped", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("shutdown failed", "error", err.Error())
	}
	logger.Log.Info("server stopped")
}
