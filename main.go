package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ykkmr/youtube-search-backend/internal/config"
	"github.com/ykkmr/youtube-search-backend/internal/logger"
	"github.com/ykkmr/youtube-search-backend/internal/search"
	"github.com/ykkmr/youtube-search-backend/internal/server"
	"github.com/ykkmr/youtube-search-backend/internal/youtube"
)

var (
	Version   = "1.0.0"
	BuildTime = "unknown"
)

func main() {
	configPath := flag.String("config", "config.yaml", "config file path")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("YouTube Search Backend Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.Logging)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	zl.Info("starting youtube search backend",
		zap.String("version", Version),
		zap.String("config", *configPath),
	)
	if !cfg.YouTube.APIKeyConfigured() {
		zl.Warn("YouTube API key is not configured, searches will fail until YOUTUBE_API_KEY is set")
	}

	client, err := youtube.NewClient(&cfg.YouTube, zl)
	if err != nil {
		zl.Fatal("create youtube client", zap.Error(err))
	}
	svc := search.NewService(cfg, client, zl)
	srv := server.New(cfg, svc, zl)

	if err := srv.Start(); err != nil {
		zl.Fatal("start server", zap.Error(err))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down")
	if err := srv.Shutdown(); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
	zl.Info("server stopped")
}
