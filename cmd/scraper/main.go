package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hudsonmp/project-finder/internal/collector"
	"github.com/hudsonmp/project-finder/internal/config"
	"github.com/hudsonmp/project-finder/internal/dashboard"
	"github.com/hudsonmp/project-finder/internal/domain"
	"github.com/hudsonmp/project-finder/internal/ingest"
	"github.com/hudsonmp/project-finder/internal/pipeline"
	"github.com/hudsonmp/project-finder/internal/processor"
	"github.com/hudsonmp/project-finder/internal/scheduler"
	"github.com/hudsonmp/project-finder/internal/storage"
)

const (
	snapshotFile = "data/current.json"
	databaseFile = "data/posts.db"
	targetsFile  = "input/subreddits.csv"
	keywordsFile = "input/keywords.csv"
)

func main() {
	// 1. Setup
	godotenv.Load()
	cfg := config.Load()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	if err := os.MkdirAll("data", 0755); err != nil {
		logger.Error("failed to create data directory", "err", err)
		os.Exit(1)
	}

	// 2. Run Dashboard
	go func() {
		logger.Info("starting dashboard", "port", cfg.Port)
		if err := dashboard.StartServer(snapshotFile, cfg.Port); err != nil {
			logger.Error("dashboard failed", "err", err)
		}
	}()

	// 3. Load Inputs (optional CSV overrides)
	targets, err := ingest.LoadTargets(targetsFile)
	if err != nil || len(targets) == 0 {
		for _, sub := range cfg.Subreddits {
			targets = append(targets, domain.Target{Subreddit: sub})
		}
	}
	keywords, _ := ingest.LoadKeywords(keywordsFile)

	// 4. Initialize Client (injected config; typed error on missing creds)
	client, err := collector.New(cfg)
	if err != nil {
		logger.Error("failed to initialize collector", "mode", cfg.CollectorMode, "error", err)
		os.Exit(1)
	}
	logger.Info("collector initialized", "mode", cfg.CollectorMode)

	// 5. Storage
	store, err := storage.NewPostStore(databaseFile)
	if err != nil {
		logger.Error("failed to open post store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	snapshot := make(chan domain.Post, 100)
	var writerWg sync.WaitGroup
	writer := &storage.WriterService{FilePath: snapshotFile}
	writerWg.Add(1)
	go writer.Start(&writerWg, snapshot)

	// 6. Pipeline
	numWorkers := 4
	if cfg.CollectorMode == "public" {
		numWorkers = 2 // go slower for public JSON
	}
	proc := processor.New(keywords, 2*cfg.RefreshInterval)
	pipe := &pipeline.Pipeline{
		Collector: client,
		Processor: proc,
		Store:     store,
		Snapshot:  snapshot,
		Limit:     cfg.MaxPostsPerSubreddit,
		Workers:   numWorkers,
		Logger:    logger,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 7. Initial refresh, then schedule
	logger.Info("starting scrape cycle", "targets", len(targets))
	if _, err := pipe.Refresh(ctx, targets); err != nil {
		logger.Error("initial refresh failed", "err", err)
	}

	sched := scheduler.New(cfg.RefreshInterval, func(ctx context.Context) error {
		_, err := pipe.Refresh(ctx, targets)
		return err
	}, logger)
	if _, err := sched.Schedule(ctx); err != nil {
		logger.Error("failed to schedule refresh", "err", err)
		os.Exit(1)
	}

	// 8. Graceful Shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Info("shutdown signal received")

	cancel()
	sched.Stop()
	close(snapshot)
	writerWg.Wait()
	logger.Info("shutdown complete")
}
