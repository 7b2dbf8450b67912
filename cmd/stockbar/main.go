package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"stockbar/internal/config"
	"stockbar/internal/fetcher"
	"stockbar/internal/logger"
	"stockbar/internal/menubar"
	"stockbar/internal/scheduler"
	"stockbar/internal/storage"
	"stockbar/internal/yahoo"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log.Infof("Configuration loaded from %s", *configPath)

	store, err := storage.New(cfg.Storage.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Errorf("Failed to close storage: %v", err)
		}
	}()

	client := yahoo.NewClient(cfg.Yahoo.BaseURL, cfg.Yahoo.Timeout)
	quotes := fetcher.New(client, cfg.Refresh.MaxAttempts, cfg.Refresh.RetryDelay)
	sched := scheduler.New(store, quotes, cfg, scheduler.Config{
		Interval:      cfg.Refresh.Interval,
		DebounceDelay: cfg.Refresh.Debounce,
	})
	renderer := menubar.NewRenderer(cfg.Display.Title, cfg.Display.Output, os.Stdout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Shutdown signal received, cleaning up...")
		cancel()
	}()

	updates := sched.Subscribe()
	go func() {
		// Show the cached snapshot before the first fetch lands.
		if err := renderer.Render(sched.Current(), false); err != nil {
			log.Errorf("Failed to render menu: %v", err)
		}
		for {
			select {
			case <-ctx.Done():
				return
			case u := <-updates:
				if err := renderer.Render(u.Snapshot, u.Loading); err != nil {
					log.Errorf("Failed to render menu: %v", err)
				}
			}
		}
	}()

	log.WithFields(log.Fields{
		"interval": cfg.Refresh.Interval,
		"symbols":  len(cfg.TrackedSymbols()),
	}).Info("Starting refresh scheduler")
	sched.Run(ctx)
}
