package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/bonanweb/sitepush/config"
	"github.com/bonanweb/sitepush/internal/storage"
	"github.com/bonanweb/sitepush/internal/submit"
	"github.com/bonanweb/sitepush/internal/utils"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadBingConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.NewPushLogger(cfg.LogFile, cfg.Verbose)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	if err := run(cfg, logger); err != nil {
		logger.LogError("Bing push failed: %v", err)
		logger.Close()
		os.Exit(1)
	}
	logger.Close()
}

func run(cfg *config.BingConfig, logger *utils.PushLogger) error {
	urls, err := submit.LoadURLs(storage.NewFileStore(cfg.URLsFile))
	if err != nil {
		return err
	}

	batch := submit.PrepareBatch(urls, cfg.Random, submit.BingBatchLimit)
	logger.LogDebug("prepared batch of %d URLs (from %d in %s)", len(batch), len(urls), cfg.URLsFile)

	client := submit.NewBingClient(cfg.Endpoint, cfg.Timeout, logger)
	if err := client.Submit(context.Background(), cfg.Site, cfg.APIKey, batch); err != nil {
		return err
	}

	logger.LogInfo("Bing accepted batch of %d URLs", len(batch))
	return nil
}
