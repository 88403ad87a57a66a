package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/bonanweb/sitepush/config"
	"github.com/bonanweb/sitepush/internal/sitemap"
	"github.com/bonanweb/sitepush/internal/storage"
	"github.com/bonanweb/sitepush/internal/utils"
)

func main() {
	// Best-effort: a missing .env is fine
	_ = godotenv.Load()

	cfg, err := config.LoadExtractConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.NewPushLogger(cfg.LogFile, cfg.Verbose)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	if err := run(cfg, logger); err != nil {
		logger.LogError("extraction failed: %v", err)
		logger.Close()
		os.Exit(1)
	}
	logger.Close()
}

func run(cfg *config.ExtractConfig, logger *utils.PushLogger) error {
	extractor := sitemap.NewExtractor(&sitemap.ExtractorConfig{
		Timeout:    cfg.Timeout,
		UserAgent:  cfg.UserAgent,
		ChildDelay: cfg.Delay,
	}, logger)

	urls, err := extractor.Extract(context.Background(), cfg.SitemapURL)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs extracted from %s", cfg.SitemapURL)
	}

	// Only a successful extraction touches the output file
	store := storage.NewFileStore(cfg.Output)
	if err := store.Save(urls); err != nil {
		return err
	}

	logger.LogInfo("saved %d URLs to %s", len(urls), cfg.Output)
	for i, u := range urls {
		if i >= 5 {
			break
		}
		logger.LogInfo("preview %d: %s", i+1, u)
	}
	return nil
}
