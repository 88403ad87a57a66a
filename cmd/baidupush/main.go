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

	cfg, err := config.LoadBaiduConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.NewPushLogger(cfg.LogFile, cfg.Verbose)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	if err := run(cfg, logger); err != nil {
		logger.LogError("Baidu push failed: %v", err)
		logger.Close()
		os.Exit(1)
	}
	logger.Close()
}

func run(cfg *config.BaiduConfig, logger *utils.PushLogger) error {
	urls, err := submit.LoadURLs(storage.NewFileStore(cfg.URLsFile))
	if err != nil {
		return err
	}

	batch := submit.PrepareBatch(urls, cfg.Random, submit.BaiduBatchLimit)
	logger.LogDebug("prepared batch of %d URLs (from %d in %s)", len(batch), len(urls), cfg.URLsFile)

	client := submit.NewBaiduClient(cfg.Endpoint, cfg.Timeout, logger)
	result, err := client.Submit(context.Background(), cfg.Site, cfg.Token, batch)
	if err != nil {
		return err
	}

	logger.LogInfo("Baidu accepted %d URLs, %d submissions remaining today", result.Success, result.Remain)
	if len(result.NotSameSite) > 0 {
		logger.LogError("rejected as not belonging to site: %v", result.NotSameSite)
	}
	if len(result.NotValid) > 0 {
		logger.LogError("rejected as invalid: %v", result.NotValid)
	}
	return nil
}
