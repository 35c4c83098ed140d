package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/youngkeol/notion-blog/internal/config"
	contentSvc "github.com/youngkeol/notion-blog/internal/domain/services/content"
	"github.com/youngkeol/notion-blog/internal/export"
	"github.com/youngkeol/notion-blog/internal/metrics"
	"github.com/youngkeol/notion-blog/internal/notion"
	contentService "github.com/youngkeol/notion-blog/internal/service/content"
)

func main() {
	outDir := flag.String("out", "", "Directory to write exported posts into (required)")
	format := flag.String("format", string(contentSvc.FormatMarkdown), "Output format: markdown or html")
	flag.Parse()

	if *outDir == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, closeLog, err := config.NewLogger(cfg, os.Stderr)
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	defer func() { _ = closeLog() }()

	site, err := config.LoadSite(cfg.SiteConfigPath)
	if err != nil {
		log.Fatalf("Failed to load site config: %v", err)
	}

	client := notion.NewClient(notion.Config{
		BaseURL:   cfg.NotionAPIURL,
		Token:     cfg.NotionToken,
		Version:   cfg.NotionVersion,
		RateLimit: cfg.NotionRateLimit,
		Retry:     notion.NewPolicy(notion.BackoffMode(cfg.NotionBackoff), 0, 0, cfg.NotionMaxRetries),
	}, logger)

	services, err := contentService.SetupServices(client, cfg, site, logger, metrics.NoopRecorder{})
	if err != nil {
		log.Fatalf("Failed to setup content services: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	exp := export.New(services.Index, services.Posts, site.Properties.Slug, logger)
	res, err := exp.Run(ctx, *outDir, contentSvc.Format(*format))
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	logger.Info("export finished",
		"dir", *outDir,
		"written", len(res.Written),
		"failed", len(res.Failed),
	)
	if len(res.Failed) > 0 {
		_ = closeLog()
		os.Exit(1)
	}
}
