package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"

	"github.com/youngkeol/notion-blog/internal/config"
	"github.com/youngkeol/notion-blog/internal/handler"
	"github.com/youngkeol/notion-blog/internal/mcp"
	"github.com/youngkeol/notion-blog/internal/metrics"
	"github.com/youngkeol/notion-blog/internal/middleware"
	"github.com/youngkeol/notion-blog/internal/notion"
	contentService "github.com/youngkeol/notion-blog/internal/service/content"
)

func main() {
	mcpStdio := flag.Bool("mcp-stdio", false, "serve MCP tools over stdio instead of HTTP")
	flag.Parse()

	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// stdout belongs to the protocol in stdio mode
	logOut := os.Stdout
	if *mcpStdio {
		logOut = os.Stderr
	}
	logger, closeLog, err := config.NewLogger(cfg, logOut)
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	defer func() { _ = closeLog() }()
	slog.SetDefault(logger)

	site, err := config.LoadSite(cfg.SiteConfigPath)
	if err != nil {
		log.Fatalf("Failed to load site config: %v", err)
	}

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"traversal", cfg.TraversalMode,
	)

	var (
		recorder metrics.Recorder = metrics.NoopRecorder{}
		registry *prom.Registry
	)
	if cfg.MetricsEnabled {
		registry = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	client := notion.NewClient(notion.Config{
		BaseURL:   cfg.NotionAPIURL,
		Token:     cfg.NotionToken,
		Version:   cfg.NotionVersion,
		RateLimit: cfg.NotionRateLimit,
		Retry:     notion.NewPolicy(notion.BackoffMode(cfg.NotionBackoff), 0, 0, cfg.NotionMaxRetries),
	}, logger, notion.WithRecorder(recorder))

	services, err := contentService.SetupServices(client, cfg, site, logger, recorder)
	if err != nil {
		log.Fatalf("Failed to setup content services: %v", err)
	}

	mcpServer := mcp.NewServer(services.Posts, services.Categories, mcp.PropertyNames{
		Title:    site.Properties.Title,
		Date:     site.Properties.Date,
		Category: site.Properties.Category,
		Tags:     site.Properties.Tags,
		Slug:     site.Properties.Slug,
	}, logger)

	if *mcpStdio {
		logger.Info("serving MCP over stdio")
		if err := mcpserver.ServeStdio(mcpServer); err != nil {
			log.Fatalf("MCP stdio server failed: %v", err)
		}
		return
	}

	handlers := &handler.Handlers{
		Posts:      handler.NewPostHandler(services.Posts, services.Categories, site.MaxAge(), logger),
		Categories: handler.NewCategoryHandler(services.Categories, site.MaxAge(), logger),
		Site:       handler.NewSiteHandler(site),
	}

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	handlers.Register(mux)

	if registry != nil {
		mux.Handle("GET /metrics", metrics.HTTPHandler(registry))
		logger.Info("metrics endpoint enabled", "path", "/metrics")
	}
	if cfg.MCPEnabled {
		mux.Handle(mcp.Endpoint, mcp.NewHTTPServer(mcpServer))
		logger.Info("mcp endpoint enabled", "path", mcp.Endpoint)
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader, "Mcp-Session-Id"},
		ExposedHeaders: []string{middleware.RequestIDHeader, "Mcp-Session-Id"},
	})

	// Order: CORS → request logging → Recovery → Routes
	h := middleware.Chain(mux,
		corsHandler.Handler,
		middleware.RequestLogger(logger),
		middleware.Recovery(logger),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled to allow long-lived MCP streams
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
