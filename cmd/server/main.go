package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/dkkundu/DeepDocAI/api"
	"github.com/dkkundu/DeepDocAI/config"
	"github.com/dkkundu/DeepDocAI/extract"
	"github.com/dkkundu/DeepDocAI/ollama"
	"github.com/dkkundu/DeepDocAI/pool"
	"github.com/dkkundu/DeepDocAI/summarize"
)

func main() {
	// =========
	// Config
	// =========
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	allowedModels, err := config.LoadModelAllowlist(cfg.ModelAllowlistPath)
	if err != nil {
		log.Fatalf("Failed to load model allowlist: %v", err)
	}

	// =========
	// Logging
	// =========
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// =========
	// Extraction worker pool
	// =========
	workers := pool.New(cfg.ExtractWorkers)
	defer workers.Close()

	// =========
	// Format extractors
	// =========
	extractors := map[extract.Format]extract.TextExtractor{
		extract.FormatPDF:  extract.NewPDFExtractor(logger, cfg.EnableOCR),
		extract.FormatDOCX: extract.NewDOCXExtractor(),
		extract.FormatDOC:  extract.NewDOCExtractor(logger, cfg.AntiwordPath),
	}

	// =========
	// Generation client
	// =========
	generator := ollama.NewClient(cfg.OllamaBaseURL, cfg.GenerateTimeout)

	// =========
	// Summarize service
	// =========
	service := summarize.NewService(extractors, workers, generator, logger)

	// =========
	// API server
	// =========
	handler := api.NewHandler(service, generator, api.HandlerOptions{
		DefaultModel:   cfg.OllamaModel,
		OllamaURL:      cfg.OllamaBaseURL,
		UploadDir:      cfg.UploadDir,
		MaxUploadBytes: int64(cfg.MaxUploadMB) * 1024 * 1024,
		AllowedModels:  allowedModels,
	}, logger)

	server := api.NewServer(handler, cfg.AppPort, logger)
	if err := server.Start(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
