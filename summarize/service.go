// Package summarize orchestrates the extract -> prompt -> generate pipeline
// for one uploaded document.
package summarize

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/dkkundu/DeepDocAI/extract"
	"github.com/dkkundu/DeepDocAI/fault"
	"github.com/dkkundu/DeepDocAI/pool"
)

// Generator produces a completion for a prompt from the generation service.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Request describes one summarize operation. MaxWords <= 0 means the summary
// length is unlimited; the boundary layer normalizes values before building
// the request.
type Request struct {
	FilePath string
	Format   extract.Format
	Model    string
	MaxWords int
}

// Result carries the summary and the character counts reported to the caller.
// OriginalLength is measured before prompt truncation.
type Result struct {
	Summary        string
	OriginalLength int
	SummaryLength  int
}

// Service runs the summarization pipeline. Stages execute strictly
// sequentially and any failure terminates the request with its kind
// unchanged; nothing is retried.
type Service struct {
	extractors map[extract.Format]extract.TextExtractor
	workers    *pool.Pool
	generator  Generator
	logger     *zap.Logger
}

func NewService(
	extractors map[extract.Format]extract.TextExtractor,
	workers *pool.Pool,
	generator Generator,
	logger *zap.Logger,
) *Service {
	return &Service{
		extractors: extractors,
		workers:    workers,
		generator:  generator,
		logger:     logger,
	}
}

func (s *Service) Summarize(ctx context.Context, req Request) (*Result, error) {
	extractor, ok := s.extractors[req.Format]
	if !ok {
		return nil, fault.New(fault.UnsupportedFormat, "unsupported file type: %s", req.Format)
	}

	s.logger.Info("Extracting document text",
		zap.String("file", req.FilePath),
		zap.String("format", string(req.Format)))

	text, err := pool.Run(ctx, s.workers, func() (string, error) {
		return extractor.ExtractText(req.FilePath)
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fault.New(fault.ExtractionFailed,
			"could not extract text from document; the file might be empty or corrupted")
	}

	originalLength := utf8.RuneCountInString(text)

	prompt, truncated := BuildPrompt(text, req.MaxWords)
	if truncated {
		s.logger.Warn("Document text truncated for prompt",
			zap.String("file", req.FilePath),
			zap.Int("original_chars", originalLength),
			zap.Int("limit", maxPromptChars))
	}

	s.logger.Info("Requesting summary",
		zap.String("model", req.Model),
		zap.Int("prompt_chars", utf8.RuneCountInString(prompt)))

	summary, err := s.generator.Generate(ctx, req.Model, prompt)
	if err != nil {
		return nil, err
	}

	return &Result{
		Summary:        summary,
		OriginalLength: originalLength,
		SummaryLength:  utf8.RuneCountInString(summary),
	}, nil
}
