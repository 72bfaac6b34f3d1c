package summarize

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/dkkundu/DeepDocAI/extract"
	"github.com/dkkundu/DeepDocAI/fault"
	"github.com/dkkundu/DeepDocAI/pool"
)

type stubExtractor struct {
	text string
	err  error
}

func (s *stubExtractor) ExtractText(string) (string, error) {
	return s.text, s.err
}

type stubGenerator struct {
	summary    string
	err        error
	lastModel  string
	lastPrompt string
}

func (s *stubGenerator) Generate(_ context.Context, model, prompt string) (string, error) {
	s.lastModel = model
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.summary, nil
}

func newTestService(t *testing.T, extractor extract.TextExtractor, generator Generator) *Service {
	t.Helper()

	workers := pool.New(1)
	t.Cleanup(workers.Close)

	extractors := map[extract.Format]extract.TextExtractor{}
	if extractor != nil {
		extractors[extract.FormatPDF] = extractor
	}
	return NewService(extractors, workers, generator, zap.NewNop())
}

func TestSummarizeSuccess(t *testing.T) {
	generator := &stubGenerator{summary: "A short summary."}
	svc := newTestService(t, &stubExtractor{text: "Héllo document body"}, generator)

	result, err := svc.Summarize(context.Background(), Request{
		FilePath: "doc.pdf",
		Format:   extract.FormatPDF,
		Model:    "deepseek-r1",
		MaxWords: 50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Summary != "A short summary." {
		t.Errorf("unexpected summary %q", result.Summary)
	}
	// 19 characters: rune count, not byte count.
	if result.OriginalLength != 19 {
		t.Errorf("expected original length 19, got %d", result.OriginalLength)
	}
	if result.SummaryLength != 16 {
		t.Errorf("expected summary length 16, got %d", result.SummaryLength)
	}
	if generator.lastModel != "deepseek-r1" {
		t.Errorf("expected model passed through, got %q", generator.lastModel)
	}
	if !strings.Contains(generator.lastPrompt, "Keep the summary under 50 words.") {
		t.Error("expected the length instruction in the prompt")
	}
	if !strings.Contains(generator.lastPrompt, "Héllo document body") {
		t.Error("expected the document text in the prompt")
	}
}

func TestSummarizeUnsupportedFormat(t *testing.T) {
	svc := newTestService(t, nil, &stubGenerator{summary: "unused"})

	_, err := svc.Summarize(context.Background(), Request{
		FilePath: "doc.pdf",
		Format:   extract.FormatPDF,
		Model:    "m",
	})
	if kind, ok := fault.KindOf(err); !ok || kind != fault.UnsupportedFormat {
		t.Errorf("expected UnsupportedFormat, got %v", err)
	}
}

func TestSummarizeEmptyExtractedText(t *testing.T) {
	for _, text := range []string{"", "   \n\t  "} {
		svc := newTestService(t, &stubExtractor{text: text}, &stubGenerator{summary: "unused"})

		_, err := svc.Summarize(context.Background(), Request{
			FilePath: "doc.pdf",
			Format:   extract.FormatPDF,
			Model:    "m",
		})
		if kind, ok := fault.KindOf(err); !ok || kind != fault.ExtractionFailed {
			t.Errorf("text %q: expected ExtractionFailed, got %v", text, err)
		}
	}
}

func TestSummarizeExtractionFailurePropagatesUnchanged(t *testing.T) {
	wantErr := fault.New(fault.CapabilityUnavailable, "antiword is required for DOC extraction")
	svc := newTestService(t, &stubExtractor{err: wantErr}, &stubGenerator{summary: "unused"})

	_, err := svc.Summarize(context.Background(), Request{
		FilePath: "doc.pdf",
		Format:   extract.FormatPDF,
		Model:    "m",
	})
	if kind, ok := fault.KindOf(err); !ok || kind != fault.CapabilityUnavailable {
		t.Errorf("expected CapabilityUnavailable unchanged, got %v", err)
	}
}

func TestSummarizeGenerationFailurePropagatesUnchanged(t *testing.T) {
	wantErr := fault.New(fault.ServiceError, "generation service returned status 500: model not found")
	svc := newTestService(t, &stubExtractor{text: "body"}, &stubGenerator{err: wantErr})

	_, err := svc.Summarize(context.Background(), Request{
		FilePath: "doc.pdf",
		Format:   extract.FormatPDF,
		Model:    "m",
	})

	kind, ok := fault.KindOf(err)
	if !ok || kind != fault.ServiceError {
		t.Fatalf("expected ServiceError unchanged, got %v", err)
	}
	if !strings.Contains(err.Error(), "model not found") {
		t.Errorf("expected detail preserved, got %v", err)
	}
}
