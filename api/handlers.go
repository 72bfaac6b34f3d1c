package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dkkundu/DeepDocAI/extract"
	"github.com/dkkundu/DeepDocAI/fault"
	"github.com/dkkundu/DeepDocAI/summarize"
)

const (
	healthTimeout = 5 * time.Second
	modelsTimeout = 10 * time.Second
)

// HandlerOptions carries the boundary-layer settings derived from the
// process configuration.
type HandlerOptions struct {
	DefaultModel   string
	OllamaURL      string
	UploadDir      string
	MaxUploadBytes int64
	// AllowedModels restricts which models callers may request. Empty means
	// no restriction.
	AllowedModels []string
}

// Handler implements the HTTP endpoints of the summarization service.
type Handler struct {
	summarizer Summarizer
	models     ModelLister
	opts       HandlerOptions
	logger     *zap.Logger
}

func NewHandler(summarizer Summarizer, models ModelLister, opts HandlerOptions, logger *zap.Logger) *Handler {
	return &Handler{
		summarizer: summarizer,
		models:     models,
		opts:       opts,
		logger:     logger,
	}
}

type summarizeResponse struct {
	Filename       string `json:"filename"`
	FileType       string `json:"file_type"`
	Model          string `json:"model"`
	OriginalLength int    `json:"original_length"`
	Summary        string `json:"summary"`
	SummaryLength  int    `json:"summary_length"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

type healthResponse struct {
	Status          string `json:"status"`
	OllamaConnected bool   `json:"ollama_connected"`
	OllamaURL       string `json:"ollama_url"`
}

type modelsResponse struct {
	Models       []string `json:"models"`
	CurrentModel string   `json:"current_model"`
}

// Summarize accepts a multipart document upload and returns its summary.
func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.opts.MaxUploadBytes); err != nil {
		maxMB := h.opts.MaxUploadBytes / (1024 * 1024)
		writeError(w, http.StatusBadRequest, fmt.Sprintf("file too large (max %dMB) or invalid form", maxMB))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	format, ok := extract.ParseFormat(header.Filename)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf(
			"unsupported file type: %s. Supported types: .pdf, .docx, .doc",
			strings.ToLower(filepath.Ext(header.Filename))))
		return
	}

	model := strings.TrimSpace(r.FormValue("model"))
	if model == "" {
		model = h.opts.DefaultModel
	}
	if !h.modelAllowed(model) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("model %q is not allowed", model))
		return
	}

	maxWords := normalizeMaxLength(r.FormValue("max_length"))

	path, err := h.saveUpload(file, format)
	if err != nil {
		h.logger.Error("Failed to store upload",
			zap.String("filename", header.Filename),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to store uploaded file")
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			h.logger.Warn("Failed to remove uploaded file",
				zap.String("file", path),
				zap.Error(err))
		}
	}()

	h.logger.Info("Processing file",
		zap.String("filename", header.Filename),
		zap.String("model", model))

	result, err := h.summarizer.Summarize(r.Context(), summarize.Request{
		FilePath: path,
		Format:   format,
		Model:    model,
		MaxWords: maxWords,
	})
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summarizeResponse{
		Filename:       header.Filename,
		FileType:       string(format),
		Model:          model,
		OriginalLength: result.OriginalLength,
		Summary:        result.Summary,
		SummaryLength:  result.SummaryLength,
	})
}

// Health probes the generation service and reports connectivity.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	connected := true
	if _, err := h.models.Tags(ctx); err != nil {
		h.logger.Warn("Generation service health probe failed", zap.Error(err))
		connected = false
	}

	status := "healthy"
	if !connected {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:          status,
		OllamaConnected: connected,
		OllamaURL:       h.opts.OllamaURL,
	})
}

// Models lists the models installed on the generation service.
func (h *Handler) Models(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), modelsTimeout)
	defer cancel()

	names, err := h.models.Tags(ctx)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	if len(h.opts.AllowedModels) > 0 {
		filtered := make([]string, 0, len(names))
		for _, name := range names {
			if h.modelAllowed(name) {
				filtered = append(filtered, name)
			}
		}
		names = filtered
	}

	writeJSON(w, http.StatusOK, modelsResponse{
		Models:       names,
		CurrentModel: h.opts.DefaultModel,
	})
}

// Root serves the endpoint index.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "DeepDocAI document summarizer API",
		"endpoints": map[string]string{
			"health":    "/health",
			"models":    "/models",
			"summarize": "/summarize",
		},
	})
}

func (h *Handler) modelAllowed(model string) bool {
	if len(h.opts.AllowedModels) == 0 {
		return true
	}
	for _, allowed := range h.opts.AllowedModels {
		if model == allowed {
			return true
		}
	}
	return false
}

// saveUpload stores the uploaded file under a fresh name so concurrent
// uploads of identically named files cannot collide.
func (h *Handler) saveUpload(file multipart.File, format extract.Format) (string, error) {
	if err := os.MkdirAll(h.opts.UploadDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(h.opts.UploadDir, uuid.New().String()+string(format))
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// normalizeMaxLength maps absent, zero, negative, or unparseable values to 0,
// which the prompt builder treats as unlimited.
func normalizeMaxLength(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

// statusForKind maps failure kinds to response classes: bad input is a client
// error, misconfiguration and upstream trouble are server errors.
func statusForKind(kind fault.Kind) int {
	switch kind {
	case fault.UnsupportedFormat, fault.ExtractionFailed, fault.EmptyResponse:
		return http.StatusBadRequest
	case fault.CapabilityUnavailable:
		return http.StatusInternalServerError
	case fault.ServiceError:
		return http.StatusBadGateway
	case fault.ServiceUnreachable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeFailure(w http.ResponseWriter, err error) {
	var fe *fault.Error
	if !errors.As(err, &fe) {
		h.logger.Error("Request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.logger.Error("Request failed",
		zap.String("kind", fe.Kind.String()),
		zap.Error(err))
	writeJSON(w, statusForKind(fe.Kind), errorResponse{
		Error:  fe.Kind.String(),
		Detail: fe.Detail,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{
		Error:  http.StatusText(status),
		Detail: detail,
	})
}
