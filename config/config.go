package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is built once at process start from the environment and passed to
// the components that need it.
type Config struct {
	AppPort            int           `env:"APP_PORT" envDefault:"8000"`
	OllamaBaseURL      string        `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaModel        string        `env:"OLLAMA_MODEL" envDefault:"deepseek-r1"`
	GenerateTimeout    time.Duration `env:"GENERATE_TIMEOUT" envDefault:"120s"`
	UploadDir          string        `env:"UPLOAD_DIR" envDefault:"uploads"`
	MaxUploadMB        int           `env:"MAX_UPLOAD_MB" envDefault:"25"`
	ExtractWorkers     int           `env:"EXTRACT_WORKERS" envDefault:"4"`
	EnableOCR          bool          `env:"ENABLE_OCR" envDefault:"false"`
	AntiwordPath       string        `env:"ANTIWORD_PATH" envDefault:"antiword"`
	ModelAllowlistPath string        `env:"MODEL_ALLOWLIST_PATH"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

type allowlistFile struct {
	Models []string `yaml:"models"`
}

// LoadModelAllowlist reads the YAML list of models callers may request. An
// empty path means callers may request any model.
func LoadModelAllowlist(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model allowlist: %w", err)
	}

	var file allowlistFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse model allowlist: %w", err)
	}
	return file.Models, nil
}
