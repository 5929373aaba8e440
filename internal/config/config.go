package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth (optional; auth is disabled when unset)
	APIKey string

	// Upload limits
	MaxUploadBytes int64

	// Chunking
	MaxWords     int
	OverlapWords int

	// Retrieval
	DefaultTopK int

	// Embedder selection: "tfidf" or "openai"
	Embedder      string
	OpenAIBaseURL string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAITimeout time.Duration

	// Answer rewrite
	RewriteBin     string
	RewriteModel   string
	RewriteTimeout time.Duration
	RewriteWorkers int

	// PDF
	PDFFallbackPdftotext bool

	// Static frontend
	FrontendDir string
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("BOOKQA_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		MaxWords:     envInt("MAX_WORDS", 200),
		OverlapWords: envInt("OVERLAP_WORDS", 40),

		DefaultTopK: envInt("DEFAULT_TOP_K", 5),

		Embedder:      envOr("EMBEDDER", "tfidf"),
		OpenAIBaseURL: envOr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   envOr("OPENAI_EMBED_MODEL", "text-embedding-3-small"),
		OpenAITimeout: envDuration("OPENAI_TIMEOUT", 30*time.Second),

		RewriteBin:     envOr("REWRITE_BIN", "ollama"),
		RewriteModel:   envOr("REWRITE_MODEL", "llama3.2"),
		RewriteTimeout: envDuration("REWRITE_TIMEOUT", 20*time.Second),
		RewriteWorkers: envInt("REWRITE_WORKERS", 2),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		FrontendDir: envOr("FRONTEND_DIR", "frontend"),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.MaxWords <= 0 {
		cfg.MaxWords = 200
	}
	if cfg.OverlapWords < 0 || cfg.OverlapWords >= cfg.MaxWords {
		cfg.OverlapWords = 40
	}
	if cfg.DefaultTopK <= 0 {
		cfg.DefaultTopK = 5
	}
	if cfg.RewriteTimeout <= 0 {
		cfg.RewriteTimeout = 20 * time.Second
	}
	if cfg.RewriteWorkers <= 0 {
		cfg.RewriteWorkers = 2
	}

	return cfg
}

func (c Config) Validate() error {
	switch c.Embedder {
	case "", "tfidf":
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when EMBEDDER=openai")
		}
	default:
		return fmt.Errorf("unknown EMBEDDER %q", c.Embedder)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
