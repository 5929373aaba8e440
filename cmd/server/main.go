package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"bookqa/internal/api"
	"bookqa/internal/chunker"
	"bookqa/internal/config"
	"bookqa/internal/embed"
	"bookqa/internal/engine"
	"bookqa/internal/parser"
	"bookqa/internal/rewrite"
)

func main() {
	godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	parser.DefaultPDFFallback = cfg.PDFFallbackPdftotext

	// A fresh embedder is fitted per corpus rebuild.
	newEmbedder := func() (embed.Embedder, error) {
		return embed.New(cfg.Embedder, embed.OpenAIConfig{
			BaseURL: cfg.OpenAIBaseURL,
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			Timeout: cfg.OpenAITimeout,
		})
	}

	pool := rewrite.NewPool(
		rewrite.NewCommandRunner(cfg.RewriteBin, cfg.RewriteModel),
		cfg.RewriteWorkers,
		cfg.RewriteTimeout,
		log.With("component", "rewrite"),
	)

	eng := engine.New(engine.Options{
		ChunkConfig: chunker.Config{MaxWords: cfg.MaxWords, Overlap: cfg.OverlapWords},
		NewEmbedder: newEmbedder,
		Polisher:    pool,
		DefaultTopK: cfg.DefaultTopK,
		Log:         log.With("component", "engine"),
	})

	srv := api.NewServer(eng, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		pool.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting bookqa", "port", cfg.Port, "embedder", cfg.Embedder)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
