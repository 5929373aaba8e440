// Package engine orchestrates ingest and query over the shared corpus.
package engine

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"bookqa/internal/answer"
	"bookqa/internal/chunker"
	"bookqa/internal/corpus"
	"bookqa/internal/document"
	"bookqa/internal/embed"
	"bookqa/internal/index"
	"bookqa/internal/parser"
	"bookqa/internal/structure"
)

// Polisher rewrites an answer sentence, falling back to the input on
// failure. Satisfied by *rewrite.Pool.
type Polisher interface {
	Polish(ctx context.Context, raw string) string
}

// Options configures an Engine.
type Options struct {
	ChunkConfig chunker.Config
	Detectors   []structure.Detector
	// NewEmbedder builds a fresh embedder per ingest; corpus-fitted
	// embedders cannot be shared across corpus generations.
	NewEmbedder func() (embed.Embedder, error)
	Polisher    Polisher // optional
	DefaultTopK int
	Log         *slog.Logger
}

// Engine owns the corpus store and runs the ingest and query flows.
type Engine struct {
	opts  Options
	store *corpus.Store

	// Serializes whole ingest calls. Queries never take this lock;
	// they read the snapshot pointer instead.
	ingestMu sync.Mutex
}

func New(opts Options) *Engine {
	if opts.ChunkConfig.MaxWords <= 0 {
		opts.ChunkConfig = chunker.DefaultConfig()
	}
	if len(opts.Detectors) == 0 {
		opts.Detectors = structure.Defaults()
	}
	if opts.DefaultTopK <= 0 {
		opts.DefaultTopK = 5
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	return &Engine{opts: opts, store: corpus.NewStore()}
}

// File is one uploaded document.
type File struct {
	Name string
	Data []byte
}

// IngestResult reports what a successful ingest indexed.
type IngestResult struct {
	Files  []string
	Chunks int
}

// Ingest extracts, chunks, embeds and indexes a batch of documents,
// then replaces the corpus wholesale. Extraction failure of any single
// document aborts the whole batch; no partial corpus is ever
// committed. Concurrent ingests are serialized.
func (e *Engine) Ingest(ctx context.Context, files []File) (IngestResult, error) {
	e.ingestMu.Lock()
	defer e.ingestMu.Unlock()

	log := e.opts.Log

	// Extract all documents up front, in parallel, failing fast.
	pagesPerFile := make([][]document.Page, len(files))
	g, _ := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			p, err := parser.ForFile(f.Name)
			if err != nil {
				return &ExtractionError{File: f.Name, Err: err}
			}
			pages, err := p.Parse(bytes.NewReader(f.Data), f.Name)
			if err != nil {
				return &ExtractionError{File: f.Name, Err: err}
			}
			pagesPerFile[i] = pages
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return IngestResult{}, err
	}

	// Chunk in upload order so chunk ids are stable per batch.
	var chunks []document.Chunk
	names := make([]string, 0, len(files))
	for i, f := range files {
		names = append(names, f.Name)
		chunks = append(chunks, chunker.Chunk(pagesPerFile[i], e.opts.Detectors, f.Name, e.opts.ChunkConfig)...)
	}
	if len(chunks) == 0 {
		return IngestResult{}, ErrEmptyCorpus
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	embedder, err := e.opts.NewEmbedder()
	if err != nil {
		return IngestResult{}, fmt.Errorf("build embedder: %w", err)
	}
	if err := embedder.Fit(texts); err != nil {
		return IngestResult{}, fmt.Errorf("%w: %v", ErrEmptyCorpus, err)
	}
	vectors, err := embedder.Encode(texts)
	if err != nil {
		return IngestResult{}, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return IngestResult{}, ErrEmptyCorpus
	}

	ix, err := index.Build(vectors)
	if err != nil {
		return IngestResult{}, fmt.Errorf("%w: %v", ErrEmptyCorpus, err)
	}

	snap := &corpus.Snapshot{
		Chunks:   chunks,
		Index:    ix,
		Embedder: embedder,
		Sources:  answer.ExtractSources(chunks),
		BuiltAt:  time.Now(),
	}
	e.store.Replace(snap)

	log.Info("corpus replaced",
		"files", len(files),
		"chunks", len(chunks),
		"dimension", ix.Dimension(),
	)
	return IngestResult{Files: names, Chunks: len(chunks)}, nil
}

// Query answers a question against the live corpus snapshot.
func (e *Engine) Query(ctx context.Context, question string, topK int, polish bool) (document.QueryResult, error) {
	snap := e.store.Load()
	if snap == nil {
		return document.QueryResult{}, ErrNoIndex
	}
	if topK <= 0 {
		topK = e.opts.DefaultTopK
	}

	qv, err := snap.Embedder.Encode([]string{question})
	if err != nil {
		return document.QueryResult{}, fmt.Errorf("embed question: %w", err)
	}

	_, ids := snap.Index.Search(qv[0], topK)

	// Ids outside the chunk range are sentinels or stale; drop them
	// silently. An empty match set is a valid outcome.
	var matched []document.Chunk
	for _, id := range ids {
		if id < 0 || id >= len(snap.Chunks) {
			continue
		}
		matched = append(matched, snap.Chunks[id])
	}

	ans := answer.BuildResponse(matched)
	if polish && e.opts.Polisher != nil {
		ans = e.opts.Polisher.Polish(ctx, ans)
	}

	start, end := answer.AggregatePages(matched)
	return document.QueryResult{
		Question:  question,
		Answer:    ans,
		PageStart: start,
		PageEnd:   end,
		Sources:   answer.ExtractSources(matched),
	}, nil
}

// Snapshot exposes the live corpus for read-only inspection, or nil
// before the first ingest.
func (e *Engine) Snapshot() *corpus.Snapshot {
	return e.store.Load()
}
