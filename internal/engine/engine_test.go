package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bookqa/internal/embed"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(Options{
		NewEmbedder: func() (embed.Embedder, error) { return embed.NewTFIDF(), nil },
		DefaultTopK: 3,
	})
}

func TestQueryBeforeIngest(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Query(context.Background(), "what is entropy", 0, false)
	if !errors.Is(err, ErrNoIndex) {
		t.Fatalf("expected ErrNoIndex, got %v", err)
	}
}

func TestIngestAndQueryRoundTrip(t *testing.T) {
	e := newTestEngine(t)

	doc := "UNIT I\n" +
		"1.1 Kinematics\n" +
		"Bodies in uniform motion travel equal distances in equal times.\n" +
		"Velocity is the rate of change of position with respect to time.\n"

	res, err := e.Ingest(context.Background(), []File{
		{Name: "physics.txt", Data: []byte(doc)},
	})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if res.Chunks == 0 {
		t.Fatal("ingest produced no chunks")
	}
	if len(res.Files) != 1 || res.Files[0] != "physics.txt" {
		t.Errorf("files: %v", res.Files)
	}

	qr, err := e.Query(context.Background(), "velocity and motion", 0, false)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if !strings.Contains(qr.Answer, "Kinematics") {
		t.Errorf("expected topic template naming the section, got %q", qr.Answer)
	}
	if qr.PageStart == nil || *qr.PageStart != 1 {
		t.Errorf("page start: %v", qr.PageStart)
	}
	if len(qr.Sources) != 1 || qr.Sources[0] != "physics.txt" {
		t.Errorf("sources: %v", qr.Sources)
	}
}

func TestQueryTopKExceedsCorpus(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Ingest(context.Background(), []File{
		{Name: "tiny.txt", Data: []byte("a single short paragraph of text")},
	})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	// One chunk, five requested: the index pads with sentinel ids,
	// which the query path must drop.
	qr, err := e.Query(context.Background(), "short paragraph", 5, false)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(qr.Sources) != 1 {
		t.Errorf("expected 1 source, got %v", qr.Sources)
	}
}

func TestIngestEmptyCorpus(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Ingest(context.Background(), []File{
		{Name: "blank.txt", Data: []byte("   \n  \n")},
	})
	if !errors.Is(err, ErrEmptyCorpus) {
		t.Fatalf("expected ErrEmptyCorpus, got %v", err)
	}
	if e.Snapshot() != nil {
		t.Error("failed ingest must not publish a corpus")
	}
}

func TestIngestFailFast(t *testing.T) {
	e := newTestEngine(t)

	// Seed a good corpus first.
	if _, err := e.Ingest(context.Background(), []File{
		{Name: "good.txt", Data: []byte("original corpus content here")},
	}); err != nil {
		t.Fatalf("seed ingest: %v", err)
	}
	before := e.Snapshot()

	_, err := e.Ingest(context.Background(), []File{
		{Name: "fine.txt", Data: []byte("perfectly good text")},
		{Name: "broken.xyz", Data: []byte("whatever")},
	})
	var xerr *ExtractionError
	if !errors.As(err, &xerr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if xerr.File != "broken.xyz" {
		t.Errorf("expected failing file named, got %q", xerr.File)
	}
	if e.Snapshot() != before {
		t.Error("failed batch must leave the previous corpus intact")
	}
}

func TestIngestReplacesCorpus(t *testing.T) {
	e := newTestEngine(t)

	if _, err := e.Ingest(context.Background(), []File{
		{Name: "first.txt", Data: []byte("content about thermodynamics and heat")},
	}); err != nil {
		t.Fatalf("first ingest: %v", err)
	}
	if _, err := e.Ingest(context.Background(), []File{
		{Name: "second.txt", Data: []byte("content about optics and light")},
	}); err != nil {
		t.Fatalf("second ingest: %v", err)
	}

	qr, err := e.Query(context.Background(), "optics", 0, false)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(qr.Sources) != 1 || qr.Sources[0] != "second.txt" {
		t.Errorf("expected corpus replaced wholesale, sources: %v", qr.Sources)
	}
}

type fakePolisher struct {
	called bool
	got    string
}

func (f *fakePolisher) Polish(_ context.Context, raw string) string {
	f.called = true
	f.got = raw
	return "polished: " + raw
}

func TestQueryPolishFlag(t *testing.T) {
	fp := &fakePolisher{}
	e := New(Options{
		NewEmbedder: func() (embed.Embedder, error) { return embed.NewTFIDF(), nil },
		Polisher:    fp,
	})
	if _, err := e.Ingest(context.Background(), []File{
		{Name: "doc.txt", Data: []byte("some indexable words in a file")},
	}); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	qr, err := e.Query(context.Background(), "words", 0, false)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if fp.called {
		t.Error("polisher ran without the polish flag")
	}

	qr, err = e.Query(context.Background(), "words", 0, true)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if !fp.called {
		t.Fatal("polisher not invoked")
	}
	if !strings.HasPrefix(qr.Answer, "polished: ") {
		t.Errorf("answer not polished: %q", qr.Answer)
	}
	if !strings.Contains(fp.got, "pages") {
		t.Errorf("polisher received unexpected raw answer: %q", fp.got)
	}
}

func TestQueryMixedSourcesGenericTemplate(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Ingest(context.Background(), []File{
		{Name: "a.txt", Data: []byte("1.1 Motion\nbodies moving through space and time")},
		{Name: "b.txt", Data: []byte("2.4 Waves\nbodies moving through space as waves")},
	})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	qr, err := e.Query(context.Background(), "bodies moving through space", 2, false)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(qr.Sources) != 2 {
		t.Fatalf("expected both sources matched, got %v", qr.Sources)
	}
	if qr.Sources[0] != "a.txt" || qr.Sources[1] != "b.txt" {
		t.Errorf("sources not sorted: %v", qr.Sources)
	}
	if !strings.HasPrefix(qr.Answer, "Relevant content") {
		t.Errorf("expected generic template for mixed sections, got %q", qr.Answer)
	}
}
