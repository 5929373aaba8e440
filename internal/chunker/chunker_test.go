package chunker

import (
	"strings"
	"testing"

	"bookqa/internal/document"
	"bookqa/internal/structure"
)

func chunkOne(t *testing.T, text string, cfg Config) []document.Chunk {
	t.Helper()
	pages := []document.Page{{Number: 1, Text: text}}
	return Chunk(pages, structure.Defaults(), "doc.pdf", cfg)
}

func TestChunk_WorkedExample(t *testing.T) {
	// One page: a unit heading, a section heading, then a six word line
	// against max_words=5 and overlap=2.
	text := "UNIT I\n1.1 Intro\nHello world this is page one"
	chunks := chunkOne(t, text, Config{MaxWords: 5, Overlap: 2})

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %+v", len(chunks), chunks)
	}

	first := chunks[0]
	if first.Text != "Hello world this is page" {
		t.Errorf("first chunk text: got %q", first.Text)
	}
	wantMeta := document.Metadata{
		Page: 1, Source: "doc.pdf",
		Unit: "I", Section: "1.1", SectionTitle: "Intro",
	}
	if first.Meta != wantMeta {
		t.Errorf("first chunk metadata: expected %+v, got %+v", wantMeta, first.Meta)
	}

	// End-of-page flush picks up the overlap plus the trailing word.
	second := chunks[1]
	if second.Text != "is page one" {
		t.Errorf("second chunk text: got %q", second.Text)
	}
	if second.Meta != wantMeta {
		t.Errorf("second chunk metadata: expected %+v, got %+v", wantMeta, second.Meta)
	}
}

func TestChunk_SizeBound(t *testing.T) {
	text := strings.Repeat("alpha beta gamma delta epsilon ", 40)
	chunks := chunkOne(t, text, Config{MaxWords: 12, Overlap: 3})

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		n := len(strings.Fields(c.Text))
		if n > 12 {
			t.Errorf("chunk %d: %d words exceeds max 12", i, n)
		}
	}
}

func TestChunk_OverlapContinuity(t *testing.T) {
	text := strings.Repeat("w ", 30) // 30 identical-shaped words
	words := make([]string, 30)
	for i := range words {
		words[i] = "w" + string(rune('a'+i%26))
	}
	text = strings.Join(words, " ")

	chunks := chunkOne(t, text, Config{MaxWords: 10, Overlap: 4})
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i := 1; i < len(chunks); i++ {
		prev := strings.Fields(chunks[i-1].Text)
		cur := strings.Fields(chunks[i].Text)
		if len(prev) < 4 {
			continue
		}
		wantHead := prev[len(prev)-4:]
		for j, w := range wantHead {
			if j >= len(cur) || cur[j] != w {
				t.Fatalf("chunk %d does not start with the last 4 words of chunk %d: %v vs %v",
					i, i-1, cur, wantHead)
			}
		}
	}
}

func TestChunk_ZeroOverlapSharesNoWords(t *testing.T) {
	words := make([]string, 20)
	for i := range words {
		words[i] = "tok" + string(rune('a'+i))
	}
	chunks := chunkOne(t, strings.Join(words, " "), Config{MaxWords: 7, Overlap: 0})

	seen := map[string]int{}
	for i, c := range chunks {
		for _, w := range strings.Fields(c.Text) {
			if prior, ok := seen[w]; ok {
				t.Errorf("word %q appears in chunks %d and %d with overlap 0", w, prior, i)
			}
			seen[w] = i
		}
	}
}

func TestChunk_HardBoundaryIsolation(t *testing.T) {
	// Words immediately before a section heading must not leak past it.
	text := "1.1 First\nalpha bravo charlie\n1.2 Second\ndelta echo foxtrot"
	chunks := chunkOne(t, text, Config{MaxWords: 50, Overlap: 10})

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %+v", len(chunks), chunks)
	}
	if chunks[0].Meta.SectionTitle != "First" || chunks[1].Meta.SectionTitle != "Second" {
		t.Fatalf("section titles: got %q and %q",
			chunks[0].Meta.SectionTitle, chunks[1].Meta.SectionTitle)
	}
	if strings.Contains(chunks[1].Text, "charlie") {
		t.Errorf("structural boundary carried overlap: %q", chunks[1].Text)
	}
	if chunks[0].Text != "alpha bravo charlie" || chunks[1].Text != "delta echo foxtrot" {
		t.Errorf("chunk texts: got %q and %q", chunks[0].Text, chunks[1].Text)
	}
}

func TestChunk_BoundaryTaggedWithPriorMetadata(t *testing.T) {
	// The buffer flushed at a heading belongs to the section that was
	// active before the heading line.
	text := "1.1 Old\nsome trailing prose\n1.2 New\nfresh prose here"
	chunks := chunkOne(t, text, Config{MaxWords: 100, Overlap: 5})

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Meta.Section != "1.1" {
		t.Errorf("pre-boundary chunk: expected section 1.1, got %q", chunks[0].Meta.Section)
	}
	if chunks[1].Meta.Section != "1.2" {
		t.Errorf("post-boundary chunk: expected section 1.2, got %q", chunks[1].Meta.Section)
	}
}

func TestChunk_HeadingOnEmptyBufferEmitsNothing(t *testing.T) {
	text := "UNIT I\n1.1 Intro\n1.2 Next\nactual content"
	chunks := chunkOne(t, text, Config{MaxWords: 50, Overlap: 5})

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d: %+v", len(chunks), chunks)
	}
	if chunks[0].Text != "actual content" {
		t.Errorf("got %q", chunks[0].Text)
	}
	if chunks[0].Meta.Section != "1.2" || chunks[0].Meta.Unit != "I" {
		t.Errorf("metadata: got %+v", chunks[0].Meta)
	}
}

func TestChunk_RepeatedHeadingIsNotATransition(t *testing.T) {
	// The same heading twice fires the detector but the signature is
	// unchanged, so the buffer must not be cut.
	text := "1.1 Intro\nalpha bravo\n1.1 Intro\ncharlie delta"
	chunks := chunkOne(t, text, Config{MaxWords: 50, Overlap: 0})

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d: %+v", len(chunks), chunks)
	}
	if chunks[0].Text != "alpha bravo charlie delta" {
		t.Errorf("got %q", chunks[0].Text)
	}
}

func TestChunk_PageBoundaryFlushAndNumbering(t *testing.T) {
	pages := []document.Page{
		{Number: 1, Text: "one two three"},
		{Number: 2, Text: "four five six"},
	}
	chunks := Chunk(pages, structure.Defaults(), "book.pdf", Config{MaxWords: 100, Overlap: 0})

	if len(chunks) != 2 {
		t.Fatalf("expected one chunk per page, got %d", len(chunks))
	}
	if chunks[0].Meta.Page != 1 || chunks[1].Meta.Page != 2 {
		t.Errorf("page numbers: got %d and %d", chunks[0].Meta.Page, chunks[1].Meta.Page)
	}
	if chunks[0].Text != "one two three" || chunks[1].Text != "four five six" {
		t.Errorf("texts: %q / %q", chunks[0].Text, chunks[1].Text)
	}
	for i, c := range chunks {
		if c.Meta.Source != "book.pdf" {
			t.Errorf("chunk %d: missing source, got %q", i, c.Meta.Source)
		}
	}
}

func TestChunk_EmptyAndBlankPages(t *testing.T) {
	pages := []document.Page{
		{Number: 1, Text: ""},
		{Number: 2, Text: "   \n  \n"},
	}
	chunks := Chunk(pages, structure.Defaults(), "blank.pdf", DefaultConfig())
	if len(chunks) != 0 {
		t.Errorf("expected no chunks for blank pages, got %d", len(chunks))
	}
}

func TestChunk_MetadataFrozenAfterEmission(t *testing.T) {
	text := "1.1 Early\nalpha bravo charlie\n1.2 Late\ndelta"
	chunks := chunkOne(t, text, Config{MaxWords: 100, Overlap: 0})

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	// The first chunk was emitted before the second heading; the later
	// transition must not have rewritten its snapshot.
	if chunks[0].Meta.SectionTitle != "Early" {
		t.Errorf("first chunk metadata mutated: %+v", chunks[0].Meta)
	}
}
