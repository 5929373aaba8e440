package chunker

import (
	"strings"

	"bookqa/internal/document"
	"bookqa/internal/structure"
)

// Config controls chunking behavior.
type Config struct {
	MaxWords int // Flush threshold in whitespace-split words.
	Overlap  int // Words retained after a size-triggered flush.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxWords: 200,
		Overlap:  40,
	}
}

// state is the accumulator threaded through a single chunking run.
type state struct {
	tracker   *structure.Tracker
	committed structure.Context // metadata in force for buffered words
	buffer    []string
	page      int
	source    string
	chunks    []document.Chunk
}

// Chunk segments pages into retrieval-sized chunks, tagging each with
// the heading context in force when its first words were buffered.
//
// A structural transition flushes with a hard reset: the buffer is
// emitted under the pre-transition metadata and discarded entirely, so
// no chunk ever straddles two named sections. Hitting MaxWords flushes
// with a soft reset that keeps the trailing Overlap words for retrieval
// continuity, as does the unconditional flush at each page end.
func Chunk(pages []document.Page, detectors []structure.Detector, source string, cfg Config) []document.Chunk {
	if cfg.MaxWords <= 0 {
		cfg.MaxWords = 200
	}
	if cfg.Overlap < 0 {
		cfg.Overlap = 0
	}

	st := &state{
		tracker: structure.NewTracker(detectors),
		source:  source,
	}

	for _, page := range pages {
		st.page = page.Number
		for _, line := range strings.Split(page.Text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			changed, snapshot := st.tracker.Process(line)
			if changed {
				// Heading lines are consumed as structure, not content.
				// Only a signature change is a real transition; a
				// repeated heading leaves the buffer intact.
				if snapshot != st.committed {
					st.flushHard()
					st.committed = snapshot
				}
				continue
			}

			// Append word by word so a size-triggered flush emits
			// exactly MaxWords words; the overflowing word opens the
			// next window.
			for _, word := range strings.Fields(line) {
				st.buffer = append(st.buffer, word)
				if len(st.buffer) >= cfg.MaxWords {
					st.flushSoft(cfg.Overlap)
				}
			}
		}
		// Page boundary: materialize trailing content.
		st.flushSoft(cfg.Overlap)
	}

	return st.chunks
}

// emit appends the buffered words as a chunk. Empty buffers are a no-op.
func (st *state) emit() {
	text := strings.TrimSpace(strings.Join(st.buffer, " "))
	if text == "" {
		return
	}
	st.chunks = append(st.chunks, document.Chunk{
		Text: text,
		Meta: document.Metadata{
			Page:         st.page,
			Source:       st.source,
			Unit:         st.committed.Unit,
			Section:      st.committed.Section,
			SectionTitle: st.committed.SectionTitle,
		},
	})
}

// flushHard emits the buffer and discards it entirely. Structural
// transitions never carry overlap across the boundary.
func (st *state) flushHard() {
	st.emit()
	st.buffer = st.buffer[:0]
}

// flushSoft emits the buffer and retains the trailing overlap words.
func (st *state) flushSoft(overlap int) {
	if len(st.buffer) == 0 {
		return
	}
	st.emit()
	if overlap <= 0 || overlap >= len(st.buffer) {
		if overlap <= 0 {
			st.buffer = st.buffer[:0]
		}
		return
	}
	tail := st.buffer[len(st.buffer)-overlap:]
	st.buffer = append(st.buffer[:0], tail...)
}
