package document

// Page is one page of extracted document text.
type Page struct {
	Number int    // 1-based page number within the source document
	Text   string // plain text content of the page
}

// Metadata is the provenance attached to a chunk. Unit, Section and
// SectionTitle are empty when no heading of that kind was active.
type Metadata struct {
	Page         int    `json:"page"`
	Source       string `json:"source"`
	Unit         string `json:"unit,omitempty"`
	Section      string `json:"section,omitempty"`
	SectionTitle string `json:"section_title,omitempty"`
}

// Chunk is a bounded span of document text tagged with provenance,
// the unit of indexing and retrieval. Metadata is a value snapshot
// taken when the chunk is emitted; it never changes afterwards.
type Chunk struct {
	Text string   `json:"text"`
	Meta Metadata `json:"metadata"`
}

// QueryResult is the answer payload for a single question.
// PageStart/PageEnd are nil when no chunks matched.
type QueryResult struct {
	Question  string
	Answer    string
	PageStart *int
	PageEnd   *int
	Sources   []string
}
