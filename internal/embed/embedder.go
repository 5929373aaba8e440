// Package embed converts text into L2-normalized vectors so that
// dot-product similarity equals cosine similarity.
package embed

import "fmt"

// Embedder produces fixed-dimension vectors for batches of text.
// Fit must be called once per corpus before Encode; implementations
// that need no corpus statistics treat it as a no-op.
type Embedder interface {
	Name() string
	Fit(corpus []string) error
	Encode(texts []string) ([][]float64, error)
	Dimension() int
}

// New constructs an embedder by configured type name.
func New(kind string, openaiCfg OpenAIConfig) (Embedder, error) {
	switch kind {
	case "", "tfidf":
		return NewTFIDF(), nil
	case "openai":
		return NewOpenAIClient(openaiCfg)
	default:
		return nil, fmt.Errorf("unknown embedder type: %s", kind)
	}
}
