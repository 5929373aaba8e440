package engine

import (
	"errors"
	"fmt"
)

// ErrEmptyCorpus means the uploaded batch produced no indexable text.
var ErrEmptyCorpus = errors.New("no extractable text in uploaded documents")

// ErrNoIndex means a query arrived before any successful ingest.
var ErrNoIndex = errors.New("no index available, upload documents first")

// ExtractionError identifies the document that made a batch fail.
type ExtractionError struct {
	File string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.File, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
