package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"bookqa/internal/document"
)

// Parser extracts page-numbered plain text from raw document bytes.
// Heading lines are kept on their own lines so downstream structure
// detection can classify them.
type Parser interface {
	Parse(r io.Reader, filename string) ([]document.Page, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// DefaultPDFFallback controls whether PDF parsing shells out to
// pdftotext when the in-process extractor yields nothing.
var DefaultPDFFallback = true

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: DefaultPDFFallback}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// pagesFromText splits form-feed separated text into numbered pages,
// skipping pages with no printable content. Page numbers follow the
// physical position, so a blank page still advances the count.
func pagesFromText(text string) []document.Page {
	var pages []document.Page
	for i, part := range strings.Split(text, "\f") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		pages = append(pages, document.Page{Number: i + 1, Text: part})
	}
	return pages
}
