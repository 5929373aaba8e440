package parser

import (
	"io"

	"bookqa/internal/document"
)

// TextParser handles plain text files. Form feeds mark page breaks;
// a file without them is a single page.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) ([]document.Page, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return pagesFromText(string(data)), nil
}
