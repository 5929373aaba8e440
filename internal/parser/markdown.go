package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"bookqa/internal/document"
)

// MarkdownParser handles Markdown files using goldmark. Headings and
// block text are flattened onto separate lines; thematic breaks
// (`---`) act as page breaks.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) ([]document.Page, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var pages []document.Page
	pageNum := 1
	var lines []string

	flushPage := func() {
		body := strings.TrimSpace(strings.Join(lines, "\n"))
		if body != "" {
			pages = append(pages, document.Page{Number: pageNum, Text: body})
		}
		lines = lines[:0]
		pageNum++
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			if title := string(node.Text(src)); title != "" {
				lines = append(lines, title)
			}
		case *ast.ThematicBreak:
			flushPage()
		default:
			if t := extractText(n, src); t != "" {
				lines = append(lines, t)
			}
		}
	}
	flushPage()

	return pages, nil
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	// Also handle inline children.
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			// Recurse for nested inlines.
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
