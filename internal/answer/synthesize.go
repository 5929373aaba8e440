package answer

import (
	"fmt"
	"strconv"

	"bookqa/internal/document"
)

// BuildResponse composes the templated answer sentence for a set of
// matched chunks. When the chunks agree on a single section title the
// topic template is used; otherwise the generic one. An empty match
// set yields the degenerate "pages null-null" sentence rather than an
// error.
func BuildResponse(results []document.Chunk) string {
	start, end := AggregatePages(results)
	section := ExtractSection(results)
	if section != "" {
		return fmt.Sprintf("The topic '%s' is discussed on pages %s-%s of the textbook.",
			section, FormatPage(start), FormatPage(end))
	}
	return fmt.Sprintf("Relevant content for this question can be found on pages %s-%s of the textbook.",
		FormatPage(start), FormatPage(end))
}

// FormatPage renders a page number, or "null" for an absent one.
func FormatPage(p *int) string {
	if p == nil {
		return "null"
	}
	return strconv.Itoa(*p)
}

// FormatPageRange renders "start-end" using FormatPage on both ends.
func FormatPageRange(start, end *int) string {
	return FormatPage(start) + "-" + FormatPage(end)
}
