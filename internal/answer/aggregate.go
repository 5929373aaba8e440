// Package answer turns a set of matched chunks into a provenance
// bearing answer sentence.
package answer

import (
	"sort"

	"bookqa/internal/document"
)

// AggregatePages returns the minimum and maximum page number across
// the matched chunks, or nil/nil for an empty set. Gaps in the page
// sequence are not reported.
func AggregatePages(results []document.Chunk) (start, end *int) {
	if len(results) == 0 {
		return nil, nil
	}
	lo, hi := results[0].Meta.Page, results[0].Meta.Page
	for _, r := range results[1:] {
		if r.Meta.Page < lo {
			lo = r.Meta.Page
		}
		if r.Meta.Page > hi {
			hi = r.Meta.Page
		}
	}
	return &lo, &hi
}

// ExtractSection returns the single section title shared by every
// matched chunk that has one. Zero titles or two or more distinct
// titles are treated identically as absent: there is no majority vote.
func ExtractSection(results []document.Chunk) string {
	titles := map[string]struct{}{}
	for _, r := range results {
		if r.Meta.SectionTitle != "" {
			titles[r.Meta.SectionTitle] = struct{}{}
		}
	}
	if len(titles) != 1 {
		return ""
	}
	for title := range titles {
		return title
	}
	return ""
}

// ExtractSources returns the distinct source identifiers of the
// matched chunks in ascending lexicographic order.
func ExtractSources(results []document.Chunk) []string {
	seen := map[string]struct{}{}
	var sources []string
	for _, r := range results {
		if r.Meta.Source == "" {
			continue
		}
		if _, ok := seen[r.Meta.Source]; ok {
			continue
		}
		seen[r.Meta.Source] = struct{}{}
		sources = append(sources, r.Meta.Source)
	}
	sort.Strings(sources)
	return sources
}
