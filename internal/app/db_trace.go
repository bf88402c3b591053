package app

import (
	"fmt"
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

var (
	queryWhitespaceRegex = regexp.MustCompile(`\s+`)
	// a VALUES clause with two or more row tuples, as built by batched inserts
	multiRowValuesRegex = regexp.MustCompile(`(?i)\bVALUES \([^()]*\)(?:, ?\([^()]*\))+`)
)

// formatDBQueryForTrace flattens whitespace, folds multi-row VALUES lists
// down to their first tuple and a row count, and caps the length.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	normalized = multiRowValuesRegex.ReplaceAllStringFunc(normalized, func(values string) string {
		first := values[:strings.IndexByte(values, ')')+1]
		return fmt.Sprintf("%s /* %d rows */", first, strings.Count(values, "("))
	})
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}
