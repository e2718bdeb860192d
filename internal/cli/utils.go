// Package cli provides CLI utilities for Lupa.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hyperjump/lupa/internal/models"
	"github.com/hyperjump/lupa/pkg/utils"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText SearchOutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
)

// ParseOutputFormat returns the format named by s.
func ParseOutputFormat(s string) (SearchOutputFormat, error) {
	switch SearchOutputFormat(strings.ToLower(s)) {
	case "", OutputText:
		return OutputText, nil
	case OutputJSON:
		return OutputJSON, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text or json)", s)
}

// WriteSearchResults writes search results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format SearchOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	fmt.Fprintf(w, "\nFound %d results for %q in %dms", response.Total, response.Query, response.QueryTime)
	if response.PageCount > 1 {
		fmt.Fprintf(w, " (page %d of %d)", response.Page, response.PageCount)
	}
	fmt.Fprint(w, "\n\n")
	for _, result := range response.Results {
		writeOneResult(w, result)
	}
	if response.PageCount > 1 {
		fmt.Fprintf(w, "Pages: %s\n", FormatPagination(response.Pagination, response.PageCount))
	}
}

func writeOneResult(w io.Writer, result *models.SearchResult) {
	fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(w, "%d. %s\n", result.Rank, result.Document.Title)
	fmt.Fprintf(w, "   %s\n", result.Document.URL)
	if result.Document.Description != "" {
		fmt.Fprintf(w, "\n   %s\n", utils.Truncate(result.Document.Description, 200))
	}
	if result.Document.Keywords != "" {
		fmt.Fprintf(w, "   Keywords: %s\n", TruncateWords(result.Document.Keywords, 12))
	}
	if s := result.Scores; s != nil {
		fmt.Fprintf(w, "   Score: %d/%d  Matches: %s\n", s.Primary, s.Secondary, strings.Join(s.Matches, ", "))
	}
	fmt.Fprintln(w)
}

// FormatPagination renders the page window, e.g. "… 4 [5] 6 …". An
// ellipsis marks pages outside the window.
func FormatPagination(links []models.PageLink, pageCount int) string {
	if len(links) == 0 {
		return ""
	}
	parts := make([]string, 0, len(links)+2)
	if links[0].Number > 1 {
		parts = append(parts, "…")
	}
	for _, link := range links {
		if link.Selected {
			parts = append(parts, fmt.Sprintf("[%d]", link.Number))
		} else {
			parts = append(parts, fmt.Sprintf("%d", link.Number))
		}
	}
	if links[len(links)-1].Number < pageCount {
		parts = append(parts, "…")
	}
	return strings.Join(parts, " ")
}

// PrintSearchResults prints search results to stdout in text format.
func PrintSearchResults(response *models.SearchResponse) {
	_ = WriteSearchResults(os.Stdout, response, OutputText)
}

// TruncateWords returns up to maxWords from the space-separated string.
func TruncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ") + "..."
}
