package entity

import (
	"fmt"
	"strings"
)

type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// FormatSearchResults renders results as a numbered plain-text list.
func FormatSearchResults(results []SearchResult) string {
	var sb strings.Builder
	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d. %s", i+1, r.Title)
		if r.URL != "" {
			fmt.Fprintf(&sb, " (%s)", r.URL)
		}
		if r.Snippet != "" {
			fmt.Fprintf(&sb, "\n   %s", r.Snippet)
		}
	}
	return sb.String()
}

type Screenshot struct {
	Data   []byte
	Format string
	Width  int
	Height int
}
