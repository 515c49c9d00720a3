// internal/workers/landing/search-content/models.go
package searchcontent

import "institute-discovery/internal/search"

type Input struct {
	Query string   `json:"query"`
	Types []string `json:"types,omitempty"`
	Limit int      `json:"limit,omitempty"`
}

type Output struct {
	Results []search.Document `json:"results"`
	Total   int64             `json:"total"`
	Backend string            `json:"backend"`
	Took    int64             `json:"took"`
}
