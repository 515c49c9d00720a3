// internal/workers/landing/resolve-keyword-page/models.go
package resolvekeywordpage

import (
	"institute-discovery/internal/keyword"
	"institute-discovery/internal/models"
)

type Input struct {
	Slug string `json:"slug"`
	Page int    `json:"page"` // 0 means page 1
}

type Output struct {
	Outcome       string                     `json:"outcome"`
	Message       string                     `json:"message,omitempty"`
	Query         keyword.ParsedKeywordQuery `json:"query"`
	Listings      []models.Listing           `json:"listings"`
	Page          int                        `json:"page"`
	TotalPages    int                        `json:"totalPages"`
	TotalItems    int                        `json:"totalItems"`
	CorrectedPage bool                       `json:"correctedPage"`
}
