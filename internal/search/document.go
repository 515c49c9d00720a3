// Package search answers free-text content queries across institutes,
// courses, retreats, questions and articles.
package search

import (
	"errors"
	"fmt"
	"strings"

	"institute-discovery/internal/keyword"
	"institute-discovery/internal/models"
)

var (
	ErrEmptyQuery         = errors.New("search query is empty")
	ErrUnknownContentType = errors.New("unknown content type")
)

type ContentType string

const (
	TypeInstitute ContentType = "institute"
	TypeCourse    ContentType = "course"
	TypeRetreat   ContentType = "retreat"
	TypeQuestion  ContentType = "question"
	TypeArticle   ContentType = "article"
)

var AllTypes = []ContentType{TypeInstitute, TypeCourse, TypeRetreat, TypeQuestion, TypeArticle}

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Document is one searchable content item as stored in the index.
type Document struct {
	ID       string      `json:"id"`
	Type     ContentType `json:"type"`
	Title    string      `json:"title"`
	Body     string      `json:"body,omitempty"`
	Category string      `json:"category,omitempty"`
	City     string      `json:"city,omitempty"`
	Tags     []string    `json:"tags,omitempty"`
}

type Query struct {
	Text  string        `json:"query"`
	Types []ContentType `json:"types,omitempty"`
	Limit int           `json:"limit,omitempty"`
}

type Result struct {
	Documents []Document `json:"results"`
	Total     int64      `json:"total"`
	Backend   string     `json:"backend"`
	Took      int64      `json:"took"`
}

// ParseTypes validates raw content type names. Empty input means all types.
func ParseTypes(raw []string) ([]ContentType, error) {
	var types []ContentType
	for _, r := range raw {
		r = strings.ToLower(strings.TrimSpace(r))
		if r == "" {
			continue
		}
		t := ContentType(r)
		if !t.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrUnknownContentType, r)
		}
		types = append(types, t)
	}
	return types, nil
}

func (t ContentType) Valid() bool {
	for _, known := range AllTypes {
		if t == known {
			return true
		}
	}
	return false
}

// normalize trims the query text and clamps the limit. Text with no
// searchable token is empty.
func (q Query) normalize(defaultLimit int) (Query, error) {
	q.Text = strings.TrimSpace(q.Text)
	if keyword.SlugifyTerm(q.Text) == "" {
		return q, ErrEmptyQuery
	}
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q, nil
}

// DocumentsFromListings exposes catalog listings as institute documents.
func DocumentsFromListings(listings []models.Listing) []Document {
	docs := make([]Document, 0, len(listings))
	for _, l := range listings {
		docs = append(docs, Document{
			ID:       l.UniqueID,
			Type:     TypeInstitute,
			Title:    l.PropertyName,
			Category: l.Category,
			City:     l.PropertyCity,
			Tags:     nonEmpty(l.PropertyState, l.PropertyCountry),
		})
	}
	return docs
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
