package search

import (
	"context"
	"time"

	"institute-discovery/internal/keyword"
)

// CatalogLoader is satisfied by catalog.Loader.
type CatalogLoader interface {
	Load(ctx context.Context) (keyword.Inputs, error)
}

// MemorySearcher matches queries in process with MatchDocuments.
type MemorySearcher struct {
	documents func(ctx context.Context) ([]Document, error)
}

// NewMemorySearcher searches a fixed document set.
func NewMemorySearcher(docs []Document) *MemorySearcher {
	return &MemorySearcher{
		documents: func(context.Context) ([]Document, error) { return docs, nil },
	}
}

// NewCatalogSearcher searches the catalog listings as institutes, loading
// them on every query.
func NewCatalogSearcher(loader CatalogLoader) *MemorySearcher {
	return &MemorySearcher{
		documents: func(ctx context.Context) ([]Document, error) {
			in, err := loader.Load(ctx)
			if err != nil {
				return nil, err
			}
			return DocumentsFromListings(in.Listings), nil
		},
	}
}

func (m *MemorySearcher) Name() string { return "memory" }

func (m *MemorySearcher) Search(ctx context.Context, q Query) (*Result, error) {
	start := time.Now()

	docs, err := m.documents(ctx)
	if err != nil {
		return nil, err
	}

	matched := MatchDocuments(q.Text, docs, q.Types)
	total := int64(len(matched))
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}

	return &Result{
		Documents: matched,
		Total:     total,
		Backend:   m.Name(),
		Took:      time.Since(start).Milliseconds(),
	}, nil
}
