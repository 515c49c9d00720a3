// Package catalog loads the category and listing collections the keyword
// resolver runs against.
package catalog

import (
	"context"

	"institute-discovery/internal/models"
)

// Source provides the two catalog collections. Implementations return
// collections in source order; category order is significant.
type Source interface {
	Name() string
	Categories(ctx context.Context) ([]models.Category, error)
	Listings(ctx context.Context) ([]models.Listing, error)
}
