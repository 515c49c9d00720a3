package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"institute-discovery/internal/catalog/queries"
	"institute-discovery/internal/common/config"
	"institute-discovery/internal/common/errors"
	"institute-discovery/internal/models"
)

// PostgresSource reads the catalog tables directly.
type PostgresSource struct {
	db *sql.DB
}

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

func (s *PostgresSource) Name() string { return config.CatalogSourcePostgres }

func (s *PostgresSource) Categories(ctx context.Context) ([]models.Category, error) {
	res, err := queries.Execute(ctx, s.db, queries.QueryTypeCategories, nil)
	if err != nil {
		return nil, errors.NewListingQueryFailedError(string(queries.QueryTypeCategories), err)
	}
	categories, ok := res.Rows.([]models.Category)
	if !ok {
		return nil, errors.NewCatalogFetchFailedError(s.Name(), fmt.Errorf("unexpected rows type %T", res.Rows))
	}
	return categories, nil
}

func (s *PostgresSource) Listings(ctx context.Context) ([]models.Listing, error) {
	return s.listings(ctx, queries.QueryTypeActiveListings, nil)
}

// ListingsByCategory is used by the CLI to inspect one category without
// loading the full catalog.
func (s *PostgresSource) ListingsByCategory(ctx context.Context, category string) ([]models.Listing, error) {
	return s.listings(ctx, queries.QueryTypeListingsByCategory, map[string]interface{}{"category": category})
}

func (s *PostgresSource) listings(ctx context.Context, qt queries.QueryType, params map[string]interface{}) ([]models.Listing, error) {
	res, err := queries.Execute(ctx, s.db, qt, params)
	if err != nil {
		return nil, errors.NewListingQueryFailedError(string(qt), err)
	}
	listings, ok := res.Rows.([]models.Listing)
	if !ok {
		return nil, errors.NewCatalogFetchFailedError(s.Name(), fmt.Errorf("unexpected rows type %T", res.Rows))
	}
	return listings, nil
}
