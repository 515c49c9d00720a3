package queries

import (
	"context"
	"database/sql"
	"fmt"

	"institute-discovery/internal/models"
)

const categoriesSQL = `
	SELECT unique_id, category_name, COALESCE(parent_category, '')
	FROM categories
	ORDER BY sort_order, category_name`

const listingsSQL = `
	SELECT unique_id, property_name, COALESCE(property_slug, ''), category,
	       property_city, property_state, property_country, status, rank
	FROM properties
	WHERE status = $1`

// Categories returns every category in display order. Display order is
// significant: it breaks ties between equally long category names.
func Categories(ctx context.Context, db *sql.DB, _ map[string]interface{}) (*Result, error) {
	rows, err := db.QueryContext(ctx, categoriesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.UniqueID, &c.CategoryName, &c.ParentCategory); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &Result{Rows: categories, RowCount: len(categories)}, nil
}

// ActiveListings returns active listings ordered by rank.
func ActiveListings(ctx context.Context, db *sql.DB, _ map[string]interface{}) (*Result, error) {
	return queryListings(ctx, db, listingsSQL+`
	ORDER BY rank, unique_id`, models.ListingStatusActive)
}

// ListingsByCategory narrows ActiveListings to one category name.
func ListingsByCategory(ctx context.Context, db *sql.DB, params map[string]interface{}) (*Result, error) {
	category, ok := params["category"].(string)
	if !ok || category == "" {
		return nil, fmt.Errorf("%w: category", ErrMissingParam)
	}

	return queryListings(ctx, db, listingsSQL+`
	  AND lower(category) = lower($2)
	ORDER BY rank, unique_id`, models.ListingStatusActive, category)
}

func queryListings(ctx context.Context, db *sql.DB, query string, args ...interface{}) (*Result, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := []models.Listing{}
	for rows.Next() {
		var l models.Listing
		if err := rows.Scan(
			&l.UniqueID, &l.PropertyName, &l.PropertySlug, &l.Category,
			&l.PropertyCity, &l.PropertyState, &l.PropertyCountry, &l.Status, &l.Rank,
		); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &Result{Rows: listings, RowCount: len(listings)}, nil
}
