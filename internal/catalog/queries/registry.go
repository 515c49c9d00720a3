package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	ErrMissingParam     = errors.New("missing required parameter")
	ErrUnknownQueryType = errors.New("unknown query type")
)

type QueryType string

const (
	QueryTypeCategories         QueryType = "categories"
	QueryTypeActiveListings     QueryType = "active_listings"
	QueryTypeListingsByCategory QueryType = "listings_by_category"
)

// Result carries the typed rows of one query plus bookkeeping for logs.
type Result struct {
	Rows       interface{}
	RowCount   int
	ExecTimeMs int64
}

type QueryFunc func(ctx context.Context, db *sql.DB, params map[string]interface{}) (*Result, error)

var Registry = map[QueryType]QueryFunc{
	QueryTypeCategories:         Categories,
	QueryTypeActiveListings:     ActiveListings,
	QueryTypeListingsByCategory: ListingsByCategory,
}

func Execute(ctx context.Context, db *sql.DB, queryType QueryType, params map[string]interface{}) (*Result, error) {
	fn, exists := Registry[queryType]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownQueryType, queryType)
	}

	start := time.Now()
	res, err := fn(ctx, db, params)
	if err != nil {
		return nil, err
	}
	res.ExecTimeMs = time.Since(start).Milliseconds()
	return res, nil
}
