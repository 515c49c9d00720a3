package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"institute-discovery/internal/common/config"
	"institute-discovery/internal/common/errors"
	commonhttp "institute-discovery/internal/common/http"
	"institute-discovery/internal/models"
)

// RESTSource reads the catalog from the content API. Both endpoints may
// answer with a bare JSON array or with an object wrapping it in "data".
type RESTSource struct {
	client         *commonhttp.Client
	baseURL        string
	categoriesPath string
	listingsPath   string
}

func NewRESTSource(cfg config.CatalogConfig) *RESTSource {
	return &RESTSource{
		client:         commonhttp.NewClient(config.GetDuration(cfg.Timeout)),
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		categoriesPath: cfg.CategoriesPath,
		listingsPath:   cfg.ListingsPath,
	}
}

func (s *RESTSource) Name() string { return config.CatalogSourceREST }

func (s *RESTSource) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.fetch(ctx, s.categoriesPath, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *RESTSource) Listings(ctx context.Context) ([]models.Listing, error) {
	var listings []models.Listing
	if err := s.fetch(ctx, s.listingsPath, &listings); err != nil {
		return nil, err
	}
	return activeOnly(listings), nil
}

// activeOnly keeps the listings PostgresSource would select.
func activeOnly(listings []models.Listing) []models.Listing {
	active := listings[:0]
	for _, l := range listings {
		if l.Status == models.ListingStatusActive {
			active = append(active, l)
		}
	}
	return active
}

func (s *RESTSource) fetch(ctx context.Context, path string, out interface{}) error {
	var raw json.RawMessage
	if err := s.client.GetJSON(ctx, s.baseURL+path, &raw); err != nil {
		return errors.NewCatalogFetchFailedError(s.Name(), err)
	}

	if err := decodeCollection(raw, out); err != nil {
		return errors.NewCatalogFetchFailedError(s.Name(), fmt.Errorf("decode %s: %w", path, err))
	}
	return nil
}

func decodeCollection(raw json.RawMessage, out interface{}) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return err
		}
		if len(envelope.Data) == 0 {
			return fmt.Errorf("response object has no data field")
		}
		trimmed = envelope.Data
	}
	return json.Unmarshal(trimmed, out)
}
