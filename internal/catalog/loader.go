package catalog

import (
	"context"

	"institute-discovery/internal/common/logger"
	"institute-discovery/internal/common/metrics"
	"institute-discovery/internal/common/observability"
	"institute-discovery/internal/keyword"
	"institute-discovery/internal/models"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// Loader fetches both collections concurrently and projects them into
// keyword.Inputs. A failed collection degrades to empty; only cancellation
// of ctx is reported as an error.
type Loader struct {
	source Source
	logger logger.Logger
}

func NewLoader(source Source, log logger.Logger) *Loader {
	return &Loader{
		source: source,
		logger: log.WithFields(map[string]interface{}{"component": "catalog-loader", "source": source.Name()}),
	}
}

func (l *Loader) Load(ctx context.Context) (keyword.Inputs, error) {
	ctx, span := observability.Tracer().Start(ctx, "catalog.Load")
	defer span.End()

	var (
		categories []models.Category
		listings   []models.Listing
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		categories = fetchOrEmpty(gctx, l, "categories", l.source.Categories)
		return nil
	})
	g.Go(func() error {
		listings = fetchOrEmpty(gctx, l, "listings", l.source.Listings)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return keyword.Inputs{}, err
	}

	span.SetAttributes(
		attribute.Int("catalog.categories", len(categories)),
		attribute.Int("catalog.listings", len(listings)),
	)
	return keyword.NewInputs(categories, listings), nil
}

func fetchOrEmpty[T any](ctx context.Context, l *Loader, collection string, fetch func(context.Context) ([]T, error)) []T {
	items, err := fetch(ctx)
	if err != nil {
		if ctx.Err() == nil {
			metrics.CatalogFetchFailures.WithLabelValues(l.source.Name()).Inc()
			l.logger.Warn("Catalog fetch failed, continuing with empty collection", map[string]interface{}{
				"collection": collection,
				"error":      err,
			})
		}
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}
