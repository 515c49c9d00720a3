// Package landing runs keyword resolutions against a freshly loaded
// catalog and records their outcome.
package landing

import (
	"context"
	"strings"

	"institute-discovery/internal/common/logger"
	"institute-discovery/internal/common/metrics"
	"institute-discovery/internal/common/observability"
	"institute-discovery/internal/keyword"

	"go.opentelemetry.io/otel/attribute"
)

// CatalogLoader is satisfied by catalog.Loader.
type CatalogLoader interface {
	Load(ctx context.Context) (keyword.Inputs, error)
}

type Resolver struct {
	loader CatalogLoader
	obs    *observability.Observability
	logger logger.Logger
}

// NewResolver accepts a nil obs.
func NewResolver(loader CatalogLoader, obs *observability.Observability, log logger.Logger) *Resolver {
	return &Resolver{
		loader: loader,
		obs:    obs,
		logger: log.WithFields(map[string]interface{}{"component": "landing-resolver"}),
	}
}

// Resolve guards slug, loads the catalog and resolves slug at page. Slugs
// failing the guard return OutcomeRedirect without touching the catalog.
// The only error is cancellation of ctx, in which case the result must be
// discarded.
func (r *Resolver) Resolve(ctx context.Context, slug string, page int) (keyword.Resolution, error) {
	ctx, span := observability.Tracer().Start(ctx, "landing.Resolve")
	defer span.End()
	span.SetAttributes(attribute.String("landing.slug", slug), attribute.Int("landing.page", page))

	var res keyword.Resolution
	if !keyword.HasIntentToken(strings.ToLower(slug)) {
		res = keyword.Resolve(slug, page, keyword.Inputs{})
	} else {
		inputs, err := r.loader.Load(ctx)
		if err != nil {
			span.RecordError(err)
			return keyword.Resolution{}, err
		}
		res = keyword.Resolve(slug, page, inputs)
	}

	metrics.KeywordResolutions.WithLabelValues(string(res.Outcome)).Inc()
	if res.Page.Corrected {
		metrics.KeywordPageCorrections.Inc()
	}
	r.obs.RecordResolution(ctx, string(res.Outcome), res.Page.TotalItems)

	span.SetAttributes(
		attribute.String("landing.outcome", string(res.Outcome)),
		attribute.Int("landing.matched", res.Page.TotalItems),
	)
	r.logger.Debug("Keyword resolved", map[string]interface{}{
		"slug":      res.Slug,
		"outcome":   res.Outcome,
		"matched":   res.Page.TotalItems,
		"page":      res.Page.Number,
		"corrected": res.Page.Corrected,
	})
	return res, nil
}
