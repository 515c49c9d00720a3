package search

import (
	"context"
	"errors"

	"institute-discovery/internal/common/logger"
	"institute-discovery/internal/common/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Searcher is one search backend.
type Searcher interface {
	Name() string
	Search(ctx context.Context, q Query) (*Result, error)
}

// Service validates queries and routes them to the primary backend,
// falling back to the secondary one when the primary fails.
type Service struct {
	primary      Searcher
	fallback     Searcher
	defaultLimit int
	logger       logger.Logger
}

// NewService accepts a nil primary or a nil fallback, not both.
func NewService(primary, fallback Searcher, defaultLimit int, log logger.Logger) *Service {
	return &Service{
		primary:      primary,
		fallback:     fallback,
		defaultLimit: defaultLimit,
		logger:       log.WithFields(map[string]interface{}{"component": "search"}),
	}
}

func (s *Service) Search(ctx context.Context, q Query) (*Result, error) {
	q, err := q.normalize(s.defaultLimit)
	if err != nil {
		return nil, err
	}

	ctx, span := observability.Tracer().Start(ctx, "search.Search")
	defer span.End()
	span.SetAttributes(attribute.String("search.query", q.Text), attribute.Int("search.limit", q.Limit))

	backend := s.primary
	if backend == nil {
		backend = s.fallback
	}
	if backend == nil {
		return nil, errors.New("no search backend configured")
	}

	res, err := backend.Search(ctx, q)
	if err != nil && backend == s.primary && s.fallback != nil && ctx.Err() == nil {
		s.logger.Warn("Primary search backend failed, falling back", map[string]interface{}{
			"backend":  backend.Name(),
			"fallback": s.fallback.Name(),
			"error":    err,
		})
		res, err = s.fallback.Search(ctx, q)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("search.backend", res.Backend), attribute.Int64("search.total", res.Total))
	return res, nil
}
