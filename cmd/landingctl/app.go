package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"institute-discovery/internal/catalog"
	"institute-discovery/internal/common/config"
	"institute-discovery/internal/common/database"
	"institute-discovery/internal/common/logger"
	"institute-discovery/internal/search"
)

// app carries flags and lazily opened connections shared by subcommands.
type app struct {
	cfgFile string
	output  string

	cfg     *config.Config
	log     logger.Logger
	closers []func() error
}

func (a *app) loadConfig() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}

	var (
		cfg *config.Config
		err error
	)
	if a.cfgFile != "" {
		cfg, err = config.LoadFromFile(a.cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	a.cfg = cfg
	// stdout is reserved for command output
	a.log = logger.NewStructured(cfg.Logging.Level, "console", "stderr")
	return cfg, nil
}

// catalogSource builds the configured source, wrapped in the Redis cache
// when one is configured. The cached source is nil without Redis.
func (a *app) catalogSource(ctx context.Context) (catalog.Source, *catalog.CachedSource, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	var source catalog.Source
	switch cfg.Catalog.Source {
	case config.CatalogSourcePostgres:
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, pg.Close)
		if err := pg.Ping(ctx); err != nil {
			return nil, nil, err
		}
		source = catalog.NewPostgresSource(pg.DB)
	default:
		source = catalog.NewRESTSource(cfg.Catalog)
	}

	if cfg.Database.Redis.Address == "" {
		return source, nil, nil
	}

	rdb := database.NewRedis(cfg.Database.Redis)
	a.closers = append(a.closers, rdb.Close)
	cached := catalog.NewCachedSource(source, rdb.Client, time.Duration(cfg.Catalog.CacheTTL)*time.Second, a.log)
	return cached, cached, nil
}

func (a *app) loader(ctx context.Context) (*catalog.Loader, error) {
	source, _, err := a.catalogSource(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.NewLoader(source, a.log), nil
}

// searchService prefers Elasticsearch when configured and reachable and
// always falls back to matching the loaded catalog.
func (a *app) searchService(ctx context.Context) (*search.Service, error) {
	loader, err := a.loader(ctx)
	if err != nil {
		return nil, err
	}

	var primary search.Searcher
	if a.cfg.Database.Elasticsearch.GetURL() != "" {
		es, err := database.NewElasticsearch(a.cfg.Database.Elasticsearch)
		if err != nil {
			return nil, err
		}
		if err := es.Ping(ctx); err != nil {
			a.log.Warn("elasticsearch unavailable, searching catalog only", map[string]interface{}{"error": err.Error()})
		} else {
			primary = search.NewElasticsearchBackend(es.Client, a.cfg.Search.Index)
		}
	}

	return search.NewService(primary, search.NewCatalogSearcher(loader), a.cfg.Search.DefaultLimit, a.log), nil
}

func (a *app) close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// render writes v as indented JSON or as YAML. YAML keys follow the JSON
// field names.
func render(w io.Writer, format string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	if format != outputYAML {
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return enc.Close()
}
