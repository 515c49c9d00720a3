// cmd/worker-manager/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"institute-discovery/internal/catalog"
	"institute-discovery/internal/common/aws"
	"institute-discovery/internal/common/camunda"
	"institute-discovery/internal/common/config"
	"institute-discovery/internal/common/database"
	"institute-discovery/internal/common/logger"
	"institute-discovery/internal/common/observability"
	"institute-discovery/internal/enquiry"
	"institute-discovery/internal/landing"
	"institute-discovery/internal/search"
	"institute-discovery/internal/server"
	"institute-discovery/pkg/registry"

	se "institute-discovery/internal/workers/enquiry/submit-enquiry"
	rkp "institute-discovery/internal/workers/landing/resolve-keyword-page"
	sc "institute-discovery/internal/workers/landing/search-content"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting institute discovery",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("catalogSource", cfg.Catalog.Source),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	tracing, err := observability.NewTracing(cfg.App.Name, cfg.App.Version, observability.TracingConfig{
		Enabled:        cfg.Tracing.Enabled,
		JaegerEndpoint: cfg.Tracing.JaegerEndpoint,
		SampleRatio:    cfg.Tracing.SampleRatio,
	})
	if err != nil {
		zapLog.Fatal("tracing init failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]server.Check{}

	// --- PostgreSQL (catalog source and enquiry store) ---
	var pg *database.PostgresClient
	if cfg.Database.Postgres.Enabled() {
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		checks["postgres"] = pg.Ping
		zapLog.Info("PostgreSQL connected successfully")

		if cfg.Database.Postgres.Migrate {
			if err := pg.EnsureSchema(ctx); err != nil {
				zapLog.Fatal("postgres schema setup failed", zap.Error(err))
			}
		}
	}

	// --- Redis (catalog cache) ---
	var rdb *database.RedisClient
	if cfg.Database.Redis.Address != "" {
		rdb = database.NewRedis(cfg.Database.Redis)
		err = retryWithBackoff(func() error {
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()
		checks["redis"] = rdb.Ping
		zapLog.Info("Redis connected successfully")
	}

	// --- Elasticsearch (content search) ---
	var es *database.ElasticsearchClient
	if cfg.Database.Elasticsearch.GetURL() != "" {
		err = retryWithBackoff(func() error {
			var err error
			es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return es.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			// Search degrades to the in-memory catalog matcher.
			zapLog.Warn("elasticsearch unavailable, using catalog search only", zap.Error(err))
			es = nil
		} else {
			checks["elasticsearch"] = func(ctx context.Context) error {
				return es.IndexExists(ctx, cfg.Search.Index)
			}
			zapLog.Info("Elasticsearch connected successfully")
		}
	}

	// --- Catalog ---
	var source catalog.Source
	switch cfg.Catalog.Source {
	case config.CatalogSourcePostgres:
		source = catalog.NewPostgresSource(pg.DB)
	default:
		source = catalog.NewRESTSource(cfg.Catalog)
	}
	if rdb != nil {
		source = catalog.NewCachedSource(source, rdb.Client, time.Duration(cfg.Catalog.CacheTTL)*time.Second, log)
	}
	loader := catalog.NewLoader(source, log)
	resolver := landing.NewResolver(loader, obs, log)

	// --- Search ---
	var primary search.Searcher
	if es != nil {
		primary = search.NewElasticsearchBackend(es.Client, cfg.Search.Index)
	}
	searchService := search.NewService(primary, search.NewCatalogSearcher(loader), cfg.Search.DefaultLimit, log)

	// --- Enquiries ---
	var enquiryService *enquiry.Service
	if pg != nil {
		enquiryService, err = newEnquiryService(ctx, cfg, pg, log)
		if err != nil {
			zapLog.Fatal("enquiry service init failed", zap.Error(err))
		}
	} else {
		zapLog.Warn("PostgreSQL not configured, enquiries disabled")
	}

	// --- Camunda workers ---
	var zeebe *camunda.Client
	var workers *camunda.WorkerSet
	if cfg.Camunda.BrokerAddress != "" {
		zeebe, err = camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		if err != nil {
			zapLog.Fatal("zeebe client failed", zap.Error(err))
		}
		checks["zeebe"] = zeebe.HealthCheck
		zapLog.Info("Zeebe client connected successfully")

		workers = camunda.NewWorkerSet(zeebe.GetClient(), log)
		activities := registry.Default()

		resolveCfg := rkp.LoadConfig()
		workers.Start(rkp.TaskType, workerConfig(cfg, activities, rkp.TaskType, zapLog),
			rkp.NewHandler(resolveCfg, resolver, obs, log).Handle)

		searchCfg := sc.LoadConfig()
		searchCfg.Timeout = config.GetDuration(cfg.Search.Timeout)
		searchCfg.DefaultLimit = cfg.Search.DefaultLimit
		workers.Start(sc.TaskType, workerConfig(cfg, activities, sc.TaskType, zapLog),
			sc.NewHandler(searchCfg, searchService, log).Handle)

		if enquiryService != nil {
			workers.Start(se.TaskType, workerConfig(cfg, activities, se.TaskType, zapLog),
				se.NewHandler(se.LoadConfig(), enquiryService, log).Handle)
		}
		zapLog.Info("Workers registered", zap.Int("count", workers.Len()))
	}

	// --- HTTP ---
	deps := server.Deps{
		Resolver: resolver,
		Searcher: searchService,
		Checks:   checks,
	}
	if enquiryService != nil {
		deps.Submitter = enquiryService
	}
	httpServer := server.NewHTTPServer(cfg.Server, server.New(deps, log).Handler())

	serveErr := make(chan error, 1)
	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// --- Graceful Shutdown ---
	select {
	case <-ctx.Done():
		zapLog.Info("Shutdown signal received, stopping...")
	case err := <-serveErr:
		zapLog.Error("HTTP server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}
	if workers != nil {
		workers.Close()
	}
	if zeebe != nil {
		if err := zeebe.Close(); err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	}
	if err := tracing.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error flushing traces", zap.Error(err))
	}

	zapLog.Info("Institute discovery stopped gracefully")
}

func newEnquiryService(ctx context.Context, cfg *config.Config, pg *database.PostgresClient, log logger.Logger) (*enquiry.Service, error) {
	schema, err := enquiry.LoadSchema(cfg.Enquiry.SchemaPath)
	if err != nil {
		return nil, err
	}

	var notifier enquiry.Notifier
	if cfg.Integrations.AWS.SES.Enabled || cfg.Integrations.AWS.SNS.Enabled {
		awsCfg, err := aws.LoadConfig(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			return nil, err
		}
		notifier = aws.NewNotifier(awsCfg,
			cfg.Integrations.AWS.SES.FromEmail,
			cfg.Integrations.AWS.SNS.DefaultSMSSenderID,
		)
	}

	return enquiry.NewService(enquiry.Config{
		OpsEmail: cfg.Enquiry.OpsEmail,
		SendSMS:  cfg.Enquiry.SendSMS && cfg.Integrations.AWS.SNS.Enabled,
		Schema:   schema,
	}, enquiry.NewPostgresStore(pg.DB), notifier, log), nil
}

// workerConfig takes the configured worker settings, falling back to the
// activity registry's timeout for workers absent from config.
func workerConfig(cfg *config.Config, activities *registry.ActivityRegistry, taskType string, log *zap.Logger) config.WorkerConfig {
	wcfg := config.GetWorkerConfig(cfg, taskType)

	activity, ok := activities.Find(taskType)
	if !ok {
		log.Warn("task type missing from activity registry", zap.String("taskType", taskType))
		return wcfg
	}
	if _, configured := cfg.Workers[taskType]; !configured {
		wcfg.Timeout = int(activity.TimeoutDuration(config.GetDuration(wcfg.Timeout)).Milliseconds())
	}
	return wcfg
}
