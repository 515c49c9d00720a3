package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, `
catalog:
  base_url: http://catalog.local/api
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, CatalogSourceREST, cfg.Catalog.Source)
	assert.Equal(t, "/category", cfg.Catalog.CategoriesPath)
	assert.Equal(t, "/property", cfg.Catalog.ListingsPath)
	assert.Equal(t, 10000, cfg.Catalog.Timeout)
	assert.Equal(t, 300, cfg.Catalog.CacheTTL)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "content", cfg.Search.Index)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 10, cfg.Camunda.MaxJobsActive)
	assert.False(t, cfg.Database.Postgres.Enabled())
}

func TestLoadFromFile_ExpandsEnv(t *testing.T) {
	t.Setenv("TEST_CATALOG_HOST", "catalog.internal")
	path := writeConfig(t, `
catalog:
  base_url: http://${TEST_CATALOG_HOST}/api
workers:
  resolve-keyword-page:
    enabled: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "http://catalog.internal/api", cfg.Catalog.BaseURL)
	worker := GetWorkerConfig(cfg, "resolve-keyword-page")
	assert.True(t, worker.Enabled)
	assert.Equal(t, 5, worker.MaxJobsActive)
	assert.Equal(t, 3, worker.MaxRetries)
}

func TestLoadFromFile_UnsetPlaceholders(t *testing.T) {
	t.Setenv("TEST_ES_URL", "http://es.internal:9200")
	t.Setenv("TEST_UNSET_HOST", "")
	path := writeConfig(t, `
catalog:
  base_url: http://catalog.local/api
database:
  postgres:
    host: ${TEST_UNSET_HOST}
  elasticsearch:
    addresses:
      - ${TEST_ES_URL}
      - ${TEST_UNSET_HOST}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.False(t, cfg.Database.Postgres.Enabled())
	assert.Equal(t, []string{"http://es.internal:9200"}, cfg.Database.Elasticsearch.Addresses)
	assert.Equal(t, "http://es.internal:9200", cfg.Database.Elasticsearch.GetURL())
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		errContains string
	}{
		{
			name:        "rest source without base url",
			body:        "catalog:\n  source: rest\n",
			errContains: "catalog.base_url",
		},
		{
			name:        "postgres source without host",
			body:        "catalog:\n  source: postgres\n",
			errContains: "database.postgres.host",
		},
		{
			name:        "unknown source",
			body:        "catalog:\n  source: ftp\n",
			errContains: "catalog.source",
		},
		{
			name:        "postgres without user",
			body:        "catalog:\n  source: postgres\ndatabase:\n  postgres:\n    host: db\n    database: discovery\n",
			errContains: "database.postgres.user",
		},
		{
			name:        "tracing without endpoint",
			body:        "catalog:\n  base_url: http://x\ntracing:\n  enabled: true\n",
			errContains: "tracing.jaeger_endpoint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DB_USER", "")
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))

	cfg := &Config{Workers: map[string]WorkerConfig{"search-content": {Enabled: false}}}
	assert.False(t, IsWorkerEnabled(cfg, "search-content"))
	assert.True(t, IsWorkerEnabled(cfg, "submit-enquiry"))
	assert.Equal(t, 30000, GetWorkerConfig(cfg, "submit-enquiry").Timeout)

	pg := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "d", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=d sslmode=disable", pg.GetDSN())

	assert.Equal(t, "http://es:9200", ElasticsearchConfig{Addresses: []string{"http://es:9200"}}.GetURL())
}
