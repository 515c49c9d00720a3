package search

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"institute-discovery/internal/common/errors"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// SearchFields are the document fields matched by free-text queries.
// Title matches weigh three times as much as the rest.
var SearchFields = []string{"title^3", "body", "category", "city", "tags"}

// ElasticsearchBackend runs queries against the content index.
type ElasticsearchBackend struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticsearchBackend(client *elasticsearch.Client, index string) *ElasticsearchBackend {
	return &ElasticsearchBackend{client: client, index: index}
}

func (b *ElasticsearchBackend) Name() string { return "elasticsearch" }

// BuildQuery builds the request body for q. Every query token must match
// somewhere in SearchFields; types become a terms filter.
func BuildQuery(q Query) map[string]interface{} {
	boolQuery := map[string]interface{}{
		"must": []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":    q.Text,
					"fields":   SearchFields,
					"type":     "cross_fields",
					"operator": "and",
				},
			},
		},
	}

	if len(q.Types) > 0 {
		types := make([]string, 0, len(q.Types))
		for _, t := range q.Types {
			types = append(types, string(t))
		}
		boolQuery["filter"] = []interface{}{
			map[string]interface{}{
				"terms": map[string]interface{}{"type": types},
			},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
		"size": q.Limit,
	}
}

type searchResponse struct {
	Took int64 `json:"took"`
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string   `json:"_id"`
			Source Document `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (b *ElasticsearchBackend) Search(ctx context.Context, q Query) (*Result, error) {
	body, err := json.Marshal(BuildQuery(q))
	if err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}

	req := esapi.SearchRequest{
		Index: []string{b.index},
		Body:  bytes.NewReader(body),
	}

	start := time.Now()
	res, err := req.Do(ctx, b.client)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errors.NewSearchTimeoutError(err)
		}
		return nil, errors.NewSearchQueryFailedError(err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, errors.NewIndexNotFoundError(b.index)
	}
	if res.IsError() {
		return nil, errors.NewSearchQueryFailedError(fmt.Errorf("search query failed: %s", res.String()))
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, errors.NewSearchQueryFailedError(fmt.Errorf("decode response: %w", err))
	}

	docs := make([]Document, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		doc := hit.Source
		if doc.ID == "" {
			doc.ID = hit.ID
		}
		docs = append(docs, doc)
	}

	took := r.Took
	if took == 0 {
		took = time.Since(start).Milliseconds()
	}

	return &Result{
		Documents: docs,
		Total:     r.Hits.Total.Value,
		Backend:   b.Name(),
		Took:      took,
	}, nil
}
