// internal/datastore/elastic.go
package datastore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"shamba-workers/internal/common/database"
	"shamba-workers/internal/models"
)

// SentimentSearch provides full-text retrieval over farmer sentiment
// reports. Postgres stays the system of record; when search is enabled
// the index feeds the alert scan and backs report ingestion, where
// free-text lookup catches near-duplicate submissions.
type SentimentSearch struct {
	client *database.ElasticsearchClient
	index  string
}

// NewSentimentSearch wraps an elasticsearch client for the given index.
func NewSentimentSearch(client *database.ElasticsearchClient, index string) *SentimentSearch {
	return &SentimentSearch{client: client, index: index}
}

// searchResponse is the subset of the search API response we decode.
type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source models.SentimentReport `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// SearchReports returns verified reports matching the free-text query,
// optionally narrowed to a county. Results are capped at limit.
func (s *SentimentSearch) SearchReports(ctx context.Context, query, county string, limit int) ([]models.SentimentReport, error) {
	must := []map[string]interface{}{
		{"match": map[string]interface{}{"text": query}},
	}
	filter := []map[string]interface{}{
		{"term": map[string]interface{}{"verified": true}},
	}
	if county != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"county": county},
		})
	}

	body := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   must,
				"filter": filter,
			},
		},
		"sort": []map[string]interface{}{
			{"timestamp": map[string]interface{}{"order": "desc"}},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("failed to encode search query: %w", err)
	}

	es := s.client.Client
	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(s.index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("sentiment search failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("sentiment search error: %s", res.Status())
	}

	var decoded searchResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	reports := make([]models.SentimentReport, 0, len(decoded.Hits.Hits))
	for _, hit := range decoded.Hits.Hits {
		reports = append(reports, hit.Source)
	}
	return reports, nil
}

// GetSentimentReports returns the most recent verified reports, newest
// first. This lets the search index stand in for postgres as the report
// feed of the alert scan.
func (s *SentimentSearch) GetSentimentReports(ctx context.Context) ([]models.SentimentReport, error) {
	body := map[string]interface{}{
		"size": 1000,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []map[string]interface{}{
					{"term": map[string]interface{}{"verified": true}},
				},
			},
		},
		"sort": []map[string]interface{}{
			{"timestamp": map[string]interface{}{"order": "desc"}},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("failed to encode search query: %w", err)
	}

	es := s.client.Client
	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(s.index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("sentiment search failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("sentiment search error: %s", res.Status())
	}

	var decoded searchResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	reports := make([]models.SentimentReport, 0, len(decoded.Hits.Hits))
	for _, hit := range decoded.Hits.Hits {
		reports = append(reports, hit.Source)
	}
	return reports, nil
}

// IndexReport writes one report to the search index. Document ID matches
// the report ID so re-indexing is idempotent.
func (s *SentimentSearch) IndexReport(ctx context.Context, report models.SentimentReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report %s: %w", report.ID, err)
	}

	es := s.client.Client
	res, err := es.Index(
		s.index,
		bytes.NewReader(payload),
		es.Index.WithContext(ctx),
		es.Index.WithDocumentID(report.ID),
	)
	if err != nil {
		return fmt.Errorf("failed to index report %s: %w", report.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index error for report %s: %s", report.ID, res.Status())
	}
	return nil
}
