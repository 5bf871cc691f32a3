package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"hive/internal/domain/service"

	"github.com/pkg/errors"
)

// httpStore talks to a search-store REST API (Elasticsearch-compatible
// document, search and refresh endpoints). The refresh endpoint is what
// backs the visibility barrier.
type httpStore struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   *slog.Logger
}

// NewHTTPStore creates a document store client for a REST endpoint.
func NewHTTPStore(endpoint, apiKey string, timeout time.Duration, logger *slog.Logger) service.DocumentStore {
	return &httpStore{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

func (s *httpStore) Put(ctx context.Context, collection service.Collection, key string, record any) error {
	body, err := json.Marshal(record)
	if err != nil {
		return errors.Wrapf(err, "marshal document %s/%s", collection, key)
	}

	url := fmt.Sprintf("%s/%s/_doc/%s", s.endpoint, collection, key)
	resp, err := s.do(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("put %s/%s: unexpected status %d", collection, key, resp.StatusCode)
	}

	return nil
}

func (s *httpStore) Get(ctx context.Context, collection service.Collection, key string, out any) error {
	url := fmt.Sprintf("%s/%s/_doc/%s", s.endpoint, collection, key)
	resp, err := s.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return service.ErrDocumentNotFound
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("get %s/%s: unexpected status %d", collection, key, resp.StatusCode)
	}

	var envelope struct {
		Found  bool            `json:"found"`
		Source json.RawMessage `json:"_source"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return errors.Wrapf(err, "decode get response %s/%s", collection, key)
	}
	if !envelope.Found {
		return service.ErrDocumentNotFound
	}

	return errors.Wrapf(json.Unmarshal(envelope.Source, out), "decode document %s/%s", collection, key)
}

func (s *httpStore) Query(ctx context.Context, collection service.Collection, filter service.Filter, out any) error {
	query := buildTermQuery(filter)
	body, err := json.Marshal(query)
	if err != nil {
		return errors.Wrap(err, "marshal search query")
	}

	url := fmt.Sprintf("%s/%s/_search", s.endpoint, collection)
	resp, err := s.do(ctx, http.MethodPost, url, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("query %s: unexpected status %d", collection, resp.StatusCode)
	}

	var envelope struct {
		Hits struct {
			Hits []struct {
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return errors.Wrapf(err, "decode search response %s", collection)
	}

	docs := make([]json.RawMessage, 0, len(envelope.Hits.Hits))
	for _, hit := range envelope.Hits.Hits {
		docs = append(docs, hit.Source)
	}

	return decodeDocuments(docs, out)
}

func (s *httpStore) Barrier(ctx context.Context, collections ...service.Collection) error {
	if len(collections) == 0 {
		return nil
	}

	names := make([]string, 0, len(collections))
	for _, collection := range collections {
		names = append(names, collection.String())
	}

	url := fmt.Sprintf("%s/%s/_refresh", s.endpoint, strings.Join(names, ","))
	resp, err := s.do(ctx, http.MethodPost, url, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("refresh %s: unexpected status %d", strings.Join(names, ","), resp.StatusCode)
	}

	return nil
}

func (s *httpStore) Close() error {
	s.client.CloseIdleConnections()

	return nil
}

func (s *httpStore) do(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, errors.Wrap(err, "build store request")
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "ApiKey "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "document store unreachable")
	}

	return resp, nil
}

// buildTermQuery maps the equality filter onto a bool/term search body.
func buildTermQuery(filter service.Filter) map[string]any {
	if len(filter) == 0 {
		return map[string]any{
			"query": map[string]any{"match_all": map[string]any{}},
			"size":  10000,
		}
	}

	terms := make([]map[string]any, 0, len(filter))
	for field, value := range filter {
		terms = append(terms, map[string]any{
			"term": map[string]any{field: value},
		})
	}

	return map[string]any{
		"query": map[string]any{
			"bool": map[string]any{"filter": terms},
		},
		"size": 10000,
	}
}
