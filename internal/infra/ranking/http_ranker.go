package ranking

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"hive/internal/domain/entity"
	"hive/internal/domain/service"

	"github.com/pkg/errors"
)

// httpRanker delegates ranking to the external semantic ranking service.
// The core supplies item records with searchable text and treats responses
// as an opaque ranking oracle.
type httpRanker struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewHTTPRanker creates a ranking client for an external service endpoint.
func NewHTTPRanker(endpoint string, timeout time.Duration, logger *slog.Logger) service.Ranker {
	return &httpRanker{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

type indexRequest struct {
	Items []indexItem `json:"items"`
}

type indexItem struct {
	ItemID         string `json:"item_id"`
	SearchableText string `json:"searchable_text"`
}

func (r *httpRanker) IndexItems(ctx context.Context, items []*entity.MenuItem) error {
	payload := indexRequest{Items: make([]indexItem, 0, len(items))}
	for _, item := range items {
		payload.Items = append(payload.Items, indexItem{
			ItemID:         item.ID,
			SearchableText: item.SearchableText,
		})
	}

	if err := r.post(ctx, "/index", payload, nil); err != nil {
		return errors.Wrap(err, "index catalog items")
	}

	r.logger.Info("Indexed catalog into ranking service", slog.Int("items", len(items)))

	return nil
}

type rankRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type rankResponse struct {
	Results []service.RankedItem `json:"results"`
}

func (r *httpRanker) Rank(ctx context.Context, query string, limit int) ([]service.RankedItem, error) {
	var resp rankResponse
	if err := r.post(ctx, "/rank", rankRequest{Query: query, Limit: limit}, &resp); err != nil {
		return nil, errors.Wrap(err, "rank query")
	}

	return resp.Results, nil
}

func (r *httpRanker) Close() error {
	r.client.CloseIdleConnections()

	return nil
}

func (r *httpRanker) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshal ranking request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build ranking request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "ranking service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("ranking service returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	return errors.Wrap(json.NewDecoder(resp.Body).Decode(out), "decode ranking response")
}
