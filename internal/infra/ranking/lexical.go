// Package ranking provides clients for the semantic ranking collaborator.
// The HTTP client talks to the external service; the lexical ranker is an
// in-process fallback for development and tests.
package ranking

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"hive/internal/domain/entity"
	"hive/internal/domain/service"
)

// lexicalRanker scores items by token overlap between the query and the
// enriched searchable text. It is deliberately naive; real relevance comes
// from the external collaborator.
type lexicalRanker struct {
	mu     sync.RWMutex
	tokens map[string]map[string]struct{} // item id -> token set
	order  []string                       // indexing order, for stable ties
	logger *slog.Logger
}

// NewLexicalRanker creates the in-process fallback ranker.
func NewLexicalRanker(logger *slog.Logger) service.Ranker {
	return &lexicalRanker{
		tokens: make(map[string]map[string]struct{}),
		logger: logger,
	}
}

func (r *lexicalRanker) IndexItems(ctx context.Context, items []*entity.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens = make(map[string]map[string]struct{}, len(items))
	r.order = make([]string, 0, len(items))
	for _, item := range items {
		text := strings.Join([]string{item.Name, item.Category, item.Description, item.SearchableText}, " ")
		r.tokens[item.ID] = tokenize(text)
		r.order = append(r.order, item.ID)
	}

	r.logger.Debug("Indexed catalog into lexical ranker", slog.Int("items", len(items)))

	return nil
}

func (r *lexicalRanker) Rank(ctx context.Context, query string, limit int) ([]service.RankedItem, error) {
	queryTokens := tokenize(query)

	r.mu.RLock()
	defer r.mu.RUnlock()

	ranked := make([]service.RankedItem, 0, len(r.order))
	for _, id := range r.order {
		score := 0.0
		for token := range queryTokens {
			if _, ok := r.tokens[id][token]; ok {
				score++
			}
		}
		if score > 0 {
			ranked = append(ranked, service.RankedItem{ItemID: id, Score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked, nil
}

func (r *lexicalRanker) Close() error {
	return nil
}

func tokenize(text string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		token := strings.Trim(field, ".,!?()[]\"'")
		if token != "" {
			tokens[token] = struct{}{}
		}
	}

	return tokens
}
