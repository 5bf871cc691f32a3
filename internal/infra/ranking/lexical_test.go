package ranking

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hive/internal/domain/entity"
)

func newTestRanker(t *testing.T) *lexicalRanker {
	t.Helper()

	ranker := NewLexicalRanker(slog.New(slog.NewTextHandler(io.Discard, nil)))

	items := []*entity.MenuItem{
		{ID: "chickenjoy1pc", Name: "Chickenjoy", Category: "chicken", SearchableText: "fried chicken crispy juicy"},
		{ID: "spaghetti", Name: "Jolly Spaghetti", Category: "pasta", SearchableText: "sweet sauce hotdog kids"},
		{ID: "halohalo", Name: "Halo-Halo", Category: "desserts", SearchableText: "shaved ice ube cold sweet"},
	}
	require.NoError(t, ranker.IndexItems(context.Background(), items))

	return ranker.(*lexicalRanker)
}

func TestLexicalRanker_RanksByTokenOverlap(t *testing.T) {
	ranker := newTestRanker(t)

	ranked, err := ranker.Rank(context.Background(), "sweet cold dessert", 10)
	require.NoError(t, err)
	require.NotEmpty(t, ranked)

	// halohalo matches "sweet" and "cold"; spaghetti only "sweet".
	assert.Equal(t, "halohalo", ranked[0].ItemID)
	assert.Greater(t, ranked[0].Score, ranked[len(ranked)-1].Score)
}

func TestLexicalRanker_OmitsNonMatches(t *testing.T) {
	ranker := newTestRanker(t)

	ranked, err := ranker.Rank(context.Background(), "crispy chicken", 10)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "chickenjoy1pc", ranked[0].ItemID)
}

func TestLexicalRanker_HonorsLimit(t *testing.T) {
	ranker := newTestRanker(t)

	ranked, err := ranker.Rank(context.Background(), "sweet", 1)
	require.NoError(t, err)
	assert.Len(t, ranked, 1)
}

func TestLexicalRanker_ReindexReplacesCatalog(t *testing.T) {
	ranker := newTestRanker(t)

	require.NoError(t, ranker.IndexItems(context.Background(), []*entity.MenuItem{
		{ID: "newitem", Name: "New", SearchableText: "fresh arrival"},
	}))

	ranked, err := ranker.Rank(context.Background(), "chicken", 10)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}
