package impl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hive/internal/domain/entity"
)

func TestApplyEnrichment_PriceBands(t *testing.T) {
	rules := defaultEnrichmentRules()

	cheap := &entity.MenuItem{ID: "a", Price: entity.MoneyFromMajor(40), SearchableText: "beef burger"}
	applyEnrichment(cheap, rules)
	assert.Contains(t, cheap.SearchableText, "affordable")
	assert.NotContains(t, cheap.SearchableText, "premium")

	mid := &entity.MenuItem{ID: "b", Price: entity.MoneyFromMajor(150), SearchableText: "rice meal"}
	applyEnrichment(mid, rules)
	assert.Contains(t, mid.SearchableText, "combo")

	expensive := &entity.MenuItem{ID: "c", Price: entity.MoneyFromMajor(499), SearchableText: "bucket"}
	applyEnrichment(expensive, rules)
	assert.Contains(t, expensive.SearchableText, "premium")
	assert.Contains(t, expensive.SearchableText, "sharing")
}

func TestApplyEnrichment_Flags(t *testing.T) {
	rules := defaultEnrichmentRules()

	item := &entity.MenuItem{
		ID:             "d",
		Price:          entity.MoneyFromMajor(60),
		IsBestseller:   true,
		IsNew:          true,
		SearchableText: "sweet spaghetti",
	}
	applyEnrichment(item, rules)

	assert.Contains(t, item.SearchableText, "bestseller")
	assert.Contains(t, item.SearchableText, "latest")
}

func TestApplyEnrichment_SkipsDuplicateTerms(t *testing.T) {
	rules := defaultEnrichmentRules()

	item := &entity.MenuItem{
		ID:             "e",
		Price:          entity.MoneyFromMajor(40),
		SearchableText: "affordable snack",
	}
	applyEnrichment(item, rules)

	assert.Equal(t, 1, countOccurrences(item.SearchableText, "affordable"))
}

func countOccurrences(text, term string) int {
	count := 0
	for i := 0; i+len(term) <= len(text); i++ {
		if text[i:i+len(term)] == term {
			count++
		}
	}

	return count
}
