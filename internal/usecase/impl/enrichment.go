package impl

import (
	"strings"

	"hive/internal/domain/entity"
)

// EnrichmentRule appends cue terms to an item's searchable text when its
// predicate holds. Rules are evaluated once at catalog load time, in order,
// so the enrichment applied to any item is auditable and testable without
// the pipeline.
type EnrichmentRule struct {
	Name  string
	When  func(*entity.MenuItem) bool
	Terms []string
}

// defaultEnrichmentRules mirrors the price-band and flag cues the ranking
// collaborator is tuned for.
func defaultEnrichmentRules() []EnrichmentRule {
	return []EnrichmentRule{
		{
			Name:  "affordable-band",
			When:  func(item *entity.MenuItem) bool { return item.Price < entity.MoneyFromMajor(100) },
			Terms: []string{"affordable", "budget", "value meal"},
		},
		{
			Name: "midrange-band",
			When: func(item *entity.MenuItem) bool {
				return item.Price >= entity.MoneyFromMajor(100) && item.Price < entity.MoneyFromMajor(400)
			},
			Terms: []string{"regular", "combo"},
		},
		{
			Name:  "premium-band",
			When:  func(item *entity.MenuItem) bool { return item.Price >= entity.MoneyFromMajor(400) },
			Terms: []string{"premium", "family bundle", "sharing"},
		},
		{
			Name:  "bestseller-flag",
			When:  func(item *entity.MenuItem) bool { return item.IsBestseller },
			Terms: []string{"bestseller", "popular", "favorite", "recommended"},
		},
		{
			Name:  "new-flag",
			When:  func(item *entity.MenuItem) bool { return item.IsNew },
			Terms: []string{"new", "latest"},
		},
	}
}

// applyEnrichment appends each matching rule's terms to the item's
// searchable text, skipping terms already present.
func applyEnrichment(item *entity.MenuItem, rules []EnrichmentRule) {
	existing := strings.ToLower(item.SearchableText)
	parts := []string{item.SearchableText}

	for _, rule := range rules {
		if !rule.When(item) {
			continue
		}
		for _, term := range rule.Terms {
			if strings.Contains(existing, strings.ToLower(term)) {
				continue
			}
			parts = append(parts, term)
			existing += " " + strings.ToLower(term)
		}
	}

	item.SearchableText = strings.TrimSpace(strings.Join(parts, " "))
}
