package service

import (
	"fmt"
	"strings"

	"feelre/internal/model"
	"feelre/internal/utils"
)

// Fixed taxonomy used to cap topical repetition. The first tag of an item
// found in this list is its primary category; anything else is "other".
var primaryCategories = []string{
	"gaming", "drawing", "cooking", "coffee", "yoga",
	"reading", "travel", "home", "eco", "minimal",
}

const (
	maxBadges        = 3
	maxDiversityTags = 4
)

// Ranker turns the ordered candidate pool into the bounded, diversified
// result set
type Ranker struct {
	resultCount int
	categoryCap int
}

// NewRanker creates a ranker; zero values fall back to 8 results with at
// most 3 per category
func NewRanker(resultCount, categoryCap int) *Ranker {
	if resultCount <= 0 {
		resultCount = 8
	}
	if categoryCap <= 0 {
		categoryCap = 3
	}
	return &Ranker{resultCount: resultCount, categoryCap: categoryCap}
}

// PrimaryCategory returns the first taxonomy tag of the item, or "other"
func PrimaryCategory(tags []string) string {
	for _, category := range primaryCategories {
		for _, tag := range tags {
			if utils.NormalizeTag(tag) == category {
				return category
			}
		}
	}
	return "other"
}

// Rank walks the ordered pool, accepting items until the result count is
// reached while no primary category exceeds its cap. Returns the accepted
// items and the diversity tags for the response.
func (r *Ranker) Rank(signals *model.Signals, pool []model.CatalogItem) ([]model.RankedItem, []string) {
	perCategory := map[string]int{}
	accepted := make([]model.RankedItem, 0, r.resultCount)
	var diversity []string

	for _, item := range pool {
		if len(accepted) >= r.resultCount {
			break
		}
		category := PrimaryCategory(item.Tags)
		if perCategory[category] >= r.categoryCap {
			continue
		}
		perCategory[category]++

		badges := badgesOf(item)
		accepted = append(accepted, model.RankedItem{
			ProductID:  item.ID,
			Title:      item.Title,
			Price:      model.Money{Value: item.Price, Currency: itemCurrency(item, signals)},
			Image:      item.Image,
			Badges:     badges,
			Why:        buildWhy(item, signals),
			MatchScore: matchScore(len(accepted)),
			DeepLink:   item.DeepLink,
		})
		diversity = utils.UnionTags(diversity, badges)
	}

	if len(diversity) > maxDiversityTags {
		diversity = diversity[:maxDiversityTags]
	}
	return accepted, diversity
}

// matchScore decays with acceptance position so earlier (better ordered)
// items score higher
func matchScore(position int) float64 {
	score := 0.95 - 0.02*float64(position)
	if score < 0.75 {
		score = 0.75
	}
	return score
}

// badgesOf picks the first few tags as display badges
func badgesOf(item model.CatalogItem) []string {
	tags := utils.NormalizeTags(item.Tags)
	if len(tags) > maxBadges {
		tags = tags[:maxBadges]
	}
	return tags
}

// itemCurrency falls back to the fused record's currency when the catalog
// item carries none
func itemCurrency(item model.CatalogItem, signals *model.Signals) string {
	if item.Currency != "" {
		return item.Currency
	}
	return signals.Currency
}

// buildWhy assembles the human-readable explanation from the first vibe tag,
// the first interest tag and the budget, omitting whatever is absent
func buildWhy(item model.CatalogItem, signals *model.Signals) string {
	var parts []string
	if len(signals.GiftContext.Vibe) > 0 {
		parts = append(parts, signals.GiftContext.Vibe[0]+" vibe")
	}
	if len(signals.RecipientProfile.Interests) > 0 {
		parts = append(parts, fmt.Sprintf("for %q", signals.RecipientProfile.Interests[0]))
	}
	if signals.Constraints.BudgetMax != nil {
		parts = append(parts, fmt.Sprintf("within your %s %s budget",
			formatAmount(*signals.Constraints.BudgetMax), signals.Currency))
	} else {
		parts = append(parts, "within your budget")
	}
	return strings.Join(parts, ", ")
}

// formatAmount prints whole amounts without a decimal tail
func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
