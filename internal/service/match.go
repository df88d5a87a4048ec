package service

import (
	"math"
	"sort"

	"feelre/internal/model"
	"feelre/internal/utils"
)

// Generic ambience tags accepted when only vibe is known
var ambienceTags = []string{"home", "cozy", "minimal", "eco"}

// Price-bucket tags catalogs annotate items with
const (
	BucketUpTo30  = "budget_0_30"
	BucketUpTo50  = "budget_31_50"
	BucketUpTo100 = "budget_51_100"
	BucketOver100 = "budget_100_plus"
	defaultBucket = BucketUpTo50
)

// PriceBucket maps an amount to its catalog bucket tag
func PriceBucket(v float64) string {
	switch {
	case v <= 30:
		return BucketUpTo30
	case v <= 50:
		return BucketUpTo50
	case v <= 100:
		return BucketUpTo100
	default:
		return BucketOver100
	}
}

// MatchPool filters and orders the candidate pool against the fused intent.
// The pool is a read-only snapshot; a new slice is returned.
func MatchPool(signals *model.Signals, pool []model.CatalogItem, limit int) []model.CatalogItem {
	if limit <= 0 {
		limit = 40
	}

	budgetMax := math.Inf(1)
	if signals.Constraints.BudgetMax != nil {
		budgetMax = *signals.Constraints.BudgetMax
	}

	interests := signals.RecipientProfile.Interests
	vibe := signals.GiftContext.Vibe

	filtered := make([]model.CatalogItem, 0, len(pool))
	for _, item := range pool {
		if item.Price > budgetMax {
			continue
		}
		if len(interests) > 0 {
			if !utils.HasOverlap(item.Tags, interests) {
				continue
			}
		} else if len(vibe) > 0 {
			if !utils.HasOverlap(item.Tags, vibe) && !utils.HasOverlap(item.Tags, ambienceTags) {
				continue
			}
		}
		filtered = append(filtered, item)
	}

	// An empty pool must never reach ranking while the catalog still has
	// items tagged for the derived price bucket
	if len(filtered) == 0 {
		bucket := defaultBucket
		if signals.Constraints.BudgetMax != nil {
			bucket = PriceBucket(*signals.Constraints.BudgetMax)
		}
		for _, item := range pool {
			if utils.HasOverlap(item.Tags, []string{bucket}) {
				filtered = append(filtered, item)
			}
		}
	}

	orderPool(filtered, signals)

	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered
}

// orderPool sorts the filtered pool: interest matches first, then budget
// proximity, then descending rating
func orderPool(pool []model.CatalogItem, signals *model.Signals) {
	interests := signals.RecipientProfile.Interests

	sort.SliceStable(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]

		aHit := utils.HasOverlap(a.Tags, interests)
		bHit := utils.HasOverlap(b.Tags, interests)
		if aHit != bHit {
			return aHit
		}

		diffA := budgetDistance(a, signals)
		diffB := budgetDistance(b, signals)
		if diffA != diffB {
			return diffA < diffB
		}

		return ratingOf(a) > ratingOf(b)
	})
}

// budgetDistance is how far an item's price is from the budget ceiling; with
// no budget every item is at distance zero
func budgetDistance(item model.CatalogItem, signals *model.Signals) float64 {
	want := item.Price
	if signals.Constraints.BudgetMax != nil {
		want = *signals.Constraints.BudgetMax
	}
	return math.Abs(want - item.Price)
}

// ratingOf treats an absent rating as zero
func ratingOf(item model.CatalogItem) float64 {
	if item.Rating == nil {
		return 0
	}
	return *item.Rating
}
