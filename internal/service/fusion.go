package service

import (
	"feelre/internal/model"
	"feelre/internal/utils"
)

// Fuser merges prior memory, heuristic output and semantic-extractor output
// into one coherent record. Singular fields follow the precedence
// semantic > heuristic > known > default: the extractor sees the full
// conversation framing, heuristics catch patterns it misses on a given turn,
// and memory is the weakest signal because it may be stale.
type Fuser struct {
	defaultLocale   string
	defaultCurrency string
}

// NewFuser creates a fuser with the configured defaults
func NewFuser(defaultLocale, defaultCurrency string) *Fuser {
	return &Fuser{
		defaultLocale:   defaultLocale,
		defaultCurrency: defaultCurrency,
	}
}

// Fuse merges the three sources. Any of them may be nil/empty; the result is
// always a complete record with missing slots recomputed from the final
// merged values.
func (f *Fuser) Fuse(known *model.Signals, heur *HeuristicSignals, semantic *model.Signals) *model.Signals {
	out := model.NewSignals(f.defaultLocale, f.defaultCurrency)

	// Weakest source first so stronger ones overwrite
	if known != nil {
		applySignals(out, known)
	}
	if heur != nil {
		applyHeuristics(out, heur)
	}
	if semantic != nil {
		applySignals(out, semantic)
	}

	// Tag sets union across all sources and never shrink
	out.RecipientProfile.Interests = unionFrom(known, heur, semantic, interestsOf)
	out.RecipientProfile.Dislikes = unionFrom(known, nil, semantic, dislikesOf)
	out.GiftContext.Vibe = unionFrom(known, nil, semantic, vibeOf)
	out.GiftContext.Style = unionFrom(known, nil, semantic, styleOf)

	out.Confidence = fusedConfidence(known, heur, semantic)
	out.RecomputeMissingSlots()
	return out
}

// applySignals overlays every present singular field of src onto dst
func applySignals(dst, src *model.Signals) {
	if src.RecipientProfile.Relation != nil {
		dst.RecipientProfile.Relation = src.RecipientProfile.Relation
	}
	if src.RecipientProfile.AgeRange != nil {
		dst.RecipientProfile.AgeRange = src.RecipientProfile.AgeRange
	}
	if src.GiftContext.Occasion != nil {
		dst.GiftContext.Occasion = src.GiftContext.Occasion
	}
	if src.GiftContext.Date != nil {
		dst.GiftContext.Date = src.GiftContext.Date
	}
	if src.GiftContext.Sentiment != nil {
		dst.GiftContext.Sentiment = src.GiftContext.Sentiment
	}
	if src.Constraints.BudgetMin != nil {
		dst.Constraints.BudgetMin = src.Constraints.BudgetMin
	}
	if src.Constraints.BudgetMax != nil {
		dst.Constraints.BudgetMax = src.Constraints.BudgetMax
	}
	if src.Constraints.ShippingDeadline != nil {
		dst.Constraints.ShippingDeadline = src.Constraints.ShippingDeadline
	}
	if src.Constraints.Sustainability != nil {
		dst.Constraints.Sustainability = src.Constraints.Sustainability
	}
	if len(src.Constraints.BrandBlacklist) > 0 {
		dst.Constraints.BrandBlacklist = utils.UnionTags(dst.Constraints.BrandBlacklist, src.Constraints.BrandBlacklist)
	}
	if len(src.Constraints.BrandWhitelist) > 0 {
		dst.Constraints.BrandWhitelist = utils.UnionTags(dst.Constraints.BrandWhitelist, src.Constraints.BrandWhitelist)
	}
	if src.Locale != "" {
		dst.Locale = src.Locale
	}
	if src.Currency != "" {
		dst.Currency = src.Currency
	}
}

// applyHeuristics overlays the detected heuristic fields onto dst
func applyHeuristics(dst *model.Signals, h *HeuristicSignals) {
	if h.Relation != nil {
		dst.RecipientProfile.Relation = h.Relation
	}
	if h.Occasion != nil {
		dst.GiftContext.Occasion = h.Occasion
	}
	if h.BudgetMax != nil {
		dst.Constraints.BudgetMax = h.BudgetMax
	}
	if h.Currency != nil {
		dst.Currency = *h.Currency
	}
}

// unionFrom unions one tag set across the three sources
func unionFrom(known *model.Signals, heur *HeuristicSignals, semantic *model.Signals, pick func(*model.Signals) []string) []string {
	var sets [][]string
	if known != nil {
		sets = append(sets, pick(known))
	}
	if heur != nil {
		sets = append(sets, heur.Interests)
	}
	if semantic != nil {
		sets = append(sets, pick(semantic))
	}
	return utils.UnionTags(nil, sets...)
}

func interestsOf(s *model.Signals) []string { return s.RecipientProfile.Interests }
func dislikesOf(s *model.Signals) []string  { return s.RecipientProfile.Dislikes }
func vibeOf(s *model.Signals) []string      { return s.GiftContext.Vibe }
func styleOf(s *model.Signals) []string     { return s.GiftContext.Style }

// fusedConfidence takes the maximum confidence any source reports, floored
// at the schema default so corroboration can only raise it
func fusedConfidence(known *model.Signals, heur *HeuristicSignals, semantic *model.Signals) float64 {
	confidence := model.ConfidenceFloor
	if known != nil && known.Confidence > confidence {
		confidence = known.Confidence
	}
	if heur != nil && heur.Confidence() > confidence {
		confidence = heur.Confidence()
	}
	if semantic != nil && semantic.Confidence > confidence {
		confidence = semantic.Confidence
	}
	return confidence
}
