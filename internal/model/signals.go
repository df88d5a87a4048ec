package model

// Tracked slot names. These are the only slots the dialog decision looks at,
// always evaluated in this order.
const (
	SlotRelation  = "recipient_profile.relation"
	SlotBudgetMax = "constraints.budget_max"
	SlotOccasion  = "gift_context.occasion"
)

// Occasion categories produced by extraction
const (
	OccasionBirthday = "birthday"
	OccasionNewYear  = "new_year"
)

// Confidence defaults
const (
	ConfidenceDefault  = 0.7 // fresh, well-formed record
	ConfidenceFallback = 0.4 // validator safe-default record
	ConfidenceFloor    = 0.5 // fusion never reports below this
	ConfidenceBoost    = 0.6 // minimum after a heuristic slot hit
)

// RecipientProfile describes who the gift is for
type RecipientProfile struct {
	Relation  *string  `json:"relation,omitempty"`
	AgeRange  *string  `json:"age_range,omitempty"`
	Interests []string `json:"interests"`
	Dislikes  []string `json:"dislikes"`
}

// GiftContext describes the occasion and mood of the gift
type GiftContext struct {
	Occasion  *string  `json:"occasion,omitempty"`
	Date      *string  `json:"date,omitempty"`
	Vibe      []string `json:"vibe"`
	Style     []string `json:"style"`
	Sentiment *string  `json:"sentiment,omitempty"`
}

// Constraints holds hard limits on the recommendation
type Constraints struct {
	BudgetMin        *float64 `json:"budget_min,omitempty"`
	BudgetMax        *float64 `json:"budget_max,omitempty"`
	ShippingDeadline *string  `json:"shipping_deadline,omitempty"`
	Sustainability   *bool    `json:"sustainability,omitempty"`
	BrandBlacklist   []string `json:"brand_blacklist,omitempty"`
	BrandWhitelist   []string `json:"brand_whitelist,omitempty"`
}

// Signals is the canonical fused intent record. It is re-derived every turn
// and handed back to the caller as memory; the core never stores it.
type Signals struct {
	RecipientProfile RecipientProfile `json:"recipient_profile"`
	GiftContext      GiftContext      `json:"gift_context"`
	Constraints      Constraints      `json:"constraints"`
	Locale           string           `json:"locale"`
	Currency         string           `json:"currency"`
	Confidence       float64          `json:"confidence"`
	MissingSlots     []string         `json:"missing_slots"`
}

// NewSignals returns a fresh record with every optional field at its default.
func NewSignals(locale, currency string) *Signals {
	return &Signals{
		RecipientProfile: RecipientProfile{Interests: []string{}, Dislikes: []string{}},
		GiftContext:      GiftContext{Vibe: []string{}, Style: []string{}},
		Constraints:      Constraints{},
		Locale:           locale,
		Currency:         currency,
		Confidence:       ConfidenceDefault,
		MissingSlots:     []string{},
	}
}

// RecomputeMissingSlots rewrites MissingSlots from the current field values.
// Exactly three conditions are checked, in fixed order.
func (s *Signals) RecomputeMissingSlots() {
	missing := []string{}
	if s.RecipientProfile.Relation == nil {
		missing = append(missing, SlotRelation)
	}
	if s.Constraints.BudgetMax == nil {
		missing = append(missing, SlotBudgetMax)
	}
	if s.GiftContext.Occasion == nil {
		missing = append(missing, SlotOccasion)
	}
	s.MissingSlots = missing
}

// HasSlot reports whether the named tracked slot is filled.
func (s *Signals) HasSlot(slot string) bool {
	switch slot {
	case SlotRelation:
		return s.RecipientProfile.Relation != nil
	case SlotBudgetMax:
		return s.Constraints.BudgetMax != nil
	case SlotOccasion:
		return s.GiftContext.Occasion != nil
	}
	return false
}
