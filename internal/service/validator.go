package service

import (
	"encoding/json"
	"log"

	"feelre/internal/model"
	"feelre/internal/utils"
)

// Validator coerces untyped partial-intent payloads (semantic extractor
// output, client-carried memory) into valid Signals records. It never fails:
// anything it cannot repair degrades to the safe-default record.
type Validator struct {
	defaultLocale   string
	defaultCurrency string
}

// NewValidator creates a validator with the configured locale/currency defaults
func NewValidator(defaultLocale, defaultCurrency string) *Validator {
	return &Validator{
		defaultLocale:   defaultLocale,
		defaultCurrency: defaultCurrency,
	}
}

// SafeDefault is the deterministic record returned when coercion fails:
// empty profile and context, configured defaults, low confidence, and the
// two highest-priority slots marked missing.
func (v *Validator) SafeDefault(locale string) *model.Signals {
	if locale == "" {
		locale = v.defaultLocale
	}
	s := model.NewSignals(locale, v.defaultCurrency)
	s.Confidence = model.ConfidenceFallback
	s.MissingSlots = []string{model.SlotRelation, model.SlotBudgetMax}
	return s
}

// Coerce turns an arbitrary untyped object into a valid Signals record.
// The locale hint (request locale) is injected when the payload carries none.
func (v *Validator) Coerce(raw map[string]interface{}, locale string) *model.Signals {
	if raw == nil {
		return v.SafeDefault(locale)
	}

	// Inject defaults for absent keys before validating, so a payload that
	// simply omits them is not penalized.
	if _, ok := raw["locale"]; !ok {
		if locale != "" {
			raw["locale"] = locale
		} else {
			raw["locale"] = v.defaultLocale
		}
	}
	if _, ok := raw["currency"]; !ok {
		raw["currency"] = v.defaultCurrency
	}
	confidenceAbsent := false
	if _, ok := raw["confidence"]; !ok {
		confidenceAbsent = true
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return v.SafeDefault(locale)
	}

	var s model.Signals
	if err := json.Unmarshal(data, &s); err != nil {
		log.Printf("Warning: signals payload failed coercion: %v", err)
		return v.SafeDefault(locale)
	}

	if confidenceAbsent {
		s.Confidence = model.ConfidenceDefault
	}

	if !v.valid(&s) {
		return v.SafeDefault(locale)
	}

	v.fillDefaults(&s, locale)
	return &s
}

// CoerceJSON coerces a raw JSON payload. A nil or empty payload means the
// caller supplied nothing and yields nil, not a safe default.
func (v *Validator) CoerceJSON(data []byte, locale string) *model.Signals {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	raw, err := utils.ParseModelJSONObject(string(data))
	if err != nil {
		log.Printf("Warning: known-signals payload is not an object: %v", err)
		return v.SafeDefault(locale)
	}
	return v.Coerce(raw, locale)
}

// valid applies the business rules a coerced record must satisfy
func (v *Validator) valid(s *model.Signals) bool {
	if s.Confidence < 0 || s.Confidence > 1 {
		return false
	}
	c := s.Constraints
	if c.BudgetMin != nil && *c.BudgetMin < 0 {
		return false
	}
	if c.BudgetMax != nil && *c.BudgetMax < 0 {
		return false
	}
	if c.BudgetMin != nil && c.BudgetMax != nil && *c.BudgetMin > *c.BudgetMax {
		return false
	}
	return true
}

// fillDefaults gives every optional field its explicit default
func (v *Validator) fillDefaults(s *model.Signals, locale string) {
	if s.Locale == "" {
		if locale != "" {
			s.Locale = locale
		} else {
			s.Locale = v.defaultLocale
		}
	}
	if s.Currency == "" {
		s.Currency = v.defaultCurrency
	}
	s.RecipientProfile.Interests = utils.NormalizeTags(s.RecipientProfile.Interests)
	s.RecipientProfile.Dislikes = utils.NormalizeTags(s.RecipientProfile.Dislikes)
	s.GiftContext.Vibe = utils.NormalizeTags(s.GiftContext.Vibe)
	s.GiftContext.Style = utils.NormalizeTags(s.GiftContext.Style)
	if s.MissingSlots == nil {
		s.MissingSlots = []string{}
	}
}
