package service

import (
	"regexp"
	"strconv"
	"strings"

	"feelre/internal/model"
	"feelre/internal/utils"
)

// HeuristicSignals is the partial intent a rule pass derives straight from
// the text. Undetected fields stay nil/empty so fusion can tell "said
// nothing" apart from "said empty".
type HeuristicSignals struct {
	Relation  *string
	Occasion  *string
	BudgetMax *float64
	Currency  *string
	Interests []string
}

// Confidence a heuristic source reports: a tracked-slot hit is worth 0.6,
// anything less contributes nothing to fusion.
func (h *HeuristicSignals) Confidence() float64 {
	if h == nil {
		return 0
	}
	if h.Relation != nil || h.Occasion != nil || h.BudgetMax != nil {
		return model.ConfidenceBoost
	}
	return 0
}

// relationRule maps a partial token to a relation category. Rules are
// evaluated in order and the first hit wins, so longer or more specific
// tokens must come before their substrings (girlfriend before friend).
type relationRule struct {
	token    string
	category string
}

var relationRules = []relationRule{
	{"сест", "sister"},
	{"мам", "mother"},
	{"пап", "father"},
	{"девуш", "girlfriend"},
	{"парн", "boyfriend"},
	{"жена", "wife"},
	{"жене", "wife"},
	{"муж", "husband"},
	{"коллег", "colleague"},
	{"подруг", "friend"},
	{"друг", "friend"},
	{"брат", "brother"},
	{"sister", "sister"},
	{"mother", "mother"},
	{"mom", "mother"},
	{"father", "father"},
	{"dad", "father"},
	{"girlfriend", "girlfriend"},
	{"boyfriend", "boyfriend"},
	{"wife", "wife"},
	{"husband", "husband"},
	{"colleague", "colleague"},
	{"coworker", "colleague"},
	{"friend", "friend"},
	{"brother", "brother"},
}

// interestRule maps a keyword to a catalog tag. Unlike relations, every
// matching rule fires.
type interestRule struct {
	token string
	tag   string
}

var interestRules = []interestRule{
	{"игр", "gaming"},
	{"gaming", "gaming"},
	{"геймер", "gaming"},
	{"рису", "drawing"},
	{"drawing", "drawing"},
	{"sketch", "drawing"},
	{"готовк", "cooking"},
	{"готовит", "cooking"},
	{"cooking", "cooking"},
	{"кофе", "coffee"},
	{"coffee", "coffee"},
	{"йог", "yoga"},
	{"yoga", "yoga"},
	{"плава", "swimming"},
	{"swim", "swimming"},
	{"путешеств", "travel"},
	{"travel", "travel"},
	{"чтен", "reading"},
	{"книг", "reading"},
	{"reading", "reading"},
	{"эко", "eco"},
	{"eco", "eco"},
	{"минимал", "minimal"},
	{"minimal", "minimal"},
	{"уют", "cozy"},
	{"cozy", "cozy"},
}

var (
	// Word boundaries are spelled out because the short form "др" is
	// Cyrillic and \b only understands ASCII word characters.
	birthdayPattern = regexp.MustCompile(`(?i)д(?:е)?нь[\s-]?рожд|(?:^|[^\p{L}])др(?:[^\p{L}]|$)|birthday`)
	newYearPattern  = regexp.MustCompile(`(?i)новый\s*год|новогод|new\s*year|silvester`)

	// Amount plus currency symbol/word; only the first match is used.
	budgetPattern = regexp.MustCompile(`(?i)(\d{1,5})(?:[.,](\d{1,2}))?\s*(€|eur|евро|\$|usd|доллар)`)
)

// ExtractHeuristics derives signals from raw text with deterministic rules.
// Pure function, no I/O.
func ExtractHeuristics(text string) *HeuristicSignals {
	out := &HeuristicSignals{}
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return out
	}

	for _, rule := range relationRules {
		if strings.Contains(lower, rule.token) {
			category := rule.category
			out.Relation = &category
			break
		}
	}

	// Birthday is checked first and wins if both patterns fire
	if birthdayPattern.MatchString(lower) {
		occasion := model.OccasionBirthday
		out.Occasion = &occasion
	} else if newYearPattern.MatchString(lower) {
		occasion := model.OccasionNewYear
		out.Occasion = &occasion
	}

	if m := budgetPattern.FindStringSubmatch(lower); m != nil {
		whole, err := strconv.Atoi(m[1])
		if err == nil {
			amount := float64(whole)
			if m[2] != "" {
				if frac, err := strconv.Atoi(m[2]); err == nil {
					div := 10.0
					if len(m[2]) == 2 {
						div = 100.0
					}
					amount += float64(frac) / div
				}
			}
			out.BudgetMax = &amount
			if cur := currencyCode(m[3]); cur != "" {
				out.Currency = &cur
			}
		}
	}

	var interests []string
	for _, rule := range interestRules {
		if strings.Contains(lower, rule.token) {
			interests = append(interests, rule.tag)
		}
	}
	out.Interests = utils.NormalizeTags(interests)

	return out
}

// currencyCode maps a matched symbol or word to its 3-letter code
func currencyCode(raw string) string {
	switch strings.ToLower(raw) {
	case "€", "eur", "евро":
		return "EUR"
	case "$", "usd", "доллар":
		return "USD"
	}
	return ""
}
