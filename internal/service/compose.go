package service

import (
	"fmt"
	"strings"

	"feelre/internal/model"
)

// Composer builds the two outward payload shapes. Both always carry the
// fused memory so the caller can pass it back as known on the next turn.
type Composer struct{}

// NewComposer creates a composer
func NewComposer() *Composer {
	return &Composer{}
}

// slotPrompt is the human name of a tracked slot used in questions
func slotPrompt(slot string) string {
	switch slot {
	case model.SlotRelation:
		return "who the gift is for"
	case model.SlotBudgetMax:
		return "your budget"
	case model.SlotOccasion:
		return "the occasion"
	}
	return slot
}

// Clarification asks only for the slots still missing, as one combined
// question when more than one is missing
func (c *Composer) Clarification(signals *model.Signals) *model.ChatReply {
	prompts := make([]string, 0, len(signals.MissingSlots))
	for _, slot := range signals.MissingSlots {
		prompts = append(prompts, slotPrompt(slot))
	}

	var message string
	switch len(prompts) {
	case 0:
		message = "Tell me a bit more about the gift you have in mind."
	case 1:
		message = fmt.Sprintf("Could you tell me %s?", prompts[0])
	default:
		message = fmt.Sprintf("Could you tell me %s and %s?",
			strings.Join(prompts[:len(prompts)-1], ", "), prompts[len(prompts)-1])
	}

	return &model.ChatReply{
		Type:             model.ReplyTypeChat,
		Message:          message,
		SuggestedReplies: c.suggestReplies(signals),
		Memory:           signals,
	}
}

// NarrowDown is the reply when the catalog produced nothing even after all
// fallbacks: ask the user to pick a broad direction instead of failing
func (c *Composer) NarrowDown(signals *model.Signals) *model.ChatReply {
	return &model.ChatReply{
		Type:             model.ReplyTypeChat,
		Message:          "I don't see matching ideas yet. Pick a direction: something for the home, for a hobby, or a gift card?",
		SuggestedReplies: []string{"For the home", "For a hobby", "A gift card up to 50 €"},
		Memory:           signals,
	}
}

// Recommendations builds the items payload with its derived context
func (c *Composer) Recommendations(signals *model.Signals, items []model.RankedItem, diversityTags []string) *model.RecommendationsReply {
	return &model.RecommendationsReply{
		Type: model.ReplyTypeRecommendations,
		Context: model.RecommendationContext{
			Recipient: signals.RecipientProfile.Relation,
			Occasion:  signals.GiftContext.Occasion,
			Vibe:      signals.GiftContext.Vibe,
			Budget: model.BudgetWindow{
				Min: signals.Constraints.BudgetMin,
				Max: signals.Constraints.BudgetMax,
			},
		},
		Items:         items,
		DiversityTags: diversityTags,
		Message:       c.header(signals),
		Memory:        signals,
	}
}

// header is the short line above the recommendations
func (c *Composer) header(signals *model.Signals) string {
	parts := []string{"Ideas"}
	if signals.Constraints.BudgetMax != nil {
		parts[0] = fmt.Sprintf("Ideas up to %s %s",
			formatAmount(*signals.Constraints.BudgetMax), signals.Currency)
	}
	if len(signals.GiftContext.Vibe) > 0 {
		parts = append(parts, signals.GiftContext.Vibe[0])
	}
	who := "your recipient"
	if signals.RecipientProfile.Relation != nil {
		who = "your " + *signals.RecipientProfile.Relation
	}
	parts = append(parts, "for "+who)
	return strings.Join(parts, " • ")
}

// suggestReplies offers up to three short example answers; a generic vibe
// stands in when none is known yet
func (c *Composer) suggestReplies(signals *model.Signals) []string {
	vibe := "cozy"
	if len(signals.GiftContext.Vibe) > 0 {
		vibe = signals.GiftContext.Vibe[0]
	}
	return []string{
		"For the home, " + vibe,
		"For a hobby, " + vibe,
		"A gift card up to 50 €",
	}
}
