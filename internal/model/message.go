package model

import "encoding/json"

// Reply type discriminators
const (
	ReplyTypeChat            = "chat"
	ReplyTypeRecommendations = "recommendations"
)

// MessageRequest is one conversational turn from the caller. Known carries
// the memory returned on the previous turn; it is an untyped payload until
// the validator coerces it.
type MessageRequest struct {
	Message string          `json:"message" binding:"required"`
	Locale  string          `json:"locale,omitempty"`
	Known   json.RawMessage `json:"known,omitempty"`
}

// ChatReply asks the user for the specific slots still missing
type ChatReply struct {
	Type             string   `json:"type"`
	Message          string   `json:"message"`
	SuggestedReplies []string `json:"suggested_replies,omitempty"`
	Memory           *Signals `json:"memory"`
}

// RecommendationContext summarizes what the items were picked against
type RecommendationContext struct {
	Recipient *string      `json:"recipient,omitempty"`
	Occasion  *string      `json:"occasion,omitempty"`
	Vibe      []string     `json:"vibe,omitempty"`
	Budget    BudgetWindow `json:"budget"`
}

// BudgetWindow mirrors the constraint budgets in the outward payload
type BudgetWindow struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// RecommendationsReply carries the ranked items plus the fused memory
type RecommendationsReply struct {
	Type          string                `json:"type"`
	Context       RecommendationContext `json:"context"`
	Items         []RankedItem          `json:"items"`
	DiversityTags []string              `json:"diversity_tags,omitempty"`
	Message       string                `json:"message,omitempty"`
	Memory        *Signals              `json:"memory"`
}
