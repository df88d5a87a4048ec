package service

import "feelre/internal/model"

// DialogState is the two-state outcome of a turn
type DialogState string

const (
	NeedsClarification DialogState = "NEEDS_CLARIFICATION"
	ReadyToRecommend   DialogState = "READY_TO_RECOMMEND"
)

// Dialog-readiness policies
const (
	// PolicyStrict clarifies whenever any tracked slot is absent
	PolicyStrict = "strict"
	// PolicySoft clarifies only on low confidence or many missing slots
	PolicySoft = "soft"
)

// DecisionPolicy chooses between asking a clarification and recommending
type DecisionPolicy struct {
	policy        string
	minConfidence float64
}

// NewDecisionPolicy creates a policy; unknown names fall back to strict
func NewDecisionPolicy(policy string, minConfidence float64) *DecisionPolicy {
	if policy != PolicySoft {
		policy = PolicyStrict
	}
	if minConfidence <= 0 {
		minConfidence = 0.45
	}
	return &DecisionPolicy{policy: policy, minConfidence: minConfidence}
}

// Decide evaluates the fused record. The record's missing slots must already
// be recomputed (fusion guarantees this).
func (p *DecisionPolicy) Decide(s *model.Signals) DialogState {
	switch p.policy {
	case PolicySoft:
		if s.Confidence < p.minConfidence || len(s.MissingSlots) > 2 {
			return NeedsClarification
		}
		return ReadyToRecommend
	default:
		if len(s.MissingSlots) > 0 {
			return NeedsClarification
		}
		return ReadyToRecommend
	}
}
