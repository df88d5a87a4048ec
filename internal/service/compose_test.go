package service

import (
	"strings"
	"testing"

	"feelre/internal/model"
)

func TestClarificationSingleSlot(t *testing.T) {
	c := NewComposer()
	s := model.NewSignals("ru-RU", "EUR")
	s.RecipientProfile.Relation = strP("sister")
	s.GiftContext.Occasion = strP(model.OccasionBirthday)
	s.RecomputeMissingSlots()

	reply := c.Clarification(s)
	if reply.Type != model.ReplyTypeChat {
		t.Errorf("type = %q, want %q", reply.Type, model.ReplyTypeChat)
	}
	if reply.Message != "Could you tell me your budget?" {
		t.Errorf("message = %q, want the single budget question", reply.Message)
	}
	if reply.Memory != s {
		t.Error("reply must carry the fused record as memory")
	}
}

func TestClarificationAsksOnlyMissingSlots(t *testing.T) {
	c := NewComposer()
	s := model.NewSignals("ru-RU", "EUR")
	s.RecipientProfile.Relation = strP("friend")
	s.RecomputeMissingSlots()

	reply := c.Clarification(s)
	if !strings.Contains(reply.Message, "your budget") {
		t.Errorf("message = %q, want the budget asked", reply.Message)
	}
	if !strings.Contains(reply.Message, "the occasion") {
		t.Errorf("message = %q, want the occasion asked", reply.Message)
	}
	if strings.Contains(reply.Message, "who the gift is for") {
		t.Errorf("message = %q, must not ask for a slot already filled", reply.Message)
	}
	if len(reply.SuggestedReplies) != 3 {
		t.Errorf("suggested replies = %v, want 3", reply.SuggestedReplies)
	}
}

func TestClarificationAllSlotsMissing(t *testing.T) {
	c := NewComposer()
	s := model.NewSignals("ru-RU", "EUR")
	s.RecomputeMissingSlots()

	reply := c.Clarification(s)
	want := "Could you tell me who the gift is for, your budget and the occasion?"
	if reply.Message != want {
		t.Errorf("message = %q, want %q", reply.Message, want)
	}
}

func TestNarrowDown(t *testing.T) {
	c := NewComposer()
	s := model.NewSignals("ru-RU", "EUR")

	reply := c.NarrowDown(s)
	if reply.Type != model.ReplyTypeChat {
		t.Errorf("type = %q, want %q", reply.Type, model.ReplyTypeChat)
	}
	if len(reply.SuggestedReplies) == 0 {
		t.Error("narrow-down reply must offer directions")
	}
	if reply.Memory != s {
		t.Error("reply must carry the fused record as memory")
	}
}

func TestRecommendations(t *testing.T) {
	c := NewComposer()
	s := model.NewSignals("ru-RU", "EUR")
	s.RecipientProfile.Relation = strP("sister")
	s.GiftContext.Occasion = strP(model.OccasionBirthday)
	s.GiftContext.Vibe = []string{"cozy"}
	s.Constraints.BudgetMax = f64P(50)

	items := []model.RankedItem{{ProductID: "x", Title: "Thing", Price: model.Money{Value: 20, Currency: "EUR"}}}
	reply := c.Recommendations(s, items, []string{"cozy", "home"})

	if reply.Type != model.ReplyTypeRecommendations {
		t.Errorf("type = %q, want %q", reply.Type, model.ReplyTypeRecommendations)
	}
	if reply.Context.Recipient == nil || *reply.Context.Recipient != "sister" {
		t.Errorf("context recipient = %v, want sister", reply.Context.Recipient)
	}
	if reply.Context.Budget.Max == nil || *reply.Context.Budget.Max != 50 {
		t.Errorf("context budget max = %v, want 50", reply.Context.Budget.Max)
	}
	if len(reply.Items) != 1 {
		t.Errorf("items = %d, want 1", len(reply.Items))
	}

	want := "Ideas up to 50 EUR • cozy • for your sister"
	if reply.Message != want {
		t.Errorf("header = %q, want %q", reply.Message, want)
	}
}

func TestRecommendationsHeaderWithoutBudget(t *testing.T) {
	c := NewComposer()
	s := model.NewSignals("ru-RU", "EUR")

	reply := c.Recommendations(s, nil, nil)
	want := "Ideas • for your recipient"
	if reply.Message != want {
		t.Errorf("header = %q, want %q", reply.Message, want)
	}
}
