package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"feelre/internal/catalog"
	"feelre/internal/config"
	"feelre/internal/model"
)

func testAgentConfig() config.AgentConfig {
	return config.AgentConfig{
		DefaultLocale:   "ru-RU",
		DefaultCurrency: "EUR",
		PoolLimit:       40,
		ResultCount:     8,
		CategoryCap:     3,
		DialogPolicy:    PolicyStrict,
		MinConfidence:   0.45,
	}
}

func newTestAgent(extractor SignalExtractor) *AgentService {
	return NewAgentService(testAgentConfig(), extractor, catalog.NewMemoryProvider(nil), nil)
}

// stubExtractor fakes the semantic extractor for turn tests
type stubExtractor struct {
	raw map[string]interface{}
	err error
}

func (s *stubExtractor) IsEnabled() bool { return true }

func (s *stubExtractor) ExtractSignals(ctx context.Context, text, locale string) (map[string]interface{}, error) {
	return s.raw, s.err
}

// failingProvider fakes a catalog outage
type failingProvider struct{}

func (p *failingProvider) Name() string { return "failing" }

func (p *failingProvider) Search(ctx context.Context, signals *model.Signals, opts catalog.SearchOptions) ([]model.CatalogItem, error) {
	return nil, errors.New("catalog unavailable")
}

func TestRespondFullIntentRecommends(t *testing.T) {
	agent := newTestAgent(nil)

	reply, err := agent.Respond(context.Background(), &model.MessageRequest{
		Message: "подарок сестре на ДР до 50 €",
	})
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}

	rec, ok := reply.(*model.RecommendationsReply)
	if !ok {
		t.Fatalf("Respond() = %T, want recommendations", reply)
	}
	if rec.Context.Recipient == nil || *rec.Context.Recipient != "sister" {
		t.Errorf("recipient = %v, want sister", rec.Context.Recipient)
	}
	if rec.Context.Occasion == nil || *rec.Context.Occasion != model.OccasionBirthday {
		t.Errorf("occasion = %v, want birthday", rec.Context.Occasion)
	}
	if rec.Context.Budget.Max == nil || *rec.Context.Budget.Max != 50 {
		t.Errorf("budget max = %v, want 50", rec.Context.Budget.Max)
	}
	if len(rec.Items) == 0 {
		t.Fatal("no items recommended")
	}
	for _, item := range rec.Items {
		if item.Price.Value > 50 {
			t.Errorf("item %s price %v exceeds the budget", item.ProductID, item.Price.Value)
		}
	}
	if rec.Memory == nil || len(rec.Memory.MissingSlots) != 0 {
		t.Errorf("memory = %+v, want a complete record", rec.Memory)
	}
}

func TestRespondVagueMessageAsksForMissingSlots(t *testing.T) {
	agent := newTestAgent(nil)

	reply, err := agent.Respond(context.Background(), &model.MessageRequest{
		Message: "something for a friend",
	})
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}

	chat, ok := reply.(*model.ChatReply)
	if !ok {
		t.Fatalf("Respond() = %T, want a clarification", reply)
	}
	if !strings.Contains(chat.Message, "your budget") || !strings.Contains(chat.Message, "the occasion") {
		t.Errorf("message = %q, want budget and occasion asked", chat.Message)
	}
	if strings.Contains(chat.Message, "who the gift is for") {
		t.Errorf("message = %q, must not re-ask the detected relation", chat.Message)
	}
	if chat.Memory == nil || chat.Memory.RecipientProfile.Relation == nil {
		t.Fatal("memory must keep the detected relation")
	}
}

func TestRespondSurvivesExtractorFailure(t *testing.T) {
	agent := newTestAgent(&stubExtractor{err: errors.New("upstream timeout")})

	reply, err := agent.Respond(context.Background(), &model.MessageRequest{
		Message: "подарок сестре на др до 50 €",
	})
	if err != nil {
		t.Fatalf("Respond() error = %v, want graceful degradation", err)
	}
	if _, ok := reply.(*model.RecommendationsReply); !ok {
		t.Fatalf("Respond() = %T, want heuristics to carry the turn", reply)
	}
}

func TestRespondUsesSemanticSignals(t *testing.T) {
	agent := newTestAgent(&stubExtractor{raw: map[string]interface{}{
		"recipient_profile": map[string]interface{}{
			"relation":  "colleague",
			"interests": []interface{}{"coffee"},
		},
		"gift_context": map[string]interface{}{"occasion": "birthday"},
		"constraints":  map[string]interface{}{"budget_max": 30.0},
		"confidence":   0.9,
	}})

	reply, err := agent.Respond(context.Background(), &model.MessageRequest{
		Message: "need a small office gift",
	})
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}

	rec, ok := reply.(*model.RecommendationsReply)
	if !ok {
		t.Fatalf("Respond() = %T, want recommendations", reply)
	}
	if rec.Context.Recipient == nil || *rec.Context.Recipient != "colleague" {
		t.Errorf("recipient = %v, want colleague from the extractor", rec.Context.Recipient)
	}
	if rec.Memory.Confidence != 0.9 {
		t.Errorf("confidence = %v, want the extractor's 0.9", rec.Memory.Confidence)
	}
	for _, item := range rec.Items {
		if item.Price.Value > 30 {
			t.Errorf("item %s price %v exceeds the budget", item.ProductID, item.Price.Value)
		}
	}
}

func TestRespondCarriesMemoryAcrossTurns(t *testing.T) {
	agent := newTestAgent(nil)

	known := []byte(`{
		"recipient_profile": {"relation": "sister", "interests": ["gaming"], "dislikes": []},
		"gift_context": {"occasion": "birthday", "vibe": [], "style": []},
		"constraints": {"budget_max": 30},
		"locale": "ru-RU", "currency": "EUR",
		"confidence": 0.8, "missing_slots": []
	}`)

	reply, err := agent.Respond(context.Background(), &model.MessageRequest{
		Message: "покажи ещё варианты",
		Known:   known,
	})
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}

	rec, ok := reply.(*model.RecommendationsReply)
	if !ok {
		t.Fatalf("Respond() = %T, want recommendations from memory alone", reply)
	}
	for _, item := range rec.Items {
		if item.Price.Value > 30 {
			t.Errorf("item %s price %v exceeds the remembered budget", item.ProductID, item.Price.Value)
		}
	}
}

func TestRespondRequestLocaleApplies(t *testing.T) {
	agent := newTestAgent(nil)

	reply, err := agent.Respond(context.Background(), &model.MessageRequest{
		Message: "a gift for my sister for her birthday, up to 30 €",
		Locale:  "de-DE",
	})
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}

	rec, ok := reply.(*model.RecommendationsReply)
	if !ok {
		t.Fatalf("Respond() = %T, want recommendations", reply)
	}
	if rec.Memory.Locale != "de-DE" {
		t.Errorf("memory locale = %q, want the request locale", rec.Memory.Locale)
	}
}

func TestRespondCatalogErrorSurfaces(t *testing.T) {
	agent := NewAgentService(testAgentConfig(), nil, &failingProvider{}, nil)

	_, err := agent.Respond(context.Background(), &model.MessageRequest{
		Message: "подарок сестре на др до 50 €",
	})
	if err == nil {
		t.Fatal("Respond() error = nil, want the catalog failure surfaced")
	}
}

func TestRespondDiversityCap(t *testing.T) {
	pool := make([]model.CatalogItem, 0, 10)
	for i := 0; i < 6; i++ {
		pool = append(pool, model.CatalogItem{
			ID: string(rune('a'+i)) + "_game", Title: "Game item", Price: 20, Currency: "EUR",
			Tags: model.JSONArray{"gaming", "budget_0_30"},
		})
	}
	pool = append(pool,
		model.CatalogItem{ID: "candle", Title: "Candle", Price: 14, Currency: "EUR",
			Tags: model.JSONArray{"home", "cozy", "budget_0_30"}},
		model.CatalogItem{ID: "beans", Title: "Beans", Price: 16, Currency: "EUR",
			Tags: model.JSONArray{"coffee", "budget_0_30"}},
	)
	agent := NewAgentService(testAgentConfig(), nil, catalog.NewMemoryProvider(pool), nil)

	reply, err := agent.Respond(context.Background(), &model.MessageRequest{
		Message: "подарок сестре на др до 30 €",
	})
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}

	rec, ok := reply.(*model.RecommendationsReply)
	if !ok {
		t.Fatalf("Respond() = %T, want recommendations", reply)
	}

	gaming := 0
	for _, item := range rec.Items {
		if strings.HasSuffix(item.ProductID, "_game") {
			gaming++
		}
	}
	if gaming > 3 {
		t.Errorf("accepted %d gaming items, want at most the category cap of 3", gaming)
	}
	if len(rec.Items) != 5 {
		t.Errorf("returned %d items, want 3 capped gaming plus the 2 other categories", len(rec.Items))
	}
}
