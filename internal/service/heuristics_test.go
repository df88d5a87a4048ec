package service

import (
	"reflect"
	"testing"

	"feelre/internal/model"
)

func TestExtractHeuristicsRelation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"russian sister", "подарок сестре на день рождения", "sister"},
		{"russian mother", "что подарить маме", "mother"},
		{"russian girlfriend", "сюрприз для девушки", "girlfriend"},
		{"russian close friend", "подарок подруге", "friend"},
		{"russian friend", "что-нибудь другу", "friend"},
		{"english sister", "a gift for my sister", "sister"},
		{"english girlfriend wins over friend", "for my girlfriend", "girlfriend"},
		{"english colleague", "my coworker is leaving", "colleague"},
		{"mixed case", "Gift for my BROTHER", "brother"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractHeuristics(tt.text)
			if got.Relation == nil {
				t.Fatalf("ExtractHeuristics(%q).Relation = nil, want %q", tt.text, tt.want)
			}
			if *got.Relation != tt.want {
				t.Errorf("ExtractHeuristics(%q).Relation = %q, want %q", tt.text, *got.Relation, tt.want)
			}
		})
	}

	if got := ExtractHeuristics("хочу что-то красивое"); got.Relation != nil {
		t.Errorf("Relation = %q, want nil for text without one", *got.Relation)
	}
}

func TestExtractHeuristicsOccasion(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *string
	}{
		{"full russian birthday", "на день рождения", strP(model.OccasionBirthday)},
		{"short russian birthday", "подарок на др до 50 €", strP(model.OccasionBirthday)},
		{"uppercase short form", "что взять на ДР?", strP(model.OccasionBirthday)},
		{"english birthday", "birthday gift ideas", strP(model.OccasionBirthday)},
		{"russian new year", "подарок на новый год", strP(model.OccasionNewYear)},
		{"russian new year adjective", "новогодний сюрприз", strP(model.OccasionNewYear)},
		{"english new year", "new year present", strP(model.OccasionNewYear)},
		{"birthday wins over new year", "др или новый год", strP(model.OccasionBirthday)},
		{"short form inside a word", "подарок другу", nil},
		{"no occasion", "что-нибудь уютное", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractHeuristics(tt.text)
			if tt.want == nil {
				if got.Occasion != nil {
					t.Errorf("Occasion = %q, want nil", *got.Occasion)
				}
				return
			}
			if got.Occasion == nil {
				t.Fatalf("Occasion = nil, want %q", *tt.want)
			}
			if *got.Occasion != *tt.want {
				t.Errorf("Occasion = %q, want %q", *got.Occasion, *tt.want)
			}
		})
	}
}

func TestExtractHeuristicsBudget(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantAmount   float64
		wantCurrency string
	}{
		{"euro symbol", "до 50 €", 50, "EUR"},
		{"eur word", "around 30 eur", 30, "EUR"},
		{"russian euro", "не дороже 100 евро", 100, "EUR"},
		{"dollar symbol", "up to 25 $", 25, "USD"},
		{"usd word", "maybe 40 usd", 40, "USD"},
		{"decimal comma", "49,99 евро", 49.99, "EUR"},
		{"decimal point", "19.5 eur", 19.5, "EUR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractHeuristics(tt.text)
			if got.BudgetMax == nil {
				t.Fatalf("BudgetMax = nil, want %v", tt.wantAmount)
			}
			if *got.BudgetMax != tt.wantAmount {
				t.Errorf("BudgetMax = %v, want %v", *got.BudgetMax, tt.wantAmount)
			}
			if got.Currency == nil {
				t.Fatalf("Currency = nil, want %q", tt.wantCurrency)
			}
			if *got.Currency != tt.wantCurrency {
				t.Errorf("Currency = %q, want %q", *got.Currency, tt.wantCurrency)
			}
		})
	}

	// A bare number without a currency marker is not a budget
	if got := ExtractHeuristics("she is 25"); got.BudgetMax != nil {
		t.Errorf("BudgetMax = %v, want nil for number without currency", *got.BudgetMax)
	}
}

func TestExtractHeuristicsInterests(t *testing.T) {
	got := ExtractHeuristics("она играет в игры и любит кофе")
	want := []string{"gaming", "coffee"}
	if !reflect.DeepEqual(got.Interests, want) {
		t.Errorf("Interests = %v, want %v", got.Interests, want)
	}

	got = ExtractHeuristics("he's into gaming and travel")
	want = []string{"gaming", "travel"}
	if !reflect.DeepEqual(got.Interests, want) {
		t.Errorf("Interests = %v, want %v", got.Interests, want)
	}
}

func TestHeuristicConfidence(t *testing.T) {
	if got := ExtractHeuristics("подарок сестре").Confidence(); got != model.ConfidenceBoost {
		t.Errorf("Confidence() = %v, want %v after a relation hit", got, model.ConfidenceBoost)
	}
	if got := ExtractHeuristics("что-то уютное").Confidence(); got != 0 {
		t.Errorf("Confidence() = %v, want 0 when no tracked slot hit", got)
	}
	if got := ExtractHeuristics("").Confidence(); got != 0 {
		t.Errorf("Confidence() = %v, want 0 for empty text", got)
	}

	var none *HeuristicSignals
	if got := none.Confidence(); got != 0 {
		t.Errorf("Confidence() = %v, want 0 on nil receiver", got)
	}
}

func strP(s string) *string { return &s }

func f64P(v float64) *float64 { return &v }
