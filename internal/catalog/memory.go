package catalog

import (
	"context"

	"feelre/internal/model"
)

// MemoryProvider serves a fixed in-memory catalog. It is the default
// provider for development and tests.
type MemoryProvider struct {
	items []model.CatalogItem
}

// NewMemoryProvider creates a provider over the given items; with none it
// serves the seeded sample catalog
func NewMemoryProvider(items []model.CatalogItem) *MemoryProvider {
	if items == nil {
		items = SampleItems()
	}
	return &MemoryProvider{items: items}
}

// Name identifies the provider in logs
func (p *MemoryProvider) Name() string { return "memory" }

// Search returns a copy of the snapshot capped at the requested limit. The
// intent-aware filtering happens in the core matching stage.
func (p *MemoryProvider) Search(ctx context.Context, signals *model.Signals, opts SearchOptions) ([]model.CatalogItem, error) {
	limit := opts.Limit
	if limit <= 0 || limit > len(p.items) {
		limit = len(p.items)
	}
	out := make([]model.CatalogItem, limit)
	copy(out, p.items[:limit])
	return out, nil
}

// GetItem looks up one item by ID
func (p *MemoryProvider) GetItem(ctx context.Context, itemID string) (*model.CatalogItem, error) {
	for _, item := range p.items {
		if item.ID == itemID {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

func strPtr(s string) *string   { return &s }
func f64Ptr(v float64) *float64 { return &v }

// SampleItems is the seeded development catalog
func SampleItems() []model.CatalogItem {
	return []model.CatalogItem{
		{
			ID: "sku_game_mouse", Title: "Gaming mouse, RGB",
			Image: strPtr("/mock/game-mouse.jpg"), Price: 28, Currency: "EUR",
			Tags: model.JSONArray{"gaming", "hobby", "electronics", "budget_0_30"}, Rating: f64Ptr(4.6),
		},
		{
			ID: "sku_game_pad", Title: "Wireless controller",
			Image: strPtr("/mock/game-pad.jpg"), Price: 45, Currency: "EUR",
			Tags: model.JSONArray{"gaming", "hobby", "budget_31_50"}, Rating: f64Ptr(4.4),
		},
		{
			ID: "sku_game_headset", Title: "Lightweight gaming headset",
			Image: strPtr("/mock/game-headset.jpg"), Price: 39, Currency: "EUR",
			Tags: model.JSONArray{"gaming", "electronics", "budget_31_50"}, Rating: f64Ptr(4.2),
		},
		{
			ID: "sku_game_deskmat", Title: "XL desk mat, pixel print",
			Price: 19, Currency: "EUR",
			Tags: model.JSONArray{"gaming", "home", "budget_0_30"},
		},
		{
			ID: "sku_sketchbook", Title: "A5 sketchbook, heavy paper",
			Image: strPtr("/mock/sketchbook.jpg"), Price: 12, Currency: "EUR",
			Tags: model.JSONArray{"drawing", "hobby", "cozy", "budget_0_30"}, Rating: f64Ptr(4.8),
		},
		{
			ID: "sku_brush_pens", Title: "Brush pen set, 12 colors",
			Price: 24, Currency: "EUR",
			Tags: model.JSONArray{"drawing", "hobby", "budget_0_30"}, Rating: f64Ptr(4.5),
		},
		{
			ID: "sku_candle_home", Title: "Vanilla scented candle",
			Image: strPtr("/mock/candle.jpg"), Price: 14, Currency: "EUR",
			Tags: model.JSONArray{"home", "cozy", "budget_0_30"}, Rating: f64Ptr(4.3),
		},
		{
			ID: "sku_throw_blanket", Title: "Knit throw blanket",
			Price: 42, Currency: "EUR",
			Tags: model.JSONArray{"home", "cozy", "budget_31_50"}, Rating: f64Ptr(4.7),
		},
		{
			ID: "sku_pour_over", Title: "Pour-over coffee set",
			Price: 36, Currency: "EUR",
			Tags: model.JSONArray{"coffee", "home", "budget_31_50"}, Rating: f64Ptr(4.6),
		},
		{
			ID: "sku_coffee_beans", Title: "Single-origin beans, 500 g",
			Price: 16, Currency: "EUR",
			Tags: model.JSONArray{"coffee", "eco", "budget_0_30"}, Rating: f64Ptr(4.4),
		},
		{
			ID: "sku_recipe_book", Title: "Weeknight recipes cookbook",
			Price: 22, Currency: "EUR",
			Tags: model.JSONArray{"cooking", "reading", "budget_0_30"}, Rating: f64Ptr(4.1),
		},
		{
			ID: "sku_apron_linen", Title: "Linen kitchen apron",
			Price: 33, Currency: "EUR",
			Tags: model.JSONArray{"cooking", "eco", "budget_31_50"},
		},
		{
			ID: "sku_yoga_mat", Title: "Cork yoga mat",
			Price: 48, Currency: "EUR",
			Tags: model.JSONArray{"yoga", "eco", "budget_31_50"}, Rating: f64Ptr(4.5),
		},
		{
			ID: "sku_travel_organizer", Title: "Packing cube set",
			Price: 29, Currency: "EUR",
			Tags: model.JSONArray{"travel", "minimal", "budget_0_30"}, Rating: f64Ptr(4.2),
		},
		{
			ID: "sku_reading_light", Title: "Clip-on reading light",
			Price: 18, Currency: "EUR",
			Tags: model.JSONArray{"reading", "cozy", "budget_0_30"}, Rating: f64Ptr(4.0),
		},
		{
			ID: "sku_plant_kit", Title: "Windowsill herb garden kit",
			Price: 54, Currency: "EUR",
			Tags: model.JSONArray{"home", "eco", "budget_51_100"}, Rating: f64Ptr(4.3),
		},
	}
}
