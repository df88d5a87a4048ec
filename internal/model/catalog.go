package model

import (
	"database/sql/driver"
	"encoding/json"
)

// Money is a price with its 3-letter currency code
type Money struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

// CatalogItem is an externally supplied product. The core treats it as a
// read-only snapshot and never mutates it.
type CatalogItem struct {
	ID           string    `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Image        *string   `json:"image,omitempty" db:"image"`
	Price        float64   `json:"price" db:"price"`
	Currency     string    `json:"currency" db:"currency"`
	Tags         JSONArray `json:"tags" db:"tags"`
	Shop         *string   `json:"shop,omitempty" db:"shop"`
	Rating       *float64  `json:"rating,omitempty" db:"rating"`
	ReviewsCount *int      `json:"reviews_count,omitempty" db:"reviews_count"`
	DeepLink     *string   `json:"deep_link,omitempty" db:"deep_link"`
}

// RankedItem is a catalog item accepted by the ranking stage, with the
// derived presentation fields. Created per request, never persisted.
type RankedItem struct {
	ProductID  string   `json:"product_id"`
	Title      string   `json:"title"`
	Price      Money    `json:"price"`
	Image      *string  `json:"image,omitempty"`
	Badges     []string `json:"badges,omitempty"`
	Why        string   `json:"why,omitempty"`
	MatchScore float64  `json:"match_score"`
	DeepLink   *string  `json:"deep_link,omitempty"`
}

// EmbeddingItem carries a precomputed embedding for one catalog item
type EmbeddingItem struct {
	ItemID    string    `json:"item_id" binding:"required"`
	Embedding []float32 `json:"embedding" binding:"required"`
	Text      string    `json:"text,omitempty"`
}

// EmbeddingBatchRequest is a batch embedding update request
type EmbeddingBatchRequest struct {
	Embeddings []EmbeddingItem `json:"embeddings" binding:"required"`
}

// EmbeddingBatchResponse reports per-batch update results
type EmbeddingBatchResponse struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// JSONArray represents a JSON array column
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}
