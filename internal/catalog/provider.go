package catalog

import (
	"context"

	"feelre/internal/model"
)

// SearchOptions bounds a candidate-pool request
type SearchOptions struct {
	Limit int
}

// Provider supplies the candidate pool for one turn. The core only consumes
// this interface; storage belongs to the provider.
type Provider interface {
	Name() string
	Search(ctx context.Context, signals *model.Signals, opts SearchOptions) ([]model.CatalogItem, error)
}

// ItemStore can look up a single catalog item
type ItemStore interface {
	GetItem(ctx context.Context, itemID string) (*model.CatalogItem, error)
}

// EmbeddingStore can persist precomputed item embeddings
type EmbeddingStore interface {
	BatchUpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) (int, []string)
}

// TurnLogger records completed turns for offline analysis
type TurnLogger interface {
	LogTurn(ctx context.Context, message string, signals *model.Signals, replyType string, itemIDs []string, tookMs int) error
}
