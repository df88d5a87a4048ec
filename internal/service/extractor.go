package service

import "context"

// SignalExtractor is the external semantic extraction collaborator: raw text
// plus a locale hint in, an untyped JSON-ish object out. The object is not
// trusted until it passes the validator; any error from the extractor
// degrades to an empty contribution, never a hard failure.
type SignalExtractor interface {
	// ExtractSignals derives intent signals from the user's message
	ExtractSignals(ctx context.Context, text, locale string) (map[string]interface{}, error)

	// IsEnabled returns whether the extractor is configured and ready
	IsEnabled() bool
}

// EmbeddingClient generates embeddings for catalog item texts
type EmbeddingClient interface {
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// Ensure OpenAIClient implements both collaborator interfaces
var (
	_ SignalExtractor = (*OpenAIClient)(nil)
	_ EmbeddingClient = (*OpenAIClient)(nil)
)
