package service

import "context"

// EmbeddingClient converts a text string into a vector embedding.
type EmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
