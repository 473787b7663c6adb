package fit

import "context"

// EmbeddingProvider turns free text into a vector. The engine treats
// the dimensionality as opaque; it only has to be stable within a
// session so vectors stay comparable.
type EmbeddingProvider interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}
