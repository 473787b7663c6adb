package embeddings

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// maxInputRunes caps the text sent per request. Longer inputs are
// truncated before the API call.
const maxInputRunes = 24000

// EmbeddingsGenerator creates dense vectors for profile and query text
type EmbeddingsGenerator struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewEmbeddingsGenerator creates a new embeddings generator
func NewEmbeddingsGenerator(apiKey string) *EmbeddingsGenerator {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &EmbeddingsGenerator{
		client: &client,
		model:  openai.EmbeddingModelTextEmbedding3Small,
	}
}

// GenerateEmbedding creates an embedding vector for text
func (g *EmbeddingsGenerator) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	if runes := []rune(text); len(runes) > maxInputRunes {
		text = string(runes[:maxInputRunes])
	}

	// Send as array with single element (works consistently)
	resp, err := g.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{text},
		},
		Model: g.model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding data returned")
	}

	// Convert []float64 to []float32
	embedding64 := resp.Data[0].Embedding
	embedding32 := make([]float32, len(embedding64))
	for i, v := range embedding64 {
		embedding32[i] = float32(v)
	}

	return embedding32, nil
}
