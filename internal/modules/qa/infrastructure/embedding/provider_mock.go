package embedding

import (
	"context"
	"crypto/sha256"

	"github.com/cloudwego/eino/components/embedding"
)

// MockEmbedder produces deterministic vectors derived from the text so
// tests can tell entries apart without a real provider.
type MockEmbedder struct {
	Dim int
}

func NewMockEmbedder(dim int) *MockEmbedder {
	return &MockEmbedder{Dim: dim}
}

func (m *MockEmbedder) EmbedStrings(ctx context.Context, texts []string, opts ...embedding.Option) ([][]float64, error) {
	result := make([][]float64, len(texts))
	for i, text := range texts {
		sum := sha256.Sum256([]byte(text))
		vec := make([]float64, m.Dim)
		for j := 0; j < m.Dim; j++ {
			vec[j] = float64(sum[j%len(sum)]) / 255.0
		}
		result[i] = vec
	}
	return result, nil
}

var _ embedding.Embedder = (*MockEmbedder)(nil)
