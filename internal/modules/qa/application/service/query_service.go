package service

import (
	"context"
	"fmt"
	"strings"

	"DocuQA/internal/modules/qa/domain/repository"

	"github.com/cloudwego/eino/components/embedding"
)

const defaultTopK = 5

// QueryService answers natural-language questions by embedding them and
// running similarity search against the populated collection.
type QueryService interface {
	// Ask embeds one question and returns the topK nearest entries.
	Ask(ctx context.Context, question string, topK int) ([]repository.SearchHit, error)

	// AskBatch embeds several questions and runs them in a single batched
	// search; results come back paired with their questions, in order.
	AskBatch(ctx context.Context, questions []string, topK int) ([]repository.BatchQueryResult, error)
}

type queryServiceImpl struct {
	embedder embedding.Embedder
	store    repository.VectorStore
}

func NewQueryService(embedder embedding.Embedder, store repository.VectorStore) QueryService {
	return &queryServiceImpl{embedder: embedder, store: store}
}

func (s *queryServiceImpl) Ask(ctx context.Context, question string, topK int) ([]repository.SearchHit, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("question is required")
	}
	if topK <= 0 {
		topK = defaultTopK
	}

	vecs, err := s.embedder.EmbedStrings(ctx, []string{question})
	if err != nil {
		return nil, err
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("embedding returned %d vectors for one question", len(vecs))
	}

	return s.store.DenseSearch(ctx, vecs[0], topK)
}

func (s *queryServiceImpl) AskBatch(ctx context.Context, questions []string, topK int) ([]repository.BatchQueryResult, error) {
	if topK <= 0 {
		topK = defaultTopK
	}
	if len(questions) == 0 {
		return []repository.BatchQueryResult{}, nil
	}

	trimmed := make([]string, 0, len(questions))
	for i, q := range questions {
		q = strings.TrimSpace(q)
		if q == "" {
			return nil, fmt.Errorf("question %d is empty", i)
		}
		trimmed = append(trimmed, q)
	}

	vecs, err := s.embedder.EmbedStrings(ctx, trimmed)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(trimmed) {
		return nil, fmt.Errorf("embedding returned %d vectors for %d questions", len(vecs), len(trimmed))
	}

	queries := make([]repository.BatchQuery, 0, len(trimmed))
	for i, q := range trimmed {
		queries = append(queries, repository.BatchQuery{Vector: vecs[i], Query: q})
	}
	return s.store.BatchQueries(ctx, queries, topK)
}
