package service

import (
	"context"
	"fmt"
	"strings"

	"DocuQA/internal/modules/qa/domain/repository"
	"DocuQA/internal/modules/qa/infrastructure/pipeline"
	"DocuQA/pkg/zlog"

	"go.uber.org/zap"
)

// IngestService drives one document through QA synthesis and into the
// vector store, then runs the post-hoc upload verification.
type IngestService interface {
	Ingest(ctx context.Context, docName, document string) (*pipeline.SynthesisResult, error)
}

type ingestServiceImpl struct {
	pipeline *pipeline.SynthesisPipeline
	store    repository.VectorStore
}

func NewIngestService(p *pipeline.SynthesisPipeline, store repository.VectorStore) IngestService {
	return &ingestServiceImpl{pipeline: p, store: store}
}

func (s *ingestServiceImpl) Ingest(ctx context.Context, docName, document string) (*pipeline.SynthesisResult, error) {
	if s.pipeline == nil {
		return nil, fmt.Errorf("synthesis pipeline is nil")
	}
	docName = strings.TrimSpace(docName)
	if docName == "" {
		return nil, fmt.Errorf("doc name is required")
	}
	if strings.TrimSpace(document) == "" {
		return nil, fmt.Errorf("document text is required")
	}

	// Collection creation is idempotent, so every ingest may attempt it.
	if err := s.store.CreateCollection(ctx); err != nil {
		return nil, err
	}

	result, err := s.pipeline.Run(ctx, &pipeline.SynthesisRequest{
		DocName:  docName,
		Document: document,
	})
	if err != nil {
		return nil, err
	}
	if result.Err != nil {
		return result, result.Err
	}

	if err := s.store.VerifyUpload(ctx); err != nil {
		zlog.Warn("post-upload verification failed",
			zap.String("doc_name", docName),
			zap.Error(err))
	}
	return result, nil
}
