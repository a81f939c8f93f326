package initial

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"DocuQA/internal/config"
	"DocuQA/internal/modules/qa/application/service"
	"DocuQA/internal/modules/qa/infrastructure/embedding"
	"DocuQA/internal/modules/qa/infrastructure/llm"
	"DocuQA/internal/modules/qa/infrastructure/pipeline"
	"DocuQA/internal/modules/qa/infrastructure/vectordb"
	"DocuQA/pkg/zlog"

	"go.uber.org/zap"
)

var (
	// HTTPClient is the shared, connection-reusing transport for the
	// vector store. Its lifetime spans all client operations; release it
	// via CloseClients once no more requests will be issued.
	HTTPClient *http.Client

	VectorStore *vectordb.QdrantImpl
	Ingest      service.IngestService
	Query       service.QueryService
)

// InitClients wires the full stack from config: transport, vector store,
// embedder, chat model, synthesis pipeline and the two services.
func InitClients(ctx context.Context, conf *config.Config) error {
	if conf == nil {
		return fmt.Errorf("nil config")
	}

	timeout := 30 * time.Second
	if conf.QdrantConfig.TimeoutSeconds > 0 {
		timeout = time.Duration(conf.QdrantConfig.TimeoutSeconds) * time.Second
	}
	HTTPClient = &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        32,
			MaxIdleConnsPerHost: 32,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	store, err := vectordb.NewQdrantImpl(vectordb.QdrantConfig{
		BaseURL:          conf.QdrantConfig.BaseURL,
		APIKey:           conf.QdrantConfig.APIKey,
		CollectionName:   conf.QdrantConfig.CollectionName,
		DenseSize:        conf.QdrantConfig.DenseSize,
		VerifySampleSize: conf.QdrantConfig.VerifySampleSize,
	}, HTTPClient)
	if err != nil {
		return fmt.Errorf("qdrant client init failed: %w", err)
	}
	VectorStore = store

	embedder, embedMeta, err := embedding.NewEmbedderFromConfig(ctx, conf)
	if err != nil {
		return fmt.Errorf("embedder init failed: %w", err)
	}
	zlog.Info("embedder ready",
		zap.String("provider", embedMeta.Provider),
		zap.String("model", embedMeta.Model),
		zap.Int("dim", embedMeta.Dim))

	chatModel, modelMeta, err := llm.NewChatModelFromConfig(ctx, conf)
	if err != nil {
		return fmt.Errorf("chat model init failed: %w", err)
	}
	zlog.Info("chat model ready",
		zap.String("provider", modelMeta.Provider),
		zap.String("model", modelMeta.Model))

	synth, err := pipeline.NewSynthesisPipeline(
		chatModel,
		embedder,
		store,
		conf.PipelineConfig.BatchSize,
		conf.PipelineConfig.MaxRefine,
		conf.PipelineConfig.ExamplesPath,
	)
	if err != nil {
		return fmt.Errorf("synthesis pipeline init failed: %w", err)
	}

	Ingest = service.NewIngestService(synth, store)
	Query = service.NewQueryService(embedder, store)
	return nil
}

// CloseClients releases the shared transport's idle connections. Requests
// must not be issued through the clients afterwards.
func CloseClients() {
	if HTTPClient != nil {
		HTTPClient.CloseIdleConnections()
	}
}
