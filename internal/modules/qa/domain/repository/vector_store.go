package repository

import (
	"context"
)

// Entry is one stored point: a dense vector under a named field plus an
// open payload. IDs are immutable once stored.
type Entry struct {
	ID      string               `json:"id"`
	Vector  map[string][]float64 `json:"vector"`
	Payload map[string]any       `json:"payload"`
}

// ToMap renders the entry as the raw record shape UploadDocuments consumes.
func (e Entry) ToMap() map[string]any {
	return map[string]any{
		"id":      e.ID,
		"vector":  e.Vector,
		"payload": e.Payload,
	}
}

// SearchHit is one ranked similarity result.
type SearchHit struct {
	ID      string         `json:"id"`
	Score   float64        `json:"score"`
	Payload map[string]any `json:"payload,omitempty"`
}

// CollectionInfo echoes the store-side view of a collection.
type CollectionInfo struct {
	Status      string `json:"status"`
	PointsCount int64  `json:"points_count"`
	DenseSize   int    `json:"dense_size"`
	Distance    string `json:"distance"`
}

// BatchQuery is one query in a batched search. Query is an optional
// caller-side label carried back unchanged on the paired result.
type BatchQuery struct {
	Vector []float64 `json:"vector"`
	Query  string    `json:"query,omitempty"`
}

// BatchQueryResult pairs a query's label with its ranked hits. Results come
// back in the same order and length as the submitted queries.
type BatchQueryResult struct {
	Query   string      `json:"query,omitempty"`
	Results []SearchHit `json:"results"`
}

// VectorStore is the seam between the QA pipeline and the backing vector
// database. Implementations must be safe for concurrent use: configuration
// is fixed at construction and no per-call state is retained.
type VectorStore interface {
	// CreateCollection idempotently ensures the collection exists with the
	// configured dense size and cosine distance. Recreating an existing
	// collection is not an error.
	CreateCollection(ctx context.Context) error

	// GetCollectionInfo returns point count, status and configuration echo.
	// Side-effect free.
	GetCollectionInfo(ctx context.Context) (*CollectionInfo, error)

	// UploadDocuments validates raw records, partitions them into batches of
	// batchSize and uploads them strictly in order. A validation failure or
	// exhausted upload retries abort the call; earlier batches stay committed.
	UploadDocuments(ctx context.Context, items []map[string]any, batchSize int) error

	// VerifyUpload is a read-only post-hoc sanity check: point count plus a
	// small payload sample. Safe to call repeatedly.
	VerifyUpload(ctx context.Context) error

	// DenseSearch runs a single nearest-neighbor query. Never retried.
	DenseSearch(ctx context.Context, vector []float64, topK int) ([]SearchHit, error)

	// BatchQueries runs N independent queries in one request and zips the
	// result lists back with the input labels in order.
	BatchQueries(ctx context.Context, queries []BatchQuery, topK int) ([]BatchQueryResult, error)
}
