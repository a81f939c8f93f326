package vectordb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"DocuQA/internal/modules/qa/domain/repository"
	"DocuQA/pkg/zlog"

	"go.uber.org/zap"
)

const (
	maxUploadAttempts = 3
	backoffBase       = 1 * time.Second
	backoffCap        = 10 * time.Second

	defaultVerifySampleSize = 5

	// denseVectorName must match the vector name used in search bodies.
	denseVectorName = "dense"
)

// QdrantImpl talks to a Qdrant collection over its HTTP API. Configuration
// is fixed at construction; the struct holds no per-call state, so a single
// client can be shared across goroutines. The injected *http.Client owns the
// connection pool and its lifetime is managed by the caller.
type QdrantImpl struct {
	httpCli *http.Client

	baseURL    string
	collection string
	headers    map[string]string
	denseSize  int
	sampleSize int

	// sleep is swapped out in tests to avoid real backoff waits.
	sleep func(ctx context.Context, d time.Duration) error
}

var _ repository.VectorStore = (*QdrantImpl)(nil)

type QdrantConfig struct {
	BaseURL          string
	APIKey           string
	CollectionName   string
	DenseSize        int
	VerifySampleSize int
}

// NewQdrantImpl creates a client for one collection. The http.Client is
// required so the caller controls timeouts and connection reuse.
func NewQdrantImpl(conf QdrantConfig, httpCli *http.Client) (*QdrantImpl, error) {
	if httpCli == nil {
		return nil, fmt.Errorf("http client is nil")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(conf.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("qdrant base URL is empty")
	}
	collection := strings.TrimSpace(conf.CollectionName)
	if collection == "" {
		return nil, fmt.Errorf("qdrant collection name is empty")
	}
	if conf.DenseSize <= 0 {
		return nil, fmt.Errorf("dense vector size must be positive, got %d", conf.DenseSize)
	}

	sampleSize := conf.VerifySampleSize
	if sampleSize <= 0 {
		sampleSize = defaultVerifySampleSize
	}

	headers := map[string]string{
		"Content-Type": "application/json",
	}
	if key := strings.TrimSpace(conf.APIKey); key != "" {
		headers["api-key"] = key
	}

	return &QdrantImpl{
		httpCli:    httpCli,
		baseURL:    baseURL,
		collection: collection,
		headers:    headers,
		denseSize:  conf.DenseSize,
		sampleSize: sampleSize,
		sleep:      sleepCtx,
	}, nil
}

// envelope is the common Qdrant response wrapper. Status is a string on
// success and an object on some error shapes, so it stays loosely typed.
type envelope struct {
	Result json.RawMessage `json:"result"`
	Status any             `json:"status"`
	Time   float64         `json:"time"`
}

func (e *envelope) statusString() string {
	switch s := e.Status.(type) {
	case string:
		return s
	case map[string]any:
		if msg, ok := s["error"].(string); ok {
			return msg
		}
	}
	return ""
}

// UploadResponse is the acknowledged state of one points upload.
type UploadResponse struct {
	Status      string
	OperationID int64
}

// CreateCollection idempotently ensures the collection exists with the
// configured dense size and cosine distance. A store-side "already exists"
// complaint is logged as a warning and not treated as an error.
func (c *QdrantImpl) CreateCollection(ctx context.Context) error {
	url := fmt.Sprintf("%s/collections/%s", c.baseURL, c.collection)
	body := map[string]any{
		"vectors": map[string]any{
			"size":     c.denseSize,
			"distance": "Cosine",
		},
	}

	status, raw, err := c.request(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}

	var env envelope
	if jsonErr := json.Unmarshal(raw, &env); jsonErr != nil {
		malformed := &MalformedResponseError{URL: url, Body: truncateBody(raw), Err: jsonErr}
		zlog.Error("qdrant create collection returned non-JSON body", zap.String("body", truncateBody(raw)))
		return malformed
	}

	if msg := env.statusString(); strings.HasPrefix(msg, "Wrong input: Collection") {
		zlog.Warn("qdrant collection already exists",
			zap.String("collection", c.collection),
			zap.String("status", msg))
		return nil
	}

	if status < 200 || status > 299 {
		return &TransportError{Op: "create collection", URL: url, StatusCode: status, Body: truncateBody(raw)}
	}

	zlog.Info("qdrant collection created",
		zap.String("collection", c.collection),
		zap.Int("dense_size", c.denseSize))
	return nil
}

// GetCollectionInfo fetches point count, status and configuration echo.
func (c *QdrantImpl) GetCollectionInfo(ctx context.Context) (*repository.CollectionInfo, error) {
	url := fmt.Sprintf("%s/collections/%s", c.baseURL, c.collection)

	var env envelope
	if err := c.requestJSON(ctx, http.MethodGet, url, nil, &env); err != nil {
		return nil, err
	}

	var result struct {
		Status      string `json:"status"`
		PointsCount int64  `json:"points_count"`
		Config      struct {
			Params struct {
				Vectors struct {
					Size     int    `json:"size"`
					Distance string `json:"distance"`
				} `json:"vectors"`
			} `json:"params"`
		} `json:"config"`
	}
	if err := json.Unmarshal(env.Result, &result); err != nil {
		return nil, &MalformedResponseError{URL: url, Body: truncateBody(env.Result), Err: err}
	}

	return &repository.CollectionInfo{
		Status:      result.Status,
		PointsCount: result.PointsCount,
		DenseSize:   result.Config.Params.Vectors.Size,
		Distance:    result.Config.Params.Vectors.Distance,
	}, nil
}

// VerifyEntry checks a raw record against the entry schema: an id string, a
// dense vector (named map or flat float array) matching the collection's
// dense size, and a payload map. Pure validation; the input comes back
// unchanged on success.
func (c *QdrantImpl) VerifyEntry(item map[string]any) (map[string]any, error) {
	idRaw, ok := item["id"]
	if !ok {
		return nil, &ValidationError{Field: "id", Expected: "string", Detail: "field missing"}
	}
	id, ok := idRaw.(string)
	if !ok || id == "" {
		return nil, &ValidationError{Field: "id", Expected: "non-empty string"}
	}

	vecRaw, ok := item["vector"]
	if !ok {
		return nil, &ValidationError{Field: "vector", Expected: "named dense vector map or float array", Detail: "field missing"}
	}
	if err := c.checkVector(vecRaw); err != nil {
		return nil, err
	}

	payloadRaw, ok := item["payload"]
	if !ok {
		return nil, &ValidationError{Field: "payload", Expected: "map of string keys", Detail: "field missing"}
	}
	switch payloadRaw.(type) {
	case map[string]any, map[string]string:
	default:
		return nil, &ValidationError{Field: "payload", Expected: "map of string keys", Detail: fmt.Sprintf("got %T", payloadRaw)}
	}

	return item, nil
}

func (c *QdrantImpl) checkVector(v any) error {
	switch vec := v.(type) {
	case map[string][]float64:
		if len(vec) == 0 {
			return &ValidationError{Field: "vector", Expected: "at least one named dense vector"}
		}
		for name, dense := range vec {
			if err := c.checkDim("vector."+name, dense); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		if len(vec) == 0 {
			return &ValidationError{Field: "vector", Expected: "at least one named dense vector"}
		}
		for name, raw := range vec {
			dense, ok := floatSlice(raw)
			if !ok {
				return &ValidationError{Field: "vector." + name, Expected: "float array", Detail: fmt.Sprintf("got %T", raw)}
			}
			if err := c.checkDim("vector."+name, dense); err != nil {
				return err
			}
		}
		return nil
	default:
		dense, ok := floatSlice(v)
		if !ok {
			return &ValidationError{Field: "vector", Expected: "named dense vector map or float array", Detail: fmt.Sprintf("got %T", v)}
		}
		return c.checkDim("vector", dense)
	}
}

func (c *QdrantImpl) checkDim(field string, dense []float64) error {
	if len(dense) != c.denseSize {
		return &ValidationError{
			Field:    field,
			Expected: fmt.Sprintf("dense vector of length %d", c.denseSize),
			Detail:   fmt.Sprintf("got length %d", len(dense)),
		}
	}
	return nil
}

// AddPointsWithRetry uploads a batch of points, retrying transport failures
// up to maxUploadAttempts with exponential backoff (1s base, 10s cap). Only
// this mutating call carries retries; searches are left to the caller.
func (c *QdrantImpl) AddPointsWithRetry(ctx context.Context, points []map[string]any) (*UploadResponse, error) {
	url := fmt.Sprintf("%s/collections/%s/points", c.baseURL, c.collection)
	body := map[string]any{"points": points}

	var lastErr error
	for attempt := 1; attempt <= maxUploadAttempts; attempt++ {
		var env envelope
		err := c.requestJSON(ctx, http.MethodPut, url, body, &env)
		if err == nil {
			return &UploadResponse{
				Status:      env.statusString(),
				OperationID: operationID(env.Result),
			}, nil
		}

		lastErr = err
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}

		if attempt < maxUploadAttempts {
			delay := backoffDelay(attempt)
			zlog.Warn("qdrant points upload failed, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", delay),
				zap.Error(err))
			if sleepErr := c.sleep(ctx, delay); sleepErr != nil {
				return nil, sleepErr
			}
		}
	}

	return nil, fmt.Errorf("points upload failed after %d attempts: %w", maxUploadAttempts, lastErr)
}

// UploadDocuments validates raw records and uploads them in strictly
// sequential batches of batchSize. Each batch is validated before any
// network call, uploaded with retry, soft-checked for an "ok" status and
// spot-verified by fetching its first point. A validation failure or
// exhausted retries abort the remaining batches; earlier batches stay
// committed — there is no rollback.
func (c *QdrantImpl) UploadDocuments(ctx context.Context, items []map[string]any, batchSize int) error {
	if batchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", batchSize)
	}

	totalBatches := (len(items) + batchSize - 1) / batchSize
	totalUploaded := 0

	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}
		batchNum := i/batchSize + 1
		batch := items[i:end]

		points := make([]map[string]any, 0, len(batch))
		for _, doc := range batch {
			point, err := c.VerifyEntry(doc)
			if err != nil {
				zlog.Error("entry validation failed, aborting upload",
					zap.Int("batch", batchNum),
					zap.Error(err))
				return fmt.Errorf("batch %d: %w", batchNum, err)
			}
			points = append(points, point)
		}

		resp, err := c.AddPointsWithRetry(ctx, points)
		if err != nil {
			zlog.Error("batch upload failed",
				zap.Int("batch", batchNum),
				zap.Int("total_batches", totalBatches),
				zap.Error(err))
			return fmt.Errorf("batch %d of %d: %w", batchNum, totalBatches, err)
		}
		totalUploaded += len(points)

		if resp.Status != "ok" {
			zlog.Warn("batch accepted with non-ok status",
				zap.Int("batch", batchNum),
				zap.String("status", resp.Status))
		} else {
			zlog.Info("batch uploaded",
				zap.Int("batch", batchNum),
				zap.Int("total_batches", totalBatches),
				zap.Int("total_uploaded", totalUploaded))
		}

		firstID, _ := points[0]["id"].(string)
		record, err := c.VerifyBatch(ctx, firstID)
		if err != nil {
			zlog.Error("batch verification failed",
				zap.Int("batch", batchNum),
				zap.String("point_id", firstID),
				zap.Error(err))
			return fmt.Errorf("batch %d verify point %s: %w", batchNum, firstID, err)
		}
		if record != nil {
			zlog.Info("batch verified", zap.Int("batch", batchNum), zap.String("point_id", firstID))
		} else {
			zlog.Warn("uploaded point not retrievable yet",
				zap.Int("batch", batchNum),
				zap.String("point_id", firstID))
		}
	}

	return nil
}

// VerifyBatch fetches one point by id. A missing point (404 or empty
// result) returns (nil, nil) so callers can downgrade it to a warning.
func (c *QdrantImpl) VerifyBatch(ctx context.Context, pointID string) (map[string]any, error) {
	url := fmt.Sprintf("%s/collections/%s/points/%s", c.baseURL, c.collection, pointID)

	status, raw, err := c.request(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status < 200 || status > 299 {
		return nil, &TransportError{Op: "verify point", URL: url, StatusCode: status, Body: truncateBody(raw)}
	}

	var env envelope
	if jsonErr := json.Unmarshal(raw, &env); jsonErr != nil {
		malformed := &MalformedResponseError{URL: url, Body: truncateBody(raw), Err: jsonErr}
		zlog.Error("expected JSON but got non-JSON content", zap.String("body", truncateBody(raw)))
		return nil, malformed
	}

	var record map[string]any
	if len(env.Result) > 0 {
		if jsonErr := json.Unmarshal(env.Result, &record); jsonErr != nil {
			return nil, &MalformedResponseError{URL: url, Body: truncateBody(env.Result), Err: jsonErr}
		}
	}
	if len(record) == 0 {
		return nil, nil
	}
	return record, nil
}

// VerifyUpload is a read-only post-hoc check: it logs the collection point
// count and pulls a small payload-only sample so an operator can confirm
// data landed. Idempotent and safe to call repeatedly.
func (c *QdrantImpl) VerifyUpload(ctx context.Context) error {
	info, err := c.GetCollectionInfo(ctx)
	if err != nil {
		return err
	}
	zlog.Info("collection point count verified",
		zap.String("collection", c.collection),
		zap.Int64("points", info.PointsCount),
		zap.String("status", info.Status))

	url := fmt.Sprintf("%s/collections/%s/points/scroll", c.baseURL, c.collection)
	body := map[string]any{
		"limit":        c.sampleSize,
		"with_vectors": false,
		"with_payload": true,
	}

	var env envelope
	if err := c.requestJSON(ctx, http.MethodPost, url, body, &env); err != nil {
		return err
	}

	var result struct {
		Points []struct {
			ID      any            `json:"id"`
			Payload map[string]any `json:"payload"`
		} `json:"points"`
	}
	if err := json.Unmarshal(env.Result, &result); err != nil {
		return &MalformedResponseError{URL: url, Body: truncateBody(env.Result), Err: err}
	}

	zlog.Info("sampled stored points",
		zap.String("collection", c.collection),
		zap.Int("sample_size", len(result.Points)))
	return nil
}

// DenseSearch runs a single similarity query against the named dense vector
// field. Deliberately no retry: queries are idempotent and cheap to repeat
// from the caller's side.
func (c *QdrantImpl) DenseSearch(ctx context.Context, vector []float64, topK int) ([]repository.SearchHit, error) {
	url := fmt.Sprintf("%s/collections/%s/points/search", c.baseURL, c.collection)
	body := map[string]any{
		"vector": map[string]any{
			"name":   denseVectorName,
			"vector": vector,
		},
		"limit":        topK,
		"with_payload": true,
	}

	var env envelope
	if err := c.requestJSON(ctx, http.MethodPost, url, body, &env); err != nil {
		return nil, err
	}

	var hits []repository.SearchHit
	if err := json.Unmarshal(env.Result, &hits); err != nil {
		return nil, &MalformedResponseError{URL: url, Body: truncateBody(env.Result), Err: err}
	}
	return hits, nil
}

// BatchQueries executes N independent searches in one request and pairs the
// response's result lists back with the input labels in order. The request
// is issued even for an empty input; the response is just degenerate.
func (c *QdrantImpl) BatchQueries(ctx context.Context, queries []repository.BatchQuery, topK int) ([]repository.BatchQueryResult, error) {
	url := fmt.Sprintf("%s/collections/%s/points/search/batch", c.baseURL, c.collection)

	searches := make([]map[string]any, 0, len(queries))
	for _, q := range queries {
		searches = append(searches, map[string]any{
			"vector": map[string]any{
				"name":   denseVectorName,
				"vector": q.Vector,
			},
			"limit":        topK,
			"with_payload": true,
		})
	}

	var env envelope
	if err := c.requestJSON(ctx, http.MethodPost, url, map[string]any{"searches": searches}, &env); err != nil {
		return nil, err
	}

	var resultLists [][]repository.SearchHit
	if err := json.Unmarshal(env.Result, &resultLists); err != nil {
		return nil, &MalformedResponseError{URL: url, Body: truncateBody(env.Result), Err: err}
	}
	if len(resultLists) != len(queries) {
		return nil, fmt.Errorf("batch search returned %d result lists for %d queries", len(resultLists), len(queries))
	}

	out := make([]repository.BatchQueryResult, 0, len(queries))
	for i, q := range queries {
		out = append(out, repository.BatchQueryResult{
			Query:   q.Query,
			Results: resultLists[i],
		})
	}
	return out, nil
}

// request performs one HTTP round trip and returns the status code and raw
// body. Only request construction, dial/IO and body-read failures become
// errors here; status handling belongs to the caller.
func (c *QdrantImpl) request(ctx context.Context, method, url string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, &TransportError{Op: method, URL: url, Err: err}
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Op: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &TransportError{Op: method, URL: url, Err: err}
	}
	return resp.StatusCode, raw, nil
}

// requestJSON is request plus strict handling: non-2xx becomes a
// TransportError and a non-JSON body a MalformedResponseError.
func (c *QdrantImpl) requestJSON(ctx context.Context, method, url string, body, out any) error {
	status, raw, err := c.request(ctx, method, url, body)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return &TransportError{Op: method, URL: url, StatusCode: status, Body: truncateBody(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		malformed := &MalformedResponseError{URL: url, Body: truncateBody(raw), Err: err}
		zlog.Error("expected JSON but got non-JSON content", zap.String("body", truncateBody(raw)))
		return malformed
	}
	return nil
}

// Helpers

func backoffDelay(attempt int) time.Duration {
	d := backoffBase << (attempt - 1)
	if d > backoffCap {
		return backoffCap
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func operationID(result json.RawMessage) int64 {
	var parsed struct {
		OperationID int64 `json:"operation_id"`
	}
	if len(result) == 0 {
		return 0
	}
	_ = json.Unmarshal(result, &parsed)
	return parsed.OperationID
}

func floatSlice(v any) ([]float64, bool) {
	switch t := v.(type) {
	case []float64:
		return t, true
	case []float32:
		out := make([]float64, len(t))
		for i := range t {
			out[i] = float64(t[i])
		}
		return out, true
	case []any:
		out := make([]float64, len(t))
		for i := range t {
			switch n := t[i].(type) {
			case float64:
				out[i] = n
			case int:
				out[i] = float64(n)
			case json.Number:
				f, err := n.Float64()
				if err != nil {
					return nil, false
				}
				out[i] = f
			default:
				return nil, false
			}
		}
		return out, true
	default:
		return nil, false
	}
}

func truncateBody(raw []byte) string {
	const limit = 512
	if len(raw) > limit {
		return string(raw[:limit]) + "..."
	}
	return string(raw)
}
