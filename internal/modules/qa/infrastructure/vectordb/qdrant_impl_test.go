package vectordb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"DocuQA/internal/modules/qa/domain/repository"
)

const testCollection = "testing_qdrant_client"

func newTestClient(t *testing.T, srv *httptest.Server, denseSize int) *QdrantImpl {
	t.Helper()
	cli, err := NewQdrantImpl(QdrantConfig{
		BaseURL:        srv.URL,
		APIKey:         "test-key",
		CollectionName: testCollection,
		DenseSize:      denseSize,
	}, srv.Client())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	cli.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return cli
}

func okEnvelope(result any) []byte {
	bs, _ := json.Marshal(map[string]any{"result": result, "status": "ok", "time": 0.01})
	return bs
}

func entry(id string, dim int) map[string]any {
	vec := make([]float64, dim)
	for i := range vec {
		vec[i] = 0.1
	}
	return map[string]any{
		"id":      id,
		"vector":  map[string][]float64{"dense": vec},
		"payload": map[string]any{"content": "doc " + id},
	}
}

func TestVerifyEntry_ValidReturnsUnchanged(t *testing.T) {
	cli := &QdrantImpl{denseSize: 3}
	item := entry("doc1", 3)

	got, err := cli.VerifyEntry(item)
	if err != nil {
		t.Fatalf("verify entry: %v", err)
	}
	if fmt.Sprintf("%p", got) != fmt.Sprintf("%p", item) {
		t.Fatalf("expected the same map back, got a different one")
	}
}

func TestVerifyEntry_MissingFields(t *testing.T) {
	cli := &QdrantImpl{denseSize: 3}

	cases := []struct {
		name  string
		item  map[string]any
		field string
	}{
		{"missing id", map[string]any{"vector": map[string][]float64{"dense": {0.1, 0.2, 0.3}}, "payload": map[string]any{}}, "id"},
		{"missing vector", map[string]any{"id": "a", "payload": map[string]any{}}, "vector"},
		{"missing payload", map[string]any{"id": "a", "vector": map[string][]float64{"dense": {0.1, 0.2, 0.3}}}, "payload"},
		{"id not a string", map[string]any{"id": 7, "vector": map[string][]float64{"dense": {0.1, 0.2, 0.3}}, "payload": map[string]any{}}, "id"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := cli.VerifyEntry(tc.item)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, vErr.Field)
			}
		})
	}
}

func TestVerifyEntry_DimensionMismatch(t *testing.T) {
	cli := &QdrantImpl{denseSize: 4}

	_, err := cli.VerifyEntry(entry("doc1", 3))
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Field != "vector.dense" {
		t.Fatalf("expected field vector.dense, got %q", vErr.Field)
	}
}

func TestVerifyEntry_FlatVectorAccepted(t *testing.T) {
	cli := &QdrantImpl{denseSize: 3}
	item := map[string]any{
		"id":      "flat",
		"vector":  []float64{0.1, 0.2, 0.3},
		"payload": map[string]any{},
	}
	if _, err := cli.VerifyEntry(item); err != nil {
		t.Fatalf("flat vector should validate: %v", err)
	}
}

func TestUploadDocuments_BatchPartitioning(t *testing.T) {
	var mu sync.Mutex
	uploads := 0
	verifies := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch {
		case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/points"):
			uploads++
			w.Write(okEnvelope(map[string]any{"operation_id": 1}))
		case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/points/"):
			verifies++
			id := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
			w.Write(okEnvelope(map[string]any{"id": id}))
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cli := newTestClient(t, srv, 3)

	items := make([]map[string]any, 5)
	for i := range items {
		items[i] = entry(fmt.Sprintf("doc%d", i), 3)
	}

	if err := cli.UploadDocuments(context.Background(), items, 2); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if uploads != 3 {
		t.Fatalf("expected 3 upload calls for 5 items with batch size 2, got %d", uploads)
	}
	if verifies != 3 {
		t.Fatalf("expected 3 verification lookups, got %d", verifies)
	}
}

func TestUploadDocuments_ExhaustedRetriesAbortRemainingBatches(t *testing.T) {
	var mu sync.Mutex
	attempts := 0
	var seenIDs []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/points") {
			attempts++
			var body struct {
				Points []map[string]any `json:"points"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			for _, p := range body.Points {
				if id, ok := p["id"].(string); ok {
					seenIDs = append(seenIDs, id)
				}
			}
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cli := newTestClient(t, srv, 3)

	items := []map[string]any{entry("batch1a", 3), entry("batch1b", 3), entry("batch2a", 3)}
	err := cli.UploadDocuments(context.Background(), items, 2)
	if err == nil {
		t.Fatal("expected upload to fail")
	}
	if attempts != 3 {
		t.Fatalf("expected exactly 3 attempts for the failing batch, got %d", attempts)
	}
	for _, id := range seenIDs {
		if id == "batch2a" {
			t.Fatal("second batch must never be attempted after the first one fails")
		}
	}
	var tErr *TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("expected TransportError in chain, got %v", err)
	}
}

func TestAddPointsWithRetry_SucceedsOnSecondAttempt(t *testing.T) {
	var mu sync.Mutex
	calls := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write(okEnvelope(map[string]any{"operation_id": 7}))
	}))
	defer srv.Close()

	cli := newTestClient(t, srv, 3)

	resp, err := cli.AddPointsWithRetry(context.Background(), []map[string]any{entry("doc1", 3)})
	if err != nil {
		t.Fatalf("expected success on retry: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected exactly 2 underlying calls, got %d", calls)
	}
	if resp.Status != "ok" {
		t.Fatalf("expected ok status, got %q", resp.Status)
	}
	if resp.OperationID != 7 {
		t.Fatalf("expected operation id 7, got %d", resp.OperationID)
	}
}

func TestUploadDocuments_ValidationAbortsBeforeUpload(t *testing.T) {
	var mu sync.Mutex
	uploads := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/points") {
			uploads++
			w.Write(okEnvelope(map[string]any{"operation_id": 1}))
			return
		}
		w.Write(okEnvelope(map[string]any{"id": "doc0"}))
	}))
	defer srv.Close()

	cli := newTestClient(t, srv, 3)

	items := []map[string]any{
		entry("doc0", 3),
		{"id": "broken"}, // no vector, no payload
	}
	err := cli.UploadDocuments(context.Background(), items, 1)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if uploads != 1 {
		t.Fatalf("expected only the first batch to reach the network, got %d uploads", uploads)
	}
}

func TestUploadDocuments_SoftStatusAndMissingPointAreWarnings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/points"):
			// Accepted but with a non-ok status marker.
			bs, _ := json.Marshal(map[string]any{"result": map[string]any{}, "status": "accepted"})
			w.Write(bs)
		case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/points/"):
			// Point not indexed yet.
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cli := newTestClient(t, srv, 3)

	if err := cli.UploadDocuments(context.Background(), []map[string]any{entry("doc1", 3)}, 1); err != nil {
		t.Fatalf("soft warnings must not fail the upload: %v", err)
	}
}

func TestCreateCollection_AlreadyExistsIsIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		w.WriteHeader(http.StatusBadRequest)
		bs, _ := json.Marshal(map[string]any{
			"result": nil,
			"status": map[string]any{"error": "Wrong input: Collection `testing_qdrant_client` already exists!"},
		})
		w.Write(bs)
	}))
	defer srv.Close()

	cli := newTestClient(t, srv, 3)
	if err := cli.CreateCollection(context.Background()); err != nil {
		t.Fatalf("recreating an existing collection must not fail: %v", err)
	}
}

func TestCreateCollection_SendsVectorParams(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Write(okEnvelope(true))
	}))
	defer srv.Close()

	cli := newTestClient(t, srv, 3072)
	if err := cli.CreateCollection(context.Background()); err != nil {
		t.Fatalf("create collection: %v", err)
	}

	vectors, ok := got["vectors"].(map[string]any)
	if !ok {
		t.Fatalf("expected vectors object, got %v", got)
	}
	if vectors["size"] != float64(3072) {
		t.Fatalf("expected size 3072, got %v", vectors["size"])
	}
	if vectors["distance"] != "Cosine" {
		t.Fatalf("expected Cosine distance, got %v", vectors["distance"])
	}
}

func TestCreateCollection_UnexpectedStatusFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		bs, _ := json.Marshal(map[string]any{"status": map[string]any{"error": "service unavailable"}})
		w.Write(bs)
	}))
	defer srv.Close()

	cli := newTestClient(t, srv, 3)
	err := cli.CreateCollection(context.Background())
	var tErr *TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if tErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", tErr.StatusCode)
	}
}

func TestGetCollectionInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(okEnvelope(map[string]any{
			"status":       "green",
			"points_count": 42,
			"config": map[string]any{
				"params": map[string]any{
					"vectors": map[string]any{"size": 3, "distance": "Cosine"},
				},
			},
		}))
	}))
	defer srv.Close()

	cli := newTestClient(t, srv, 3)
	info, err := cli.GetCollectionInfo(context.Background())
	if err != nil {
		t.Fatalf("get collection info: %v", err)
	}
	if info.PointsCount != 42 {
		t.Fatalf("expected 42 points, got %d", info.PointsCount)
	}
	if info.Status != "green" {
		t.Fatalf("expected green status, got %q", info.Status)
	}
	if info.DenseSize != 3 || info.Distance != "Cosine" {
		t.Fatalf("config echo mismatch: %+v", info)
	}
}

func TestVerifyBatch_RoundTripAfterUpload(t *testing.T) {
	var mu sync.Mutex
	stored := map[string]map[string]any{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch {
		case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/points"):
			var body struct {
				Points []map[string]any `json:"points"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			for _, p := range body.Points {
				if id, ok := p["id"].(string); ok {
					stored[id] = p
				}
			}
			w.Write(okEnvelope(map[string]any{"operation_id": 1}))
		case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/points/"):
			id := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
			if p, ok := stored[id]; ok {
				w.Write(okEnvelope(map[string]any{"id": p["id"], "payload": p["payload"]}))
				return
			}
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cli := newTestClient(t, srv, 3)

	if err := cli.UploadDocuments(context.Background(), []map[string]any{entry("round-trip", 3)}, 1); err != nil {
		t.Fatalf("upload: %v", err)
	}

	record, err := cli.VerifyBatch(context.Background(), "round-trip")
	if err != nil {
		t.Fatalf("verify batch: %v", err)
	}
	if record == nil || record["id"] != "round-trip" {
		t.Fatalf("expected stored point back, got %v", record)
	}
}

func TestVerifyBatch_MissingPointReturnsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cli := newTestClient(t, srv, 3)
	record, err := cli.VerifyBatch(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("missing point is not an error: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil record, got %v", record)
	}
}

func TestVerifyBatch_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer srv.Close()

	cli := newTestClient(t, srv, 3)
	_, err := cli.VerifyBatch(context.Background(), "doc1")
	var mErr *MalformedResponseError
	if !errors.As(err, &mErr) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
	if !strings.Contains(mErr.Body, "gateway error") {
		t.Fatalf("raw body should be preserved, got %q", mErr.Body)
	}
}

func TestVerifyUpload(t *testing.T) {
	var scrollBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			w.Write(okEnvelope(map[string]any{"status": "green", "points_count": 9}))
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/points/scroll"):
			_ = json.NewDecoder(r.Body).Decode(&scrollBody)
			w.Write(okEnvelope(map[string]any{"points": []map[string]any{
				{"id": "a", "payload": map[string]any{"question": "q"}},
			}}))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cli := newTestClient(t, srv, 3)
	if err := cli.VerifyUpload(context.Background()); err != nil {
		t.Fatalf("verify upload: %v", err)
	}
	if scrollBody["with_vectors"] != false || scrollBody["with_payload"] != true {
		t.Fatalf("scroll must sample payloads without vectors, got %v", scrollBody)
	}
	if scrollBody["limit"] != float64(defaultVerifySampleSize) {
		t.Fatalf("expected default sample size %d, got %v", defaultVerifySampleSize, scrollBody["limit"])
	}
}

func TestDenseSearch(t *testing.T) {
	var searchBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&searchBody)
		w.Write(okEnvelope([]map[string]any{
			{"id": "p1", "score": 0.95, "payload": map[string]any{"answer": "a1"}},
			{"id": "p2", "score": 0.82, "payload": map[string]any{"answer": "a2"}},
		}))
	}))
	defer srv.Close()

	cli := newTestClient(t, srv, 3)
	hits, err := cli.DenseSearch(context.Background(), []float64{0.1, 0.2, 0.3}, 2)
	if err != nil {
		t.Fatalf("dense search: %v", err)
	}
	if len(hits) != 2 || hits[0].ID != "p1" || hits[0].Score != 0.95 {
		t.Fatalf("unexpected hits: %+v", hits)
	}

	vector, ok := searchBody["vector"].(map[string]any)
	if !ok || vector["name"] != "dense" {
		t.Fatalf("search must use the named dense vector, got %v", searchBody)
	}
	if searchBody["limit"] != float64(2) || searchBody["with_payload"] != true {
		t.Fatalf("unexpected search body: %v", searchBody)
	}
}

func TestDenseSearch_NoRetryOnFailure(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cli := newTestClient(t, srv, 3)
	if _, err := cli.DenseSearch(context.Background(), []float64{0.1, 0.2, 0.3}, 1); err == nil {
		t.Fatal("expected search failure to propagate")
	}
	if calls != 1 {
		t.Fatalf("search must not retry, got %d calls", calls)
	}
}

func TestBatchQueries_ZipsLabelsInOrder(t *testing.T) {
	var batchBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&batchBody)
		w.Write(okEnvelope([][]map[string]any{
			{{"id": "p1", "score": 0.9}},
			{{"id": "p2", "score": 0.8}, {"id": "p3", "score": 0.7}},
		}))
	}))
	defer srv.Close()

	cli := newTestClient(t, srv, 3)
	queries := []repository.BatchQuery{
		{Vector: []float64{0.1, 0.2, 0.3}, Query: "q1"},
		{Vector: []float64{0.4, 0.5, 0.6}, Query: "q2"},
	}
	results, err := cli.BatchQueries(context.Background(), queries, 3)
	if err != nil {
		t.Fatalf("batch queries: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Query != "q1" || results[1].Query != "q2" {
		t.Fatalf("labels not zipped in order: %+v", results)
	}
	if len(results[0].Results) != 1 || results[0].Results[0].ID != "p1" {
		t.Fatalf("first result list mismatch: %+v", results[0])
	}
	if len(results[1].Results) != 2 {
		t.Fatalf("second result list mismatch: %+v", results[1])
	}

	searches, ok := batchBody["searches"].([]any)
	if !ok || len(searches) != 2 {
		t.Fatalf("expected 2 searches in request, got %v", batchBody)
	}
	first := searches[0].(map[string]any)
	if first["vector"].(map[string]any)["name"] != "dense" {
		t.Fatalf("batch search must use named dense vectors: %v", first)
	}
	if first["limit"] != float64(3) || first["with_payload"] != true {
		t.Fatalf("unexpected search entry: %v", first)
	}
}

func TestBatchQueries_EmptyInput(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.Write(okEnvelope([][]map[string]any{}))
	}))
	defer srv.Close()

	cli := newTestClient(t, srv, 3)
	results, err := cli.BatchQueries(context.Background(), nil, 5)
	if err != nil {
		t.Fatalf("empty batch queries: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty result list, got %+v", results)
	}
	if calls != 1 {
		t.Fatalf("the request is still issued for an empty input, got %d calls", calls)
	}
}

func TestBatchQueries_ResultCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(okEnvelope([][]map[string]any{{}}))
	}))
	defer srv.Close()

	cli := newTestClient(t, srv, 3)
	_, err := cli.BatchQueries(context.Background(), []repository.BatchQuery{
		{Vector: []float64{0.1}, Query: "a"},
		{Vector: []float64{0.2}, Query: "b"},
	}, 1)
	if err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestRequest_SendsAPIKeyHeader(t *testing.T) {
	var apiKey, contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		contentType = r.Header.Get("Content-Type")
		w.Write(okEnvelope(true))
	}))
	defer srv.Close()

	cli := newTestClient(t, srv, 3)
	if err := cli.CreateCollection(context.Background()); err != nil {
		t.Fatalf("create collection: %v", err)
	}
	if apiKey != "test-key" {
		t.Fatalf("expected api-key header, got %q", apiKey)
	}
	if contentType != "application/json" {
		t.Fatalf("expected JSON content type, got %q", contentType)
	}
}

func TestBackoffDelay(t *testing.T) {
	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 1 * time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{5, 10 * time.Second}, // capped
	}
	for _, tc := range cases {
		if got := backoffDelay(tc.attempt); got != tc.want {
			t.Fatalf("attempt %d: expected %v, got %v", tc.attempt, tc.want, got)
		}
	}
}

func TestNewQdrantImpl_Validation(t *testing.T) {
	httpCli := &http.Client{}
	if _, err := NewQdrantImpl(QdrantConfig{BaseURL: "http://x", CollectionName: "c", DenseSize: 3}, nil); err == nil {
		t.Fatal("nil http client must be rejected")
	}
	if _, err := NewQdrantImpl(QdrantConfig{CollectionName: "c", DenseSize: 3}, httpCli); err == nil {
		t.Fatal("empty base URL must be rejected")
	}
	if _, err := NewQdrantImpl(QdrantConfig{BaseURL: "http://x", DenseSize: 3}, httpCli); err == nil {
		t.Fatal("empty collection must be rejected")
	}
	if _, err := NewQdrantImpl(QdrantConfig{BaseURL: "http://x", CollectionName: "c"}, httpCli); err == nil {
		t.Fatal("non-positive dense size must be rejected")
	}
}
