package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"DocuQA/pkg/util"
	"DocuQA/pkg/zlog"

	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"
)

const (
	EvalRetry   = "retry"
	EvalCorrect = "correct"
)

const (
	generatorSystem = `You generate question/answer pairs from a source document. Reply with JSON only: {"response":[{"question":"...","answer":"..."}]}. Questions must be answerable from the document alone.`
	evaluatorSystem = `You evaluate synthesized question/answer pairs against a source document and reference examples. Reply with JSON only: {"reasoning":{...},"evaluation":"retry"|"correct"}. Use "retry" when pairs are unfaithful to the document or poorly formed.`
	refinerSystem   = `You rework question/answer pairs using the evaluator's reasoning. Reply with JSON only: {"response":[{"question":"...","answer":"..."}],"reasoning":{...}}.`
)

type synthesisState struct {
	Req *SynthesisRequest

	Examples  []QAPair
	Generated []QAPair

	Evaluation  *EvaluatorResponse
	RefineCount int
	MaxRefine   int

	Entries []map[string]any

	Start time.Time
	Err   error
}

type generationResponse struct {
	Response []QAPair `json:"response"`
}

func (p *SynthesisPipeline) prepareNode(ctx context.Context, req *SynthesisRequest, _ ...any) (*synthesisState, error) {
	st := &synthesisState{
		Req:       req,
		MaxRefine: p.maxRefine,
		Start:     time.Now(),
	}
	if req == nil {
		st.Err = fmt.Errorf("nil request")
		return st, nil
	}

	req.DocName = strings.TrimSpace(req.DocName)
	if strings.TrimSpace(req.Document) == "" {
		st.Err = fmt.Errorf("document text is empty")
		return st, nil
	}
	if req.DocName == "" {
		st.Err = fmt.Errorf("doc name is required")
		return st, nil
	}

	if p.examplesPath != "" {
		examples, err := sampleExamples(p.examplesPath, exampleSampleSize)
		if err != nil {
			st.Err = fmt.Errorf("load examples: %w", err)
			return st, nil
		}
		st.Examples = examples
	}

	zlog.Info("qa synthesis started",
		zap.String("doc_name", req.DocName),
		zap.Int("doc_len", len(req.Document)),
		zap.Int("examples", len(st.Examples)))
	return st, nil
}

func (p *SynthesisPipeline) generateNode(ctx context.Context, st *synthesisState, _ ...any) (*synthesisState, error) {
	if st == nil {
		return &synthesisState{Err: fmt.Errorf("nil state"), Start: time.Now()}, nil
	}
	if st.Err != nil {
		return st, nil
	}

	user := fmt.Sprintf("Source document:\n%s", st.Req.Document)
	if len(st.Examples) > 0 {
		user += "\n\nReference examples:\n" + mustJSON(st.Examples)
	}

	var resp generationResponse
	if err := p.callModel(ctx, generatorSystem, user, &resp); err != nil {
		st.Err = fmt.Errorf("generate: %w", err)
		return st, nil
	}
	if len(resp.Response) == 0 {
		st.Err = fmt.Errorf("generate: model returned no pairs")
		return st, nil
	}

	st.Generated = resp.Response
	zlog.Info("qa pairs generated", zap.String("doc_name", st.Req.DocName), zap.Int("pairs", len(st.Generated)))
	return st, nil
}

func (p *SynthesisPipeline) evaluateNode(ctx context.Context, st *synthesisState, _ ...any) (*synthesisState, error) {
	if st == nil {
		return &synthesisState{Err: fmt.Errorf("nil state"), Start: time.Now()}, nil
	}
	if st.Err != nil {
		return st, nil
	}

	user := fmt.Sprintf("Source document:\n%s\n\nPairs to evaluate:\n%s", st.Req.Document, mustJSON(st.Generated))
	if len(st.Examples) > 0 {
		user += "\n\nReference examples:\n" + mustJSON(st.Examples)
	}

	var resp EvaluatorResponse
	if err := p.callModel(ctx, evaluatorSystem, user, &resp); err != nil {
		st.Err = fmt.Errorf("evaluate: %w", err)
		return st, nil
	}

	resp.Evaluation = strings.ToLower(strings.TrimSpace(resp.Evaluation))
	if resp.Evaluation != EvalRetry && resp.Evaluation != EvalCorrect {
		st.Err = fmt.Errorf("evaluate: unexpected verdict %q", resp.Evaluation)
		return st, nil
	}

	st.Evaluation = &resp
	zlog.Info("qa pairs evaluated",
		zap.String("doc_name", st.Req.DocName),
		zap.String("verdict", resp.Evaluation),
		zap.Int("refine_count", st.RefineCount))
	return st, nil
}

func (p *SynthesisPipeline) refineNode(ctx context.Context, st *synthesisState, _ ...any) (*synthesisState, error) {
	if st == nil {
		return &synthesisState{Err: fmt.Errorf("nil state"), Start: time.Now()}, nil
	}
	if st.Err != nil {
		return st, nil
	}

	st.RefineCount++

	reasoning := "{}"
	if st.Evaluation != nil {
		reasoning = mustJSON(st.Evaluation.Reasoning)
	}
	user := fmt.Sprintf(
		"Source document:\n%s\n\nPairs to rework:\n%s\n\nEvaluator reasoning:\n%s",
		st.Req.Document, mustJSON(st.Generated), reasoning)

	var resp RefinerResponse
	if err := p.callModel(ctx, refinerSystem, user, &resp); err != nil {
		st.Err = fmt.Errorf("refine: %w", err)
		return st, nil
	}
	if len(resp.Response) == 0 {
		st.Err = fmt.Errorf("refine: model returned no pairs")
		return st, nil
	}

	st.Generated = resp.Response
	zlog.Info("qa pairs refined",
		zap.String("doc_name", st.Req.DocName),
		zap.Int("refine_count", st.RefineCount),
		zap.Int("pairs", len(st.Generated)))
	return st, nil
}

func (p *SynthesisPipeline) conformNode(ctx context.Context, st *synthesisState, _ ...any) (*synthesisState, error) {
	if st == nil {
		return &synthesisState{Err: fmt.Errorf("nil state"), Start: time.Now()}, nil
	}
	if st.Err != nil {
		return st, nil
	}

	texts := make([]string, 0, len(st.Generated))
	for _, pair := range st.Generated {
		texts = append(texts, pair.Question+"\n"+pair.Answer)
	}

	vecs, err := p.embedder.EmbedStrings(ctx, texts)
	if err != nil {
		st.Err = fmt.Errorf("embed pairs: %w", err)
		return st, nil
	}
	if len(vecs) != len(st.Generated) {
		st.Err = fmt.Errorf("embed pairs: got %d vectors for %d pairs", len(vecs), len(st.Generated))
		return st, nil
	}

	entries := make([]map[string]any, 0, len(st.Generated))
	for i, pair := range st.Generated {
		entries = append(entries, map[string]any{
			"id":     util.GenerateUUID(),
			"vector": map[string][]float64{"dense": vecs[i]},
			"payload": map[string]any{
				"question": pair.Question,
				"answer":   pair.Answer,
				"doc_name": st.Req.DocName,
				"category": "synthetic_qa",
			},
		})
	}
	st.Entries = entries
	return st, nil
}

func (p *SynthesisPipeline) uploadNode(ctx context.Context, st *synthesisState, _ ...any) (*SynthesisResult, error) {
	if st == nil {
		return &SynthesisResult{Err: fmt.Errorf("nil state")}, nil
	}

	res := &SynthesisResult{
		Pairs:       st.Generated,
		Refinements: st.RefineCount,
	}
	if st.Req != nil {
		res.DocName = st.Req.DocName
	}
	if st.Err != nil {
		res.Err = st.Err
		res.DurationMs = time.Since(st.Start).Milliseconds()
		return res, nil
	}

	if err := p.store.UploadDocuments(ctx, st.Entries, p.batchSize); err != nil {
		res.Err = err
		res.DurationMs = time.Since(st.Start).Milliseconds()
		return res, nil
	}
	res.Uploaded = len(st.Entries)
	res.DurationMs = time.Since(st.Start).Milliseconds()

	zlog.Info("qa synthesis done",
		zap.String("doc_name", res.DocName),
		zap.Int("pairs", len(res.Pairs)),
		zap.Int("refinements", res.Refinements),
		zap.Int("uploaded", res.Uploaded),
		zap.Int64("ms", res.DurationMs))
	return res, nil
}

// callModel runs one structured chat exchange and decodes the model's JSON
// reply into out. Code fences around the JSON are tolerated.
func (p *SynthesisPipeline) callModel(ctx context.Context, system, user string, out any) error {
	msgs := []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(user),
	}
	resp, err := p.chatModel.Generate(ctx, msgs)
	if err != nil {
		return err
	}
	return decodeModelJSON(resp.Content, out)
}

func decodeModelJSON(content string, out any) error {
	text := strings.TrimSpace(content)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("decode model response: %w", err)
	}
	return nil
}

func mustJSON(v any) string {
	bs, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(bs)
}
