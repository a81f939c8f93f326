package pipeline

import (
	"context"
	"fmt"
	"strings"

	"DocuQA/internal/modules/qa/domain/repository"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
)

// QAPair is one synthesized question/answer unit.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// EvaluatorResponse is the evaluator stage's structured verdict.
// Evaluation is either "retry" or "correct".
type EvaluatorResponse struct {
	Reasoning  map[string]any `json:"reasoning"`
	Evaluation string         `json:"evaluation"`
}

// RefinerResponse carries the reworked pairs plus the reasoning for the
// changes.
type RefinerResponse struct {
	Response  []QAPair       `json:"response"`
	Reasoning map[string]any `json:"reasoning"`
}

type SynthesisRequest struct {
	DocName  string
	Document string
}

type SynthesisResult struct {
	DocName     string   `json:"doc_name"`
	Pairs       []QAPair `json:"pairs"`
	Refinements int      `json:"refinements"`
	Uploaded    int      `json:"uploaded"`
	DurationMs  int64    `json:"duration_ms"`
	Err         error    `json:"-"`
}

// SynthesisPipeline turns a source document into QA pairs via a
// generate → evaluate → refine loop with a bounded retry counter, then
// embeds the pairs and uploads them to the vector store.
type SynthesisPipeline struct {
	chatModel model.BaseChatModel
	embedder  embedding.Embedder
	store     repository.VectorStore

	batchSize    int
	maxRefine    int
	examplesPath string

	r compose.Runnable[*SynthesisRequest, *SynthesisResult]
}

func NewSynthesisPipeline(
	chatModel model.BaseChatModel,
	embedder embedding.Embedder,
	store repository.VectorStore,
	batchSize int,
	maxRefine int,
	examplesPath string,
) (*SynthesisPipeline, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is nil")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder is nil")
	}
	if store == nil {
		return nil, fmt.Errorf("vector store is nil")
	}
	if batchSize <= 0 {
		batchSize = 64
	}
	if maxRefine <= 0 {
		maxRefine = 3
	}

	p := &SynthesisPipeline{
		chatModel:    chatModel,
		embedder:     embedder,
		store:        store,
		batchSize:    batchSize,
		maxRefine:    maxRefine,
		examplesPath: strings.TrimSpace(examplesPath),
	}
	r, err := p.buildGraph(context.Background())
	if err != nil {
		return nil, err
	}
	p.r = r
	return p, nil
}

func (p *SynthesisPipeline) Run(ctx context.Context, req *SynthesisRequest) (*SynthesisResult, error) {
	if req == nil {
		return &SynthesisResult{Err: fmt.Errorf("request is nil")}, nil
	}
	result, err := p.r.Invoke(ctx, req)
	if err != nil {
		return &SynthesisResult{DocName: req.DocName, Err: err}, nil
	}
	return result, nil
}

func (p *SynthesisPipeline) buildGraph(ctx context.Context) (compose.Runnable[*SynthesisRequest, *SynthesisResult], error) {
	const (
		Prepare  = "Prepare"
		Generate = "Generate"
		Evaluate = "Evaluate"
		Refine   = "Refine"
		Conform  = "Conform"
		Upload   = "Upload"
	)

	g := compose.NewGraph[*SynthesisRequest, *SynthesisResult]()

	_ = g.AddLambdaNode(Prepare, compose.InvokableLambdaWithOption(p.prepareNode), compose.WithNodeName(Prepare))
	_ = g.AddLambdaNode(Generate, compose.InvokableLambdaWithOption(p.generateNode), compose.WithNodeName(Generate))
	_ = g.AddLambdaNode(Evaluate, compose.InvokableLambdaWithOption(p.evaluateNode), compose.WithNodeName(Evaluate))
	_ = g.AddLambdaNode(Refine, compose.InvokableLambdaWithOption(p.refineNode), compose.WithNodeName(Refine))
	_ = g.AddLambdaNode(Conform, compose.InvokableLambdaWithOption(p.conformNode), compose.WithNodeName(Conform))
	_ = g.AddLambdaNode(Upload, compose.InvokableLambdaWithOption(p.uploadNode), compose.WithNodeName(Upload))

	_ = g.AddEdge(compose.START, Prepare)
	_ = g.AddEdge(Prepare, Generate)
	_ = g.AddEdge(Generate, Evaluate)

	// The evaluator either accepts the pairs or sends them around the
	// refine loop, bounded by maxRefine so the graph always terminates.
	shouldRefine := func(ctx context.Context, st *synthesisState) (string, error) {
		if st.Err == nil &&
			st.Evaluation != nil &&
			st.Evaluation.Evaluation == EvalRetry &&
			st.RefineCount < st.MaxRefine {
			return Refine, nil
		}
		return Conform, nil
	}
	branch := compose.NewGraphBranch(shouldRefine, map[string]bool{
		Refine:  true,
		Conform: true,
	})
	_ = g.AddBranch(Evaluate, branch)
	_ = g.AddEdge(Refine, Evaluate)

	_ = g.AddEdge(Conform, Upload)
	_ = g.AddEdge(Upload, compose.END)

	maxSteps := 6 + 2*p.maxRefine
	return g.Compile(ctx,
		compose.WithGraphName("QASynthesisPipeline"),
		compose.WithNodeTriggerMode(compose.AnyPredecessor),
		compose.WithMaxRunSteps(maxSteps))
}
