package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"DocuQA/internal/config"
	"DocuQA/internal/initial"
	"DocuQA/pkg/zlog"
)

func main() {
	ingestPath := flag.String("ingest", "", "path to a document to synthesize QA pairs from and upload")
	docName := flag.String("name", "", "logical document name stored in entry payloads")
	ask := flag.String("ask", "", "single question to search the collection with")
	askBatch := flag.String("ask-batch", "", "semicolon-separated questions for one batched search")
	topK := flag.Int("top-k", 5, "number of results per query")
	flag.Parse()

	conf := config.GetConfig()
	zlog.Init(conf.LogConfig.LogPath)
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := initial.InitClients(ctx, conf); err != nil {
		zlog.Fatal("startup failed: " + err.Error())
	}
	defer initial.CloseClients()

	switch {
	case *ingestPath != "":
		runIngest(ctx, *ingestPath, *docName)
	case *ask != "":
		runAsk(ctx, *ask, *topK)
	case *askBatch != "":
		runAskBatch(ctx, *askBatch, *topK)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func runIngest(ctx context.Context, path, docName string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		zlog.Fatal("read document failed: " + err.Error())
	}
	if docName == "" {
		docName = path
	}

	result, err := initial.Ingest.Ingest(ctx, docName, string(raw))
	if err != nil {
		zlog.Fatal("ingest failed: " + err.Error())
	}
	printJSON(result)
}

func runAsk(ctx context.Context, question string, topK int) {
	hits, err := initial.Query.Ask(ctx, question, topK)
	if err != nil {
		zlog.Fatal("search failed: " + err.Error())
	}
	printJSON(hits)
}

func runAskBatch(ctx context.Context, joined string, topK int) {
	var questions []string
	for _, q := range strings.Split(joined, ";") {
		if q = strings.TrimSpace(q); q != "" {
			questions = append(questions, q)
		}
	}

	results, err := initial.Query.AskBatch(ctx, questions, topK)
	if err != nil {
		zlog.Fatal("batch search failed: " + err.Error())
	}
	printJSON(results)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		zlog.Fatal("encode output failed: " + err.Error())
	}
	fmt.Println(string(out))
}
