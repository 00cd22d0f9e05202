package services

import (
	"bytes"
	"context"
	"errors"
	"hash/fnv"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/custodia-labs/lexdraft/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/lexdraft/internal/core/domain"
	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
	"github.com/custodia-labs/lexdraft/internal/logger"
	"github.com/custodia-labs/lexdraft/internal/normalisers"
	"github.com/custodia-labs/lexdraft/internal/normalisers/markdown"
	"github.com/custodia-labs/lexdraft/internal/normalisers/plaintext"
	"github.com/custodia-labs/lexdraft/internal/postprocessors"
)

const embedDims = 32

// fakeEmbedder hashes words into a bag-of-words vector, so texts sharing
// words are similar.
type fakeEmbedder struct {
	mu       sync.Mutex
	failOn   string
	batchErr error
	calls    int
}

var _ driven.EmbeddingService = (*fakeEmbedder)(nil)

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.failOn != "" && strings.Contains(text, f.failOn) {
		return nil, errors.New("embedding rejected")
	}
	return bagOfWords(text), nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := f.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (f *fakeEmbedder) Dimensions() int            { return embedDims }
func (f *fakeEmbedder) ModelName() string          { return "fake" }
func (f *fakeEmbedder) Ping(context.Context) error { return nil }
func (f *fakeEmbedder) Close() error               { return nil }

func bagOfWords(text string) []float32 {
	v := make([]float32, embedDims)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(strings.Trim(w, ".,;:")))
		v[h.Sum32()%embedDims]++
	}
	return v
}

// fakeLLM returns a canned response and records prompts.
type fakeLLM struct {
	mu      sync.Mutex
	out     string
	err     error
	prompts []string
	opts    []driven.GenerateOptions
}

var _ driven.LLMService = (*fakeLLM)(nil)

func (f *fakeLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	f.opts = append(f.opts, opts)
	return f.out, f.err
}

func (f *fakeLLM) ModelName() string          { return "fake-llm" }
func (f *fakeLLM) Ping(context.Context) error { return nil }
func (f *fakeLLM) Close() error               { return nil }

// failingPartition fails every operation.
type failingPartition struct{ err error }

var _ driven.VectorPartition = failingPartition{}

func (f failingPartition) Upsert(context.Context, []domain.StoreEntry) error { return f.err }
func (f failingPartition) ReplaceSources(context.Context, []domain.StoreEntry) error {
	return f.err
}
func (f failingPartition) Search(context.Context, []float32, int, string) ([]domain.SearchHit, error) {
	return nil, f.err
}
func (f failingPartition) Count(context.Context) (int, error) { return 0, f.err }
func (f failingPartition) Stats(context.Context) (domain.PartitionStats, error) {
	return domain.PartitionStats{}, f.err
}
func (f failingPartition) Entries(context.Context) ([]domain.StoreEntry, error) { return nil, f.err }
func (f failingPartition) Clear(context.Context) error                          { return f.err }
func (f failingPartition) Close() error                                         { return nil }

// failingExtractor rejects ".bad" files.
type failingExtractor struct{}

func (failingExtractor) Extensions() []string { return []string{".bad"} }
func (failingExtractor) Extract(context.Context, []byte) (string, error) {
	return "", domain.ErrExtractionFailed
}

// newTestStore returns a dual store over in-memory partitions.
func newTestStore(emb driven.EmbeddingService) (*VectorStore, *memory.Partition, *memory.Partition) {
	perm := memory.NewPartition(domain.PartitionPermanent)
	temp := memory.NewPartition(domain.PartitionTemporary)
	return NewVectorStore(emb, perm, temp), perm, temp
}

func newTestIngest(t *testing.T, store *VectorStore) *IngestService {
	t.Helper()
	pipeline, err := postprocessors.NewDefaultPipeline(20, 5)
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	registry := normalisers.NewRegistry(plaintext.New(), markdown.New(), failingExtractor{})
	return NewIngestService(store, registry, pipeline, 2)
}

// captureLogs redirects the logger for the duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })
	return &buf
}
