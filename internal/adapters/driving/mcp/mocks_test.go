package mcp

import (
	"context"
	"io"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	results []domain.RetrievalResult
	err     error

	query    string
	topK     int
	category string
}

func (m *mockRetrievalService) Retrieve(
	_ context.Context, query string, topK int, category string,
) ([]domain.RetrievalResult, error) {
	m.query, m.topK, m.category = query, topK, category
	return m.results, m.err
}

// mockDraftService is a mock implementation of driving.DraftService.
type mockDraftService struct {
	draft *domain.Draft
	err   error

	facts     domain.CaseFacts
	annexures []domain.UploadedFile
}

func (m *mockDraftService) Generate(
	_ context.Context, facts domain.CaseFacts, annexures []domain.UploadedFile,
) (*domain.Draft, error) {
	m.facts, m.annexures = facts, annexures
	return m.draft, m.err
}

func (m *mockDraftService) Render(_ context.Context, _ string, _ []string, _ string) error {
	return m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	n   int
	err error

	paths     []string
	partition domain.Partition
	category  string
}

func (m *mockIngestService) Ingest(_ context.Context, files []domain.UploadedFile, _ domain.Partition) (int, error) {
	return len(files), m.err
}

func (m *mockIngestService) IngestFiles(_ context.Context, files []domain.UploadedFile, _ domain.Partition) ([]string, error) {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return names, m.err
}

func (m *mockIngestService) IngestDocuments(_ context.Context, docs []domain.Document, _ domain.Partition) (int, error) {
	return len(docs), m.err
}

func (m *mockIngestService) IngestPaths(
	_ context.Context, paths []string, partition domain.Partition, category string,
) (int, error) {
	m.paths, m.partition, m.category = paths, partition, category
	return m.n, m.err
}

// mockKnowledgeBaseService is a mock implementation of driving.KnowledgeBaseService.
type mockKnowledgeBaseService struct {
	stats *domain.KnowledgeBaseStats
	err   error
}

func (m *mockKnowledgeBaseService) Stats(_ context.Context) (*domain.KnowledgeBaseStats, error) {
	return m.stats, m.err
}

func (m *mockKnowledgeBaseService) Clear(_ context.Context, _ domain.Partition) error {
	return m.err
}

func (m *mockKnowledgeBaseService) Export(_ context.Context, _ domain.Partition, _ io.Writer) (int, error) {
	return 0, m.err
}

func (m *mockKnowledgeBaseService) Import(_ context.Context, _ domain.Partition, _ io.Reader) (int, error) {
	return 0, m.err
}

func (m *mockKnowledgeBaseService) Seed(_ context.Context) (int, error) {
	return 0, m.err
}
