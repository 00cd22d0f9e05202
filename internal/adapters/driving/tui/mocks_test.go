package tui

import (
	"context"
	"io"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

type mockRetrieval struct {
	results []domain.RetrievalResult
	err     error
}

func (m *mockRetrieval) Retrieve(context.Context, string, int, string) ([]domain.RetrievalResult, error) {
	return m.results, m.err
}

type mockKnowledgeBase struct {
	stats *domain.KnowledgeBaseStats
	err   error
}

func (m *mockKnowledgeBase) Stats(context.Context) (*domain.KnowledgeBaseStats, error) {
	return m.stats, m.err
}

func (m *mockKnowledgeBase) Clear(context.Context, domain.Partition) error { return nil }

func (m *mockKnowledgeBase) Export(context.Context, domain.Partition, io.Writer) (int, error) {
	return 0, nil
}

func (m *mockKnowledgeBase) Import(context.Context, domain.Partition, io.Reader) (int, error) {
	return 0, nil
}

func (m *mockKnowledgeBase) Seed(context.Context) (int, error) { return 0, nil }
