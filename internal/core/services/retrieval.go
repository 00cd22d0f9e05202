package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
	"github.com/custodia-labs/lexdraft/internal/core/ports/driving"
	"github.com/custodia-labs/lexdraft/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// RetrievalService merges context from both partitions.
type RetrievalService struct {
	store       *VectorStore
	defaultTopK int
}

// NewRetrievalService creates a retrieval service. defaultTopK applies when
// a caller passes a non-positive topK.
func NewRetrievalService(store *VectorStore, defaultTopK int) *RetrievalService {
	if defaultTopK <= 0 {
		defaultTopK = domain.DefaultTopK
	}
	return &RetrievalService{store: store, defaultTopK: defaultTopK}
}

// Retrieve searches the permanent partition (filtered by category when set)
// and the temporary partition (unfiltered), each for topK hits. Permanent
// results come first, repeated texts from the same source are dropped and
// the list is cut to topK. The query is embedded once; an embedding failure
// is returned. A failing partition is logged and contributes nothing.
func (s *RetrievalService) Retrieve(ctx context.Context, query string, topK int, category string) ([]domain.RetrievalResult, error) {
	logger.Section("Retrieval")
	if topK <= 0 {
		topK = s.defaultTopK
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.RetrievalResult{}, nil
	}
	category = domain.NormaliseCategory(category)
	logger.Debug("Query: %q, topK: %d, category: %q", query, topK, category)

	vec, err := s.store.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	filters := map[domain.Partition]string{
		domain.PartitionPermanent: category,
		domain.PartitionTemporary: "",
	}

	type key struct{ source, text string }
	seen := make(map[key]bool)
	results := make([]domain.RetrievalResult, 0, topK)

	for _, p := range domain.Partitions() {
		hits, err := s.store.SearchVector(ctx, p, vec, topK, filters[p])
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("Search in %s partition failed: %v", p, err)
			continue
		}
		logger.Debug("%s partition returned %d hits", p, len(hits))

		for _, h := range hits {
			k := key{h.Source, h.Text}
			if seen[k] {
				continue
			}
			seen[k] = true
			results = append(results, domain.RetrievalResult{
				Source:    h.Source,
				Text:      h.Text,
				Partition: p,
				Score:     h.Score,
			})
		}
	}

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}
