package driving

import (
	"context"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

// RetrievalService answers context queries across both partitions.
type RetrievalService interface {
	// Retrieve returns at most topK results, permanent results first.
	// category filters the permanent partition only.
	Retrieve(ctx context.Context, query string, topK int, category string) ([]domain.RetrievalResult, error)
}
