package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

// KnowledgeBaseService administers the vector partitions.
type KnowledgeBaseService interface {
	// Stats summarises both partitions.
	Stats(ctx context.Context) (*domain.KnowledgeBaseStats, error)

	// Clear removes every entry from one partition. The other is untouched.
	Clear(ctx context.Context, partition domain.Partition) error

	// Export writes a compressed snapshot of a partition to w.
	// It returns the number of entries written.
	Export(ctx context.Context, partition domain.Partition, w io.Writer) (int, error)

	// Import loads a snapshot written by Export into partition.
	// Entries with existing IDs are overwritten.
	Import(ctx context.Context, partition domain.Partition, r io.Reader) (int, error)

	// Seed ingests the reference sample corpus into the permanent partition.
	Seed(ctx context.Context) (int, error)
}
