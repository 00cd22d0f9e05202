package driving

import (
	"context"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

// IngestService feeds files through extraction, chunking and embedding.
type IngestService interface {
	// Ingest adds files to partition and returns the number of documents
	// ingested. A file that cannot be extracted is logged and skipped; it
	// never aborts the batch.
	Ingest(ctx context.Context, files []domain.UploadedFile, partition domain.Partition) (int, error)

	// IngestFiles is Ingest reporting which files were stored. It returns
	// the names of the ingested files in upload order.
	IngestFiles(ctx context.Context, files []domain.UploadedFile, partition domain.Partition) ([]string, error)

	// IngestDocuments adds already extracted documents.
	IngestDocuments(ctx context.Context, docs []domain.Document, partition domain.Partition) (int, error)

	// IngestPaths reads files and directories from disk and ingests them.
	// Directories are walked recursively. category tags every document when set.
	IngestPaths(ctx context.Context, paths []string, partition domain.Partition, category string) (int, error)
}
