package driving

import (
	"context"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

// DraftService generates petition documents from case facts.
type DraftService interface {
	// Generate drafts a petition. Annexures are ingested into the temporary
	// partition and cited in the index. The returned output path is owned
	// by the caller.
	Generate(ctx context.Context, facts domain.CaseFacts, annexures []domain.UploadedFile) (*domain.Draft, error)

	// Render formats already drafted text into a document at outputPath.
	Render(ctx context.Context, text string, keyDates []string, outputPath string) error
}
