package driven

import "context"

// PromptStore provides access to prompt templates.
// Templates are loaded once and cached; Reload forces a fresh read.
type PromptStore interface {
	// Load returns the template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached templates.
	Reload()
}

// Well-known prompt names.
const (
	// PromptPetition is the drafting template. It is a Go text/template
	// executed against the assembled prompt fields.
	PromptPetition = "petition"
)

// RuleStore provides per draft type drafting rules.
type RuleStore interface {
	// RequiredSections lists the sections a draft type must contain.
	// An unknown draft type yields nil without error.
	RequiredSections(draftType string) ([]string, error)
}

// SampleCorpus is the on-disk reference sample corpus, keyed by category.
type SampleCorpus interface {
	// Categories lists the categories that have at least one sample.
	Categories() ([]string, error)

	// Samples lists every sample, for seeding the permanent partition.
	Samples() ([]Sample, error)

	// Text extracts the plain text of a sample.
	Text(ctx context.Context, sample Sample) (string, error)

	// StyleExcerpt returns the first maxChars characters of the first sample
	// (by name) in category. It returns "" when the category has no sample.
	StyleExcerpt(ctx context.Context, category string, maxChars int) (string, error)
}

// Sample is one reference document.
type Sample struct {
	// Category is the normalised category label.
	Category string

	// Name is the file name within the category directory.
	Name string

	// Path is the absolute file path.
	Path string
}

// SampleSource fetches reference samples from a remote location into a
// local corpus directory.
type SampleSource interface {
	// Pull downloads samples into dir, one sub-directory per category.
	// It returns the number of files written.
	Pull(ctx context.Context, dir string) (int, error)
}
