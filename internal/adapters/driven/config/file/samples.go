package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
)

// Ensure SampleCorpus implements the interface.
var _ driven.SampleCorpus = (*SampleCorpus)(nil)

// SampleCorpus reads reference samples laid out as <dir>/<category>/<file>.
// Directory names are normalised, so "writ_petition" is the category "writ petition".
type SampleCorpus struct {
	dir       string
	extractor driven.ExtractorRegistry
}

// NewSampleCorpus creates a corpus over dir, extracting text with extractor.
func NewSampleCorpus(dir string, extractor driven.ExtractorRegistry) *SampleCorpus {
	return &SampleCorpus{dir: dir, extractor: extractor}
}

// Dir returns the corpus root.
func (c *SampleCorpus) Dir() string {
	return c.dir
}

// Categories lists the categories that have at least one sample, sorted.
func (c *SampleCorpus) Categories() ([]string, error) {
	samples, err := c.Samples()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var out []string
	for _, s := range samples {
		if !seen[s.Category] {
			seen[s.Category] = true
			out = append(out, s.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Samples lists every regular, non-hidden file one level below a category
// directory. Results are sorted by category directory then file name.
// A missing corpus directory yields no samples.
func (c *SampleCorpus) Samples() ([]driven.Sample, error) {
	if c.dir == "" {
		return nil, nil
	}

	dirs, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read samples dir: %w", err)
	}

	var samples []driven.Sample
	for _, d := range dirs {
		if !d.IsDir() || isHidden(d.Name()) {
			continue
		}
		catDir := filepath.Join(c.dir, d.Name())
		files, err := os.ReadDir(catDir)
		if err != nil {
			return nil, fmt.Errorf("read category %s: %w", d.Name(), err)
		}
		category := domain.NormaliseCategory(d.Name())
		for _, f := range files {
			if !f.Type().IsRegular() || isHidden(f.Name()) {
				continue
			}
			samples = append(samples, driven.Sample{
				Category: category,
				Name:     f.Name(),
				Path:     filepath.Join(catDir, f.Name()),
			})
		}
	}
	return samples, nil
}

// Text extracts the plain text of a sample.
func (c *SampleCorpus) Text(ctx context.Context, sample driven.Sample) (string, error) {
	content, err := os.ReadFile(sample.Path)
	if err != nil {
		return "", fmt.Errorf("read sample %s: %w", sample.Name, err)
	}
	return c.extractor.Extract(ctx, content, filepath.Ext(sample.Name))
}

// StyleExcerpt returns the first maxChars runes of the first sample in
// category. A non-positive maxChars returns the whole text.
func (c *SampleCorpus) StyleExcerpt(ctx context.Context, category string, maxChars int) (string, error) {
	want := domain.NormaliseCategory(category)
	if want == "" {
		return "", nil
	}

	samples, err := c.Samples()
	if err != nil {
		return "", err
	}

	for _, s := range samples {
		if s.Category != want {
			continue
		}
		text, err := c.Text(ctx, s)
		if err != nil {
			return "", err
		}
		return truncateRunes(text, maxChars), nil
	}
	return "", nil
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func isHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}
