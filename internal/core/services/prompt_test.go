package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexdraft/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lexdraft/internal/core/domain"
	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
	"github.com/custodia-labs/lexdraft/internal/normalisers"
)

type stubPrompts struct {
	text string
	err  error
}

func (s stubPrompts) Load(string) (string, error) { return s.text, s.err }
func (s stubPrompts) Reload()                     {}

type stubRules struct {
	sections []string
	err      error
}

func (s stubRules) RequiredSections(string) ([]string, error) { return s.sections, s.err }

func testFacts() domain.CaseFacts {
	return domain.CaseFacts{
		DraftType:     "writ_petition",
		CourtName:     "High Court of Delhi",
		Petitioners:   []string{"Asha Rao"},
		Respondents:   []string{"Union of India", "State of Delhi"},
		CaseSummary:   "The petitioner was detained without a hearing.",
		KeyDates:      []string{"01.01.2020 - Detention order passed"},
		ReliefSought:  "Quash the detention order",
		LegalArticles: []string{"Article 21", "Article 22"},
	}
}

func TestPrecedentLookup(t *testing.T) {
	tests := []struct {
		caseType string
		contains string
	}{
		{"WRIT PETITION", "Maneka Gandhi v. Union of India"},
		{"writ_petition", "A.K. Gopalan v. State of Madras"},
		{"Civil Suit", "Praful B. Desai"},
		{"Bail Application", "Relevant precedents will be fetched"},
	}

	for _, tt := range tests {
		t.Run(tt.caseType, func(t *testing.T) {
			assert.Contains(t, PrecedentLookup(tt.caseType), tt.contains)
		})
	}
}

func TestFormatContext(t *testing.T) {
	got := FormatContext([]domain.RetrievalResult{
		{Source: "a.txt", Text: " first \n"},
		{Source: "b.txt", Text: "second"},
	})

	assert.Equal(t, "[1] Source: a.txt\nfirst\n\n[2] Source: b.txt\nsecond", got)
	assert.Empty(t, FormatContext(nil))
}

func TestPromptAssembler_DefaultTemplate(t *testing.T) {
	prompts, err := file.NewPromptStore(t.TempDir())
	require.NoError(t, err)

	samplesDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(samplesDir, "writ_petition"), 0750))
	require.NoError(t, os.WriteFile(filepath.Join(samplesDir, "writ_petition", "a.txt"),
		[]byte("IN THE HIGH COURT OF JUDICATURE sample body"), 0600))
	samples := file.NewSampleCorpus(samplesDir, normalisers.NewDefaultRegistry())

	a := NewPromptAssembler(prompts, stubRules{sections: []string{"Synopsis", "Prayer"}}, samples, 12)
	results := []domain.RetrievalResult{{Source: "Sample Writ Petition - a.txt", Text: "retrieved body"}}

	prompt, err := a.Assemble(context.Background(), testFacts(), results, []string{"order.pdf"})
	require.NoError(t, err)

	assert.Contains(t, prompt, "drafting a writ petition")
	assert.Contains(t, prompt, "High Court of Delhi")
	assert.Contains(t, prompt, "Case type: WRIT PETITION")
	assert.Contains(t, prompt, "Asha Rao vs. Union of India, State of Delhi")
	assert.Contains(t, prompt, "Key dates: 01.01.2020 - Detention order passed")
	assert.Contains(t, prompt, "Article 21, Article 22")
	assert.Contains(t, prompt, "Maneka Gandhi")
	assert.Contains(t, prompt, "1. Synopsis\n2. Prayer")
	assert.Contains(t, prompt, "ANNEXURE NO. 1: order.pdf")
	assert.Contains(t, prompt, "[1] Source: Sample Writ Petition - a.txt\nretrieved body")
	assert.Contains(t, prompt, "IN THE HIGH ")
	assert.NotContains(t, prompt, "IN THE HIGH COURT")
}

func TestPromptAssembler_ExplicitPrecedents(t *testing.T) {
	a := NewPromptAssembler(stubPrompts{text: "{{.Precedents}}"}, nil, nil, 0)
	facts := testFacts()
	facts.Precedents = []string{"K.S. Puttaswamy v. Union of India", "Kesavananda Bharati"}

	prompt, err := a.Assemble(context.Background(), facts, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "K.S. Puttaswamy v. Union of India, Kesavananda Bharati", prompt)
}

func TestPromptAssembler_RuleErrorIsLogged(t *testing.T) {
	logs := captureLogs(t)
	a := NewPromptAssembler(stubPrompts{text: "{{len .RequiredSections}}"}, stubRules{err: errors.New("bad yaml")}, nil, 0)

	prompt, err := a.Assemble(context.Background(), testFacts(), nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "0", prompt)
	assert.Contains(t, logs.String(), "bad yaml")
}

func TestPromptAssembler_Errors(t *testing.T) {
	tests := []struct {
		name    string
		prompts driven.PromptStore
	}{
		{"no store", nil},
		{"load failure", stubPrompts{err: errors.New("unreadable")}},
		{"bad template", stubPrompts{text: "{{.Missing"}},
		{"unknown field", stubPrompts{text: "{{.NoSuchField}}"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewPromptAssembler(tt.prompts, nil, nil, 0)
			_, err := a.Assemble(context.Background(), testFacts(), nil, nil)
			assert.Error(t, err)
		})
	}
}
