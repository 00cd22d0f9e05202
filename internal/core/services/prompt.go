package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
	"github.com/custodia-labs/lexdraft/internal/logger"
)

// PromptData is the value the petition template is executed against.
type PromptData struct {
	DraftType        string
	CaseType         string
	CourtName        string
	Jurisdiction     string
	Parties          string
	Petitioners      []string
	Respondents      []string
	CaseSummary      string
	KeyDates         []string
	ReliefSought     string
	LegalArticles    []string
	RulesToFollow    []string
	Precedents       string
	RequiredSections []string
	Annexures        []string
	Context          string
	StyleExcerpt     string
	Instructions     string
}

// promptFuncs are available to every prompt template.
var promptFuncs = template.FuncMap{
	"join": strings.Join,
	"inc":  func(i int) int { return i + 1 },
}

// PromptAssembler fills the petition template from case facts, retrieved
// context, drafting rules and a style sample.
type PromptAssembler struct {
	prompts    driven.PromptStore
	rules      driven.RuleStore
	samples    driven.SampleCorpus
	styleChars int
}

// NewPromptAssembler creates an assembler. rules and samples may be nil.
func NewPromptAssembler(
	prompts driven.PromptStore,
	rules driven.RuleStore,
	samples driven.SampleCorpus,
	styleChars int,
) *PromptAssembler {
	if styleChars <= 0 {
		styleChars = domain.DefaultStyleExcerptChars
	}
	return &PromptAssembler{
		prompts:    prompts,
		rules:      rules,
		samples:    samples,
		styleChars: styleChars,
	}
}

// Assemble renders the petition prompt.
func (a *PromptAssembler) Assemble(
	ctx context.Context, facts domain.CaseFacts, results []domain.RetrievalResult, annexures []string,
) (string, error) {
	if a.prompts == nil {
		return "", errors.New("no prompt store configured")
	}
	text, err := a.prompts.Load(driven.PromptPetition)
	if err != nil {
		return "", fmt.Errorf("load petition template: %w", err)
	}

	tmpl, err := template.New(driven.PromptPetition).Funcs(promptFuncs).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse petition template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, a.Data(ctx, facts, results, annexures)); err != nil {
		return "", fmt.Errorf("execute petition template: %w", err)
	}
	return buf.String(), nil
}

// Data collects the template fields. Rule and sample lookups that fail are
// logged and left empty.
func (a *PromptAssembler) Data(
	ctx context.Context, facts domain.CaseFacts, results []domain.RetrievalResult, annexures []string,
) PromptData {
	category := facts.Category()
	data := PromptData{
		DraftType:     category,
		CaseType:      facts.EffectiveCaseType(),
		CourtName:     strings.TrimSpace(facts.CourtName),
		Jurisdiction:  strings.TrimSpace(facts.Jurisdiction),
		Parties:       facts.Parties(),
		Petitioners:   facts.Petitioners,
		Respondents:   facts.Respondents,
		CaseSummary:   facts.CaseSummary,
		KeyDates:      facts.KeyDates,
		ReliefSought:  facts.ReliefSought,
		LegalArticles: facts.LegalArticles,
		RulesToFollow: facts.RulesToFollow,
		Annexures:     annexures,
		Context:       FormatContext(results),
		Instructions:  strings.TrimSpace(facts.Instructions),
	}

	if len(facts.Precedents) > 0 {
		data.Precedents = strings.Join(facts.Precedents, ", ")
	} else {
		data.Precedents = PrecedentLookup(data.CaseType)
	}

	if a.rules != nil {
		sections, err := a.rules.RequiredSections(facts.DraftType)
		if err != nil {
			logger.Warn("Loading rules for %q: %v", facts.DraftType, err)
		}
		data.RequiredSections = sections
	}

	if a.samples != nil {
		excerpt, err := a.samples.StyleExcerpt(ctx, category, a.styleChars)
		if err != nil {
			logger.Warn("Loading style sample for %q: %v", category, err)
		}
		data.StyleExcerpt = excerpt
	}
	return data
}

// FormatContext numbers retrieved results as "[n] Source: name" blocks.
func FormatContext(results []domain.RetrievalResult) string {
	blocks := make([]string, 0, len(results))
	for i, r := range results {
		blocks = append(blocks, fmt.Sprintf("[%d] Source: %s\n%s", i+1, r.Source, strings.TrimSpace(r.Text)))
	}
	return strings.Join(blocks, "\n\n")
}

// precedents are the built-in authorities per case type.
var precedents = map[string]string{
	"writ petition": "1. Maneka Gandhi v. Union of India\n2. A.K. Gopalan v. State of Madras",
	"civil suit":    "1. Ashok Kumar v. State of Rajasthan\n2. State of Maharashtra v. Dr. Praful B. Desai",
}

const precedentFallback = "Relevant precedents will be fetched based on case type and legal articles."

// PrecedentLookup returns the built-in precedents for a case type.
func PrecedentLookup(caseType string) string {
	if p, ok := precedents[domain.NormaliseCategory(caseType)]; ok {
		return p
	}
	return precedentFallback
}
