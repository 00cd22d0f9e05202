package domain

import (
	"fmt"
	"strings"
)

// DefaultCaseType is used when the caller leaves CaseType empty.
const DefaultCaseType = "WRIT PETITION"

// Known draft types. Any other non-empty value is accepted as a free label.
const (
	DraftWritPetition     = "writ_petition"
	DraftReviewPetition   = "review_petition"
	DraftCurativePetition = "curative_petition"
	DraftCivilSuit        = "civil_suit"
	DraftBailRegular      = "bail_application_regular"
	DraftBailAnticipatory = "bail_application_anticipatory"
)

// KnownDraftTypes lists the draft types with bundled rules and samples.
func KnownDraftTypes() []string {
	return []string{
		DraftWritPetition,
		DraftReviewPetition,
		DraftCurativePetition,
		DraftCivilSuit,
		DraftBailRegular,
		DraftBailAnticipatory,
	}
}

// CaseFacts are the structured inputs a petition is drafted from.
type CaseFacts struct {
	DraftType     string   `json:"draft_type"`
	CaseType      string   `json:"case_type,omitempty"`
	CourtName     string   `json:"court_name,omitempty"`
	Jurisdiction  string   `json:"jurisdiction,omitempty"`
	Petitioners   []string `json:"petitioners"`
	Respondents   []string `json:"respondents"`
	CaseSummary   string   `json:"case_summary,omitempty"`
	KeyDates      []string `json:"key_dates,omitempty"`
	ReliefSought  string   `json:"relief_sought,omitempty"`
	LegalArticles []string `json:"legal_articles,omitempty"`
	RulesToFollow []string `json:"rules_to_follow,omitempty"`
	Precedents    []string `json:"precedents,omitempty"`

	// Instructions is free-form guidance appended to the prompt.
	Instructions string `json:"instructions,omitempty"`
}

// Validate checks the minimum facts needed to draft a petition.
func (f CaseFacts) Validate() error {
	if strings.TrimSpace(f.DraftType) == "" {
		return fmt.Errorf("%w: draft type is required", ErrInvalidInput)
	}
	if len(nonBlank(f.Petitioners)) == 0 {
		return fmt.Errorf("%w: at least one petitioner is required", ErrInvalidInput)
	}
	if len(nonBlank(f.Respondents)) == 0 {
		return fmt.Errorf("%w: at least one respondent is required", ErrInvalidInput)
	}
	return nil
}

// Category returns the retrieval category for the draft type.
func (f CaseFacts) Category() string {
	return NormaliseCategory(f.DraftType)
}

// EffectiveCaseType returns CaseType or DefaultCaseType.
func (f CaseFacts) EffectiveCaseType() string {
	if ct := strings.TrimSpace(f.CaseType); ct != "" {
		return ct
	}
	return DefaultCaseType
}

// Parties renders the cause title, e.g. "Jane Doe, John Roe vs. State".
func (f CaseFacts) Parties() string {
	return strings.Join(nonBlank(f.Petitioners), ", ") + " vs. " + strings.Join(nonBlank(f.Respondents), ", ")
}

// RetrievalQuery builds the similarity query used to fetch context.
func (f CaseFacts) RetrievalQuery() string {
	parts := []string{f.Category(), f.CaseSummary, f.ReliefSought, strings.Join(f.LegalArticles, ", ")}
	return strings.Join(nonBlank(parts), "\n")
}

// ParseList splits a comma separated form value into trimmed, non-empty items.
func ParseList(s string) []string {
	return nonBlank(strings.Split(s, ","))
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Draft is the result of a generation request.
type Draft struct {
	// RenderedText is the cleaned model output that was rendered.
	RenderedText string

	// OutputPath is the written document. The caller owns the file.
	OutputPath string

	// Prompt is the prompt sent to the model.
	Prompt string

	// Context is the retrieved material the prompt was grounded on.
	Context []RetrievalResult

	// Annexures lists the annexure file names that were ingested.
	Annexures []string
}
