package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// promptExt is the file extension of prompt templates.
const promptExt = ".tmpl"

// PromptStore loads prompt templates from user-editable files on disk,
// falling back to the built-in defaults.
//
// Files are only created on first Load, not in the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains the built-in templates, executed with text/template.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptPetition: `You are an experienced advocate drafting a {{.DraftType}} for filing before {{if .CourtName}}{{.CourtName}}{{else}}the appropriate court{{end}}.

Case type: {{.CaseType}}
{{- if .Jurisdiction}}
Jurisdiction: {{.Jurisdiction}}
{{- end}}
Parties: {{.Parties}}
Petitioner(s): {{join .Petitioners ", "}}
Respondent(s): {{join .Respondents ", "}}

Case summary:
{{.CaseSummary}}

Key dates: {{join .KeyDates ", "}}
Relief sought: {{.ReliefSought}}
Legal articles relied on: {{join .LegalArticles ", "}}
{{- if .RulesToFollow}}
Rules to follow: {{join .RulesToFollow ", "}}
{{- end}}

Relevant precedents:
{{.Precedents}}
{{if .RequiredSections}}
The draft must contain these sections, in order:
{{range $i, $s := .RequiredSections}}{{inc $i}}. {{$s}}
{{end}}{{end}}
{{- if .Annexures}}
Annexures filed with the petition:
{{range $i, $a := .Annexures}}ANNEXURE NO. {{inc $i}}: {{$a}}
{{end}}{{end}}
{{- if .Context}}
Reference material retrieved from earlier petitions and the uploaded documents:
{{.Context}}
{{end}}
{{- if .StyleExcerpt}}
Follow the tone, structure and formatting of this sample {{.DraftType}}:
"""
{{.StyleExcerpt}}
"""
{{end}}
Formatting instructions:
- Begin with an INDEX table using the columns S. No. | Particulars | Page No., one row per line, cells separated by "|".
- Follow it with a LIST OF DATED AND EVENTS table using the columns S. No. | Date | Event Description.
- Write the remaining sections as plain paragraphs. Do not use markdown emphasis or code formatting.
{{- if .Instructions}}
- {{.Instructions}}
{{- end}}

Draft the complete {{.DraftType}} now.`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to <lexdraft dir>/prompts.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(dir, "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// DefaultPrompt returns the built-in template for name.
func DefaultPrompt(name string) (string, bool) {
	p, ok := defaultPrompts[name]
	return p, ok
}

// Load returns the prompt template for the given name.
// Falls back to the built-in default when the file is missing or unreadable.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	prompt, err := s.loadFromFile(name)
	if err != nil || prompt == "" {
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		if err == nil {
			err = os.ErrNotExist
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and writes any missing default files.
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+promptExt)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content+"\n"), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

func (s *PromptStore) loadFromFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.promptDir, name+promptExt))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	content := `# lexdraft prompts

` + "`petition.tmpl`" + ` is the drafting prompt sent to the language model.
It is a Go text/template. Available fields:

- .DraftType .CaseType .CourtName .Jurisdiction .Parties
- .Petitioners .Respondents .KeyDates .LegalArticles .RulesToFollow (lists)
- .CaseSummary .ReliefSought .Precedents .Instructions
- .RequiredSections .Annexures (lists)
- .Context (numbered retrieved passages) and .StyleExcerpt

Helpers: ` + "`join <list> <sep>`" + ` and ` + "`inc <n>`" + `.

Delete the file to restore the built-in default.
`
	return os.WriteFile(path, []byte(content), 0600)
}
