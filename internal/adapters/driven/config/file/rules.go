package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
)

// Ensure RuleStore implements the interface.
var _ driven.RuleStore = (*RuleStore)(nil)

// ruleFile is the on-disk shape of rules/<draft_type>.yaml.
type ruleFile struct {
	RequiredSections []string `yaml:"required_sections"`
}

// RuleStore reads drafting rules from YAML files, one per draft type.
// Files are read on every call so edits apply without a restart.
type RuleStore struct {
	dir string
}

// NewRuleStore creates a rule store over dir.
func NewRuleStore(dir string) *RuleStore {
	return &RuleStore{dir: dir}
}

// Dir returns the rules directory.
func (s *RuleStore) Dir() string {
	return s.dir
}

// RequiredSections returns the required_sections list for draftType.
// "Writ Petition", "writ petition" and "writ_petition" share one file.
func (s *RuleStore) RequiredSections(draftType string) ([]string, error) {
	name := RuleFileName(draftType)
	if name == "" || s.dir == "" {
		return nil, nil
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read rules %s: %w", name, err)
	}

	var rules ruleFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", name, err)
	}

	sections := make([]string, 0, len(rules.RequiredSections))
	for _, sec := range rules.RequiredSections {
		if sec = strings.TrimSpace(sec); sec != "" {
			sections = append(sections, sec)
		}
	}
	return sections, nil
}

// RuleFileName maps a draft type to its rule file name.
func RuleFileName(draftType string) string {
	key := strings.Join(strings.Fields(strings.ToLower(strings.ReplaceAll(draftType, "_", " "))), "_")
	if key == "" {
		return ""
	}
	return key + ".yaml"
}
