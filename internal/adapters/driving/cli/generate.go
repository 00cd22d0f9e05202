package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

var (
	generateFactsPath string
	generateOut       string
	generatePrint     bool
	generateAnnexures []string
	generateFacts     domain.CaseFacts
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft a petition from case facts",
	Long: `Drafts a petition and writes it as a .docx document.

Case facts are read as JSON from --facts, or from stdin when it is piped.
Flags override individual fields. Annexure files are ingested into the
temporary partition and listed in the INDEX.

Example:
  lexdraft generate --draft-type writ_petition \
    --petitioner "Asha Rao" --respondent "Union of India" \
    --court "High Court of Delhi" --annexure detention_order.pdf

  cat facts.json | lexdraft generate --out petition.docx`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&generateFactsPath, "facts", "", `case facts JSON file ("-" for stdin)`)
	f.StringVarP(&generateOut, "out", "o", "", "move the generated document to this path")
	f.BoolVar(&generatePrint, "print", false, "print the drafted text")
	f.StringSliceVarP(&generateAnnexures, "annexure", "a", nil, "annexure file (repeatable)")

	f.StringVar(&generateFacts.DraftType, "draft-type", "", "draft type, e.g. writ_petition")
	f.StringVar(&generateFacts.CaseType, "case-type", "", "case type heading (default WRIT PETITION)")
	f.StringVar(&generateFacts.CourtName, "court", "", "court name")
	f.StringVar(&generateFacts.Jurisdiction, "jurisdiction", "", "jurisdiction")
	f.StringArrayVar(&generateFacts.Petitioners, "petitioner", nil, "petitioner name (repeatable)")
	f.StringArrayVar(&generateFacts.Respondents, "respondent", nil, "respondent name (repeatable)")
	f.StringVar(&generateFacts.CaseSummary, "summary", "", "case summary")
	f.StringArrayVar(&generateFacts.KeyDates, "key-date", nil, `key date as "DATE - EVENT" (repeatable)`)
	f.StringVar(&generateFacts.ReliefSought, "relief", "", "relief sought")
	f.StringArrayVar(&generateFacts.LegalArticles, "article", nil, "legal article relied on (repeatable)")
	f.StringArrayVar(&generateFacts.RulesToFollow, "rule", nil, "drafting rule to follow (repeatable)")
	f.StringArrayVar(&generateFacts.Precedents, "precedent", nil, "precedent to cite (repeatable)")
	f.StringVar(&generateFacts.Instructions, "instructions", "", "additional drafting instructions")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	if draftService == nil {
		return errNotConfigured("draft")
	}

	facts, err := loadFacts(cmd)
	if err != nil {
		return err
	}
	mergeFacts(&facts, generateFacts)

	annexures, err := readUploads(generateAnnexures)
	if err != nil {
		return err
	}

	draft, err := draftService.Generate(cmd.Context(), facts, annexures)
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	path := draft.OutputPath
	if generateOut != "" {
		if err := moveFile(path, generateOut); err != nil {
			return err
		}
		path = generateOut
	}

	if generatePrint {
		cmd.Println(draft.RenderedText)
		cmd.Println()
	}
	if len(draft.Annexures) > 0 {
		cmd.Printf("Annexures: %d ingested\n", len(draft.Annexures))
	}
	cmd.Printf("Draft written to %s\n", path)
	return nil
}

// loadFacts reads case facts from --facts or piped stdin. It returns empty
// facts when neither is given.
func loadFacts(cmd *cobra.Command) (domain.CaseFacts, error) {
	var facts domain.CaseFacts

	var r io.Reader
	switch {
	case generateFactsPath == "-":
		r = cmd.InOrStdin()
	case generateFactsPath != "":
		f, err := os.Open(generateFactsPath)
		if err != nil {
			return facts, fmt.Errorf("open facts: %w", err)
		}
		defer f.Close()
		r = f
	case stdinPiped(cmd):
		r = cmd.InOrStdin()
	default:
		return facts, nil
	}

	if err := json.NewDecoder(r).Decode(&facts); err != nil {
		if errors.Is(err, io.EOF) {
			return facts, nil
		}
		return facts, fmt.Errorf("%w: parse facts JSON: %v", domain.ErrInvalidInput, err)
	}
	return facts, nil
}

// stdinPiped reports whether stdin is something other than a terminal.
func stdinPiped(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return true
	}
	if term.IsTerminal(int(f.Fd())) {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&(os.ModeNamedPipe|os.ModeCharDevice) == os.ModeNamedPipe || info.Mode().IsRegular()
}

// mergeFacts copies every non-empty field of override into facts.
func mergeFacts(facts *domain.CaseFacts, override domain.CaseFacts) {
	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setSlice := func(dst *[]string, v []string) {
		if len(v) > 0 {
			*dst = v
		}
	}

	setString(&facts.DraftType, override.DraftType)
	setString(&facts.CaseType, override.CaseType)
	setString(&facts.CourtName, override.CourtName)
	setString(&facts.Jurisdiction, override.Jurisdiction)
	setString(&facts.CaseSummary, override.CaseSummary)
	setString(&facts.ReliefSought, override.ReliefSought)
	setString(&facts.Instructions, override.Instructions)
	setSlice(&facts.Petitioners, override.Petitioners)
	setSlice(&facts.Respondents, override.Respondents)
	setSlice(&facts.KeyDates, override.KeyDates)
	setSlice(&facts.LegalArticles, override.LegalArticles)
	setSlice(&facts.RulesToFollow, override.RulesToFollow)
	setSlice(&facts.Precedents, override.Precedents)
}

// readUploads loads files for ingestion, keeping only the base name.
func readUploads(paths []string) ([]domain.UploadedFile, error) {
	files := make([]domain.UploadedFile, 0, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read annexure: %w", err)
		}
		files = append(files, domain.UploadedFile{Name: filepath.Base(p), Content: content})
	}
	return files, nil
}

// moveFile renames src to dst, copying when they are on different devices.
func moveFile(src, dst string) error {
	if dir := filepath.Dir(dst); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read draft: %w", err)
	}
	if err := os.WriteFile(dst, data, 0600); err != nil {
		return fmt.Errorf("write draft: %w", err)
	}
	return os.Remove(src)
}
