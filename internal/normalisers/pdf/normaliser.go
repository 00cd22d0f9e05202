// Package pdf extracts text from PDF files with three fallback strategies.
//
// Strategies run in order until one yields non-blank text:
//
//  1. pdftotext (Poppler) in layout mode, the highest fidelity option
//     and the one that copes with OCR text layers.
//  2. github.com/ledongthuc/pdf whole-document plain text.
//  3. github.com/ledongthuc/pdf page by page, skipping pages that fail.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
	"github.com/custodia-labs/lexdraft/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Extractor = (*Normaliser)(nil)

// ErrPDFToolNotFound indicates pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

const pdftotext = "pdftotext"

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil && stderr.Len() > 0 {
		return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return out, err
}

// strategy extracts text from a PDF already written to path.
type strategy struct {
	name string
	run  func(ctx context.Context, path string) (string, error)
}

// Normaliser handles PDF documents.
type Normaliser struct {
	runner   driven.CommandRunner
	lookPath func(string) (string, error)
	hint     sync.Once
}

// New creates a PDF normaliser that shells out with os/exec.
func New() *Normaliser {
	return NewWithRunner(execRunner{})
}

// NewWithRunner creates a PDF normaliser with a custom command runner.
func NewWithRunner(runner driven.CommandRunner) *Normaliser {
	return &Normaliser{runner: runner, lookPath: exec.LookPath}
}

// Extensions returns the extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".pdf"}
}

// Extract returns the text of the first strategy that produces any.
// It fails with domain.ErrExtractionFailed when every strategy fails.
func (n *Normaliser) Extract(ctx context.Context, content []byte) (string, error) {
	path, cleanup, err := writeTemp(content)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	defer cleanup()

	strategies := []strategy{
		{name: "pdftotext", run: n.extractPoppler},
		{name: "plain text", run: extractPlainText},
		{name: "page by page", run: extractPages},
	}

	var errs []error
	for _, s := range strategies {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := s.run(ctx, path)
		if err == nil && strings.TrimSpace(text) == "" {
			err = errors.New("no text")
		}
		if err != nil {
			logger.Debug("pdf: %s strategy failed: %v", s.name, err)
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
			continue
		}
		return strings.TrimSpace(text), nil
	}
	return "", fmt.Errorf("%w: %w", domain.ErrExtractionFailed, errors.Join(errs...))
}

func (n *Normaliser) extractPoppler(ctx context.Context, path string) (string, error) {
	if err := n.CheckAvailable(); err != nil {
		n.hint.Do(func() {
			logger.Warn("%v, using the built-in PDF parser. %s", err, InstallInstructions())
		})
		return "", err
	}
	out, err := n.runner.Run(ctx, pdftotext, "-layout", "-enc", "UTF-8", path, "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %w", err)
	}
	return string(out), nil
}

func extractPlainText(_ context.Context, path string) (text string, err error) {
	defer recoverParse(&err)

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractPages(ctx context.Context, path string) (text string, err error) {
	defer recoverParse(&err)

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := pageText(page)
		if err != nil {
			logger.Debug("pdf: skipping page %d: %v", i, err)
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func pageText(page pdf.Page) (text string, err error) {
	defer recoverParse(&err)
	return page.GetPlainText(nil)
}

// recoverParse converts a panic inside the PDF parser into an error.
// The parser panics on some malformed cross-reference tables.
func recoverParse(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("pdf parser panic: %v", r)
	}
}

func writeTemp(content []byte) (string, func(), error) {
	tmp, err := os.CreateTemp("", "lexdraft-*.pdf")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { os.Remove(tmp.Name()) }
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return tmp.Name(), cleanup, nil
}

// CheckAvailable returns ErrPDFToolNotFound if pdftotext is missing.
// Extraction still works without it through the fallback strategies.
func (n *Normaliser) CheckAvailable() error {
	if _, err := n.lookPath(pdftotext); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns platform hints for installing pdftotext.
func InstallInstructions() string {
	return "Install Poppler for layout-preserving extraction " +
		"(macOS: brew install poppler, Debian: apt install poppler-utils, Fedora: dnf install poppler-utils)"
}
