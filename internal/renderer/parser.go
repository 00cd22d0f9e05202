package renderer

import (
	"strings"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

// Parse splits raw model output into render blocks using classifier.
// A nil classifier uses a fresh HeuristicClassifier. Whitespace-only input
// yields no blocks.
func Parse(raw string, classifier LineClassifier) []domain.RenderBlock {
	if classifier == nil {
		classifier = NewHeuristicClassifier()
	}

	text := strings.TrimSpace(strings.ReplaceAll(raw, "\r\n", "\n"))
	if text == "" {
		return nil
	}

	s := &scanner{lines: strings.Split(text, "\n"), classifier: classifier}
	var blocks []domain.RenderBlock

	for s.more() {
		line := strings.TrimSpace(s.line())
		kind := s.kind()
		s.next()

		switch kind {
		case LineBlank:
			blocks = append(blocks, domain.Paragraph(""))
		case LineHeading:
			blocks = append(blocks, domain.TableSection(line, s.tableRows()))
		default:
			blocks = append(blocks, domain.Paragraph(line))
		}
	}
	return blocks
}

// scanner walks lines and classifies each one exactly once.
type scanner struct {
	lines      []string
	kinds      []LineKind
	pos        int
	classifier LineClassifier
}

func (s *scanner) more() bool   { return s.pos < len(s.lines) }
func (s *scanner) next()        { s.pos++ }
func (s *scanner) line() string { return s.lines[s.pos] }

// kind classifies the current line, caching the result so stateful
// classifiers see every line once and in order.
func (s *scanner) kind() LineKind {
	for len(s.kinds) <= s.pos {
		s.kinds = append(s.kinds, s.classifier.Classify(s.lines[len(s.kinds)]))
	}
	return s.kinds[s.pos]
}

// tableRows consumes the body of a table section: leading blank lines,
// then consecutive tabular lines, then any pipe remnants.
func (s *scanner) tableRows() [][]string {
	for s.more() && s.kind() == LineBlank {
		s.next()
	}

	var rows [][]string
	for s.more() && s.kind().IsTabular() {
		if row := SplitRow(s.line()); row != nil {
			rows = append(rows, row)
		}
		s.next()
	}

	for s.more() && (s.kind().IsTabular() || s.kind() == LinePipe) {
		s.next()
	}
	return rows
}
