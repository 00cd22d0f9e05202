package renderer

import (
	"strings"
)

// LineKind is the classification of one line of model output.
type LineKind int

const (
	// LineBlank is an empty or whitespace-only line.
	LineBlank LineKind = iota

	// LineParagraph is ordinary prose.
	LineParagraph

	// LineHeading opens a table section.
	LineHeading

	// LineTableRow is a pipe-delimited row whose first cell is a serial number.
	LineTableRow

	// LineTableHeader is a pipe-delimited row whose first cell reads like a column label.
	LineTableHeader

	// LineSeparator is a rule made only of pipes, dashes and spaces.
	LineSeparator

	// LinePipe is any other line containing a pipe.
	LinePipe
)

// String returns the kind name.
func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineParagraph:
		return "paragraph"
	case LineHeading:
		return "heading"
	case LineTableRow:
		return "table-row"
	case LineTableHeader:
		return "table-header"
	case LineSeparator:
		return "separator"
	case LinePipe:
		return "pipe"
	default:
		return "unknown"
	}
}

// IsTabular reports whether the kind may appear inside a table section.
func (k LineKind) IsTabular() bool {
	return k == LineTableRow || k == LineTableHeader || k == LineSeparator
}

// LineClassifier labels lines of model output. Implementations may be
// stateful: lines are classified exactly once, in document order.
type LineClassifier interface {
	Classify(line string) LineKind
}

// Section markers, checked in this order.
const (
	MarkerIndex      = "INDEX"
	MarkerChronology = "LIST OF DATED AND EVENTS"
)

// headerTokens identify a header row by its lowercased first cell.
var headerTokens = []string{"s.no", "s. no", "particulars", "description", "date", "page"}

// HeuristicClassifier recognises headings by marker substring and table
// rows by a leading serial number. Each marker opens at most one section;
// a line whose only markers are already used is prose.
type HeuristicClassifier struct {
	markers []string
	used    map[string]bool
}

// NewHeuristicClassifier creates a classifier for the standard markers.
func NewHeuristicClassifier() *HeuristicClassifier {
	return &HeuristicClassifier{
		markers: []string{MarkerIndex, MarkerChronology},
		used:    make(map[string]bool),
	}
}

// Classify labels line. A table row wins over a heading so that index
// entries such as "2 | List of Dated and Events | 2" stay in their table.
func (c *HeuristicClassifier) Classify(line string) LineKind {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return LineBlank
	}

	if strings.Contains(trimmed, "|") {
		if IsSeparator(trimmed) {
			return LineSeparator
		}
		if IsSerial(firstCell(trimmed)) {
			return LineTableRow
		}
	}

	upper := strings.ToUpper(trimmed)
	for _, m := range c.markers {
		if strings.Contains(upper, m) {
			if c.used[m] {
				continue
			}
			c.used[m] = true
			return LineHeading
		}
	}

	if strings.Contains(trimmed, "|") {
		if IsHeaderLabel(firstCell(trimmed)) {
			return LineTableHeader
		}
		return LinePipe
	}
	return LineParagraph
}

// IsSeparator reports whether line holds nothing but pipes, dashes, colons and spaces.
func IsSeparator(line string) bool {
	return strings.Trim(line, "|-: \t") == ""
}

// IsSerial reports whether s is a positive integer written in ASCII digits.
func IsSerial(s string) bool {
	if s == "" {
		return false
	}
	nonZero := false
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
		if r != '0' {
			nonZero = true
		}
	}
	return nonZero
}

// IsHeaderLabel reports whether a first cell reads like a column label.
func IsHeaderLabel(cell string) bool {
	lower := strings.ToLower(strings.TrimSpace(cell))
	if lower == "" {
		return false
	}
	for _, tok := range headerTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

// SplitRow splits a pipe-delimited line into trimmed cells, dropping empty
// cells at either end. It returns nil for a separator row.
func SplitRow(line string) []string {
	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}

	for len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	for len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}

	for _, c := range cells {
		if strings.Trim(c, "-: ") != "" {
			return cells
		}
	}
	return nil
}

// firstCell returns the first non-empty cell of a pipe-delimited line.
func firstCell(line string) string {
	for _, p := range strings.Split(line, "|") {
		if p = strings.TrimSpace(p); p != "" {
			return p
		}
	}
	return ""
}
