package driven

// Alignment is horizontal text alignment.
type Alignment int

// Supported alignments.
const (
	AlignLeft Alignment = iota
	AlignCenter
)

// Run is a span of text sharing formatting.
type Run struct {
	Text string
	Bold bool
}

// Cell is one table cell.
type Cell struct {
	Runs  []Run
	Align Alignment
	Bold  bool
}

// Table is a bordered table with fixed column widths.
type Table struct {
	// Widths are column widths in inches.
	Widths []float64

	// Rows are emitted in order. Every row has len(Widths) cells.
	Rows [][]Cell
}

// DocumentWriter builds a formatted word-processor document.
// Implementations are single-use and not safe for concurrent use.
type DocumentWriter interface {
	// AddHeading appends a bold, centered section heading.
	AddHeading(text string)

	// AddParagraph appends a body paragraph. Empty text appends a spacer.
	AddParagraph(text string)

	// AddTable appends a table.
	AddTable(table Table)

	// Bytes serialises the document.
	Bytes() ([]byte, error)
}

// DocumentWriterFactory creates a fresh writer per render.
type DocumentWriterFactory func() DocumentWriter

// DocumentRenderer lays out raw model output as a document.
type DocumentRenderer interface {
	// Render returns the serialised document. keyDates feed the chronology
	// table when the text has none.
	Render(raw string, keyDates []string) ([]byte, error)
}
