package renderer

import (
	"strconv"
	"strings"

	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
)

// Schema fixes the columns of a recognised table section.
type Schema struct {
	// Header is the column label row.
	Header []string

	// Widths are column widths in inches.
	Widths []float64

	// TextColumn is the left-aligned description column. Annexure
	// citations are bolded only in this column.
	TextColumn int

	// defaults synthesises rows for a section with no parsed data.
	defaults func(keyDates []string) [][]string
}

// Known schemas.
var (
	IndexSchema = Schema{
		Header:     []string{"S. No.", "Particulars", "Page No."},
		Widths:     []float64{0.8, 3.5, 1.0},
		TextColumn: 1,
		defaults:   indexRows,
	}
	ChronologySchema = Schema{
		Header:     []string{"S. No.", "Date", "Event Description"},
		Widths:     []float64{0.8, 1.5, 3.0},
		TextColumn: 2,
		defaults:   chronologyRows,
	}
)

// genericWidth is the column width of tables without a known schema.
const genericWidth = 1.0

// Placeholder values for synthesised chronology rows.
const (
	PlaceholderDate  = "DD.MM.YYYY"
	PlaceholderEvent = "Event description will be added here"
	UnknownDate      = "Date not specified"
)

// defaultIndexRows is the index synthesised when the model wrote none.
var defaultIndexRows = [][]string{
	{"1", "Index", "1"},
	{"2", "List of Dated and Events", "2"},
	{"3", "Application for Interim Relief", "3"},
	{"4", "Grounds", "4"},
	{"5", "Prayer", "5"},
	{"6", "Verification", "6"},
	{"7", "ANNEXURE NO. 1: Copy of the supporting document", "7"},
	{"8", "ANNEXURE NO. 2: Copy of the relevant order", "8"},
	{"9", "ANNEXURE NO. 3: Copy of the notice", "9"},
}

// SchemaFor picks the schema for a heading line. The boolean is false when
// the heading names no known section.
func SchemaFor(heading string) (Schema, bool) {
	upper := strings.ToUpper(heading)
	switch {
	case strings.Contains(upper, MarkerIndex):
		return IndexSchema, true
	case strings.Contains(upper, MarkerChronology):
		return ChronologySchema, true
	default:
		return Schema{}, false
	}
}

// DefaultRows returns the rows synthesised for an empty section.
func DefaultRows(schema Schema, keyDates []string) [][]string {
	if schema.defaults == nil {
		return nil
	}
	return schema.defaults(keyDates)
}

func indexRows(_ []string) [][]string {
	rows := make([][]string, len(defaultIndexRows))
	for i, r := range defaultIndexRows {
		rows[i] = append([]string(nil), r...)
	}
	return rows
}

// chronologyRows builds one row per non-blank key date. An entry of the
// form "date - event" is split at the first " - ".
func chronologyRows(keyDates []string) [][]string {
	var rows [][]string
	for _, entry := range keyDates {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		date, event, ok := strings.Cut(entry, " - ")
		if ok {
			date, event = strings.TrimSpace(date), strings.TrimSpace(event)
		} else {
			date, event = UnknownDate, entry
		}
		rows = append(rows, []string{strconv.Itoa(len(rows) + 1), date, event})
	}
	if len(rows) > 0 {
		return rows
	}

	for i := 1; i <= 3; i++ {
		rows = append(rows, []string{strconv.Itoa(i), PlaceholderDate, PlaceholderEvent})
	}
	return rows
}

// LayoutTable converts the parsed rows of a section into a writer table.
// It returns false when there is nothing to draw.
//
// The first header-like row is kept as a bold, centered header and any
// later one is dropped. Known schemas always get a header row and fall
// back to DefaultRows when no data rows were parsed. Rows are padded or
// cut to the schema width.
func LayoutTable(heading string, rows [][]string, keyDates []string) (driven.Table, bool) {
	schema, known := SchemaFor(heading)
	if !known {
		if len(rows) == 0 {
			return driven.Table{}, false
		}
		schema = Schema{Header: rows[0], TextColumn: 1}
		schema.Widths = make([]float64, len(rows[0]))
		for i := range schema.Widths {
			schema.Widths[i] = genericWidth
		}
	}

	var header []string
	var data [][]string
	for i, r := range rows {
		isHeader := IsHeaderLabel(firstOf(r)) || (!known && i == 0)
		if isHeader {
			if header == nil {
				header = r
			}
			continue
		}
		data = append(data, r)
	}

	if known && len(data) == 0 {
		data = DefaultRows(schema, keyDates)
	}
	if header == nil {
		header = schema.Header
	}

	cols := len(schema.Widths)
	table := driven.Table{Widths: schema.Widths}
	table.Rows = append(table.Rows, headerCells(header, cols))
	for _, r := range data {
		table.Rows = append(table.Rows, dataCells(r, cols, schema.TextColumn))
	}
	return table, true
}

func headerCells(row []string, cols int) []driven.Cell {
	cells := make([]driven.Cell, cols)
	for i := range cells {
		cells[i] = driven.Cell{
			Runs:  []driven.Run{{Text: cellAt(row, i), Bold: true}},
			Align: driven.AlignCenter,
			Bold:  true,
		}
	}
	return cells
}

func dataCells(row []string, cols, textColumn int) []driven.Cell {
	cells := make([]driven.Cell, cols)
	for i := range cells {
		text := cellAt(row, i)
		if i == textColumn {
			cells[i] = driven.Cell{Runs: AnnexureRuns(text), Align: driven.AlignLeft}
			continue
		}
		cells[i] = driven.Cell{Runs: []driven.Run{{Text: text}}, Align: driven.AlignCenter}
	}
	return cells
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func firstOf(row []string) string {
	return cellAt(row, 0)
}
