// Package docx writes Office Open XML word-processing documents.
//
// The writer emits the minimal package Word and LibreOffice accept: content
// types, package relationships, the main document part and a styles part
// carrying the Normal and Table Grid styles.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.DocumentWriter = (*Writer)(nil)

// Layout constants. Sizes are in half-points, distances in twentieths of a point.
const (
	twipsPerInch = 1440

	bodyFont      = "Times New Roman"
	bodySize      = 24 // 12 pt
	cellSize      = 22 // 11 pt
	headingSize   = 28 // 14 pt
	headingAfter  = 240
	paraAfter     = 160
	firstIndent   = 360 // 0.25 in
	pageMargin    = 1 * twipsPerInch
	pageWidth     = 12240 // US Letter
	pageHeight    = 15840
	tableStyleID  = "TableGrid"
	wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	relNamespace  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// Writer accumulates body content and serialises it as a .docx package.
type Writer struct {
	items []any
}

// New creates an empty document writer.
func New() *Writer {
	return &Writer{}
}

// Factory is a driven.DocumentWriterFactory producing docx writers.
func Factory() driven.DocumentWriter {
	return New()
}

// AddHeading appends a bold 14 pt centered paragraph with 12 pt after.
func (w *Writer) AddHeading(text string) {
	w.items = append(w.items, paragraph{
		PPr: &paragraphProps{
			Spacing: &spacing{After: headingAfter},
			Jc:      &val{Val: "center"},
		},
		Runs: []run{newRun(text, true, headingSize)},
	})
}

// AddParagraph appends a body paragraph with a 0.25 in first line indent
// and 8 pt after. Empty text appends an unformatted spacer paragraph.
func (w *Writer) AddParagraph(text string) {
	if text == "" {
		w.items = append(w.items, paragraph{})
		return
	}
	w.items = append(w.items, paragraph{
		PPr: &paragraphProps{
			Spacing: &spacing{After: paraAfter},
			Ind:     &indent{FirstLine: firstIndent},
		},
		Runs: []run{newRun(text, false, 0)},
	})
}

// AddTable appends a Table Grid table. Cell text is 11 pt.
func (w *Writer) AddTable(t driven.Table) {
	tbl := table{
		Props: tableProps{
			Style:  val{Val: tableStyleID},
			Width:  width{W: 0, Type: "auto"},
			Layout: &layout{Type: "fixed"},
		},
	}

	widths := make([]int, len(t.Widths))
	for i, in := range t.Widths {
		widths[i] = inches(in)
		tbl.Grid.Cols = append(tbl.Grid.Cols, gridCol{W: widths[i]})
	}

	for _, row := range t.Rows {
		var tr tableRow
		for i, c := range row {
			cellWidth := 0
			if i < len(widths) {
				cellWidth = widths[i]
			}
			tr.Cells = append(tr.Cells, newCell(c, cellWidth))
		}
		tbl.Rows = append(tbl.Rows, tr)
	}

	w.items = append(w.items, tbl)
}

// Bytes serialises the document as a zip package.
func (w *Writer) Bytes() ([]byte, error) {
	doc := document{
		W: wordNamespace,
		R: relNamespace,
		Body: body{
			Items: w.items,
			SectPr: sectionProps{
				PgSz: pageSize{W: pageWidth, H: pageHeight},
				PgMar: pageMargins{
					Top: pageMargin, Right: pageMargin, Bottom: pageMargin, Left: pageMargin,
					Header: 720, Footer: 720,
				},
			},
		},
	}

	main, err := xml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"word/document.xml", append([]byte(xml.Header), main...)},
		{"word/styles.xml", []byte(stylesXML)},
	}
	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := f.Write(p.data); err != nil {
			return nil, fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close package: %w", err)
	}
	return buf.Bytes(), nil
}

func inches(in float64) int {
	return int(math.Round(in * twipsPerInch))
}

func newRun(text string, bold bool, size int) run {
	r := run{T: textNode{Text: text, Space: "preserve"}}
	if bold || size > 0 {
		r.RPr = &runProps{}
		if bold {
			r.RPr.B = &empty{}
		}
		if size > 0 {
			r.RPr.Sz = &val{Val: fmt.Sprint(size)}
		}
	}
	return r
}

func newCell(c driven.Cell, w int) tableCell {
	jc := "center"
	if c.Align == driven.AlignLeft {
		jc = "left"
	}

	p := paragraph{PPr: &paragraphProps{Jc: &val{Val: jc}}}
	for _, r := range c.Runs {
		p.Runs = append(p.Runs, newRun(r.Text, r.Bold || c.Bold, cellSize))
	}

	return tableCell{
		Props: cellProps{Width: width{W: w, Type: "dxa"}},
		P:     p,
	}
}
