package renderer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
)

// recordingWriter captures writer calls in order.
type recordingWriter struct {
	ops    []string
	tables []driven.Table
	err    error
}

func (w *recordingWriter) AddHeading(text string)   { w.ops = append(w.ops, "H:"+text) }
func (w *recordingWriter) AddParagraph(text string) { w.ops = append(w.ops, "P:"+text) }
func (w *recordingWriter) AddTable(t driven.Table) {
	w.ops = append(w.ops, "T")
	w.tables = append(w.tables, t)
}
func (w *recordingWriter) Bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return []byte(strings.Join(w.ops, "\n")), nil
}

func newRecording() (*Renderer, *recordingWriter) {
	w := &recordingWriter{}
	return New(func() driven.DocumentWriter { return w }), w
}

func cellText(c driven.Cell) string {
	var b strings.Builder
	for _, r := range c.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

func rowTexts(row []driven.Cell) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = cellText(c)
	}
	return out
}

func TestRender_EmptyInput(t *testing.T) {
	r, w := newRecording()

	out, err := r.Render("", nil)

	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Empty(t, w.ops)
}

func TestRender_IndexHeaderRowNotDuplicated(t *testing.T) {
	r, w := newRecording()
	raw := "INDEX\n" +
		"| S. No. | Particulars | Page No. |\n" +
		"| 1 | Synopsis | 1 |\n" +
		"| 2 | Grounds | 5 |"

	_, err := r.Render(raw, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"H:INDEX", "T", "P:"}, w.ops)
	require.Len(t, w.tables, 1)
	tbl := w.tables[0]
	assert.Equal(t, []float64{0.8, 3.5, 1.0}, tbl.Widths)
	require.Len(t, tbl.Rows, 3, "header plus exactly two data rows")

	for _, c := range tbl.Rows[0] {
		assert.True(t, c.Bold)
		assert.Equal(t, driven.AlignCenter, c.Align)
	}
	assert.Equal(t, []string{"1", "Synopsis", "1"}, rowTexts(tbl.Rows[1]))
	assert.Equal(t, []string{"2", "Grounds", "5"}, rowTexts(tbl.Rows[2]))
}

func TestRender_DuplicateHeaderDropped(t *testing.T) {
	r, w := newRecording()
	raw := "INDEX\n" +
		"| S. No. | Particulars | Page No. |\n" +
		"| 1 | Synopsis | 1 |\n" +
		"| S. No. | Particulars | Page No. |\n" +
		"| 2 | Grounds | 5 |"

	_, err := r.Render(raw, nil)
	require.NoError(t, err)

	require.Len(t, w.tables, 1)
	assert.Len(t, w.tables[0].Rows, 3)
}

func TestRender_SchemaHeaderWhenNoneParsed(t *testing.T) {
	r, w := newRecording()

	_, err := r.Render("LIST OF DATED AND EVENTS\n| 1 | 01.01.2020 | Notice |", nil)
	require.NoError(t, err)

	tbl := w.tables[0]
	assert.Equal(t, []float64{0.8, 1.5, 3.0}, tbl.Widths)
	assert.Equal(t, []string{"S. No.", "Date", "Event Description"}, rowTexts(tbl.Rows[0]))
	assert.Equal(t, []string{"1", "01.01.2020", "Notice"}, rowTexts(tbl.Rows[1]))
}

func TestRender_ChronologyFromKeyDates(t *testing.T) {
	r, w := newRecording()
	keyDates := []string{"01.01.2020 - Notice served", "15.02.2020 - Reply filed"}

	_, err := r.Render("LIST OF DATED AND EVENTS\n\nThe facts follow.", keyDates)
	require.NoError(t, err)

	assert.Equal(t, []string{"H:LIST OF DATED AND EVENTS", "T", "P:", "P:The facts follow."}, w.ops)
	rows := w.tables[0].Rows
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"1", "01.01.2020", "Notice served"}, rowTexts(rows[1]))
	assert.Equal(t, []string{"2", "15.02.2020", "Reply filed"}, rowTexts(rows[2]))

	// Event Description is the left-aligned column.
	assert.Equal(t, driven.AlignCenter, rows[1][1].Align)
	assert.Equal(t, driven.AlignLeft, rows[1][2].Align)
}

func TestRender_ChronologyKeyDateWithoutSeparator(t *testing.T) {
	r, w := newRecording()

	_, err := r.Render("LIST OF DATED AND EVENTS", []string{"Petition filed", "  "})
	require.NoError(t, err)

	rows := w.tables[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", UnknownDate, "Petition filed"}, rowTexts(rows[1]))
}

func TestRender_ChronologyPlaceholders(t *testing.T) {
	r, w := newRecording()

	_, err := r.Render("LIST OF DATED AND EVENTS", nil)
	require.NoError(t, err)

	rows := w.tables[0].Rows
	require.Len(t, rows, 4)
	for i, row := range rows[1:] {
		assert.Equal(t, []string{string(rune('1' + i)), PlaceholderDate, PlaceholderEvent}, rowTexts(row))
	}
}

func TestRender_DefaultIndex(t *testing.T) {
	r, w := newRecording()

	_, err := r.Render("INDEX", nil)
	require.NoError(t, err)

	rows := w.tables[0].Rows
	require.Len(t, rows, 10)
	assert.Equal(t, []string{"S. No.", "Particulars", "Page No."}, rowTexts(rows[0]))
	assert.Equal(t, []string{"9", "ANNEXURE NO. 3: Copy of the notice", "9"}, rowTexts(rows[9]))

	runs := rows[7][1].Runs
	require.Len(t, runs, 2)
	assert.Equal(t, driven.Run{Text: "ANNEXURE NO. 1:", Bold: true}, runs[0])
	assert.False(t, runs[1].Bold)
}

func TestRender_AnnexureBolding(t *testing.T) {
	r, w := newRecording()

	_, err := r.Render("INDEX\n| 1 | ANNEXURE NO. 3: Copy of the order | 12 |", nil)
	require.NoError(t, err)

	cell := w.tables[0].Rows[1][1]
	assert.Equal(t, driven.AlignLeft, cell.Align)
	require.Len(t, cell.Runs, 2)
	assert.Equal(t, "ANNEXURE NO. 3:", cell.Runs[0].Text)
	assert.True(t, cell.Runs[0].Bold)
	assert.Equal(t, "Copy of the order", strings.TrimSpace(cell.Runs[1].Text))
	assert.False(t, cell.Runs[1].Bold)

	for _, i := range []int{0, 2} {
		assert.Equal(t, driven.AlignCenter, w.tables[0].Rows[1][i].Align)
	}
}

func TestRender_ShortRowsPadded(t *testing.T) {
	r, w := newRecording()

	_, err := r.Render("INDEX\n| 1 | Synopsis |\n| 2 | Grounds | 4 | extra |", nil)
	require.NoError(t, err)

	rows := w.tables[0].Rows
	assert.Equal(t, []string{"1", "Synopsis", ""}, rowTexts(rows[1]))
	assert.Equal(t, []string{"2", "Grounds", "4"}, rowTexts(rows[2]))
}

func TestRender_WriterError(t *testing.T) {
	w := &recordingWriter{err: errors.New("disk full")}
	r := New(func() driven.DocumentWriter { return w })

	_, err := r.Render("text", nil)
	assert.Error(t, err)
}

func TestRender_NoWriter(t *testing.T) {
	_, err := New(nil).Render("text", nil)
	assert.Error(t, err)
}

type fixedClassifier struct{ kind LineKind }

func (f fixedClassifier) Classify(string) LineKind { return f.kind }

func TestRender_WithClassifier(t *testing.T) {
	w := &recordingWriter{}
	r := New(func() driven.DocumentWriter { return w }, WithClassifier(func() LineClassifier {
		return fixedClassifier{kind: LineParagraph}
	}))

	_, err := r.Render("INDEX\n| 1 | A | 1 |", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"P:INDEX", "P:| 1 | A | 1 |"}, w.ops)
}

func TestRender_FreshClassifierPerCall(t *testing.T) {
	r, w := newRecording()

	_, err := r.Render("INDEX", nil)
	require.NoError(t, err)
	w.ops, w.tables = nil, nil

	_, err = r.Render("INDEX", nil)
	require.NoError(t, err)
	assert.Equal(t, "H:INDEX", w.ops[0])
}
