package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeuristicClassifier_Classify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want LineKind
	}{
		{"blank", "   ", LineBlank},
		{"prose", "The petitioner submits as follows.", LineParagraph},
		{"index heading", "INDEX", LineHeading},
		{"lowercase heading", "list of dated and events", LineHeading},
		{"row", "| 1 | Synopsis | 1 |", LineTableRow},
		{"row without outer pipes", "2 | Grounds | 4", LineTableRow},
		{"zero serial", "0 | Nothing | 0", LinePipe},
		{"separator", "|---|:---:|---|", LineSeparator},
		{"header", "| S. No. | Particulars | Page No. |", LineTableHeader},
		{"incidental pipe", "Either this | or that", LinePipe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewHeuristicClassifier()
			assert.Equal(t, tt.want, c.Classify(tt.line))
		})
	}
}

func TestHeuristicClassifier_FirstOccurrenceOnly(t *testing.T) {
	c := NewHeuristicClassifier()

	assert.Equal(t, LineHeading, c.Classify("INDEX"))
	assert.Equal(t, LineParagraph, c.Classify("As shown in the INDEX above"))
	assert.Equal(t, LineHeading, c.Classify("LIST OF DATED AND EVENTS"))
	assert.Equal(t, LineParagraph, c.Classify("LIST OF DATED AND EVENTS"))
}

func TestHeuristicClassifier_UsedMarkerDoesNotHideUnusedOne(t *testing.T) {
	c := NewHeuristicClassifier()

	assert.Equal(t, LineHeading, c.Classify("INDEX"))
	assert.Equal(t, LineHeading, c.Classify("LIST OF DATED AND EVENTS - see INDEX"))
	assert.Equal(t, LineParagraph, c.Classify("LIST OF DATED AND EVENTS - see INDEX"))
}

func TestHeuristicClassifier_RowBeatsHeading(t *testing.T) {
	c := NewHeuristicClassifier()

	assert.Equal(t, LineTableRow, c.Classify("| 2 | List of Dated and Events | 2 |"))
	// The marker was not consumed by the row.
	assert.Equal(t, LineHeading, c.Classify("LIST OF DATED AND EVENTS"))
}

func TestIsSerial(t *testing.T) {
	assert.True(t, IsSerial("1"))
	assert.True(t, IsSerial("12"))
	assert.True(t, IsSerial("007"))
	assert.False(t, IsSerial(""))
	assert.False(t, IsSerial("0"))
	assert.False(t, IsSerial("1."))
	assert.False(t, IsSerial("-1"))
	assert.False(t, IsSerial("١"))
}

func TestIsHeaderLabel(t *testing.T) {
	for _, s := range []string{"S.No", "S. No.", "Particulars", "Event Description", "Date", "Page No."} {
		assert.True(t, IsHeaderLabel(s), s)
	}
	assert.False(t, IsHeaderLabel("1"))
	assert.False(t, IsHeaderLabel(""))
}

func TestSplitRow(t *testing.T) {
	assert.Equal(t, []string{"1", "Synopsis", "1"}, SplitRow("| 1 |  Synopsis | 1 |"))
	assert.Equal(t, []string{"1", "", "3"}, SplitRow("1 | | 3"))
	assert.Nil(t, SplitRow("| --- | --- |"))
	assert.Nil(t, SplitRow("|  |"))
}

func TestLineKind_String(t *testing.T) {
	assert.Equal(t, "table-row", LineTableRow.String())
	assert.Equal(t, "unknown", LineKind(99).String())
}
