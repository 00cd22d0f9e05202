package domain

// BlockKind tags a RenderBlock.
type BlockKind int

const (
	// BlockParagraph is a line of body text. An empty Text is a spacer.
	BlockParagraph BlockKind = iota

	// BlockTable is a recognised section heading with its parsed rows.
	BlockTable
)

// RenderBlock is one parsed unit of model output.
type RenderBlock struct {
	Kind BlockKind

	// Text is set for paragraphs.
	Text string

	// Heading is the heading line of a table section.
	Heading string

	// Rows holds the trimmed cells of each parsed row, in order.
	Rows [][]string
}

// Paragraph creates a paragraph block.
func Paragraph(text string) RenderBlock {
	return RenderBlock{Kind: BlockParagraph, Text: text}
}

// TableSection creates a table section block.
func TableSection(heading string, rows [][]string) RenderBlock {
	return RenderBlock{Kind: BlockTable, Heading: heading, Rows: rows}
}
