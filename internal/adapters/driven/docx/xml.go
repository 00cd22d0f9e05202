package docx

import "encoding/xml"

// WordprocessingML element types. Field order follows the schema sequence.

type document struct {
	XMLName xml.Name `xml:"w:document"`
	W       string   `xml:"xmlns:w,attr"`
	R       string   `xml:"xmlns:r,attr"`
	Body    body     `xml:"w:body"`
}

type body struct {
	Items  []any
	SectPr sectionProps `xml:"w:sectPr"`
}

type paragraph struct {
	XMLName xml.Name        `xml:"w:p"`
	PPr     *paragraphProps `xml:"w:pPr,omitempty"`
	Runs    []run           `xml:"w:r"`
}

type paragraphProps struct {
	Spacing *spacing `xml:"w:spacing,omitempty"`
	Ind     *indent  `xml:"w:ind,omitempty"`
	Jc      *val     `xml:"w:jc,omitempty"`
}

type spacing struct {
	After int `xml:"w:after,attr"`
}

type indent struct {
	FirstLine int `xml:"w:firstLine,attr"`
}

type run struct {
	RPr *runProps `xml:"w:rPr,omitempty"`
	T   textNode  `xml:"w:t"`
}

type runProps struct {
	B  *empty `xml:"w:b,omitempty"`
	Sz *val   `xml:"w:sz,omitempty"`
}

type textNode struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Text  string `xml:",chardata"`
}

type empty struct{}

type val struct {
	Val string `xml:"w:val,attr"`
}

type width struct {
	W    int    `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

type table struct {
	XMLName xml.Name   `xml:"w:tbl"`
	Props   tableProps `xml:"w:tblPr"`
	Grid    tableGrid  `xml:"w:tblGrid"`
	Rows    []tableRow `xml:"w:tr"`
}

type tableProps struct {
	Style  val     `xml:"w:tblStyle"`
	Width  width   `xml:"w:tblW"`
	Layout *layout `xml:"w:tblLayout,omitempty"`
}

type layout struct {
	Type string `xml:"w:type,attr"`
}

type tableGrid struct {
	Cols []gridCol `xml:"w:gridCol"`
}

type gridCol struct {
	W int `xml:"w:w,attr"`
}

type tableRow struct {
	Cells []tableCell `xml:"w:tc"`
}

type tableCell struct {
	Props cellProps `xml:"w:tcPr"`
	P     paragraph `xml:"w:p"`
}

type cellProps struct {
	Width width `xml:"w:tcW"`
}

type sectionProps struct {
	PgSz  pageSize    `xml:"w:pgSz"`
	PgMar pageMargins `xml:"w:pgMar"`
}

type pageSize struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type pageMargins struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:docDefaults>
<w:rPrDefault><w:rPr><w:rFonts w:ascii="` + bodyFont + `" w:hAnsi="` + bodyFont + `" w:eastAsia="` + bodyFont + `" w:cs="` + bodyFont + `"/><w:sz w:val="24"/><w:szCs w:val="24"/><w:lang w:val="en-IN"/></w:rPr></w:rPrDefault>
<w:pPrDefault><w:pPr><w:spacing w:after="0" w:line="240" w:lineRule="auto"/></w:pPr></w:pPrDefault>
</w:docDefaults>
<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/><w:rPr><w:rFonts w:ascii="` + bodyFont + `" w:hAnsi="` + bodyFont + `"/><w:sz w:val="24"/></w:rPr></w:style>
<w:style w:type="table" w:default="1" w:styleId="TableNormal"><w:name w:val="Normal Table"/><w:tblPr><w:tblInd w:w="0" w:type="dxa"/><w:tblCellMar><w:top w:w="0" w:type="dxa"/><w:left w:w="108" w:type="dxa"/><w:bottom w:w="0" w:type="dxa"/><w:right w:w="108" w:type="dxa"/></w:tblCellMar></w:tblPr></w:style>
<w:style w:type="table" w:styleId="TableGrid"><w:name w:val="Table Grid"/><w:basedOn w:val="TableNormal"/><w:tblPr><w:tblBorders><w:top w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:left w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:bottom w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:right w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:insideH w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:insideV w:val="single" w:sz="4" w:space="0" w:color="auto"/></w:tblBorders></w:tblPr></w:style>
</w:styles>`
