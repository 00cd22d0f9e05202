// Package renderer turns raw petition text from the language model into a
// formatted document.
//
// Rendering runs in two passes. Parse scans the text line by line and groups
// it into domain.RenderBlock values: plain paragraphs, and table sections
// opened by a recognised heading (INDEX, LIST OF DATED AND EVENTS). Render
// then lays each block out through a driven.DocumentWriter, applying the
// column schema of the section, header handling, annexure bolding and the
// default tables used when the model produced no rows.
//
// Line recognition sits behind LineClassifier so the heuristics can change
// without touching layout.
package renderer
