// Package normalisers extracts plain text from uploaded files.
//
// Each sub-package implements driven.Extractor for one family of file
// extensions. The Registry dispatches purely on the declared extension,
// never on content sniffing, and decodes unknown extensions as UTF-8 with
// replacement so that an unfamiliar file never fails on its extension alone.
package normalisers
