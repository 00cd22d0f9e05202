package renderer

import (
	"strings"

	"github.com/custodia-labs/lexdraft/internal/core/ports/driven"
)

// AnnexureMarker prefixes annexure citations in index entries.
const AnnexureMarker = "ANNEXURE NO."

// AnnexureRuns splits cell text so that the "ANNEXURE NO. n:" span is bold.
// Text before the marker and after the colon keeps normal weight. Without a
// colon the whole span from the marker onwards is bold. The marker is
// matched case-insensitively.
func AnnexureRuns(text string) []driven.Run {
	idx := indexFold(text, AnnexureMarker)
	if idx < 0 {
		return []driven.Run{{Text: text}}
	}

	var runs []driven.Run
	if idx > 0 {
		runs = append(runs, driven.Run{Text: text[:idx]})
	}

	part := text[idx:]
	colon := strings.Index(part, ":")
	if colon < 0 {
		return append(runs, driven.Run{Text: part, Bold: true})
	}

	runs = append(runs, driven.Run{Text: part[:colon+1], Bold: true})
	if rest := part[colon+1:]; rest != "" {
		runs = append(runs, driven.Run{Text: rest})
	}
	return runs
}

// indexFold is a case-insensitive strings.Index for an ASCII needle.
func indexFold(s, needle string) int {
	n := len(needle)
	for i := 0; i+n <= len(s); i++ {
		if strings.EqualFold(s[i:i+n], needle) {
			return i
		}
	}
	return -1
}
