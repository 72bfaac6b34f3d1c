package extract

import (
	"path/filepath"
	"strings"
)

// Format identifies a supported document format. It is derived once from the
// uploaded file's declared extension and selects the extractor variant.
type Format string

const (
	FormatPDF  Format = ".pdf"
	FormatDOCX Format = ".docx"
	FormatDOC  Format = ".doc"
)

// ParseFormat matches a filename's extension (case-insensitive) against the
// supported format set.
func ParseFormat(filename string) (Format, bool) {
	switch f := Format(strings.ToLower(filepath.Ext(filename))); f {
	case FormatPDF, FormatDOCX, FormatDOC:
		return f, true
	default:
		return "", false
	}
}

// TextExtractor converts one document format into plain text. An empty result
// is not an extraction error; the caller decides how to classify it.
type TextExtractor interface {
	ExtractText(path string) (string, error)
}

// joinFragments joins the per-unit (page or paragraph) fragments with a blank
// line, dropping fragments whose trimmed text is empty.
func joinFragments(fragments []string) string {
	kept := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		if strings.TrimSpace(fragment) == "" {
			continue
		}
		kept = append(kept, fragment)
	}
	return strings.Join(kept, "\n\n")
}
