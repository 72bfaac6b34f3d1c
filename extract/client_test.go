package extract

import (
	"testing"
)

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		name     string
		filename string
		want     Format
		ok       bool
	}{
		{"PDF", "report.pdf", FormatPDF, true},
		{"PDFUpperCase", "REPORT.PDF", FormatPDF, true},
		{"DOCX", "notes.docx", FormatDOCX, true},
		{"DOCXMixedCase", "notes.DocX", FormatDOCX, true},
		{"LegacyDOC", "old.doc", FormatDOC, true},
		{"Text", "readme.txt", "", false},
		{"NoExtension", "README", "", false},
		{"DOCXSuffixOnly", "archive.docx.zip", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseFormat(tc.filename)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if got != tc.want {
				t.Errorf("expected format %q, got %q", tc.want, got)
			}
		})
	}
}

func TestJoinFragments(t *testing.T) {
	testCases := []struct {
		name      string
		fragments []string
		want      string
	}{
		{"DropsBlankParagraphs", []string{"Hello", "", "  ", "World"}, "Hello\n\nWorld"},
		{"SingleFragment", []string{"Hello"}, "Hello"},
		{"AllBlank", []string{"", "\t", "  \n"}, ""},
		{"Empty", nil, ""},
		{"KeepsInnerWhitespace", []string{"Hello world ", "Bye"}, "Hello world \n\nBye"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := joinFragments(tc.fragments)
			if got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
