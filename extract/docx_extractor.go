package extract

import (
	"os"

	docx "github.com/fumiama/go-docx"

	"github.com/dkkundu/DeepDocAI/fault"
)

// DOCXExtractor reads paragraph text from a DOCX container. Paragraphs whose
// trimmed text is empty are dropped.
type DOCXExtractor struct{}

func NewDOCXExtractor() *DOCXExtractor {
	return &DOCXExtractor{}
}

func (d *DOCXExtractor) ExtractText(fp string) (string, error) {
	f, err := os.Open(fp)
	if err != nil {
		return "", fault.Wrap(fault.ExtractionFailed, err, "failed to open DOCX")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fault.Wrap(fault.ExtractionFailed, err, "failed to stat DOCX")
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return "", fault.Wrap(fault.ExtractionFailed, err, "failed to parse DOCX")
	}

	fragments := make([]string, 0, len(doc.Document.Body.Items))
	for _, item := range doc.Document.Body.Items {
		paragraph, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		fragments = append(fragments, paragraph.String())
	}
	return joinFragments(fragments), nil
}
