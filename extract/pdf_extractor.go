package extract

import (
	"bytes"
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"

	"github.com/dkkundu/DeepDocAI/fault"
)

const ocrDPI = 300

// PDFExtractor reads the text layer of a PDF page by page. A page whose
// extraction fails is logged and dropped; the rest of the document still
// contributes. When OCR is enabled, pages without a text layer are rendered
// and run through Tesseract instead of being dropped.
type PDFExtractor struct {
	logger *zap.Logger
	ocr    bool
}

func NewPDFExtractor(logger *zap.Logger, ocr bool) *PDFExtractor {
	return &PDFExtractor{
		logger: logger,
		ocr:    ocr,
	}
}

func (p *PDFExtractor) ExtractText(fp string) (string, error) {
	doc, err := fitz.New(fp)
	if err != nil {
		return "", fault.Wrap(fault.ExtractionFailed, err, "failed to open PDF")
	}
	defer doc.Close()

	var ocrClient *gosseract.Client
	if p.ocr {
		ocrClient = gosseract.NewClient()
		defer ocrClient.Close()

		ocrClient.SetVariable("tessedit_ocr_engine_mode", "1")
		ocrClient.SetVariable("preserve_interword_spaces", "1")
	}

	text := collectPages(doc.NumPage(), func(pageNum int) (string, error) {
		pageText, err := doc.Text(pageNum)
		if err != nil {
			p.logger.Warn("Failed to extract text from page",
				zap.String("file", fp),
				zap.Int("page", pageNum+1),
				zap.Error(err))
			return "", err
		}
		if ocrClient != nil && strings.TrimSpace(pageText) == "" {
			return p.ocrPage(doc, ocrClient, fp, pageNum)
		}
		return pageText, nil
	})

	return text, nil
}

// ocrPage renders a page without a text layer and extracts its text via
// Tesseract.
func (p *PDFExtractor) ocrPage(doc *fitz.Document, client *gosseract.Client, fp string, pageNum int) (string, error) {
	img, err := doc.ImageDPI(pageNum, ocrDPI)
	if err != nil {
		p.logger.Warn("Failed to render page for OCR",
			zap.String("file", fp),
			zap.Int("page", pageNum+1),
			zap.Error(err))
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		p.logger.Warn("Failed to encode page image for OCR",
			zap.String("file", fp),
			zap.Int("page", pageNum+1),
			zap.Error(err))
		return "", err
	}

	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		p.logger.Warn("Failed to set page image for OCR",
			zap.String("file", fp),
			zap.Int("page", pageNum+1),
			zap.Error(err))
		return "", err
	}

	text, err := client.Text()
	if err != nil {
		p.logger.Warn("Failed to extract page text via OCR",
			zap.String("file", fp),
			zap.Int("page", pageNum+1),
			zap.Error(err))
		return "", err
	}
	return text, nil
}

// collectPages gathers per-page text and joins it, skipping pages whose
// extraction returned an error.
func collectPages(pages int, pageText func(pageNum int) (string, error)) string {
	fragments := make([]string, 0, pages)
	for pageNum := 0; pageNum < pages; pageNum++ {
		text, err := pageText(pageNum)
		if err != nil {
			continue
		}
		fragments = append(fragments, text)
	}
	return joinFragments(fragments)
}
