package services

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"
)

// DocumentExtractor converts an uploaded file into plain text. Dispatch is
// on the declared type only; a mismatched declaration surfaces as an
// ExtractionError from the underlying reader, not as format sniffing.
type DocumentExtractor interface {
	ExtractText(filePath string, declaredType string) (string, error)
}

type documentExtractor struct{}

func NewDocumentExtractor() DocumentExtractor {
	return &documentExtractor{}
}

func (d *documentExtractor) ExtractText(filePath string, declaredType string) (string, error) {
	if _, err := os.Stat(filePath); err != nil {
		return "", &ExtractionError{Path: filePath, Err: err}
	}

	var (
		text string
		err  error
	)
	switch strings.ToLower(declaredType) {
	case "pdf":
		text, err = extractFromPDF(filePath)
	case "doc", "docx":
		text, err = extractFromDocx(filePath)
	case "txt":
		text, err = extractFromTxt(filePath)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, declaredType)
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", newExtractionError(filePath, "no text content found")
	}
	return text, nil
}

// extractFromPDF concatenates per-page text with a newline separator,
// preserving page order. No OCR: image-only pages contribute nothing.
func extractFromPDF(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", newExtractionError(filePath, "failed to open PDF: %v", err)
	}
	defer f.Close()

	var b strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages; an entirely empty document is
			// rejected by the caller.
			continue
		}

		b.WriteString(text)
		b.WriteString("\n")
	}

	return b.String(), nil
}

// extractFromDocx concatenates paragraph text with a newline separator,
// preserving document order.
func extractFromDocx(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", newExtractionError(filePath, "failed to open DOCX: %v", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", newExtractionError(filePath, "failed to stat DOCX: %v", err)
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return "", newExtractionError(filePath, "failed to parse DOCX: %v", err)
	}

	var b strings.Builder
	for _, item := range doc.Document.Body.Items {
		if para, ok := item.(*docx.Paragraph); ok {
			b.WriteString(para.String())
			b.WriteString("\n")
		}
	}

	return b.String(), nil
}

func extractFromTxt(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", newExtractionError(filePath, "failed to read TXT: %v", err)
	}
	if !utf8.Valid(data) {
		return "", newExtractionError(filePath, "file is not valid UTF-8 text")
	}
	return string(data), nil
}
