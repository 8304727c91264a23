package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestExtractTextFromTxt(t *testing.T) {
	extractor := NewDocumentExtractor()
	path := writeTempFile(t, "resume.txt", []byte("Python developer with five years of experience.\n"))

	text, err := extractor.ExtractText(path, "txt")
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if text != "Python developer with five years of experience.\n" {
		t.Errorf("extracted text = %q", text)
	}
}

func TestExtractTextUnsupportedFormat(t *testing.T) {
	extractor := NewDocumentExtractor()
	path := writeTempFile(t, "resume.odt", []byte("content"))

	_, err := extractor.ExtractText(path, "odt")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ExtractText error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestExtractTextMissingFile(t *testing.T) {
	extractor := NewDocumentExtractor()

	_, err := extractor.ExtractText(filepath.Join(t.TempDir(), "nope.txt"), "txt")
	var xerr *ExtractionError
	if !errors.As(err, &xerr) {
		t.Fatalf("ExtractText error = %v, want ExtractionError", err)
	}
}

func TestExtractTextRejectsEmptyContent(t *testing.T) {
	extractor := NewDocumentExtractor()
	path := writeTempFile(t, "blank.txt", []byte("   \n\t  "))

	_, err := extractor.ExtractText(path, "txt")
	var xerr *ExtractionError
	if !errors.As(err, &xerr) {
		t.Fatalf("ExtractText error = %v, want ExtractionError for whitespace-only file", err)
	}
}

func TestExtractTextRejectsInvalidUTF8(t *testing.T) {
	extractor := NewDocumentExtractor()
	path := writeTempFile(t, "binary.txt", []byte{0xff, 0xfe, 0x00, 0x80})

	_, err := extractor.ExtractText(path, "txt")
	var xerr *ExtractionError
	if !errors.As(err, &xerr) {
		t.Fatalf("ExtractText error = %v, want ExtractionError for non-UTF-8 content", err)
	}
}

func TestExtractTextRejectsCorruptDocx(t *testing.T) {
	extractor := NewDocumentExtractor()
	path := writeTempFile(t, "resume.docx", []byte("not a zip archive"))

	_, err := extractor.ExtractText(path, "docx")
	var xerr *ExtractionError
	if !errors.As(err, &xerr) {
		t.Fatalf("ExtractText error = %v, want ExtractionError for corrupt DOCX", err)
	}
}
