package services

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat means the declared file type is not one of
// pdf/doc/docx/txt. Fatal for the upload.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrModelUnavailable marks a missing NER or narrative backend. Never
// fatal: callers degrade to absent fields or templated fallback text.
var ErrModelUnavailable = errors.New("model unavailable")

// ExtractionError wraps a reader failure on a recognized format. Fatal
// for that one file; the resume is marked failed and the batch continues.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

func newExtractionError(path string, format string, args ...interface{}) *ExtractionError {
	return &ExtractionError{Path: path, Err: fmt.Errorf(format, args...)}
}

// ValidationError rejects malformed scorer/feedback input before any
// scoring begins, e.g. a resume that has not finished parsing.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
