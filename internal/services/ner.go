package services

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

// EntityRecognizer finds the first named entity of a given label in text.
// An empty result with a nil error means "not found"; an error means the
// model itself is unavailable and callers should degrade gracefully.
type EntityRecognizer interface {
	FirstEntity(text string, label string) (string, error)
}

type proseRecognizer struct{}

// NewEntityRecognizer returns a recognizer backed by the prose NLP model.
func NewEntityRecognizer() EntityRecognizer {
	return &proseRecognizer{}
}

func (r *proseRecognizer) FirstEntity(text string, label string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	for _, ent := range doc.Entities() {
		if ent.Label == label {
			return strings.TrimSpace(ent.Text), nil
		}
	}
	return "", nil
}
