package services

import (
	"strings"
	"testing"
)

func TestChunkTextEmptyInput(t *testing.T) {
	chunker := NewTextChunker()

	if got := chunker.ChunkText("", 1000, 200); got != nil {
		t.Errorf("ChunkText(\"\") = %v, want nil", got)
	}
	if got := chunker.ChunkText("\n\n\n\n", 1000, 200); got != nil {
		t.Errorf("ChunkText(blank paragraphs) = %v, want nil", got)
	}
}

func TestChunkTextSingleParagraph(t *testing.T) {
	chunker := NewTextChunker()

	chunks := chunker.ChunkText("Short guidance note.", 1000, 200)
	if len(chunks) != 1 || chunks[0] != "Short guidance note." {
		t.Errorf("ChunkText = %v, want the paragraph unchanged", chunks)
	}
}

func TestChunkTextSplitsOnParagraphs(t *testing.T) {
	chunker := NewTextChunker()

	paraA := strings.Repeat("alpha ", 20)  // ~120 chars
	paraB := strings.Repeat("beta ", 20)   // ~100 chars
	text := strings.TrimSpace(paraA) + "\n\n" + strings.TrimSpace(paraB)

	chunks := chunker.ChunkText(text, 150, 0)
	if len(chunks) != 2 {
		t.Fatalf("ChunkText produced %d chunks, want 2: %v", len(chunks), chunks)
	}
	if !strings.HasPrefix(chunks[0], "alpha") || !strings.HasPrefix(chunks[1], "beta") {
		t.Errorf("chunks lost paragraph alignment: %v", chunks)
	}
}

func TestChunkTextOversizedParagraphFallsBackToSentences(t *testing.T) {
	chunker := NewTextChunker()

	var sb strings.Builder
	for i := 0; i < 20; i++ {
		sb.WriteString("This sentence fills the paragraph with enough text to overflow. ")
	}

	chunks := chunker.ChunkText(sb.String(), 200, 0)
	if len(chunks) < 2 {
		t.Fatalf("ChunkText produced %d chunks, want several for an oversized paragraph", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 200 {
			t.Errorf("chunk %d is %d chars, exceeds the limit", i, len(chunk))
		}
	}
}

func TestChunkTextOverlapCarriesTailForward(t *testing.T) {
	chunker := NewTextChunker()

	paraA := strings.TrimSpace(strings.Repeat("alpha ", 20))
	paraB := strings.TrimSpace(strings.Repeat("beta ", 20))

	chunks := chunker.ChunkText(paraA+"\n\n"+paraB, 150, 30)
	if len(chunks) < 2 {
		t.Fatalf("ChunkText produced %d chunks, want at least 2", len(chunks))
	}

	tail := lastNRunes(chunks[0], 30)
	if !strings.HasPrefix(chunks[1], tail) {
		t.Errorf("second chunk should start with the previous tail %q, got %q", tail, chunks[1])
	}
}

func TestChunkTextDefaultsForBadParameters(t *testing.T) {
	chunker := NewTextChunker()

	// Non-positive size and oversized overlap both fall back to sane
	// values instead of looping or panicking.
	chunks := chunker.ChunkText("Some text to chunk.", 0, -5)
	if len(chunks) != 1 {
		t.Errorf("ChunkText with bad parameters = %v, want one chunk", chunks)
	}

	chunks = chunker.ChunkText("Some text to chunk.", 100, 100)
	if len(chunks) != 1 {
		t.Errorf("ChunkText with overlap >= size = %v, want one chunk", chunks)
	}
}
