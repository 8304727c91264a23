package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Anupamakannur/resume-relevance/internal/config"
	"github.com/Anupamakannur/resume-relevance/internal/services"
)

// Ingests career-guidance reference documents into the Qdrant guidance
// collection. The feedback generator retrieves from this collection to
// enrich its narrative prompts.
func main() {
	log.Println("🚀 Starting guidance document ingestion...")

	// Load configuration
	cfg := config.Load()

	// Initialize services
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	guidanceStore, err := services.NewGuidanceStore(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := guidanceStore.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	extractor := services.NewDocumentExtractor()
	chunker := services.NewTextChunker()

	ctx := context.Background()

	documents := []struct {
		Path  string
		Type  string
		Topic string
		Name  string
	}{
		{
			Path:  "./guidance_docs/skill_development.txt",
			Type:  "txt",
			Topic: "skill_development",
			Name:  "Skill Development Playbook",
		},
		{
			Path:  "./guidance_docs/career_transitions.txt",
			Type:  "txt",
			Topic: "career_transitions",
			Name:  "Career Transition Guide",
		},
		{
			Path:  "./guidance_docs/certification_paths.pdf",
			Type:  "pdf",
			Topic: "certifications",
			Name:  "Certification Paths Overview",
		},
		{
			Path:  "./guidance_docs/resume_writing.pdf",
			Type:  "pdf",
			Topic: "resume_writing",
			Name:  "Resume Writing Best Practices",
		},
	}

	successCount := 0
	failCount := 0

	for _, doc := range documents {
		log.Printf("\n📄 Processing: %s", doc.Name)
		log.Printf("   Path: %s", doc.Path)
		log.Printf("   Topic: %s", doc.Topic)

		// Check if file exists
		if _, err := os.Stat(doc.Path); os.IsNotExist(err) {
			log.Printf("   ⚠️  File not found, skipping...")
			failCount++
			continue
		}

		// Extract text
		log.Printf("   📖 Extracting text...")
		text, err := extractor.ExtractText(doc.Path, doc.Type)
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ Extracted %d characters", len(text))

		// Chunk the text
		log.Printf("   ✂️  Chunking text...")
		chunks := chunker.ChunkText(text, 1000, 200)
		log.Printf("   ✅ Created %d chunks", len(chunks))

		// Embed and store each chunk
		log.Printf("   🔄 Embedding and storing chunks...")
		for i, chunk := range chunks {
			embedding, err := geminiService.GenerateEmbedding(ctx, chunk)
			if err != nil {
				log.Printf("   ❌ Failed to generate embedding for chunk %d: %v", i+1, err)
				continue
			}

			docID := fmt.Sprintf("%s_chunk_%d", doc.Topic, i)

			err = guidanceStore.UpsertSnippet(ctx, docID, doc.Topic, chunk, embedding)
			if err != nil {
				log.Printf("   ❌ Failed to store chunk %d: %v", i+1, err)
				continue
			}

			if (i+1)%5 == 0 || i == len(chunks)-1 {
				log.Printf("   📊 Progress: %d/%d chunks stored", i+1, len(chunks))
			}
		}

		log.Printf("   ✅ Successfully ingested %s", doc.Name)
		successCount++
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d documents", successCount)
	log.Printf("   ❌ Failed: %d documents", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some documents failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All documents ingested successfully!")
}
