package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// GuidanceStore holds embedded career-guidance reference documents used
// to enrich feedback narratives. Retrieval failures never fail an
// evaluation; callers degrade to prompts without context.
type GuidanceStore interface {
	InitCollection() error
	UpsertSnippet(ctx context.Context, docID string, topic string, text string, embedding []float32) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]GuidanceSnippet, error)
	DeleteSnippets(ctx context.Context, docID string) error
}

// GuidanceSnippet is one retrieved chunk of guidance text.
type GuidanceSnippet struct {
	ID    string
	Score float32
	Text  string
	Topic string
}

type guidanceStore struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewGuidanceStore(urlStr, apiKey, collectionName string) (GuidanceStore, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port, not the REST one
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &guidanceStore{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 output size
	}, nil
}

// InitCollection implements GuidanceStore.
func (g *guidanceStore) InitCollection() error {
	ctx := context.Background()

	exists, err := g.client.CollectionExists(ctx, g.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Guidance collection already exists")
		return nil
	}

	err = g.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: g.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     g.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", g.collectionName)
	return nil
}

// UpsertSnippet implements GuidanceStore.
func (g *guidanceStore) UpsertSnippet(ctx context.Context, docID string, topic string, text string, embedding []float32) error {
	pointID := uuid.New()

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(pointID.ID())),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"doc_id": docID,
			"topic":  topic,
			"text":   text,
		}),
	}

	_, err := g.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: g.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchSimilar implements GuidanceStore.
func (g *guidanceStore) SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]GuidanceSnippet, error) {
	searchResult, err := g.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: g.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var snippets []GuidanceSnippet
	for _, point := range searchResult {
		payload := point.Payload

		snippet := GuidanceSnippet{
			Score: point.Score,
		}

		if docID, ok := payload["doc_id"]; ok {
			if val, ok := docID.GetKind().(*qdrant.Value_StringValue); ok {
				snippet.ID = val.StringValue
			}
		}

		if text, ok := payload["text"]; ok {
			if val, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
				snippet.Text = val.StringValue
			}
		}

		if topic, ok := payload["topic"]; ok {
			if val, ok := topic.GetKind().(*qdrant.Value_StringValue); ok {
				snippet.Topic = val.StringValue
			}
		}

		snippets = append(snippets, snippet)
	}

	return snippets, nil
}

// DeleteSnippets implements GuidanceStore. Removes every chunk of the
// given source document.
func (g *guidanceStore) DeleteSnippets(ctx context.Context, docID string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("doc_id", docID),
		},
	}

	_, err := g.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: g.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})

	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return nil
}
