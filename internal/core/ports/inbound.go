package ports

import (
	"context"

	"github.com/worawit/lawgraph/internal/core/domain"
)

// CaseIngestor is the inbound contract for knowledge-graph ingestion.
// An empty caseID means "detect one from the texts".
type CaseIngestor interface {
	Ingest(ctx context.Context, texts []string, caseID string) (*domain.IngestResult, error)
}

// CaseSearcher is the inbound contract for hybrid retrieval. An empty caseID
// searches the whole corpus.
type CaseSearcher interface {
	Search(ctx context.Context, query, caseID string, k int) (*domain.SearchResult, error)
}

// QuestionAnswerer synthesizes a deterministic answer from retrieval output.
type QuestionAnswerer interface {
	Ask(ctx context.Context, question, caseID string, k int) (*domain.Answer, error)
}

// FactReader is the inbound read model for structured case facts.
type FactReader interface {
	Facts(ctx context.Context, caseID string, limit int) ([]domain.CaseFact, error)
}

// ChunkReader is the inbound read model for indexed chunks, ordered by page.
type ChunkReader interface {
	Chunks(ctx context.Context, caseID string) ([]domain.DocChunk, error)
}
