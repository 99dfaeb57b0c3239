package ports

import (
	"context"
	"io"

	"github.com/worawit/lawgraph/internal/core/domain"
)

// GraphCommander is the generic command interface to the property-graph
// store. Write executes one parameterized write statement; Read executes a
// parameterized read statement and returns rows of named fields. The core
// composes its own statements and never sees driver types.
type GraphCommander interface {
	Write(ctx context.Context, statement string, params map[string]any) error
	Read(ctx context.Context, statement string, params map[string]any) ([]map[string]any, error)
}

// ChunkStore persists the chunk index independently of the graph. ListByCase
// returns chunks ordered by page; ListAll orders by (caseId, page).
type ChunkStore interface {
	Save(ctx context.Context, chunks []domain.DocChunk) error
	ListByCase(ctx context.Context, caseID string) ([]domain.DocChunk, error)
	ListAll(ctx context.Context) ([]domain.DocChunk, error)
}

// Embedder is the optional dense-embedding capability. Callers must treat
// any error as "capability unavailable" and degrade to lexical scoring.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// EventPublisher announces completed ingestion batches. Publishing is
// best-effort; failures are logged by the caller and never abort ingestion.
type EventPublisher interface {
	PublishCaseIngested(ctx context.Context, caseID string, chunkCount int) error
}

// TextExtractor turns an uploaded document body into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, filename string, body io.Reader) (string, error)
}

// Chunker splits extracted text into ingestible chunks.
type Chunker interface {
	Split(text string) []string
}
