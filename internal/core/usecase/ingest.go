package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/worawit/lawgraph/internal/core/domain"
	"github.com/worawit/lawgraph/internal/core/ports"
	"github.com/worawit/lawgraph/internal/extraction"
)

// GraphWriter is the slice of the graph store ingestion needs.
type GraphWriter interface {
	SetupConstraints(ctx context.Context)
	Upsert(ctx context.Context, caseID string, results []domain.ExtractionResult) error
}

type IngestCaseUseCase struct {
	graph  GraphWriter
	chunks ports.ChunkStore
	events ports.EventPublisher
	log    *slog.Logger
}

func NewIngestCaseUseCase(
	graph GraphWriter,
	chunks ports.ChunkStore,
	events ports.EventPublisher,
	log *slog.Logger,
) *IngestCaseUseCase {
	return &IngestCaseUseCase{
		graph:  graph,
		chunks: chunks,
		events: events,
		log:    log,
	}
}

// placeholder case ids sent by generated clients that mean "detect one".
func isPlaceholderCaseID(id string) bool {
	switch strings.TrimSpace(id) {
	case "", "string", "auto", "null":
		return true
	}
	return false
}

// Ingest extracts each chunk, merges the results into the graph under one
// case id and persists the chunk index. Re-ingesting the same batch is
// idempotent end to end.
func (uc *IngestCaseUseCase) Ingest(ctx context.Context, texts []string, caseID string) (*domain.IngestResult, error) {
	if len(texts) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "ingest", fmt.Errorf("no texts provided"))
	}
	for _, t := range texts {
		if strings.TrimSpace(t) == "" {
			return nil, domain.WrapError(domain.ErrInvalidInput, "ingest", fmt.Errorf("empty text chunk"))
		}
	}

	if isPlaceholderCaseID(caseID) {
		caseID = extraction.DetectCaseID(texts)
	}

	uc.graph.SetupConstraints(ctx)

	results := make([]domain.ExtractionResult, 0, len(texts))
	for _, t := range texts {
		results = append(results, extraction.Extract(t))
	}
	if err := uc.graph.Upsert(ctx, caseID, results); err != nil {
		return nil, fmt.Errorf("upsert graph: %w", err)
	}

	chunks := make([]domain.DocChunk, 0, len(texts))
	for i, t := range texts {
		page := i + 1
		chunks = append(chunks, domain.DocChunk{
			CaseID:  caseID,
			ChunkID: fmt.Sprintf("%s-%d", caseID, page),
			Text:    t,
			Page:    page,
			Section: extraction.SectionTag(t),
		})
	}
	if err := uc.chunks.Save(ctx, chunks); err != nil {
		return nil, fmt.Errorf("save chunk index: %w", err)
	}

	if uc.events != nil {
		if err := uc.events.PublishCaseIngested(ctx, caseID, len(chunks)); err != nil {
			uc.log.Warn("ingest event not published", "caseId", caseID, "error", err)
		}
	}

	return &domain.IngestResult{CaseID: caseID, ChunkCount: len(chunks)}, nil
}
