package usecase

import (
	"context"

	"github.com/worawit/lawgraph/internal/core/domain"
	"github.com/worawit/lawgraph/internal/core/ports"
)

type CaseFactsUseCase struct {
	facts FactSource
}

func NewCaseFactsUseCase(facts FactSource) *CaseFactsUseCase {
	return &CaseFactsUseCase{facts: facts}
}

func (uc *CaseFactsUseCase) Facts(ctx context.Context, caseID string, limit int) ([]domain.CaseFact, error) {
	return uc.facts.Facts(ctx, caseID, limit)
}

type CaseChunksUseCase struct {
	chunks ports.ChunkStore
}

func NewCaseChunksUseCase(chunks ports.ChunkStore) *CaseChunksUseCase {
	return &CaseChunksUseCase{chunks: chunks}
}

// Chunks returns the indexed chunks for a case in page order.
func (uc *CaseChunksUseCase) Chunks(ctx context.Context, caseID string) ([]domain.DocChunk, error) {
	if caseID == "" {
		return uc.chunks.ListAll(ctx)
	}
	return uc.chunks.ListByCase(ctx, caseID)
}
