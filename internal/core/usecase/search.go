package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/worawit/lawgraph/internal/core/domain"
	"github.com/worawit/lawgraph/internal/core/ports"
)

// FactSource is the slice of the graph store retrieval needs.
type FactSource interface {
	Facts(ctx context.Context, caseID string, limit int) ([]domain.CaseFact, error)
}

const (
	embedWeight   = 0.7
	lexicalWeight = 0.3
)

type SearchCasesUseCase struct {
	chunks    ports.ChunkStore
	facts     FactSource
	embedder  ports.Embedder
	log       *slog.Logger
	maxVocab  int
	factLimit int
}

func NewSearchCasesUseCase(
	chunks ports.ChunkStore,
	facts FactSource,
	embedder ports.Embedder,
	log *slog.Logger,
	maxVocab, factLimit int,
) *SearchCasesUseCase {
	return &SearchCasesUseCase{
		chunks:    chunks,
		facts:     facts,
		embedder:  embedder,
		log:       log,
		maxVocab:  maxVocab,
		factLimit: factLimit,
	}
}

// Search ranks the candidate chunks lexically, blends in dense-embedding
// similarity when the embedder is reachable, and returns the top k together
// with the case facts. Embedding failures degrade to lexical-only scoring.
func (uc *SearchCasesUseCase) Search(ctx context.Context, query, caseID string, k int) (*domain.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "search", fmt.Errorf("empty query"))
	}
	if k <= 0 {
		k = 5
	}

	var (
		docs []domain.DocChunk
		err  error
	)
	if caseID != "" {
		docs, err = uc.chunks.ListByCase(ctx, caseID)
	} else {
		docs, err = uc.chunks.ListAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}
	if len(docs) == 0 {
		return &domain.SearchResult{Chunks: []domain.RankedChunk{}, Facts: []domain.CaseFact{}, Mode: "lexical"}, nil
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}

	index := buildTFIDF(texts, uc.maxVocab)
	qv := index.vectorizeQuery(query)
	scores := make([]float64, len(docs))
	for i, dv := range index.docVecs {
		if s := cosine(qv, dv); s > 0 {
			scores[i] = s
		}
	}

	mode := "lexical"
	if embScores, ok := uc.embeddingScores(ctx, query, texts); ok {
		for i := range scores {
			scores[i] = embedWeight*embScores[i] + lexicalWeight*scores[i]
		}
		mode = "hybrid"
	}

	order := make([]int, len(docs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	if k > len(order) {
		k = len(order)
	}

	ranked := make([]domain.RankedChunk, 0, k)
	for _, idx := range order[:k] {
		ranked = append(ranked, domain.RankedChunk{DocChunk: docs[idx], Score: scores[idx]})
	}

	facts, err := uc.facts.Facts(ctx, caseID, uc.factLimit)
	if err != nil {
		return nil, fmt.Errorf("graph facts: %w", err)
	}
	return &domain.SearchResult{Chunks: ranked, Facts: facts, Mode: mode}, nil
}

// embeddingScores returns per-document similarity to the query, or ok=false
// when the embedding capability is absent or unavailable right now.
func (uc *SearchCasesUseCase) embeddingScores(ctx context.Context, query string, texts []string) ([]float64, bool) {
	if uc.embedder == nil {
		return nil, false
	}
	qv, err := uc.embedder.EmbedQuery(ctx, query)
	if err != nil {
		uc.log.Warn("query embedding unavailable, lexical only", "error", err)
		return nil, false
	}
	dvs, err := uc.embedder.Embed(ctx, texts)
	if err != nil || len(dvs) != len(texts) {
		uc.log.Warn("document embeddings unavailable, lexical only", "error", err)
		return nil, false
	}

	scores := make([]float64, len(texts))
	for i, dv := range dvs {
		if s := cosine32(qv, dv); s > 0 {
			scores[i] = s
		}
	}
	return scores, true
}
