package usecase

import (
	"context"

	"github.com/worawit/lawgraph/internal/core/domain"
)

type AskQuestionUseCase struct {
	search *SearchCasesUseCase
}

func NewAskQuestionUseCase(search *SearchCasesUseCase) *AskQuestionUseCase {
	return &AskQuestionUseCase{search: search}
}

// Ask runs hybrid retrieval and synthesizes the templated answer over it.
func (uc *AskQuestionUseCase) Ask(ctx context.Context, question, caseID string, k int) (*domain.Answer, error) {
	result, err := uc.search.Search(ctx, question, caseID, k)
	if err != nil {
		return nil, err
	}
	return &domain.Answer{
		Text:   synthesizeAnswer(result.Chunks, result.Facts, caseID),
		Chunks: result.Chunks,
		Facts:  result.Facts,
		Mode:   result.Mode,
	}, nil
}
