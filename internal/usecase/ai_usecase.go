package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	usecasecontract "github.com/bizsuite/crm-api/internal/usecase/contract"
)

// AIUsecase implements the IAIUseCase interface.
type AIUsecase struct {
	aiService contract.IAIService
	logger    usecasecontract.IAppLogger
}

func NewAIUsecase(aiService contract.IAIService, logger usecasecontract.IAppLogger) *AIUsecase {
	return &AIUsecase{aiService: aiService, logger: logger}
}

var _ usecasecontract.IAIUseCase = (*AIUsecase)(nil)

// SummarizeRecord forwards a record summarization prompt to the LLM provider.
func (uc *AIUsecase) SummarizeRecord(ctx context.Context, recordType, data string) (string, error) {
	if recordType == "" {
		return "", fmt.Errorf("%w: record type is required", ErrValidation)
	}
	if data == "" {
		return "", fmt.Errorf("%w: record data is required", ErrValidation)
	}

	prompt := fmt.Sprintf(
		"You are a CRM assistant. Summarize the following %s record in two or three sentences, highlighting anything that needs follow-up.\n\n%s",
		recordType, data)

	summary, err := uc.aiService.GenerateContent(ctx, prompt)
	if err != nil {
		uc.logger.Errorf("AI summary generation failed: %v", err)
		return "", errors.New("failed to generate summary")
	}

	return summary, nil
}
