package usecasecontract

import (
	"context"
)

// IAIUseCase is the AI summary passthrough.
type IAIUseCase interface {
	// SummarizeRecord builds a summarization prompt for the named record type
	// and forwards it to the configured LLM provider.
	SummarizeRecord(ctx context.Context, recordType, data string) (string, error)
}
