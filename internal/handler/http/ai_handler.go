package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizsuite/crm-api/internal/handler/http/dto"
	usecasecontract "github.com/bizsuite/crm-api/internal/usecase/contract"
)

type AIHandler struct {
	AIUseCase usecasecontract.IAIUseCase
}

func NewAIHandler(aiuc usecasecontract.IAIUseCase) *AIHandler {
	return &AIHandler{
		AIUseCase: aiuc,
	}
}

// HandleSummarizeRecord forwards a record to the LLM provider and returns the summary
func (h *AIHandler) HandleSummarizeRecord(c *gin.Context) {
	var req dto.SummarizeRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	summary, err := h.AIUseCase.SummarizeRecord(c.Request.Context(), req.RecordType, req.Data)
	if err != nil {
		ErrorHandler(c, http.StatusBadGateway, "Summary generation is currently unavailable")
		return
	}

	SuccessHandler(c, http.StatusOK, gin.H{"summary": summary})
}
