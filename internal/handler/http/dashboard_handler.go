package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizsuite/crm-api/internal/handler/http/middleware"
	usecasecontract "github.com/bizsuite/crm-api/internal/usecase/contract"
)

type DashboardHandler struct {
	dashboardUsecase usecasecontract.IDashboardUseCase
}

func NewDashboardHandler(dashboardUsecase usecasecontract.IDashboardUseCase) *DashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase}
}

// GetStats returns the role-scoped dashboard rollups
func (h *DashboardHandler) GetStats(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	stats, err := h.dashboardUsecase.GetStats(c.Request.Context(), actor)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, stats)
}
