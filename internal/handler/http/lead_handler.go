package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	"github.com/bizsuite/crm-api/internal/domain/entity"
	"github.com/bizsuite/crm-api/internal/handler/http/dto"
	"github.com/bizsuite/crm-api/internal/handler/http/middleware"
	usecasecontract "github.com/bizsuite/crm-api/internal/usecase/contract"
)

type LeadHandler struct {
	leadUsecase usecasecontract.ILeadUseCase
}

func NewLeadHandler(leadUsecase usecasecontract.ILeadUseCase) *LeadHandler {
	return &LeadHandler{leadUsecase: leadUsecase}
}

// CreateLead handles lead creation (admin only)
func (h *LeadHandler) CreateLead(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	var req dto.LeadRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	lead, err := h.leadUsecase.CreateLead(c.Request.Context(), actor, &usecasecontract.LeadInput{
		Title:       req.Title,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Source:      req.Source,
		Value:       req.Value,
		Stage:       entity.LeadStage(req.Stage),
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		RespondError(c, err)
		return
	}

	SuccessHandler(c, http.StatusCreated, lead)
}

// GetLead handles retrieving a single lead
func (h *LeadHandler) GetLead(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	lead, err := h.leadUsecase.GetLead(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, lead)
}

// ListLeads handles the role-scoped lead listing
func (h *LeadHandler) ListLeads(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	page, limit := parsePagination(c)

	filter := &contract.LeadFilter{
		Stage:      c.Query("stage"),
		Source:     c.Query("source"),
		AssignedTo: c.Query("assigned_to"),
		Search:     c.Query("search"),
		Page:       page,
		Limit:      limit,
	}

	leads, total, err := h.leadUsecase.ListLeads(c.Request.Context(), actor, filter)
	if err != nil {
		RespondError(c, err)
		return
	}

	SuccessHandler(c, http.StatusOK, dto.ListResponse{
		Data:       leads,
		Pagination: dto.NewPagination(page, limit, total),
	})
}

// UpdateLead handles a partial lead update. The raw body keys are passed
// through so the usecase can reject Staff requests touching anything other
// than the stage.
func (h *LeadHandler) UpdateLead(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		ErrorHandler(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	lead, err := h.leadUsecase.UpdateLead(c.Request.Context(), actor, c.Param("id"), updates)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, lead)
}

// DeleteLead handles lead deletion (admin only)
func (h *LeadHandler) DeleteLead(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	if err := h.leadUsecase.DeleteLead(c.Request.Context(), actor, c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Lead deleted successfully")
}
