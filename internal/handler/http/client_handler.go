package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	"github.com/bizsuite/crm-api/internal/handler/http/dto"
	"github.com/bizsuite/crm-api/internal/handler/http/middleware"
	usecasecontract "github.com/bizsuite/crm-api/internal/usecase/contract"
)

type ClientHandler struct {
	clientUsecase usecasecontract.IClientUseCase
}

func NewClientHandler(clientUsecase usecasecontract.IClientUseCase) *ClientHandler {
	return &ClientHandler{clientUsecase: clientUsecase}
}

// CreateClient handles client creation (admin only)
func (h *ClientHandler) CreateClient(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	var req dto.ClientRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	client, err := h.clientUsecase.CreateClient(c.Request.Context(), actor, &usecasecontract.ClientInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Company:    req.Company,
		Tags:       req.Tags,
		AssignedTo: req.AssignedTo,
	})
	if err != nil {
		RespondError(c, err)
		return
	}

	SuccessHandler(c, http.StatusCreated, client)
}

// GetClient handles retrieving a single client
func (h *ClientHandler) GetClient(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	client, err := h.clientUsecase.GetClient(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, client)
}

// ListClients handles the role-scoped client listing
func (h *ClientHandler) ListClients(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	page, limit := parsePagination(c)

	filter := &contract.ClientFilter{
		Search:     c.Query("search"),
		Tag:        c.Query("tag"),
		AssignedTo: c.Query("assigned_to"),
		Page:       page,
		Limit:      limit,
	}

	clients, total, err := h.clientUsecase.ListClients(c.Request.Context(), actor, filter)
	if err != nil {
		RespondError(c, err)
		return
	}

	SuccessHandler(c, http.StatusOK, dto.ListResponse{
		Data:       clients,
		Pagination: dto.NewPagination(page, limit, total),
	})
}

// UpdateClient handles a partial client update
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		ErrorHandler(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	client, err := h.clientUsecase.UpdateClient(c.Request.Context(), actor, c.Param("id"), updates)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, client)
}

// DeleteClient handles client deletion (admin only)
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	if err := h.clientUsecase.DeleteClient(c.Request.Context(), actor, c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Client deleted successfully")
}
