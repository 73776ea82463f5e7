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

type TaskHandler struct {
	taskUsecase usecasecontract.ITaskUseCase
}

func NewTaskHandler(taskUsecase usecasecontract.ITaskUseCase) *TaskHandler {
	return &TaskHandler{taskUsecase: taskUsecase}
}

// CreateTask handles task creation
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	var req dto.TaskRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	task, err := h.taskUsecase.CreateTask(c.Request.Context(), actor, &usecasecontract.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      entity.TaskStatus(req.Status),
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		RespondError(c, err)
		return
	}

	SuccessHandler(c, http.StatusCreated, task)
}

// GetTask handles retrieving a single task
func (h *TaskHandler) GetTask(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	task, err := h.taskUsecase.GetTask(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, task)
}

// ListTasks handles the role-scoped task listing
func (h *TaskHandler) ListTasks(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	page, limit := parsePagination(c)

	filter := &contract.TaskFilter{
		Status:     c.Query("status"),
		AssignedTo: c.Query("assigned_to"),
		Search:     c.Query("search"),
		Page:       page,
		Limit:      limit,
	}

	tasks, total, err := h.taskUsecase.ListTasks(c.Request.Context(), actor, filter)
	if err != nil {
		RespondError(c, err)
		return
	}

	SuccessHandler(c, http.StatusOK, dto.ListResponse{
		Data:       tasks,
		Pagination: dto.NewPagination(page, limit, total),
	})
}

// UpdateTask handles a partial task update
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		ErrorHandler(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	task, err := h.taskUsecase.UpdateTask(c.Request.Context(), actor, c.Param("id"), updates)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, task)
}

// DeleteTask handles task deletion
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	if err := h.taskUsecase.DeleteTask(c.Request.Context(), actor, c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Task deleted successfully")
}
