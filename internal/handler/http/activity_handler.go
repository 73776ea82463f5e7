package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	"github.com/bizsuite/crm-api/internal/handler/http/dto"
	"github.com/bizsuite/crm-api/internal/handler/http/middleware"
	usecasecontract "github.com/bizsuite/crm-api/internal/usecase/contract"
)

type ActivityHandler struct {
	activityUsecase usecasecontract.IActivityUseCase
}

func NewActivityHandler(activityUsecase usecasecontract.IActivityUseCase) *ActivityHandler {
	return &ActivityHandler{activityUsecase: activityUsecase}
}

// PostActivity handles posting to the shared feed
func (h *ActivityHandler) PostActivity(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	var req dto.ActivityRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	activity, err := h.activityUsecase.PostActivity(c.Request.Context(), actor, req.Content)
	if err != nil {
		RespondError(c, err)
		return
	}

	SuccessHandler(c, http.StatusCreated, activity)
}

// GetActivity handles retrieving a single feed item
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	activity, err := h.activityUsecase.GetActivity(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, activity)
}

// ListActivities handles the feed listing
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	page, limit := parsePagination(c)

	filter := &contract.ActivityFilter{
		CreatedBy: c.Query("created_by"),
		PinnedBy:  c.Query("pinned"),
		Search:    c.Query("search"),
		Page:      page,
		Limit:     limit,
	}

	activities, total, err := h.activityUsecase.ListActivities(c.Request.Context(), actor, filter)
	if err != nil {
		RespondError(c, err)
		return
	}

	SuccessHandler(c, http.StatusOK, dto.ListResponse{
		Data:       activities,
		Pagination: dto.NewPagination(page, limit, total),
	})
}

// DeleteActivity handles removing a feed item
func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	if err := h.activityUsecase.DeleteActivity(c.Request.Context(), actor, c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Activity deleted successfully")
}

// ToggleLike flips the viewer's like on an activity
func (h *ActivityHandler) ToggleLike(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	liked, count, err := h.activityUsecase.ToggleLike(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, gin.H{"isLikedByUser": liked, "likeCount": count})
}

// TogglePin flips the viewer's pin on an activity
func (h *ActivityHandler) TogglePin(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	pinned, err := h.activityUsecase.TogglePin(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, gin.H{"isPinnedByUser": pinned})
}

// AddComment appends a comment to an activity
func (h *ActivityHandler) AddComment(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	var req dto.CommentRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	comment, err := h.activityUsecase.AddComment(c.Request.Context(), actor, c.Param("id"), req.Text)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusCreated, comment)
}

// DeleteComment removes a comment from an activity
func (h *ActivityHandler) DeleteComment(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	if err := h.activityUsecase.DeleteComment(c.Request.Context(), actor, c.Param("id"), c.Param("commentID")); err != nil {
		RespondError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Comment deleted successfully")
}
