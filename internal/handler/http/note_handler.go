package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizsuite/crm-api/internal/domain/contract"
	"github.com/bizsuite/crm-api/internal/handler/http/dto"
	"github.com/bizsuite/crm-api/internal/handler/http/middleware"
	usecasecontract "github.com/bizsuite/crm-api/internal/usecase/contract"
)

type NoteHandler struct {
	noteUsecase usecasecontract.INoteUseCase
}

func NewNoteHandler(noteUsecase usecasecontract.INoteUseCase) *NoteHandler {
	return &NoteHandler{noteUsecase: noteUsecase}
}

// CreateNote handles note creation
func (h *NoteHandler) CreateNote(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	var req dto.NoteRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	note, err := h.noteUsecase.CreateNote(c.Request.Context(), actor, &usecasecontract.NoteInput{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		RespondError(c, err)
		return
	}

	SuccessHandler(c, http.StatusCreated, note)
}

// GetNote handles retrieving a single note
func (h *NoteHandler) GetNote(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	note, err := h.noteUsecase.GetNote(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, note)
}

// ListNotes handles the owner-scoped note listing
func (h *NoteHandler) ListNotes(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	page, limit := parsePagination(c)

	filter := &contract.NoteFilter{
		Tag:      c.Query("tag"),
		PinnedBy: c.Query("pinned"),
		Search:   c.Query("search"),
		Page:     page,
		Limit:    limit,
	}

	notes, total, err := h.noteUsecase.ListNotes(c.Request.Context(), actor, filter)
	if err != nil {
		RespondError(c, err)
		return
	}

	SuccessHandler(c, http.StatusOK, dto.ListResponse{
		Data:       notes,
		Pagination: dto.NewPagination(page, limit, total),
	})
}

// UpdateNote handles a partial note update
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		ErrorHandler(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	note, err := h.noteUsecase.UpdateNote(c.Request.Context(), actor, c.Param("id"), updates)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, note)
}

// DeleteNote handles note deletion
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	if err := h.noteUsecase.DeleteNote(c.Request.Context(), actor, c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Note deleted successfully")
}

// TogglePin flips the viewer's pin on a note
func (h *NoteHandler) TogglePin(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	pinned, err := h.noteUsecase.TogglePin(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, gin.H{"isPinnedByUser": pinned})
}
