package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/bizsuite/crm-api/internal/domain/entity"
	handler "github.com/bizsuite/crm-api/internal/handler/http"
	dto "github.com/bizsuite/crm-api/internal/handler/http/dto"
	"github.com/bizsuite/crm-api/internal/handler/http/middleware"
	mocks "github.com/bizsuite/crm-api/internal/handler/http/mocks"
)

func setupNoteRouter(h *handler.NoteHandler, actor *entity.User) *gin.Engine {
	r := gin.Default()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, actor)
		c.Next()
	})
	r.POST("/notes", h.CreateNote)
	r.GET("/notes/:id", h.GetNote)
	r.DELETE("/notes/:id", h.DeleteNote)
	r.POST("/notes/:id/pin", h.TogglePin)
	return r
}

func TestCreateNote(t *testing.T) {
	mockUsecase := mocks.NewMockNoteUsecase()
	h := handler.NewNoteHandler(mockUsecase)
	r := setupNoteRouter(h, staffUser())

	payload := dto.NoteRequest{Title: "Follow up", Content: "Call back after the demo."}
	body, _ := json.Marshal(payload)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/notes", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Follow up")
}

func TestDeleteNote_NotOwner(t *testing.T) {
	mockUsecase := mocks.NewMockNoteUsecase()
	mockUsecase.ShouldForbid = true
	h := handler.NewNoteHandler(mockUsecase)
	r := setupNoteRouter(h, staffUser())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/notes/mock-note-id", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestTogglePin(t *testing.T) {
	mockUsecase := mocks.NewMockNoteUsecase()
	h := handler.NewNoteHandler(mockUsecase)
	r := setupNoteRouter(h, staffUser())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/notes/mock-note-id/pin", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isPinnedByUser":true`)

	// a second toggle restores the original state
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/notes/mock-note-id/pin", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isPinnedByUser":false`)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()

	r := gin.Default()
	r.Use(middleware.AuthMiddleWare(mockUsecase))
	r.GET("/me", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/me", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, mockUsecase.AuthenticateCalls)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()

	r := gin.Default()
	r.Use(middleware.AuthMiddleWare(mockUsecase))
	r.GET("/me", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Token abc123")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, mockUsecase.AuthenticateCalls)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	mockUsecase := mocks.NewMockUserUsecase()

	r := gin.Default()
	r.Use(middleware.AuthMiddleWare(mockUsecase))
	r.GET("/me", func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mock-user-id")
	assert.Equal(t, 1, mockUsecase.AuthenticateCalls)
}

func TestAdminOnly_Staff(t *testing.T) {
	r := gin.Default()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, staffUser())
		c.Next()
	})
	r.Use(middleware.AdminOnly())
	r.GET("/users", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
